package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// backup writes a snapshot of the whole dataset to out, or to a dated file
// in the configured backup dir when out is empty.
func (cli *commandLine) backup(out string) error {
	data, filename, err := cli.store.ExportSnapshot()
	if err != nil {
		return errors.Wrap(err, "exporting snapshot")
	}

	if out == "" {
		if err = os.MkdirAll(cli.conf.Store.BackupDir, 0o755); err != nil {
			return errors.Wrap(err, "creating backup dir")
		}
		out = filepath.Join(cli.conf.Store.BackupDir, filename)
	}
	if err = ioutil.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(err, "writing backup")
	}
	logger.Printf("backup written to %s\n", out)
	return nil
}
