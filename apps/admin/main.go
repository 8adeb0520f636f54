package main

import (
	"log"
	"os"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/user"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	slot, err := record.NewFileSlot(conf.Store.DataDir)
	errAndDie(err)
	store := record.NewStore(slot)

	var verifier user.Verifier = user.PlainVerifier{}
	if conf.HashPasswords {
		verifier = user.BcryptVerifier{}
	}

	cli := commandLine{
		conf:   conf,
		store:  store,
		usrSvc: user.NewService(store, verifier),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
