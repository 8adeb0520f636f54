package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	store  *record.Store
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -name NAME [-role ROLE] - create a login account (password prompted)")
	fmt.Println("  resetpassword -username USERNAME - reset a user's password (password prompted)")
	fmt.Println("  backup [-out FILE] - write a snapshot of the whole dataset")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The account's username. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The account's display name.")
	addUserRole := addUserCmd.String("role", record.RoleAdmin, "One of ADMIN, TEACHER, STUDENT.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	backupCmd := flag.NewFlagSet("backup", flag.ExitOnError)
	backupOut := backupCmd.String("out", "", "Destination file. Defaults to a dated file in the backup dir.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, *addUserName, *addUserRole, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "backup":
		if err := backupCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.backup(*backupOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
