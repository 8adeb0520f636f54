package main

import (
	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/user"
)

// addUser creates a login account with its role's default permissions.
func (cli *commandLine) addUser(uname, name, role, pwd string) error {
	nu := user.NewUser{
		Username: core.CleanString(uname, true /* lower */),
		Password: pwd,
		Name:     core.CleanString(name),
		Role:     core.CleanString(role),
	}

	usr, err := cli.usrSvc.Create(nu)
	if err != nil {
		return err
	}
	logger.Printf("created %s account %s (%s)\n", usr.Role, usr.Username, usr.ID)
	return nil
}
