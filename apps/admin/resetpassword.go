package main

import (
	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/user"
)

// resetPassword replaces a user's password.
func (cli *commandLine) resetPassword(uname, pwd string) error {
	usr, err := cli.usrSvc.GetByUsername(core.CleanString(uname, true /* lower */))
	if err != nil {
		return err
	}
	if _, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{Password: pwd}); err != nil {
		return err
	}
	logger.Printf("password reset for %s\n", usr.Username)
	return nil
}
