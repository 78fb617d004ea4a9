package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Logout drops the local session. The portal keeps no server-side session
// state for this client, nothing is revoked remotely.
func Logout() error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	if !store.Current().Defined() {
		fmt.Println("Not logged in")
		return nil
	}

	if err = gateway.Logout(); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	fmt.Println("Logged out")
	return nil
}
