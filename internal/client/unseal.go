package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// Unseal restores a sealed credentials export into the local session store.
func Unseal(filename string) error {
	_, store, _, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	ciphertext, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "could not read credentials file")
	}

	passphrase, err := readline.Password("passphrase: ")
	if err != nil {
		return errors.Wrap(err, "could not read passphrase from stdin")
	}

	payload, err := unseal(ciphertext, passphrase)
	if err != nil {
		return err
	}

	var export exportPayload
	if err = json.Unmarshal(payload, &export); err != nil {
		return errors.Wrap(err, "could not parse credentials")
	}

	if err = store.Set(export.Session); err != nil {
		return errors.Wrap(err, "could not restore session")
	}

	fmt.Printf("Restored session for %s (%s)\n", export.Session.Email, export.Session.Role)
	return nil
}
