package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
)

// Register creates a new account on the conference portal.
// Registration does not log the account in, a confirmation is printed instead.
func Register() error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	email, err := readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	raw, err := readline.Line("Role (admin/reviewer/author): ")
	if err != nil {
		return errors.Wrap(err, "could not read role from stdin")
	}

	role, err := libpf.ParseRole(raw)
	if err != nil {
		return err
	}

	if err = gateway.Register(email, string(password), role); err != nil {
		return errors.Wrap(err, "could not register")
	}

	fmt.Printf("Registration succeeded for %s (%s), you can now login\n", email, role)
	return nil
}
