package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
)

// Login connects to the conference portal and stores the session locally.
func Login() error {
	cfg, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	if store.Current().Defined() {
		fmt.Println("Already logged in as " + store.Current().Email + ", logging out first")
		if err = gateway.Logout(); err != nil {
			return errors.Wrap(err, "could not drop previous session")
		}
	}

	email, err := readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	role, err := gateway.Login(email, string(password))
	if err != nil {
		return errors.Wrap(err, "could not login")
	}

	fmt.Printf("Logged in to %s as %s (%s)\n", cfg.Endpoint, email, role)
	fmt.Println("Landing page:", role.DashboardPath())
	return nil
}

// open builds the portal client, the session store and the gateway from the
// local configuration, and rehydrates the session.
func open() (Config, *Store, *Gateway, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}

	store, err := OpenStore(cfg.Database)
	if err != nil {
		return cfg, nil, nil, err
	}
	store.SetLogger(NewLogger())

	if err = store.Initialize(); err != nil {
		store.Close()
		return cfg, nil, nil, errors.Wrap(err, "could not initialize session store")
	}

	pf, err := libpf.NewDefaultClient(cfg.Endpoint)
	if err != nil {
		store.Close()
		return cfg, nil, nil, errors.Wrap(err, "could not reach portal endpoint")
	}

	gateway := NewGateway(pf, store)
	gateway.SetLogger(NewLogger())

	return cfg, store, gateway, nil
}
