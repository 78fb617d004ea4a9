package client

import (
	"fmt"

	"github.com/mdouchement/paperflow/pkg/libpf"
)

// Whoami prints the current session, or the anonymous state.
func Whoami(verbose bool) error {
	_, store, _, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	session := store.Current()
	if !session.Defined() {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("%s (%s)\n", session.Email, session.Role)
	if expiry, ok := libpf.TokenExpiry(session.AccessToken); ok {
		if session.AccessExpired() {
			fmt.Println("Token expired at", expiry.Format("2006-01-02 15:04:05"), "- login again")
		} else {
			fmt.Println("Token valid until", expiry.Format("2006-01-02 15:04:05"))
		}
	}

	// Never dump the token itself.
	debug(struct {
		Email string
		Role  libpf.Role
	}{session.Email, session.Role}, verbose)

	return nil
}
