package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reviewers lists the reviewers known to the portal (admin role).
func Reviewers() error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	reviewers, err := gateway.Reviewers()
	if err != nil {
		return describeAuthFailure(err)
	}

	for _, reviewer := range reviewers {
		fmt.Printf("%s  %-30s  %s", reviewer.ID, reviewer.Email, reviewer.Expertise)
		if reviewer.Workload > 0 {
			fmt.Printf("  (%d assigned)", reviewer.Workload)
		}
		fmt.Println()
	}
	return nil
}

// Assign assigns a reviewer to a paper (admin role).
func Assign(paperID, reviewerID string) error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err = gateway.AssignReviewer(paperID, reviewerID); err != nil {
		return describeAuthFailure(errors.Wrap(err, "could not assign reviewer"))
	}

	fmt.Printf("Assigned reviewer %s to paper %s\n", reviewerID, paperID)
	return nil
}
