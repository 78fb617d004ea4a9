package client

import (
	"fmt"

	"github.com/mdouchement/paperflow/internal/model"
	"github.com/mdouchement/paperflow/pkg/libpf"
)

// Decide records a review decision on an assigned paper (reviewer role).
func Decide(paperID, decision, comments string) error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	d, err := libpf.ParseDecision(decision)
	if err != nil {
		return err
	}

	paper, err := gateway.SubmitDecision(paperID, d, comments)
	if err != nil {
		return describeAuthFailure(err)
	}

	if err = NewCache(store.DB()).Save([]model.Paper{model.PaperFromWire(paper)}); err != nil {
		return err
	}

	fmt.Printf("Paper %s is now %s\n", paper.ID, paper.Status)
	return nil
}
