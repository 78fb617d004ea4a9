package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdouchement/paperflow/internal/model"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
)

// Papers lists the papers visible to the current role and refreshes the
// local cache. With cached, the portal is not contacted at all.
func Papers(cached bool) error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	cache := NewCache(store.DB())

	if cached {
		papers, err := cache.Papers()
		if err != nil {
			return err
		}
		for _, paper := range papers {
			printPaper(paper)
		}
		return nil
	}

	wire, err := gateway.Papers()
	if err != nil {
		return describeAuthFailure(err)
	}
	debug(wire)

	papers := make([]model.Paper, 0, len(wire))
	for _, paper := range wire {
		papers = append(papers, model.PaperFromWire(paper))
	}
	if err = cache.Save(papers); err != nil {
		return err
	}

	for _, paper := range papers {
		printPaper(paper)
	}
	return nil
}

// Submit uploads a new paper to the portal (author role).
func Submit(title, abstract, keywords, filename string) error {
	_, store, gateway, err := open()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "could not open paper file")
	}
	defer f.Close()

	paper, err := gateway.SubmitPaper(libpf.Submission{
		Title:    title,
		Abstract: abstract,
		Keywords: keywords,
		Filename: filepath.Base(filename),
		File:     f,
	})
	if err != nil {
		return describeAuthFailure(err)
	}

	if err = NewCache(store.DB()).Save([]model.Paper{model.PaperFromWire(paper)}); err != nil {
		return err
	}

	fmt.Printf("Submitted %s (version %d, status %s)\n", paper.ID, paper.Version, paper.Status)
	return nil
}

func printPaper(paper model.Paper) {
	date := ""
	if !paper.UploadedAt.IsZero() {
		date = paper.UploadedAt.Format("2006-01-02")
	}

	fmt.Printf("%s  %-12s  v%d  %s  %s\n", paper.ID, paper.Status, paper.Version, date, paper.Title)
	if paper.AssignedReviewer != "" {
		fmt.Printf("    reviewer: %s\n", paper.AssignedReviewer)
	}
}

// describeAuthFailure keeps the forced-logout outcome readable on the CLI.
func describeAuthFailure(err error) error {
	if libpf.IsAuthenticationFailure(err) {
		return errors.Wrap(err, "session expired, login again")
	}
	return err
}
