package main

import (
	"fmt"
	"os"

	"github.com/mdouchement/paperflow/internal/client"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "pfc",
		Short:   "Conference paper portal client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(registerCmd)
	c.AddCommand(whoamiCmd)
	c.AddCommand(papersCmd)
	c.AddCommand(submitCmd)
	c.AddCommand(reviewersCmd)
	c.AddCommand(assignCmd)
	c.AddCommand(decideCmd)
	c.AddCommand(exportCmd)
	c.AddCommand(unsealCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the conference portal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Login()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Drop the local portal session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create a new portal account",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Register()
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Print the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return client.Whoami(verbose)
		},
	}

	papersCmd = &cobra.Command{
		Use:   "papers",
		Short: "List the papers visible to your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cached, _ := cmd.Flags().GetBool("cached")
			return client.Papers(cached)
		},
	}

	submitCmd = &cobra.Command{
		Use:   "submit FILENAME",
		Short: "Submit a paper (author role)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			abstract, _ := cmd.Flags().GetString("abstract")
			keywords, _ := cmd.Flags().GetString("keywords")
			return client.Submit(title, abstract, keywords, args[0])
		},
	}

	reviewersCmd = &cobra.Command{
		Use:   "reviewers",
		Short: "List reviewers (admin role)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Reviewers()
		},
	}

	assignCmd = &cobra.Command{
		Use:   "assign PAPER_ID REVIEWER_ID",
		Short: "Assign a reviewer to a paper (admin role)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Assign(args[0], args[1])
		},
	}

	decideCmd = &cobra.Command{
		Use:   "decide PAPER_ID DECISION",
		Short: "Record a review decision: accept, reject or revise (reviewer role)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, _ := cmd.Flags().GetString("comments")
			return client.Decide(args[0], args[1], comments)
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export sealed credentials",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Export()
		},
	}

	unsealCmd = &cobra.Command{
		Use:   "unseal FILENAME",
		Short: "Restore sealed credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Unseal(args[0])
		},
	}
)

func init() {
	whoamiCmd.Flags().BoolP("verbose", "v", false, "Dump session details in the log file")
	papersCmd.Flags().Bool("cached", false, "List from the local cache without contacting the portal")
	submitCmd.Flags().String("title", "", "Paper title")
	submitCmd.Flags().String("abstract", "", "Paper abstract")
	submitCmd.Flags().String("keywords", "", "Comma-separated keywords")
	decideCmd.Flags().String("comments", "", "Comments for the author")

	submitCmd.MarkFlagRequired("title")
}
