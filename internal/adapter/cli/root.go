package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aqibansari2/code-review-automated/internal/domain"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// PullRequestReviewer defines the dependency required to run the review command.
type PullRequestReviewer interface {
	ReviewPullRequest(ctx context.Context, ref domain.PullRequestRef) error
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Reviewer     PullRequestReviewer
	Args         Arguments
	DefaultOwner string
	DefaultRepo  string
	Version      string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "cra",
		Short: "LLM-powered pull request review CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reviewCommand(deps.Reviewer, deps.DefaultOwner, deps.DefaultRepo))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func reviewCommand(reviewer PullRequestReviewer, defaultOwner, defaultRepo string) *cobra.Command {
	var owner string
	var repo string
	var prNumber int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a pull request and post the results back to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if owner == "" {
				return fmt.Errorf("--owner is required")
			}
			if repo == "" {
				return fmt.Errorf("--repo is required")
			}
			if prNumber <= 0 {
				return fmt.Errorf("--pr must be a positive integer")
			}

			return reviewer.ReviewPullRequest(cmd.Context(), domain.PullRequestRef{
				Owner:  owner,
				Repo:   repo,
				Number: prNumber,
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", defaultOwner, "Repository owner")
	cmd.Flags().StringVar(&repo, "repo", defaultRepo, "Repository name")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number")

	return cmd
}
