package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/aqibansari2/code-review-automated/internal/domain"
	"github.com/aqibansari2/code-review-automated/internal/usecase/publish"
	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

// listFilesPageSize is the per-page size for the changed-files listing.
// 100 is the GitHub API maximum.
const listFilesPageSize = 100

// Client wraps the GitHub REST API client behind the pipeline's ports.
type Client struct {
	gh *gh.Client
}

var (
	_ review.Platform  = (*Client)(nil)
	_ publish.Platform = (*Client)(nil)
)

// NewClient creates a GitHub API client authenticated with the given
// token. The token should be a personal access token or the GITHUB_TOKEN
// supplied by Actions.
func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{gh: gh.NewClient(tc)}
}

// SetBaseURL points the client at a different API root, used by tests and
// GitHub Enterprise installs. The underlying client requires a trailing
// slash; one is added if missing.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// GetPullRequest returns the PR's title, body, and head commit SHA.
func (c *Client) GetPullRequest(ctx context.Context, ref domain.PullRequestRef) (domain.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return domain.PullRequest{}, fmt.Errorf("get pull request: %w", err)
	}

	return domain.PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
	}, nil
}

// ListChangedFiles pages through the full changed-files listing.
func (c *Client) ListChangedFiles(ctx context.Context, ref domain.PullRequestRef) ([]domain.FileDiff, error) {
	opts := &gh.ListOptions{PerPage: listFilesPageSize}

	var diffs []domain.FileDiff
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("list changed files: %w", err)
		}
		for _, file := range files {
			diffs = append(diffs, domain.FileDiff{
				Filename: file.GetFilename(),
				Patch:    file.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return diffs, nil
}

// GetFileContent fetches and decodes path's content at the given ref.
// A contents-API size refusal maps to domain.ErrFileTooLarge so the caller
// can degrade instead of failing the run.
func (c *Client) GetFileContent(ctx context.Context, ref domain.PullRequestRef, path, sha string) (string, error) {
	content, _, _, err := c.gh.Repositories.GetContents(ctx, ref.Owner, ref.Repo, path, &gh.RepositoryContentGetOptions{
		Ref: sha,
	})
	if err != nil {
		if isTooLarge(err) {
			return "", fmt.Errorf("%s: %w", path, domain.ErrFileTooLarge)
		}
		return "", fmt.Errorf("get contents for %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode contents for %s: %w", path, err)
	}

	return decoded, nil
}

// UpdateDescription replaces the PR body.
func (c *Client) UpdateDescription(ctx context.Context, ref domain.PullRequestRef, body string) error {
	_, _, err := c.gh.PullRequests.Edit(ctx, ref.Owner, ref.Repo, ref.Number, &gh.PullRequest{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("edit pull request: %w", err)
	}
	return nil
}

// CreateComment creates a new issue comment on the PR.
func (c *Client) CreateComment(ctx context.Context, ref domain.PullRequestRef, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// isTooLarge reports whether err is the contents API's refusal to return a
// file above its size limit (error code "too_large").
func isTooLarge(err error) bool {
	var ghErr *gh.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	for _, e := range ghErr.Errors {
		if e.Code == "too_large" {
			return true
		}
	}
	return false
}
