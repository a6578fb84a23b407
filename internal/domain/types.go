package domain

import "errors"

// ErrFileTooLarge reports that the platform refused to return a file's
// content because it exceeds the contents API size limit.
var ErrFileTooLarge = errors.New("file content too large")

// PullRequestRef identifies a pull request on the hosting platform.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// PullRequest carries the PR metadata the pipeline reads and rewrites.
type PullRequest struct {
	Number  int
	Title   string
	Body    string
	HeadSHA string
}

// FileDiff captures the change for a single file as supplied by the
// platform's changed-files listing. Patch is unified diff text and may be
// empty for binary or oversized files.
type FileDiff struct {
	Filename string
	Patch    string
}

// FileAnalysis is the per-file review output. One is produced for every
// changed file with a non-empty patch.
type FileAnalysis struct {
	Filename            string
	Feedback            string
	Patch               string
	HasCriticalFeedback bool
}

// ReviewResult is the joined output of a full orchestrated run: the
// whole-PR summary plus every per-file analysis.
type ReviewResult struct {
	PullRequest PullRequest
	Summary     string
	Analyses    []FileAnalysis
}
