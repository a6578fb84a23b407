package review

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aqibansari2/code-review-automated/internal/domain"
)

// Platform defines the outbound port for the hosting platform's REST API.
type Platform interface {
	// GetPullRequest returns the PR's title, body, and head commit SHA.
	GetPullRequest(ctx context.Context, ref domain.PullRequestRef) (domain.PullRequest, error)

	// ListChangedFiles returns every changed file with its unified diff
	// patch. The patch may be empty for binary or oversized files.
	ListChangedFiles(ctx context.Context, ref domain.PullRequestRef) ([]domain.FileDiff, error)

	// GetFileContent returns the decoded content of path at the given ref.
	// Returns domain.ErrFileTooLarge when the platform refuses the file
	// because of its size.
	GetFileContent(ctx context.Context, ref domain.PullRequestRef, path, sha string) (string, error)
}

// Provider defines the outbound port for LLM chat completions.
type Provider interface {
	Complete(ctx context.Context, req ProviderRequest) (string, error)

	// ModelName identifies the model, used in the summary header.
	ModelName() string
}

// ProviderRequest carries one chat call's payload: a fixed system
// instruction plus the task-specific user message.
type ProviderRequest struct {
	System string
	Prompt string
}

// Orchestrator fans out one review task per changed file plus a whole-PR
// summary task, all concurrent, and joins the results. A failure in any
// task discards every in-flight result.
type Orchestrator struct {
	platform     Platform
	provider     Provider
	logger       Logger
	contextLines int
}

// NewOrchestrator wires the orchestrator's collaborators. contextLines is
// the window size threaded into context extraction for every file.
func NewOrchestrator(platform Platform, provider Provider, logger Logger, contextLines int) *Orchestrator {
	return &Orchestrator{
		platform:     platform,
		provider:     provider,
		logger:       logger,
		contextLines: contextLines,
	}
}

// Run executes the full pipeline for one pull request and returns the
// joined results. Nothing is written back here; the caller hands the
// result to the publish dispatcher only after a fully successful join.
func (o *Orchestrator) Run(ctx context.Context, ref domain.PullRequestRef) (domain.ReviewResult, error) {
	pr, err := o.platform.GetPullRequest(ctx, ref)
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("fetch pull request %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}

	files, err := o.platform.ListChangedFiles(ctx, ref)
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("list changed files: %w", err)
	}

	reviewable := make([]domain.FileDiff, 0, len(files))
	for _, file := range files {
		if file.Patch == "" {
			o.logger.LogInfo(ctx, "skipping file without a patch", map[string]interface{}{
				"file": file.Filename,
			})
			continue
		}
		reviewable = append(reviewable, file)
	}

	o.logger.LogInfo(ctx, "starting review", map[string]interface{}{
		"pullRequest": ref.Number,
		"files":       len(reviewable),
		"model":       o.provider.ModelName(),
	})

	g, gctx := errgroup.WithContext(ctx)

	var summary string
	g.Go(func() error {
		raw, err := o.provider.Complete(gctx, ProviderRequest{
			System: summarySystemPrompt,
			Prompt: buildSummaryPrompt(pr, files),
		})
		if err != nil {
			return fmt.Errorf("summarize pull request: %w", err)
		}
		summary = raw
		return nil
	})

	analyses := make([]domain.FileAnalysis, len(reviewable))
	for i, file := range reviewable {
		i, file := i, file
		g.Go(func() error {
			analysis, err := o.reviewFile(gctx, ref, pr, file)
			if err != nil {
				return err
			}
			analyses[i] = analysis
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ReviewResult{}, err
	}

	return domain.ReviewResult{
		PullRequest: pr,
		Summary:     summary,
		Analyses:    analyses,
	}, nil
}
