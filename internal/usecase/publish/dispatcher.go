// Package publish writes the joined review results back to the pull
// request: a description update and, when warranted, a critical-feedback
// comment.
package publish

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/aqibansari2/code-review-automated/internal/domain"
	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

// Platform defines the outbound port for the two write-back calls.
type Platform interface {
	// UpdateDescription replaces the PR body.
	UpdateDescription(ctx context.Context, ref domain.PullRequestRef, body string) error

	// CreateComment creates a new comment on the PR. Existing comments
	// are never edited; repeated runs append.
	CreateComment(ctx context.Context, ref domain.PullRequestRef, body string) error
}

// Dispatcher issues the two write-backs concurrently. They are mutually
// independent; both depend on the orchestrated run having fully succeeded,
// which is the caller's responsibility.
type Dispatcher struct {
	platform Platform
	logger   review.Logger
	model    string
}

// NewDispatcher wires the dispatcher. model names the LLM used, surfaced in
// the summary header appended to the description.
func NewDispatcher(platform Platform, logger review.Logger, model string) *Dispatcher {
	return &Dispatcher{platform: platform, logger: logger, model: model}
}

// Dispatch updates the PR description with the summary and, if any analysis
// carries critical feedback, creates one comment collecting them. No
// critical analyses means no comment and no error.
func (d *Dispatcher) Dispatch(ctx context.Context, ref domain.PullRequestRef, result domain.ReviewResult) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		body := appendSummary(result.PullRequest.Body, d.model, result.Summary)
		if err := d.platform.UpdateDescription(gctx, ref, body); err != nil {
			return fmt.Errorf("update description: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		comment := buildCriticalComment(result.Analyses)
		if comment == "" {
			d.logger.LogInfo(gctx, "no critical feedback, skipping comment", map[string]interface{}{
				"pullRequest": ref.Number,
			})
			return nil
		}
		if err := d.platform.CreateComment(gctx, ref, comment); err != nil {
			return fmt.Errorf("create critical feedback comment: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// appendSummary keeps the existing body and adds the model summary block.
func appendSummary(body, model, summary string) string {
	return fmt.Sprintf("%s\n\n## %s Summary\n\n%s", body, model, summary)
}

// buildCriticalComment assembles one comment body from every analysis with
// the critical flag. Returns "" when none qualify.
func buildCriticalComment(analyses []domain.FileAnalysis) string {
	var sections []string
	for _, analysis := range analyses {
		if !analysis.HasCriticalFeedback {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "### Critical feedback: `%s`\n\n", analysis.Filename)
		fmt.Fprintf(&b, "```diff\n%s\n```\n\n", analysis.Patch)
		b.WriteString(analysis.Feedback)
		sections = append(sections, b.String())
	}

	if len(sections) == 0 {
		return ""
	}

	return strings.Join(sections, "\n\n")
}
