package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aqibansari2/code-review-automated/internal/diff"
	"github.com/aqibansari2/code-review-automated/internal/domain"
)

// criticalSentinel is the marker the critique prompt instructs the model to
// end its response with. The text before it is the feedback body; the text
// after it is the critical flag.
const criticalSentinel = "CRITICAL_FEEDBACK:"

// ErrMissingSentinel reports a model response without the critical-feedback
// marker. Callers decide the mitigation; the response text is still usable.
var ErrMissingSentinel = errors.New("response missing " + criticalSentinel + " marker")

// ParseFeedback splits a raw model response on the critical-feedback
// sentinel. When the sentinel is absent it returns the whole trimmed
// response with critical=false and ErrMissingSentinel.
func ParseFeedback(raw string) (feedback string, critical bool, err error) {
	before, after, found := strings.Cut(raw, criticalSentinel)
	if !found {
		return strings.TrimSpace(raw), false, ErrMissingSentinel
	}
	return strings.TrimSpace(before), strings.EqualFold(strings.TrimSpace(after), "true"), nil
}

// reviewFile runs the per-file task: fetch the post-change content, extract
// the surrounding-code excerpt, request the critique, and parse the result.
// A file the platform refuses for size is reviewed with an empty excerpt;
// every other failure propagates.
func (o *Orchestrator) reviewFile(ctx context.Context, ref domain.PullRequestRef, pr domain.PullRequest, file domain.FileDiff) (domain.FileAnalysis, error) {
	content, err := o.platform.GetFileContent(ctx, ref, file.Filename, pr.HeadSHA)
	if err != nil {
		if !errors.Is(err, domain.ErrFileTooLarge) {
			return domain.FileAnalysis{}, fmt.Errorf("fetch content for %s: %w", file.Filename, err)
		}
		o.logger.LogWarning(ctx, "file too large, reviewing without surrounding context", map[string]interface{}{
			"file": file.Filename,
		})
		content = ""
	}

	excerpt := diff.ExtractContext(content, file.Patch, o.contextLines)

	raw, err := o.provider.Complete(ctx, ProviderRequest{
		System: critiqueSystemPrompt,
		Prompt: buildCritiquePrompt(file, excerpt),
	})
	if err != nil {
		return domain.FileAnalysis{}, fmt.Errorf("review %s: %w", file.Filename, err)
	}

	feedback, critical, err := ParseFeedback(raw)
	if err != nil {
		o.logger.LogWarning(ctx, "malformed review response, treating as non-critical", map[string]interface{}{
			"file":  file.Filename,
			"error": err.Error(),
		})
	}

	return domain.FileAnalysis{
		Filename:            file.Filename,
		Feedback:            feedback,
		Patch:               file.Patch,
		HasCriticalFeedback: critical,
	}, nil
}
