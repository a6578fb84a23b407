package review

import (
	"fmt"
	"strings"

	"github.com/aqibansari2/code-review-automated/internal/domain"
)

// fileDelimiter separates per-file sections in the summary payload.
const fileDelimiter = "---"

const summarySystemPrompt = `You are an expert software engineer reviewing a pull request.
Summarize the intent and effect of the changes as concise bullet points.
Focus on what changed and why it matters; do not restate the diff line by line.`

const critiqueSystemPrompt = `You are an expert software engineer reviewing one file's changes in a pull request.
Critique the change: correctness, clarity, and risk. Be specific and brief.
End your response with a line of the exact form "CRITICAL_FEEDBACK: true" if the
change has a problem that must be fixed before merging, or "CRITICAL_FEEDBACK: false" otherwise.`

// buildSummaryPrompt concatenates every changed file's name and raw patch,
// separated by a fixed delimiter. Context excerpts are deliberately not
// included; the summary works from the diffs alone.
func buildSummaryPrompt(pr domain.PullRequest, files []domain.FileDiff) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pull request: %s\n\n", pr.Title)
	if pr.Body != "" {
		fmt.Fprintf(&b, "Description:\n%s\n\n", pr.Body)
	}

	b.WriteString("Changed files:\n")
	for _, file := range files {
		fmt.Fprintf(&b, "%s\nFile: %s\n%s\n", fileDelimiter, file.Filename, file.Patch)
	}

	return b.String()
}

// buildCritiquePrompt carries one file's patch plus the surrounding-code
// excerpt extracted from the post-change content.
func buildCritiquePrompt(file domain.FileDiff, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n\nPatch:\n%s\n", file.Filename, file.Patch)
	if excerpt != "" {
		fmt.Fprintf(&b, "\nSurrounding code:\n%s\n", excerpt)
	}
	return b.String()
}
