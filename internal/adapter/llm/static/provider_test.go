package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

func TestProvider_Complete_Critique(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider("static-model")

	resp, err := provider.Complete(ctx, review.ProviderRequest{
		System: "You are reviewing one file's changes.",
		Prompt: "File: a.go",
	})

	assert.NoError(t, err)
	assert.Contains(t, resp, "CRITICAL_FEEDBACK: false")
	assert.Equal(t, "static-model", provider.ModelName())
}

func TestProvider_Complete_Summary(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider("static-model")

	resp, err := provider.Complete(ctx, review.ProviderRequest{
		System: "Summarize the changes as concise bullet points.",
		Prompt: "Pull request: test",
	})

	assert.NoError(t, err)
	assert.Contains(t, resp, "- static summary")
}
