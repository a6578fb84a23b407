package static

import (
	"context"
	"strings"

	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

// Provider implements the usecase Provider port.
type Provider struct {
	model string
}

// NewProvider constructs a static Provider.
func NewProvider(model string) *Provider {
	return &Provider{
		model: model,
	}
}

var _ review.Provider = (*Provider)(nil)

// ModelName returns the configured model identifier.
func (p *Provider) ModelName() string {
	return p.model
}

// Complete returns a static, pre-determined response. Summary requests get
// canned bullet points; critique requests get a well-formed non-critical
// review so the downstream parse succeeds.
func (p *Provider) Complete(ctx context.Context, req review.ProviderRequest) (string, error) {
	if strings.Contains(req.System, "bullet points") {
		return "- static summary of the changes", nil
	}
	return "This is a static review from a mock provider.\nCRITICAL_FEEDBACK: false", nil
}
