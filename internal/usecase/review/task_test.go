package review_test

import (
	"errors"
	"testing"

	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantFeedback string
		wantCritical bool
		wantErr      error
	}{
		{
			name:         "critical true",
			raw:          "Needs a nil check.\nCRITICAL_FEEDBACK: true",
			wantFeedback: "Needs a nil check.",
			wantCritical: true,
		},
		{
			name:         "critical false",
			raw:          "Minor style nit.\nCRITICAL_FEEDBACK: false",
			wantFeedback: "Minor style nit.",
			wantCritical: false,
		},
		{
			name:         "flag compared case insensitively",
			raw:          "Broken.\nCRITICAL_FEEDBACK: True",
			wantFeedback: "Broken.",
			wantCritical: true,
		},
		{
			name:         "anything other than true is false",
			raw:          "Fine.\nCRITICAL_FEEDBACK: maybe",
			wantFeedback: "Fine.",
			wantCritical: false,
		},
		{
			name:         "missing sentinel",
			raw:          "  just prose  ",
			wantFeedback: "just prose",
			wantCritical: false,
			wantErr:      review.ErrMissingSentinel,
		},
		{
			name:         "empty response",
			raw:          "",
			wantFeedback: "",
			wantCritical: false,
			wantErr:      review.ErrMissingSentinel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, critical, err := review.ParseFeedback(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseFeedback() error = %v, want %v", err, tt.wantErr)
			}
			if feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", feedback, tt.wantFeedback)
			}
			if critical != tt.wantCritical {
				t.Errorf("critical = %t, want %t", critical, tt.wantCritical)
			}
		})
	}
}
