package main

import (
	"testing"

	llmhttp "github.com/aqibansari2/code-review-automated/internal/adapter/llm/http"
	"github.com/aqibansari2/code-review-automated/internal/adapter/llm/openai"
	"github.com/aqibansari2/code-review-automated/internal/adapter/llm/static"
	"github.com/aqibansari2/code-review-automated/internal/config"
)

func TestBuildProviderFallsBackToStatic(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	obs := buildObservability(config.ObservabilityConfig{})
	provider := buildProvider(config.OpenAIConfig{Model: "gpt-4o-mini"}, obs)

	if _, ok := provider.(*static.Provider); !ok {
		t.Fatalf("expected static provider without an API key, got %T", provider)
	}
	if provider.ModelName() != "gpt-4o-mini" {
		t.Fatalf("expected model name to pass through, got %s", provider.ModelName())
	}
}

func TestBuildProviderUsesOpenAIWithKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	obs := buildObservability(config.ObservabilityConfig{})
	provider := buildProvider(config.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o",
		Timeout: "30s",
	}, obs)

	if _, ok := provider.(*openai.Client); !ok {
		t.Fatalf("expected openai client with an API key, got %T", provider)
	}
	if provider.ModelName() != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %s", provider.ModelName())
	}
}

func TestBuildProviderReadsKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	obs := buildObservability(config.ObservabilityConfig{})
	provider := buildProvider(config.OpenAIConfig{Model: "gpt-4o-mini"}, obs)

	if _, ok := provider.(*openai.Client); !ok {
		t.Fatalf("expected openai client with env API key, got %T", provider)
	}
}

func TestBuildObservabilityDisabledLogging(t *testing.T) {
	obs := buildObservability(config.ObservabilityConfig{
		Logging: config.LoggingConfig{Enabled: false},
	})

	if _, ok := obs.logger.(llmhttp.NopLogger); !ok {
		t.Fatalf("expected nop logger when logging is disabled, got %T", obs.logger)
	}
	if obs.metrics == nil {
		t.Fatal("expected metrics to always be created")
	}
}

func TestBuildObservabilityEnabledLogging(t *testing.T) {
	obs := buildObservability(config.ObservabilityConfig{
		Logging: config.LoggingConfig{
			Enabled:       true,
			Level:         "debug",
			Format:        "json",
			RedactAPIKeys: true,
		},
	})

	if _, ok := obs.logger.(*llmhttp.DefaultLogger); !ok {
		t.Fatalf("expected default logger when logging is enabled, got %T", obs.logger)
	}
}

func TestRepositoryFromEnv(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octocat/hello-world")
	if got := repositoryFromEnv(); got != "hello-world" {
		t.Fatalf("expected hello-world, got %s", got)
	}

	t.Setenv("GITHUB_REPOSITORY", "")
	if got := repositoryFromEnv(); got != "" {
		t.Fatalf("expected empty repository, got %s", got)
	}
}
