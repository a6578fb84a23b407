package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aqibansari2/code-review-automated/internal/adapter/cli"
	githubadapter "github.com/aqibansari2/code-review-automated/internal/adapter/github"
	llmhttp "github.com/aqibansari2/code-review-automated/internal/adapter/llm/http"
	"github.com/aqibansari2/code-review-automated/internal/adapter/llm/openai"
	"github.com/aqibansari2/code-review-automated/internal/adapter/llm/static"
	"github.com/aqibansari2/code-review-automated/internal/adapter/observability"
	"github.com/aqibansari2/code-review-automated/internal/config"
	"github.com/aqibansari2/code-review-automated/internal/domain"
	"github.com/aqibansari2/code-review-automated/internal/usecase/publish"
	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
	"github.com/aqibansari2/code-review-automated/internal/version"
)

func main() {
	if err := run(); err != nil {
		// Redact API keys from URLs in error messages before logging
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "cra",
		EnvPrefix:   "CRA",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	obs := buildObservability(cfg.Observability)
	reviewLogger := observability.NewReviewLogger(obs.logger)

	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("github token not configured; set github.token, CRA_GITHUB_TOKEN, or GITHUB_TOKEN")
	}

	platform := githubadapter.NewClient(token)
	if cfg.GitHub.BaseURL != "" {
		if err := platform.SetBaseURL(cfg.GitHub.BaseURL); err != nil {
			return fmt.Errorf("configure github base URL: %w", err)
		}
	}

	provider := buildProvider(cfg.OpenAI, obs)

	orchestrator := review.NewOrchestrator(platform, provider, reviewLogger, cfg.Review.ContextLines)
	dispatcher := publish.NewDispatcher(platform, reviewLogger, provider.ModelName())

	service := &reviewService{
		orchestrator: orchestrator,
		dispatcher:   dispatcher,
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Reviewer:     service,
		DefaultOwner: os.Getenv("GITHUB_REPOSITORY_OWNER"),
		DefaultRepo:  repositoryFromEnv(),
		Version:      version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}

	logStats(ctx, reviewLogger, obs.metrics)
	return nil
}

// reviewService runs the pipeline end to end: orchestrate the review, then
// publish the joined results back to the pull request.
type reviewService struct {
	orchestrator *review.Orchestrator
	dispatcher   *publish.Dispatcher
}

func (s *reviewService) ReviewPullRequest(ctx context.Context, ref domain.PullRequestRef) error {
	result, err := s.orchestrator.Run(ctx, ref)
	if err != nil {
		return err
	}
	return s.dispatcher.Dispatch(ctx, ref, result)
}

// repositoryFromEnv extracts the repository name from GITHUB_REPOSITORY
// ("owner/repo"), the variable GitHub Actions sets for every workflow run.
func repositoryFromEnv() string {
	full := os.Getenv("GITHUB_REPOSITORY")
	if full == "" {
		return ""
	}
	return filepath.Base(full)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cra"))
	}
	return paths
}

// observabilityComponents holds shared observability instances
type observabilityComponents struct {
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
}

// buildObservability creates observability components based on configuration
func buildObservability(cfg config.ObservabilityConfig) observabilityComponents {
	var logger llmhttp.Logger = llmhttp.NopLogger{}

	if cfg.Logging.Enabled {
		logLevel := llmhttp.LogLevelInfo
		switch cfg.Logging.Level {
		case "debug":
			logLevel = llmhttp.LogLevelDebug
		case "error":
			logLevel = llmhttp.LogLevelError
		}

		logFormat := llmhttp.LogFormatHuman
		if cfg.Logging.Format == "json" {
			logFormat = llmhttp.LogFormatJSON
		}

		logger = llmhttp.NewDefaultLogger(logLevel, logFormat, cfg.Logging.RedactAPIKeys)
	}

	return observabilityComponents{
		logger:  logger,
		metrics: llmhttp.NewDefaultMetrics(),
	}
}

// buildProvider creates the LLM provider. Without an API key the static
// provider is used, which keeps dry runs and CI smoke tests working.
func buildProvider(cfg config.OpenAIConfig, obs observabilityComponents) review.Provider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		log.Println("OpenAI: No API key provided, using static provider")
		return static.NewProvider(model)
	}

	client := openai.NewClient(apiKey, model, obs.logger, obs.metrics)
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}
	client.SetTimeout(llmhttp.ParseTimeout(cfg.Timeout, 60*time.Second))
	return client
}

func logStats(ctx context.Context, logger review.Logger, metrics llmhttp.Metrics) {
	stats := metrics.GetStats()
	if stats.TotalRequests == 0 {
		return
	}
	logger.LogInfo(ctx, "llm usage", map[string]interface{}{
		"requests":  stats.TotalRequests,
		"tokensIn":  stats.TotalTokensIn,
		"tokensOut": stats.TotalTokensOut,
		"errors":    stats.ErrorCount,
	})
}

// Compile-time interface compliance checks
var _ review.Platform = (*githubadapter.Client)(nil)
var _ publish.Platform = (*githubadapter.Client)(nil)
var _ review.Provider = (*openai.Client)(nil)
var _ review.Provider = (*static.Provider)(nil)
var _ cli.PullRequestReviewer = (*reviewService)(nil)
