package config

// Config represents the full application configuration.
type Config struct {
	GitHub        GitHubConfig        `yaml:"github"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Review        ReviewConfig        `yaml:"review"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GitHubConfig configures the hosting platform client.
type GitHubConfig struct {
	// Token is the API token, usually GITHUB_TOKEN in Actions. Supports
	// ${VAR} expansion so it never lives in the config file.
	Token string `yaml:"token"`

	// BaseURL overrides the API root for GitHub Enterprise installs.
	BaseURL string `yaml:"baseURL"`
}

// OpenAIConfig configures the LLM provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL"`
	Timeout string `yaml:"timeout"`
}

// ReviewConfig configures the review pipeline.
type ReviewConfig struct {
	// ContextLines is the window size around each added line when
	// extracting surrounding code.
	ContextLines int `yaml:"contextLines"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}
