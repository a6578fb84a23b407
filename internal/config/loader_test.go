package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvString(t *testing.T) {
	// Set test environment variables
	os.Setenv("TEST_API_KEY", "secret-key-123")
	os.Setenv("TEST_MODEL", "gpt-4o-mini")
	defer os.Unsetenv("TEST_API_KEY")
	defer os.Unsetenv("TEST_MODEL")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "expand ${VAR} syntax",
			input:    "${TEST_API_KEY}",
			expected: "secret-key-123",
		},
		{
			name:     "expand $VAR syntax",
			input:    "$TEST_API_KEY",
			expected: "secret-key-123",
		},
		{
			name:     "expand in middle of string",
			input:    "key:${TEST_API_KEY}:end",
			expected: "key:secret-key-123:end",
		},
		{
			name:     "expand multiple variables",
			input:    "${TEST_API_KEY}:${TEST_MODEL}",
			expected: "secret-key-123:gpt-4o-mini",
		},
		{
			name:     "leave non-existent var unchanged",
			input:    "${NONEXISTENT_VAR}",
			expected: "${NONEXISTENT_VAR}",
		},
		{
			name:     "handle empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "handle string without variables",
			input:    "plain-text",
			expected: "plain-text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvString(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	// Set test environment variables
	os.Setenv("OPENAI_API_KEY", "sk-test-123")
	os.Setenv("GITHUB_TOKEN", "ghp-test-456")
	defer os.Unsetenv("OPENAI_API_KEY")
	defer os.Unsetenv("GITHUB_TOKEN")

	cfg := Config{
		GitHub: GitHubConfig{
			Token: "${GITHUB_TOKEN}",
		},
		OpenAI: OpenAIConfig{
			Model:  "gpt-4o-mini",
			APIKey: "${OPENAI_API_KEY}",
		},
	}

	expanded := expandEnvVars(cfg)

	assert.Equal(t, "ghp-test-456", expanded.GitHub.Token)
	assert.Equal(t, "sk-test-123", expanded.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", expanded.OpenAI.Model)
}

func TestExpandEnvVars_ObservabilityConfig(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	cfg := Config{
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "${LOG_LEVEL}",
				Format: "${LOG_FORMAT}",
			},
		},
	}

	expanded := expandEnvVars(cfg)

	assert.Equal(t, "debug", expanded.Observability.Logging.Level)
	assert.Equal(t, "json", expanded.Observability.Logging.Format)
}

func TestExpandEnvVars_GitHubBaseURL(t *testing.T) {
	os.Setenv("GHE_URL", "https://github.example.com/api/v3")
	defer os.Unsetenv("GHE_URL")

	cfg := Config{
		GitHub: GitHubConfig{
			BaseURL: "${GHE_URL}",
		},
	}

	expanded := expandEnvVars(cfg)

	assert.Equal(t, "https://github.example.com/api/v3", expanded.GitHub.BaseURL)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoaderOptions{
		ConfigPaths: []string{"testdata"},
		FileName:    "nonexistent", // Should use defaults
	})
	assert.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "60s", cfg.OpenAI.Timeout)
	assert.Equal(t, 3, cfg.Review.ContextLines)
	assert.True(t, cfg.Observability.Logging.Enabled)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "human", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Observability.Logging.RedactAPIKeys)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`github:
  token: ${CRA_TEST_TOKEN}
openai:
  model: gpt-4o
  baseURL: http://localhost:8080
review:
  contextLines: 5
observability:
  logging:
    level: debug
`)
	if err := os.WriteFile(dir+"/cra.yaml", content, 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	os.Setenv("CRA_TEST_TOKEN", "ghp-from-env")
	defer os.Unsetenv("CRA_TEST_TOKEN")

	cfg, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	assert.NoError(t, err)

	assert.Equal(t, "ghp-from-env", cfg.GitHub.Token)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "http://localhost:8080", cfg.OpenAI.BaseURL)
	assert.Equal(t, 5, cfg.Review.ContextLines)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)

	// Defaults still apply for keys the file omits
	assert.Equal(t, "60s", cfg.OpenAI.Timeout)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/cra.yaml", []byte("openai: [not a map"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	_, err := Load(LoaderOptions{ConfigPaths: []string{dir}})
	assert.Error(t, err)
}

func TestLocateConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/cra.yaml", []byte("review:\n  contextLines: 3\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	found := locateConfigFile("cra", []string{dir})
	assert.Equal(t, dir+"/cra.yaml", found)

	missing := locateConfigFile("cra", []string{t.TempDir()})
	assert.Equal(t, "", missing)
}
