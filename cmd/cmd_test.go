package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/hiring-assistant/internal/ai/ollama"
	"github.com/spigell/hiring-assistant/internal/conversation"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")

	v := viper.New()
	require.NoError(t, configure(v))

	cfg, err := getConfig(v)
	require.NoError(t, err)
	require.NotNil(t, cfg.AI)

	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, ollama.DefaultHost, cfg.AI.Ollama.Host)
	assert.Equal(t, ollama.DefaultPreferredPrefix, cfg.AI.Ollama.PreferredPrefix)
	assert.Equal(t, ollama.DefaultModel, cfg.AI.Ollama.DefaultModel)
	assert.Equal(t, 3, cfg.AI.Gemini.MaxRetries)
	assert.Equal(t, conversation.DefaultHistoryLimit, cfg.Conversation.HistoryLimit)
	assert.Equal(t, conversation.DefaultContextTurns, cfg.Conversation.ContextTurns)
	assert.True(t, cfg.Validation.Email)
	assert.True(t, cfg.Validation.Phone)
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "10.0.0.5:11434")
	t.Setenv("GEMINI_API_KEY_FILE", "/run/secrets/gemini")
	t.Setenv("HIRING_ASSISTANT_AI_TIMEOUT", "5s")
	t.Setenv("HIRING_ASSISTANT_VALIDATION_PHONE", "false")

	v := viper.New()
	require.NoError(t, configure(v))

	cfg, err := getConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:11434", cfg.AI.Ollama.Host)
	assert.Equal(t, "/run/secrets/gemini", cfg.AI.Gemini.APIKeyFile)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.Validation.Phone)
	assert.True(t, cfg.Validation.Email)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hiring-assistant.yaml")
	content := `ai:
  provider: gemini
  gemini:
    model: gemini-2.5-pro
    max-retries: 5
conversation:
  history-limit: 10
validation:
  email: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	require.NoError(t, configure(v))
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := getConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Gemini.Model)
	assert.Equal(t, 5, cfg.AI.Gemini.MaxRetries)
	assert.Equal(t, 10, cfg.Conversation.HistoryLimit)
	assert.Equal(t, conversation.DefaultContextTurns, cfg.Conversation.ContextTurns)
	assert.False(t, cfg.Validation.Email)
	assert.True(t, cfg.Validation.Phone)
}

func TestNewCompleterRejectsUnknownProvider(t *testing.T) {
	completer, available, err := newCompleter(context.Background(), &AIConfig{Provider: "openai"}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported ai provider: openai")
	assert.Nil(t, completer)
	assert.False(t, available)
}

func TestNewCompleterGeminiRequiresKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	completer, available, err := newCompleter(context.Background(), &AIConfig{
		Provider: "Gemini",
		Gemini:   &GeminiConfig{Model: "gemini-2.5-flash"},
	}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY_FILE")
	assert.Nil(t, completer)
	assert.False(t, available)
}

func TestWithScheme(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"127.0.0.1:11434":        "http://127.0.0.1:11434",
		" localhost:11434 ":      "http://localhost:11434",
		"https://ollama.example": "https://ollama.example",
	}

	for in, want := range tests {
		assert.Equal(t, want, withScheme(in), in)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "hiring-assistant version: unknown\n", out.String())
}
