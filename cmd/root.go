package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spigell/hiring-assistant/internal/ai"
	"github.com/spigell/hiring-assistant/internal/ai/ollama"
	"github.com/spigell/hiring-assistant/internal/conversation"
	"github.com/spigell/hiring-assistant/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "hiring-assistant"
	envPrefix = "HIRING_ASSISTANT"
)

type Config struct {
	AI           *AIConfig           `mapstructure:"ai"`
	Conversation *ConversationConfig `mapstructure:"conversation"`
	Validation   validation.Config   `mapstructure:"validation"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Ollama       *OllamaConfig `mapstructure:"ollama"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Host            string `mapstructure:"host"`
	PreferredPrefix string `mapstructure:"preferred-prefix"`
	DefaultModel    string `mapstructure:"default-model"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type ConversationConfig struct {
	HistoryLimit int `mapstructure:"history-limit"`
	ContextTurns int `mapstructure:"context-turns"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hiring-assistant is an interactive screening chat that collects a candidate profile and asks technical questions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := configure(viper.GetViper()); err != nil {
		log.Fatal(err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hiring-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// configure sets defaults and environment lookups. Every key has a default so
// that AutomaticEnv also applies on Unmarshal.
func configure(v *viper.Viper) error {
	setDefaults(v)

	if err := v.BindEnv("ai.ollama.host", "OLLAMA_HOST", envPrefix+"_AI_OLLAMA_HOST"); err != nil {
		return fmt.Errorf("binding OLLAMA_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE", envPrefix+"_AI_GEMINI_API_KEY_FILE"); err != nil {
		return fmt.Errorf("binding GEMINI_API_KEY_FILE environment variable: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", ai.ProviderOllama)
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.max-log-length", 0)
	v.SetDefault("ai.ollama.host", ollama.DefaultHost)
	v.SetDefault("ai.ollama.preferred-prefix", ollama.DefaultPreferredPrefix)
	v.SetDefault("ai.ollama.default-model", ollama.DefaultModel)
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("conversation.history-limit", conversation.DefaultHistoryLimit)
	v.SetDefault("conversation.context-turns", conversation.DefaultContextTurns)
	v.SetDefault("validation.email", true)
	v.SetDefault("validation.phone", true)
}

func initConfig() {
	// Only the chat command reads the config file.
	if chatCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// The default config file is optional. An explicit or broken one is not.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	log.Fatal(err)
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
