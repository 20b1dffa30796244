package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/spigell/hiring-assistant/internal/ai"
	"github.com/spigell/hiring-assistant/internal/ai/gemini"
	"github.com/spigell/hiring-assistant/internal/ai/ollama"
	"github.com/spigell/hiring-assistant/internal/conversation"
	"github.com/spigell/hiring-assistant/internal/logger"
	"github.com/spigell/hiring-assistant/internal/secrets"
	"github.com/spigell/hiring-assistant/internal/validation"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const modelSelectionTimeout = 10 * time.Second

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive screening conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// chat runs one conversation until the candidate leaves or input ends.
func chat(out io.Writer) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.AI == nil {
		logger.Fatal("ai configuration is required")
	}

	logger.Info("starting the hiring-assistant", zap.String("version", version))

	completer, available, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("completion service is not available",
			zap.Error(err),
			zap.String("provider", config.AI.Provider),
		)
	}

	validators := validation.New(config.Validation)
	logger.Debug("validators configured", zap.Any("validators", validation.Describe(validators)))

	opts := conversation.Options{Timeout: config.AI.Timeout}
	if config.Conversation != nil {
		opts.HistoryLimit = config.Conversation.HistoryLimit
		opts.ContextTurns = config.Conversation.ContextTurns
	}

	session := conversation.NewSession(conversation.Deps{
		Completer:  completer,
		Available:  available,
		Validators: validators,
		Logger:     logger,
	}, opts)

	fmt.Fprintf(out, "%s\n\n", session.WelcomeMessage())

	input := promptui.Prompt{Label: "You"}
	for !session.Closed() {
		text, err := input.Run()
		if err != nil {
			if !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) {
				logger.Error("reading input", zap.Error(err))
			}
			break
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		fmt.Fprintf(out, "\n%s\n\n", session.ProcessMessage(ctx, text))
	}

	logProfile(logger, session)
}

// newCompleter builds the configured completion service. The returned flag tells
// whether it can be used. An Ollama client is returned even when its server is
// down so the conversation can still answer with the unavailable message.
func newCompleter(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Completer, bool, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", ai.ProviderOllama:
		oc := cfg.Ollama
		if oc == nil {
			oc = &OllamaConfig{}
		}

		client := ollama.New(ollama.Config{
			Host:            withScheme(oc.Host),
			PreferredPrefix: oc.PreferredPrefix,
			DefaultModel:    oc.DefaultModel,
			MaxLogLength:    cfg.MaxLogLength,
		}, log)

		selectCtx, cancel := context.WithTimeout(ctx, modelSelectionTimeout)
		defer cancel()

		if err := client.SelectModel(selectCtx); err != nil {
			return client, false, fmt.Errorf("selecting ollama model: %w", err)
		}

		return client, client.Available(), nil
	case ai.ProviderGemini:
		gc := cfg.Gemini
		if gc == nil {
			gc = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gc.APIKey,
			File:  gc.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, false, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		generator, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:       apiKey,
			Model:        gc.Model,
			MaxRetries:   gc.MaxRetries,
			MaxLogLength: cfg.MaxLogLength,
		}, log)
		if err != nil {
			return nil, false, fmt.Errorf("building gemini generator: %w", err)
		}

		return generator, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// withScheme accepts OLLAMA_HOST style values such as "127.0.0.1:11434".
func withScheme(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}

func logProfile(log *zap.Logger, session *conversation.Session) {
	record := session.Record()
	stack := record.TechStack.Values()
	skills := validation.CategorizeSkills(strings.Join(stack, " "))

	log.Info("conversation finished",
		zap.String(logger.FieldSession, session.ID()),
		logger.Stage(session.Stage().String()),
		zap.String("name", record.Name),
		zap.String("email", record.Email),
		zap.String("experience", record.Experience),
		zap.String("position", record.Position),
		zap.String("location", record.Location),
		zap.Strings("tech_stack", stack),
		zap.Strings("languages", skills.Languages),
		zap.Strings("frameworks", skills.Frameworks),
		zap.Strings("databases", skills.Databases),
		zap.Bool("complete", record.IsComplete()),
		zap.Strings("missing", record.MissingFields()),
	)
}
