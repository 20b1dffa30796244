// Package ollama adapts a locally running Ollama server to the ai.Completer contract.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/spigell/hiring-assistant/internal/ai"
	"github.com/spigell/hiring-assistant/internal/logger"
	"github.com/spigell/hiring-assistant/internal/utils"
)

const (
	DefaultHost            = "http://localhost:11434"
	DefaultModel           = "llama3.2:1b"
	DefaultPreferredPrefix = "llama3.2"

	defaultMaxLogLength = 200
)

// ErrUnavailable is returned by Complete when the server could not be reached during model selection.
var ErrUnavailable = errors.New("ollama is not available")

// apiClient is the subset of *api.Client used here.
type apiClient interface {
	List(ctx context.Context) (*api.ListResponse, error)
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// Config configures the Ollama client.
type Config struct {
	Host            string
	PreferredPrefix string
	DefaultModel    string
	MaxLogLength    int
}

// Client talks to an Ollama server.
type Client struct {
	api       apiClient
	model     string
	prefix    string
	fallback  string
	available bool
	maxLogLen int
	logger    *zap.Logger
}

// New creates a client for the configured host. Call SelectModel before use.
func New(cfg Config, log *zap.Logger) *Client {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = DefaultHost
	}

	parsed, err := url.Parse(host)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		if log != nil {
			log.Warn("invalid ollama host, using default", zap.String("host", host), zap.String("default", DefaultHost))
		}
		parsed, _ = url.Parse(DefaultHost)
	}

	return newClient(api.NewClient(parsed, http.DefaultClient), cfg, log)
}

func newClient(c apiClient, cfg Config, log *zap.Logger) *Client {
	prefix := strings.TrimSpace(cfg.PreferredPrefix)
	if prefix == "" {
		prefix = DefaultPreferredPrefix
	}

	fallback := strings.TrimSpace(cfg.DefaultModel)
	if fallback == "" {
		fallback = DefaultModel
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		api:       c,
		prefix:    prefix,
		fallback:  fallback,
		maxLogLen: maxLogLen,
		logger:    logger.WithCommonFields(log, ai.ProviderOllama, ""),
	}
}

// SelectModel lists the installed models and picks one. The first model with the
// preferred prefix wins, then the first listed model, then the built-in default.
// A listing failure leaves the client unavailable and is returned to the caller.
func (c *Client) SelectModel(ctx context.Context) error {
	resp, err := c.api.List(ctx)
	if err != nil {
		c.model = c.fallback
		c.available = false
		c.logger.Warn("listing ollama models failed", zap.Error(err))
		return fmt.Errorf("list models: %w", classifyError(err))
	}

	c.available = true
	c.model = pickModel(resp, c.prefix, c.fallback)

	c.logger.Info("ollama model selected",
		zap.String(logger.FieldModel, c.model),
		zap.Int("models_installed", len(resp.Models)),
	)

	return nil
}

func pickModel(resp *api.ListResponse, prefix, fallback string) string {
	if resp == nil || len(resp.Models) == 0 {
		return fallback
	}

	for _, m := range resp.Models {
		if name := modelName(m); strings.HasPrefix(name, prefix) {
			return name
		}
	}

	if name := modelName(resp.Models[0]); name != "" {
		return name
	}

	return fallback
}

func modelName(m api.ListModelResponse) string {
	if m.Model != "" {
		return m.Model
	}
	return m.Name
}

// Available reports whether the server answered during model selection.
func (c *Client) Available() bool {
	return c != nil && c.available
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Complete sends a single non-streaming chat request and returns the reply text.
func (c *Client) Complete(ctx context.Context, in ai.Request) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}
	if len(in.Messages) == 0 {
		return "", errors.New("message list cannot be empty")
	}

	messages := make([]api.Message, 0, len(in.Messages))
	for _, m := range in.Messages {
		messages = append(messages, api.Message{Role: string(m.Role), Content: m.Content})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": in.Temperature,
			"num_predict": in.MaxTokens,
		},
	}

	last := in.Messages[len(in.Messages)-1].Content
	c.logger.Debug("ollama chat request",
		zap.String(logger.FieldModel, c.model),
		zap.Int("messages", len(messages)),
		zap.Int("prompt_length", utf8.RuneCountInString(last)),
		zap.String("prompt_preview", utils.TruncateForLog(last, c.maxLogLen)),
	)

	var content strings.Builder
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", classifyError(err)
	}

	output := strings.TrimSpace(content.String())

	c.logger.Debug("ollama chat response",
		zap.String(logger.FieldModel, c.model),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, c.maxLogLen)),
	)

	if output == "" {
		return "", errors.New("ollama returned empty response")
	}

	return output, nil
}

func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timeout: %w", err)
	}

	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("ollama server not reachable: %w", err)
	case strings.Contains(errStr, "model") && strings.Contains(errStr, "not found"):
		return fmt.Errorf("ollama model not found: %w", err)
	case strings.Contains(errStr, "timeout"):
		return fmt.Errorf("request timeout: %w", err)
	default:
		return fmt.Errorf("ollama api error: %w", err)
	}
}
