// Package questions asks the completion service for interview questions tailored
// to a candidate's stack.
package questions

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hiring-assistant/internal/ai"
	"github.com/spigell/hiring-assistant/internal/prompts"
)

const (
	defaultExperience = "5 years"

	temperature = 0.7
	maxTokens   = 500
)

// Generator produces technical questions. It never fails: errors degrade to a
// canned paragraph.
type Generator struct {
	completer ai.Completer
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a generator. A zero timeout leaves the call bounded only by ctx.
func New(completer ai.Completer, timeout time.Duration, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{completer: completer, timeout: timeout, logger: logger}
}

// Generate returns the questions for the given stack and experience.
func (g *Generator) Generate(ctx context.Context, techStack []string, experience string) string {
	if g.completer == nil {
		g.logger.Warn("no completion service configured, using fallback questions")
		return prompts.QuestionsFallback
	}

	experience = strings.TrimSpace(experience)
	if experience == "" {
		experience = defaultExperience
	}
	stack := strings.Join(techStack, ", ")

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.completer.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: prompts.QuestionGeneration(stack, experience)},
			{Role: ai.RoleUser, Content: prompts.QuestionRequest(stack, experience)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		g.logger.Warn("generating technical questions failed", zap.Error(err), zap.Strings("tech_stack", techStack))
		return prompts.QuestionsFallback
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return prompts.QuestionsFallback
	}

	return out
}
