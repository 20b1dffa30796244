// Package conversation drives the scripted screening dialogue.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/hiring-assistant/internal/ai"
	"github.com/spigell/hiring-assistant/internal/candidate"
	"github.com/spigell/hiring-assistant/internal/extract"
	"github.com/spigell/hiring-assistant/internal/logger"
	"github.com/spigell/hiring-assistant/internal/prompts"
	"github.com/spigell/hiring-assistant/internal/questions"
	"github.com/spigell/hiring-assistant/internal/validation"
)

const (
	extractionTemperature = 0.2
	extractionMaxTokens   = 400

	// DefaultContextTurns is how many earlier turns are shown to the extraction prompt.
	DefaultContextTurns = 6
)

// exitKeywords end the conversation when found anywhere in the input, even mid-word.
var exitKeywords = []string{"goodbye", "bye", "exit", "quit", "end", "stop"}

// QuestionGenerator produces the technical questions once the profile is complete.
type QuestionGenerator interface {
	Generate(ctx context.Context, techStack []string, experience string) string
}

// Deps are the collaborators of a session.
type Deps struct {
	// Completer answers extraction requests. Available must be true for it to be used.
	Completer ai.Completer
	Available bool

	Extractor  extract.Extractor
	Validators []validation.Validator
	Questions  QuestionGenerator
	Logger     *zap.Logger
}

// Options tune a session.
type Options struct {
	// Timeout bounds every completion call. Zero means no limit beyond ctx.
	Timeout      time.Duration
	HistoryLimit int
	ContextTurns int
}

type handlerFunc func(s *Session, ctx context.Context, input string) string

// Session holds the state of a single conversation. It is not safe for concurrent use;
// concurrent conversations must each own a Session.
type Session struct {
	id    string
	stage Stage

	record  candidate.Record
	history *History

	completer    ai.Completer
	available    bool
	extractor    extract.Extractor
	validators   []validation.Validator
	questions    QuestionGenerator
	timeout      time.Duration
	contextTurns int
	turns        int

	handlers map[Stage]handlerFunc
	logger   *zap.Logger
}

// NewSession starts a conversation in the greeting stage.
func NewSession(deps Deps, opts Options) *Session {
	id := uuid.NewString()
	log := logger.WithSessionFields(deps.Logger, id)

	extractor := deps.Extractor
	if extractor == nil {
		extractor = extract.Default()
	}

	generator := deps.Questions
	if generator == nil {
		generator = questions.New(deps.Completer, opts.Timeout, log)
	}

	contextTurns := opts.ContextTurns
	if contextTurns <= 0 {
		contextTurns = DefaultContextTurns
	}

	s := &Session{
		id:           id,
		stage:        StageGreeting,
		record:       candidate.Record{TechStack: candidate.NewTechStack()},
		history:      NewHistory(opts.HistoryLimit),
		completer:    deps.Completer,
		available:    deps.Available && deps.Completer != nil,
		extractor:    extractor,
		validators:   deps.Validators,
		questions:    generator,
		timeout:      opts.Timeout,
		contextTurns: contextTurns,
		logger:       log,
	}

	s.handlers = map[Stage]handlerFunc{
		StageGreeting:       (*Session).handleGreeting,
		StageCollectingInfo: (*Session).handleInfoCollection,
		StageTechQuestions:  (*Session).handleTechQuestions,
		StageClosed:         (*Session).handleClosed,
	}

	s.logger.Debug("session started", zap.Bool("ai_available", s.available))

	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Stage() Stage { return s.stage }

func (s *Session) Closed() bool { return s.stage == StageClosed }

// Record returns a copy of the candidate record.
func (s *Session) Record() candidate.Record { return s.record.Clone() }

// History returns a copy of the kept turns.
func (s *Session) History() []Turn { return s.history.Turns() }

// WelcomeMessage is shown once when the conversation opens.
func (s *Session) WelcomeMessage() string {
	return prompts.Welcome()
}

// ProcessMessage handles one user turn and returns the assistant reply.
func (s *Session) ProcessMessage(ctx context.Context, input string) string {
	input = validation.CleanText(input)
	s.history.Append(ai.RoleUser, input)
	s.turns++

	s.logger.Debug("processing message", logger.Stage(s.stage.String()), zap.Int("turn", s.turns))

	if IsExit(input) {
		if s.stage != StageClosed {
			s.transition(StageClosed)
		}
		return prompts.Goodbye()
	}

	handler, ok := s.handlers[s.stage]
	if !ok {
		s.logger.Warn("no handler for stage", zap.Int("stage", int(s.stage)))
		return prompts.Fallback()
	}

	return handler(s, ctx, input)
}

// IsExit reports whether input contains one of the exit keywords.
func IsExit(input string) bool {
	lower := strings.ToLower(input)
	for _, word := range exitKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func (s *Session) handleGreeting(_ context.Context, _ string) string {
	s.transition(StageCollectingInfo)
	return prompts.InfoCollection()
}

func (s *Session) handleTechQuestions(_ context.Context, _ string) string {
	return prompts.TechQuestionsReceived
}

func (s *Session) handleClosed(_ context.Context, _ string) string {
	return prompts.Goodbye()
}

func (s *Session) handleInfoCollection(ctx context.Context, input string) string {
	if !s.available {
		return prompts.Unavailable
	}

	completion, err := s.requestExtraction(ctx, input)
	if err != nil {
		s.logger.Warn("extraction request failed", zap.Error(err))
		return prompts.ExtractionFailed
	}

	update := s.extractor.Extract(completion)
	update = validation.Run(s.logger, s.validators, update)
	s.record.Merge(update)

	s.logger.Debug("candidate record updated",
		zap.Bool("update_empty", update.IsEmpty()),
		zap.Strings("missing", s.record.MissingFields()),
	)

	if !s.record.IsComplete() {
		s.transition(StageCollectingInfo)
		return prompts.SpecificInfoRequest(s.record.MissingFields(), s.record.Name)
	}

	s.transition(StageTechQuestions)

	reply := prompts.Acknowledgment(s.record) + "\n\n" +
		s.questions.Generate(ctx, s.record.TechStack.Values(), s.record.Experience)
	s.history.Append(ai.RoleAssistant, reply)

	return reply
}

func (s *Session) requestExtraction(ctx context.Context, input string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.completer.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: prompts.Extraction(s.extractionContext(), input)},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
}

// extractionContext combines the known fields with the turns preceding the current one.
func (s *Session) extractionContext() string {
	var b strings.Builder
	b.WriteString(s.record.ContextSummary())

	recent := s.history.Recent(s.contextTurns, 1)
	if len(recent) > 0 {
		b.WriteString("\nRecent conversation:")
		for _, turn := range recent {
			fmt.Fprintf(&b, "\n%s: %s", turn.Role, turn.Text)
		}
	}

	return b.String()
}

func (s *Session) transition(next Stage) bool {
	if !s.stage.CanTransition(next) {
		s.logger.Error("illegal stage transition",
			zap.Stringer("from", s.stage),
			zap.Stringer("to", next),
		)
		return false
	}

	if next != s.stage {
		s.logger.Info("stage changed", zap.Stringer("from", s.stage), zap.Stringer("to", next))
	}
	s.stage = next

	return true
}
