package conversation

import "github.com/spigell/hiring-assistant/internal/ai"

// DefaultHistoryLimit caps the number of turns kept per session.
const DefaultHistoryLimit = 50

// Turn is one entry of the conversation history.
type Turn struct {
	Role ai.Role
	Text string
}

// History is an append-only list of turns. Once the limit is reached the oldest
// turns are dropped.
type History struct {
	turns []Turn
	limit int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Append(role ai.Role, text string) {
	h.turns = append(h.turns, Turn{Role: role, Text: text})
	if over := len(h.turns) - h.limit; over > 0 {
		h.turns = append(h.turns[:0:0], h.turns[over:]...)
	}
}

func (h *History) Len() int { return len(h.turns) }

// Turns returns a copy of all kept turns.
func (h *History) Turns() []Turn {
	return append([]Turn(nil), h.turns...)
}

// Recent returns up to n of the latest turns, skipping the last skip turns.
func (h *History) Recent(n, skip int) []Turn {
	end := len(h.turns) - skip
	if end <= 0 || n <= 0 {
		return nil
	}
	start := max(end-n, 0)
	return append([]Turn(nil), h.turns[start:end]...)
}
