package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/hiring-assistant/internal/ai"
)

func TestStageTransitions(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageGreeting, StageCollectingInfo, true},
		{StageGreeting, StageTechQuestions, false},
		{StageCollectingInfo, StageCollectingInfo, true},
		{StageCollectingInfo, StageTechQuestions, true},
		{StageCollectingInfo, StageGreeting, false},
		{StageTechQuestions, StageCollectingInfo, false},
		{StageTechQuestions, StageClosed, true},
		{StageClosed, StageGreeting, false},
		{StageClosed, StageClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIllegalTransitionIsRefused(t *testing.T) {
	s := newTestSession(&scriptedCompleter{}, true)
	s.stage = StageTechQuestions

	assert.False(t, s.transition(StageCollectingInfo))
	assert.Equal(t, StageTechQuestions, s.Stage())
}

func TestHistoryIsCapped(t *testing.T) {
	h := NewHistory(3)
	for _, text := range []string{"one", "two", "three", "four"} {
		h.Append(ai.RoleUser, text)
	}

	turns := h.Turns()
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "two", turns[0].Text)
	assert.Equal(t, "four", turns[2].Text)

	recent := h.Recent(5, 1)
	assert.Len(t, recent, 2)
	assert.Equal(t, "three", recent[1].Text)

	assert.Nil(t, h.Recent(0, 0))
	assert.Nil(t, h.Recent(2, 10))
	assert.Equal(t, DefaultHistoryLimit, NewHistory(0).limit)
}
