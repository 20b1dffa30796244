package conversation

// Stage is a phase of the scripted conversation.
type Stage int

const (
	StageGreeting Stage = iota
	StageCollectingInfo
	StageTechQuestions
	StageClosed
)

var stageNames = map[Stage]string{
	StageGreeting:       "greeting",
	StageCollectingInfo: "collecting_info",
	StageTechQuestions:  "tech_questions",
	StageClosed:         "closed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// transitions lists the legal moves out of each stage. Only collecting_info may
// loop onto itself.
var transitions = map[Stage][]Stage{
	StageGreeting:       {StageCollectingInfo, StageClosed},
	StageCollectingInfo: {StageCollectingInfo, StageTechQuestions, StageClosed},
	StageTechQuestions:  {StageClosed},
	StageClosed:         nil,
}

// CanTransition reports whether moving from s to next is allowed.
func (s Stage) CanTransition(next Stage) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
