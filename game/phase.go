package game

// Phase represents the current phase of the game state machine.
type Phase int

const (
	WorkPhase Phase = iota
	BuildPhase
	DiscardPhase
	DesignOfficePhase
	DualConstructionPhase
	VillageChoicePhase
	PaydayPhase
	CleanupPhase
	GameEndPhase
)

var phaseNames = map[Phase]string{
	WorkPhase:             "work",
	BuildPhase:            "build",
	DiscardPhase:          "discard",
	DesignOfficePhase:     "designOffice",
	DualConstructionPhase: "dualConstruction",
	VillageChoicePhase:    "choice_village",
	PaydayPhase:           "payday",
	CleanupPhase:          "cleanup",
	GameEndPhase:          "gameEnd",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// singleActor reports whether the phase is an interruption of the work phase owned by one player.
func (p Phase) singleActor() bool {
	switch p {
	case BuildPhase, DiscardPhase, DesignOfficePhase, DualConstructionPhase, VillageChoicePhase:
		return true
	}
	return false
}
