package internal

import "belote/internal/domain"

// GamePhase describes the current strategic stage of a round.
type GamePhase int

const (
	// PhaseOpening indicates no trick has been collected yet.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates fewer than half of the tricks are over.
	PhaseMid
	// PhaseEnd indicates at least half of the tricks are over.
	PhaseEnd
)

// DetectPhase infers the phase from the number of archived tricks.
func DetectPhase(state domain.Running) GamePhase {
	ended := len(state.Ended)
	switch {
	case ended == 0:
		return PhaseOpening
	case ended < domain.NumTricks/2:
		return PhaseMid
	default:
		return PhaseEnd
	}
}
