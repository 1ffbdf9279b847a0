package internal

import (
	"testing"

	"belote/internal/domain"
)

func TestDetectPhase(t *testing.T) {
	tests := []struct {
		ended int
		want  GamePhase
	}{
		{0, PhaseOpening},
		{1, PhaseMid},
		{3, PhaseMid},
		{4, PhaseEnd},
		{7, PhaseEnd},
	}
	for _, tt := range tests {
		state := domain.Running{Ended: make([]domain.ArchivedTrick, tt.ended)}
		if got := DetectPhase(state); got != tt.want {
			t.Fatalf("DetectPhase(%d ended) = %v, want %v", tt.ended, got, tt.want)
		}
	}
}
