package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects the strategy a bot seat plays with.
type BotLevel string

const (
	BotLevelHeuristic BotLevel = "heuristic"
	BotLevelRandom    BotLevel = "random"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, tuning Tuning, rng *rand.Rand) (Brain, error) {
	bids := NewBidEvaluator(tuning, rng)
	switch level {
	case BotLevelHeuristic, "":
		return &HeuristicBot{Bids: bids, Advisor: NewAdvisor(tuning.Play)}, nil
	case BotLevelRandom:
		return &RandomBot{Bids: bids, rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
