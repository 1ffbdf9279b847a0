package bot

import (
	"fmt"

	"belote/internal/domain"
)

// Agent represents an autonomous bot player sitting at a seat.
type Agent struct {
	Seat     domain.Seat
	Name     string
	Strategy Brain
}

// Bid asks the agent for its decision in either bidding round.
func (a *Agent) Bid(state domain.State) (BidDecision, error) {
	switch s := state.(type) {
	case domain.Bid1:
		if s.Bidder() != a.Seat {
			return BidDecision{}, fmt.Errorf("bot %s asked to bid for %s", a.Seat, s.Bidder())
		}
		return a.Strategy.BidFirstRound(s.Hands[a.Seat], s.Card), nil
	case domain.Bid2:
		if s.Bidder() != a.Seat {
			return BidDecision{}, fmt.Errorf("bot %s asked to bid for %s", a.Seat, s.Bidder())
		}
		return a.Strategy.BidSecondRound(s.Hands[a.Seat], s.Card), nil
	default:
		return BidDecision{}, fmt.Errorf("bot %s asked to bid during %s", a.Seat, state.Phase())
	}
}

// Play asks the agent to choose its card in the running trick.
func (a *Agent) Play(state domain.Running) (PlayChoice, error) {
	if state.TrickComplete() || state.ToPlay() != a.Seat {
		return PlayChoice{}, fmt.Errorf("bot %s asked to play out of turn", a.Seat)
	}
	return a.Strategy.ChoosePlay(state, a.Seat), nil
}
