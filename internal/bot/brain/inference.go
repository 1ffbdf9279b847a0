package brain

import (
	"belote/internal/domain"
)

// Estimator answers questions about the remaining cards from memory.
type Estimator struct {
	Memory *GameMemory
}

// NewEstimator creates a new reasoning engine.
func NewEstimator(m *GameMemory) *Estimator {
	return &Estimator{Memory: m}
}

// GetBossCards returns the cards of hand that no other seat can beat within their suit.
func (e *Estimator) GetBossCards(hand []domain.Card) []domain.Card {
	var bossCards []domain.Card
	for _, c := range hand {
		if e.Memory.IsBoss(c) {
			bossCards = append(bossCards, c)
		}
	}
	return bossCards
}

// OutstandingTrumps is the number of trumps still held by the other seats.
func (e *Estimator) OutstandingTrumps() int {
	return len(e.Memory.Outstanding(e.Memory.Trump))
}

// RemainingTrumps is the number of unplayed trumps, the bot's included.
func (e *Estimator) RemainingTrumps() int {
	return len(e.Memory.Remaining(e.Memory.Trump))
}

// HoldsSecondHighest reports whether hand holds the second strongest
// unplayed card of suit. Suits with two or fewer cards left never qualify.
func (e *Estimator) HoldsSecondHighest(hand []domain.Card, suit domain.Suit) bool {
	remaining := e.Memory.Remaining(suit)
	if len(remaining) <= 2 {
		return false
	}
	return domain.ContainsCard(hand, remaining[len(remaining)-2])
}

// HoldsNextBoss reports whether hand holds, besides card, a card of the same
// suit that beats every outstanding card except the strongest one. Such a
// card becomes the boss once the current boss falls.
func (e *Estimator) HoldsNextBoss(hand []domain.Card, card domain.Card) bool {
	trump := e.Memory.Trump
	var best *domain.Card
	for i, c := range hand {
		if c == card || c.Suit != card.Suit {
			continue
		}
		if best == nil || c.Rank(trump) > best.Rank(trump) {
			best = &hand[i]
		}
	}
	others := e.Memory.Outstanding(card.Suit)
	if best == nil || len(others) < 2 {
		return false
	}
	return best.Rank(trump) > others[len(others)-2].Rank(trump)
}
