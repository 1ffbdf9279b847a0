package brain

import (
	"sort"

	"belote/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // Held by another seat
	StatusMine                      // In the bot's hand
	StatusPlayed                    // Already on the table or in an archived trick
)

// GameMemory stores the bot's private view of the round.
type GameMemory struct {
	// DeckStatus tracks all 32 cards. Index = Suit*8 + Face.
	DeckStatus [domain.DeckSize]CardStatus
	Trump      domain.Suit
}

// NewMemory initializes a fresh memory state for the given trump.
func NewMemory(trump domain.Suit) *GameMemory {
	return &GameMemory{Trump: trump}
}

// FromRunning builds the memory of seat from public information: its own
// hand and every card played so far.
func FromRunning(state domain.Running, seat domain.Seat) *GameMemory {
	m := NewMemory(state.Trump)
	m.MarkMine(state.Hands[seat])
	m.MarkPlayed(state.PlayedCards())
	return m
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusMine
	}
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards []domain.Card) {
	for _, c := range cards {
		m.DeckStatus[cardToIndex(c)] = StatusPlayed
	}
}

// Outstanding returns the cards of suit held by the other seats, weakest first.
func (m *GameMemory) Outstanding(suit domain.Suit) []domain.Card {
	return m.collect(suit, func(s CardStatus) bool { return s == StatusUnknown })
}

// Remaining returns every unplayed card of suit, the bot's included, weakest first.
func (m *GameMemory) Remaining(suit domain.Suit) []domain.Card {
	return m.collect(suit, func(s CardStatus) bool { return s != StatusPlayed })
}

// IsBoss returns true if no higher card of the same suit is held by another seat.
func (m *GameMemory) IsBoss(c domain.Card) bool {
	for _, other := range m.Outstanding(c.Suit) {
		if other.Rank(m.Trump) > c.Rank(m.Trump) {
			return false
		}
	}
	return true
}

func (m *GameMemory) collect(suit domain.Suit, keep func(CardStatus) bool) []domain.Card {
	var out []domain.Card
	for _, f := range domain.AllFaces {
		c := domain.Card{Suit: suit, Face: f}
		if keep(m.DeckStatus[cardToIndex(c)]) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank(m.Trump) < out[j].Rank(m.Trump) })
	return out
}

// cardToIndex converts domain.Card to a 0-31 index.
func cardToIndex(c domain.Card) int {
	return int(c.Suit)*len(domain.AllFaces) + int(c.Face)
}
