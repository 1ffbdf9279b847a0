package bot

import (
	"belote/internal/domain"
)

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// BidFirstRound decides whether to take the turned card's suit.
	BidFirstRound(hand []domain.Card, turned domain.Card) BidDecision
	// BidSecondRound decides whether to name a suit other than the turned card's.
	BidSecondRound(hand []domain.Card, turned domain.Card) BidDecision
	// ChoosePlay picks a legal card for the seat to play.
	ChoosePlay(state domain.Running, seat domain.Seat) PlayChoice
}
