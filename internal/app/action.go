package app

import "belote/internal/domain"

// ActionKind identifies a human action fed to Advance.
type ActionKind string

const (
	ActionAcceptBid  ActionKind = "accept_bid"
	ActionDeclineBid ActionKind = "decline_bid"
	ActionPlayCard   ActionKind = "play_card"
	ActionNextRound  ActionKind = "next_round"
)

// Action is a decision of the human seat. Suit is read by ActionAcceptBid
// and Card by ActionPlayCard.
type Action struct {
	Kind ActionKind  `json:"kind"`
	Seat domain.Seat `json:"seat"`
	Suit domain.Suit `json:"suit"`
	Card domain.Card `json:"card"`
}

// AcceptBid takes suit as trump.
func AcceptBid(seat domain.Seat, suit domain.Suit) *Action {
	return &Action{Kind: ActionAcceptBid, Seat: seat, Suit: suit}
}

// DeclineBid passes.
func DeclineBid(seat domain.Seat) *Action {
	return &Action{Kind: ActionDeclineBid, Seat: seat}
}

// PlayCard plays card from the hand of seat.
func PlayCard(seat domain.Seat, card domain.Card) *Action {
	return &Action{Kind: ActionPlayCard, Seat: seat, Card: card}
}

// NextRound starts the next deal once the round is scored.
func NextRound(seat domain.Seat) *Action {
	return &Action{Kind: ActionNextRound, Seat: seat}
}

func (k ActionKind) valid() bool {
	switch k {
	case ActionAcceptBid, ActionDeclineBid, ActionPlayCard, ActionNextRound:
		return true
	}
	return false
}
