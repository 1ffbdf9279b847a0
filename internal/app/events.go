package app

import (
	"belote/internal/bot"
	"belote/internal/domain"
)

// EventKind identifies emitted round events for Nakama dispatch.
type EventKind string

const (
	EventRoundCreated      EventKind = "round_created"
	EventDealStarted       EventKind = "deal_started"
	EventCardDealt         EventKind = "card_dealt"
	EventCardTurned        EventKind = "card_turned"
	EventBidPassed         EventKind = "bid_passed"
	EventBidTaken          EventKind = "bid_taken"
	EventSecondBidding     EventKind = "second_bidding_round"
	EventBiddingAbandoned  EventKind = "bidding_abandoned"
	EventTurnedCardTaken   EventKind = "turned_card_taken"
	EventPlayStarted       EventKind = "play_started"
	EventCardPlayed        EventKind = "card_played"
	EventTrickWon          EventKind = "trick_won"
	EventRoundScored       EventKind = "round_scored"
	EventCoverageGap       EventKind = "coverage_gap"
	EventInvariantViolated EventKind = "invariant_violated"
)

// Event is a round event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type RoundPayload struct {
	RoundID string      `json:"round_id"`
	Dealer  domain.Seat `json:"dealer"`
}

type CardDealtPayload struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
}

type CardTurnedPayload struct {
	Dealer domain.Seat `json:"dealer"`
	Card   domain.Card `json:"card"`
}

type BidPayload struct {
	Seat  domain.Seat  `json:"seat"`
	Round int          `json:"round"`
	Trump *domain.Suit `json:"trump,omitempty"` // nil for a pass
	// Lines explain a bot decision; nil for the human.
	Lines []bot.BidLine `json:"lines,omitempty"`
}

type PlayStartedPayload struct {
	Leader domain.Seat `json:"leader"`
	Taker  domain.Seat `json:"taker"`
	Trump  domain.Suit `json:"trump"`
}

type CardPlayedPayload struct {
	Seat     domain.Seat   `json:"seat"`
	Card     domain.Card   `json:"card"`
	ToPlay   domain.Seat   `json:"to_play"`
	Thoughts []bot.Thought `json:"thoughts,omitempty"`
}

type TrickWonPayload struct {
	Winner domain.Seat   `json:"winner"`
	Leader domain.Seat   `json:"leader"`
	Cards  []domain.Card `json:"cards"`
	Points int           `json:"points"`
}

type RoundScoredPayload struct {
	Taker domain.Seat       `json:"taker"`
	Trump domain.Suit       `json:"trump"`
	Score domain.RoundScore `json:"score"`
}

type CoverageGapPayload struct {
	Seat domain.Seat `json:"seat"`
	Card domain.Card `json:"card"`
}

type InvariantPayload struct {
	Phase domain.Phase `json:"phase"`
	Error string       `json:"error"`
}
