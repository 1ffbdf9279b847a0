package app

import (
	"errors"
	"fmt"

	"belote/internal/domain"
)

var (
	ErrWrongPhase     = errors.New("action not allowed in this phase")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrAwaitingHuman  = errors.New("waiting for the human player")
	ErrRoundComplete  = errors.New("round is complete")
	ErrInvalidBidSuit = errors.New("suit cannot be bid")
	ErrUnknownAction  = errors.New("unknown action")
)

// RuleViolation rejects a card the seat may not play.
type RuleViolation struct {
	Seat   domain.Seat
	Card   domain.Card
	Reason domain.Reason
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("%s cannot play %s: %s", e.Seat, e.Card.Code(), e.Reason.Message())
}
