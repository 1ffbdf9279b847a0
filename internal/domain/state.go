package domain

import (
	"errors"
	"fmt"
)

// Phase represents the lifecycle stage of a round.
type Phase string

const (
	// PhaseInit holds a full stock waiting to be dealt.
	PhaseInit Phase = "init"
	// PhaseDeal1 deals five cards to every seat.
	PhaseDeal1 Phase = "deal1"
	// PhaseBid1 asks every seat whether it takes the turned card's suit.
	PhaseBid1 Phase = "bid1"
	// PhaseBid2 asks every seat whether it names another suit.
	PhaseBid2 Phase = "bid2"
	// PhaseDeal2 deals the remaining cards once a taker exists.
	PhaseDeal2 Phase = "deal2"
	// PhaseRunning is trick play.
	PhaseRunning Phase = "running"
	// PhaseScored holds the final score of the round.
	PhaseScored Phase = "scored"
)

// Table carries what persists across every phase of a round.
type Table struct {
	RoundID   string    `json:"round_id"`
	Names     [4]string `json:"names"`
	Dealer    Seat      `json:"dealer"`
	HumanSeat Seat      `json:"human_seat"`
}

// IsHuman reports whether seat is played by the human.
func (t Table) IsHuman(seat Seat) bool { return t.HumanSeat != NoSeat && seat == t.HumanSeat }

// Hands holds one hand per seat, indexed by Seat.
type Hands [NumSeats][]Card

// With returns a copy of h where seat holds hand. The other hands are shared.
func (h Hands) With(seat Seat, hand []Card) Hands {
	h[seat] = hand
	return h
}

// Count returns the total number of cards in all hands.
func (h Hands) Count() int {
	n := 0
	for _, hand := range h {
		n += len(hand)
	}
	return n
}

// State is a snapshot of a round. The concrete type is one of Init, Deal1,
// Bid1, Bid2, Deal2, Running or Scored; no other type implements it.
type State interface {
	Phase() Phase
	TableInfo() Table
	isState()
}

// Init is a round waiting to be dealt.
type Init struct {
	Table
	Stock []Card `json:"stock"`
}

// Deal1 is the first deal: one card per step until every seat holds five.
type Deal1 struct {
	Table
	Stock []Card `json:"stock"`
	Hands Hands  `json:"hands"`
}

// Bid1 is the first bidding round on the turned card's suit.
type Bid1 struct {
	Table
	Stock []Card `json:"stock"`
	Hands Hands  `json:"hands"`
	Bids  int    `json:"bids"`
	Card  Card   `json:"card"`
}

// Bid2 is the second bidding round on any suit but the turned card's.
type Bid2 struct {
	Table
	Stock []Card `json:"stock"`
	Hands Hands  `json:"hands"`
	Bids  int    `json:"bids"`
	Card  Card   `json:"card"`
}

// Deal2 deals the rest of the stock. Card is the turned card until the taker receives it.
type Deal2 struct {
	Table
	Stock []Card `json:"stock"`
	Hands Hands  `json:"hands"`
	Taker Seat   `json:"taker"`
	Trump Suit   `json:"trump"`
	Card  *Card  `json:"card,omitempty"`
}

// Running is trick play. Trick holds the cards of the current trick in play order.
type Running struct {
	Table
	Hands  Hands           `json:"hands"`
	Taker  Seat            `json:"taker"`
	Trump  Suit            `json:"trump"`
	Leader Seat            `json:"leader"`
	Trick  []Card          `json:"trick"`
	Ended  []ArchivedTrick `json:"ended"`
}

// Scored is a finished round.
type Scored struct {
	Table
	Taker Seat            `json:"taker"`
	Trump Suit            `json:"trump"`
	Ended []ArchivedTrick `json:"ended"`
	Score RoundScore      `json:"score"`
}

func (Init) Phase() Phase    { return PhaseInit }
func (Deal1) Phase() Phase   { return PhaseDeal1 }
func (Bid1) Phase() Phase    { return PhaseBid1 }
func (Bid2) Phase() Phase    { return PhaseBid2 }
func (Deal2) Phase() Phase   { return PhaseDeal2 }
func (Running) Phase() Phase { return PhaseRunning }
func (Scored) Phase() Phase  { return PhaseScored }

func (s Init) TableInfo() Table    { return s.Table }
func (s Deal1) TableInfo() Table   { return s.Table }
func (s Bid1) TableInfo() Table    { return s.Table }
func (s Bid2) TableInfo() Table    { return s.Table }
func (s Deal2) TableInfo() Table   { return s.Table }
func (s Running) TableInfo() Table { return s.Table }
func (s Scored) TableInfo() Table  { return s.Table }

func (Init) isState()    {}
func (Deal1) isState()   {}
func (Bid1) isState()    {}
func (Bid2) isState()    {}
func (Deal2) isState()   {}
func (Running) isState() {}
func (Scored) isState()  {}

// Bidder returns the seat whose turn it is to bid.
func (s Bid1) Bidder() Seat { return s.Dealer.Relative(1 + s.Bids) }

// Bidder returns the seat whose turn it is to bid.
func (s Bid2) Bidder() Seat { return s.Dealer.Relative(1 + s.Bids) }

// ToPlay returns the seat expected to play next in the current trick.
func (s Running) ToPlay() Seat { return s.Leader.Relative(len(s.Trick)) }

// TrickComplete reports whether the current trick holds four cards.
func (s Running) TrickComplete() bool { return len(s.Trick) == NumSeats }

// PlayedCards returns every card already played this round, archived tricks first.
func (s Running) PlayedCards() []Card {
	out := make([]Card, 0, DeckSize)
	for _, t := range s.Ended {
		out = append(out, t.Cards...)
	}
	return append(out, s.Trick...)
}

// ErrConservation is wrapped by every error returned from CheckConservation.
var ErrConservation = errors.New("card conservation violated")

// CheckConservation verifies that the stock, the hands, the turned card and
// the tricks of a snapshot hold the 32 cards exactly once, and that hand
// sizes match the phase.
func CheckConservation(state State) error {
	var all []Card
	var hands *Hands
	switch s := state.(type) {
	case Init:
		all = append(all, s.Stock...)
	case Deal1:
		all = append(all, s.Stock...)
		hands = &s.Hands
	case Bid1:
		all = append(append(all, s.Stock...), s.Card)
		hands = &s.Hands
	case Bid2:
		all = append(append(all, s.Stock...), s.Card)
		hands = &s.Hands
	case Deal2:
		all = append(all, s.Stock...)
		if s.Card != nil {
			all = append(all, *s.Card)
		}
		hands = &s.Hands
	case Running:
		all = append(all, s.PlayedCards()...)
		hands = &s.Hands
		if err := checkRunningHands(s); err != nil {
			return err
		}
	case Scored:
		for _, t := range s.Ended {
			all = append(all, t.Cards...)
		}
		if len(s.Ended) != NumTricks {
			return fmt.Errorf("%w: scored round with %d tricks", ErrConservation, len(s.Ended))
		}
	default:
		panic(fmt.Sprintf("domain: unknown state %T", state))
	}
	if hands != nil {
		for _, hand := range hands {
			all = append(all, hand...)
		}
	}

	if len(all) != DeckSize {
		return fmt.Errorf("%w: %s holds %d cards", ErrConservation, state.Phase(), len(all))
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range all {
		if !c.Suit.Valid() || !c.Face.Valid() {
			return fmt.Errorf("%w: invalid card %d/%d", ErrConservation, c.Suit, c.Face)
		}
		if seen[c] {
			return fmt.Errorf("%w: duplicate %s", ErrConservation, c)
		}
		seen[c] = true
	}
	return nil
}

func checkRunningHands(s Running) error {
	if len(s.Trick) > NumSeats {
		return fmt.Errorf("%w: trick holds %d cards", ErrConservation, len(s.Trick))
	}
	for _, seat := range AllSeats {
		want := HandSize - len(s.Ended)
		if playedInTrick(s, seat) {
			want--
		}
		if got := len(s.Hands[seat]); got != want {
			return fmt.Errorf("%w: %s holds %d cards, want %d", ErrConservation, seat, got, want)
		}
	}
	return nil
}

func playedInTrick(s Running, seat Seat) bool {
	for i := range s.Trick {
		if s.Leader.Relative(i) == seat {
			return true
		}
	}
	return false
}
