package app

import (
	"belote/internal/domain"
)

// View is what one seat may see of a round.
type View struct {
	RoundID    string                  `json:"round_id"`
	Phase      domain.Phase            `json:"phase"`
	Seat       domain.Seat             `json:"seat"`
	Names      [domain.NumSeats]string `json:"names"`
	Dealer     domain.Seat             `json:"dealer"`
	Hand       []domain.Card           `json:"hand"`
	HandCounts [domain.NumSeats]int    `json:"hand_counts"`
	Stock      int                     `json:"stock"`
	Turned     *domain.Card            `json:"turned,omitempty"`
	Bids       int                     `json:"bids"`
	Trump      *domain.Suit            `json:"trump,omitempty"`
	Taker      domain.Seat             `json:"taker"`
	Leader     domain.Seat             `json:"leader"`
	Trick      []domain.Card           `json:"trick"`
	ToAct      domain.Seat             `json:"to_act"`
	Tricks     [domain.NumSeats]int    `json:"tricks"`
	LastTrick  *domain.ArchivedTrick   `json:"last_trick,omitempty"`
	Score      *domain.RoundScore      `json:"score,omitempty"`
	Legal      []Action                `json:"legal"`
}

// ViewFor projects state for seat: its own hand, public cards and counts only.
func ViewFor(state domain.State, seat domain.Seat) View {
	table := state.TableInfo()
	v := View{
		RoundID: table.RoundID,
		Phase:   state.Phase(),
		Seat:    seat,
		Names:   table.Names,
		Dealer:  table.Dealer,
		Taker:   domain.NoSeat,
		Leader:  domain.NoSeat,
		ToAct:   domain.NoSeat,
		Legal:   LegalActions(state, seat),
	}

	var hands *domain.Hands
	switch st := state.(type) {
	case domain.Init:
		v.Stock = len(st.Stock)
	case domain.Deal1:
		v.Stock = len(st.Stock)
		hands = &st.Hands
	case domain.Bid1:
		v.Stock = len(st.Stock)
		v.Turned = &st.Card
		v.Bids = st.Bids
		if st.Bids < domain.NumSeats {
			v.ToAct = st.Bidder()
		}
		hands = &st.Hands
	case domain.Bid2:
		v.Stock = len(st.Stock)
		v.Turned = &st.Card
		v.Bids = st.Bids
		if st.Bids < domain.NumSeats {
			v.ToAct = st.Bidder()
		}
		hands = &st.Hands
	case domain.Deal2:
		v.Stock = len(st.Stock)
		v.Turned = st.Card
		v.Trump = &st.Trump
		v.Taker = st.Taker
		hands = &st.Hands
	case domain.Running:
		v.Trump = &st.Trump
		v.Taker = st.Taker
		v.Leader = st.Leader
		v.Trick = st.Trick
		v.ToAct = nextToPlay(st)
		v.Tricks = tricksWon(st.Ended)
		if n := len(st.Ended); n > 0 {
			v.LastTrick = &st.Ended[n-1]
		}
		hands = &st.Hands
	case domain.Scored:
		v.Trump = &st.Trump
		v.Taker = st.Taker
		v.Tricks = tricksWon(st.Ended)
		v.Score = &st.Score
		if n := len(st.Ended); n > 0 {
			v.LastTrick = &st.Ended[n-1]
		}
	default:
		panic("app: unknown state")
	}

	if hands != nil {
		for i, hand := range hands {
			v.HandCounts[i] = len(hand)
		}
		if seat.Valid() {
			v.Hand = hands[seat]
		}
	}
	return v
}

// LegalActions lists the actions seat may submit to Advance in state.
func LegalActions(state domain.State, seat domain.Seat) []Action {
	if AwaitingSeat(state) != seat || seat == domain.NoSeat {
		return nil
	}
	switch st := state.(type) {
	case domain.Bid1:
		return []Action{*AcceptBid(seat, st.Card.Suit), *DeclineBid(seat)}
	case domain.Bid2:
		var out []Action
		for _, suit := range domain.AllSuits {
			if suit != st.Card.Suit {
				out = append(out, *AcceptBid(seat, suit))
			}
		}
		return append(out, *DeclineBid(seat))
	case domain.Running:
		legal := domain.LegalPlays(st)
		out := make([]Action, 0, len(legal))
		for _, c := range legal {
			out = append(out, *PlayCard(seat, c))
		}
		return out
	case domain.Scored:
		return []Action{*NextRound(seat)}
	}
	return nil
}

func tricksWon(ended []domain.ArchivedTrick) [domain.NumSeats]int {
	var out [domain.NumSeats]int
	for _, t := range ended {
		out[t.Winner]++
	}
	return out
}
