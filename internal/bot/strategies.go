package bot

import (
	"math/rand"

	"belote/internal/domain"
)

// HeuristicBot bids with the hand evaluator and plays with the advisor.
type HeuristicBot struct {
	Bids    *BidEvaluator
	Advisor *Advisor
}

func (b *HeuristicBot) BidFirstRound(hand []domain.Card, turned domain.Card) BidDecision {
	return b.Bids.FirstRound(hand, turned)
}

func (b *HeuristicBot) BidSecondRound(hand []domain.Card, turned domain.Card) BidDecision {
	return b.Bids.SecondRound(hand, turned)
}

func (b *HeuristicBot) ChoosePlay(state domain.Running, seat domain.Seat) PlayChoice {
	return b.Advisor.ChoosePlay(state, seat)
}

// RandomBot plays a random legal card and bids without taking risks.
type RandomBot struct {
	Bids *BidEvaluator
	rng  *rand.Rand
}

func (b *RandomBot) BidFirstRound(hand []domain.Card, turned domain.Card) BidDecision {
	lines := b.Bids.Advise(hand, turned, turned.Suit)
	return b.Bids.decide(lines, turned.Suit, RiskRange{})
}

func (b *RandomBot) BidSecondRound(hand []domain.Card, turned domain.Card) BidDecision {
	suits := make([]domain.Suit, 0, len(domain.AllSuits)-1)
	for _, s := range domain.AllSuits {
		if s != turned.Suit {
			suits = append(suits, s)
		}
	}
	suit := suits[b.rng.Intn(len(suits))]
	return b.Bids.decide(b.Bids.Advise(hand, turned, suit), suit, RiskRange{})
}

func (b *RandomBot) ChoosePlay(state domain.Running, seat domain.Seat) PlayChoice {
	legal := domain.LegalCards(state.Hands[seat], state.Trick, state.Leader, seat, state.Trump)
	options := make([]PlayOption, 0, len(legal))
	for _, c := range legal {
		options = append(options, PlayOption{Card: c})
	}
	return PlayChoice{Card: legal[b.rng.Intn(len(legal))], Rule: "Random", Options: options}
}
