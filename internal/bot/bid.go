package bot

import (
	"math/rand"

	botinternal "belote/internal/bot/internal"
	"belote/internal/domain"
)

// BidReason names a contribution to a hand's bidding strength.
type BidReason string

const (
	BidReasonTrumpJack  BidReason = "trump_jack"
	BidReasonTrumpNine  BidReason = "trump_nine"
	BidReasonTrumpAce   BidReason = "trump_ace"
	BidReasonExtraTrump BidReason = "extra_trumps"
	BidReasonBelote     BidReason = "belote"
	BidReasonPlainAce   BidReason = "plain_ace"
	BidReasonGuardedTen BidReason = "guarded_ten"
)

// BidLine is one additive contribution to a hand's strength.
type BidLine struct {
	Reason BidReason     `json:"reason"`
	Points int           `json:"points"`
	Cards  []domain.Card `json:"cards"`
}

// BidDecision is the outcome of evaluating a bid for one seat.
type BidDecision struct {
	Take      bool        `json:"take"`
	Trump     domain.Suit `json:"trump"`
	Total     int         `json:"total"`
	Threshold int         `json:"threshold"`
	Lines     []BidLine   `json:"lines"`
}

// ScoreHand scores cards as if trump were the trump suit, with the default weights.
func ScoreHand(cards []domain.Card, trump domain.Suit) []BidLine {
	return scoreHand(DefaultTuning.Bid, cards, trump)
}

// Total sums the points of lines.
func Total(lines []BidLine) int {
	total := 0
	for _, l := range lines {
		total += l.Points
	}
	return total
}

func scoreHand(w botinternal.BidWeights, cards []domain.Card, trump domain.Suit) []BidLine {
	var lines []BidLine
	var extras, belote []domain.Card
	trumps := len(domain.CardsOfSuit(cards, trump))

	for _, c := range cards {
		if c.Suit == trump {
			switch c.Face {
			case domain.Jack:
				lines = append(lines, BidLine{Reason: BidReasonTrumpJack, Points: w.TrumpJack, Cards: []domain.Card{c}})
			case domain.Nine:
				lines = append(lines, BidLine{Reason: BidReasonTrumpNine, Points: w.TrumpNine, Cards: []domain.Card{c}})
			case domain.Ace:
				points := w.TrumpAce
				if trumps-1 > 2 {
					points = w.TrumpAceSupported
				}
				lines = append(lines, BidLine{Reason: BidReasonTrumpAce, Points: points, Cards: []domain.Card{c}})
			case domain.King, domain.Queen:
				belote = append(belote, c)
				extras = append(extras, c)
			default:
				extras = append(extras, c)
			}
			continue
		}

		switch c.Face {
		case domain.Ace:
			lines = append(lines, BidLine{Reason: BidReasonPlainAce, Points: w.PlainAce, Cards: []domain.Card{c}})
		case domain.Ten:
			guards := domain.RemoveCard(domain.CardsOfSuit(cards, c.Suit), c)
			if len(guards) == 0 {
				continue
			}
			lines = append(lines, BidLine{Reason: BidReasonGuardedTen, Points: w.GuardedTen, Cards: append([]domain.Card{c}, guards...)})
		}
	}

	if len(extras) > 0 {
		lines = append(lines, BidLine{Reason: BidReasonExtraTrump, Points: w.ExtraTrump * len(extras), Cards: extras})
	}
	if len(belote) == 2 {
		lines = append(lines, BidLine{Reason: BidReasonBelote, Points: w.Belote, Cards: belote})
	}
	return lines
}

// BidEvaluator decides bids for bot seats. The hand is always evaluated
// together with the turned card since the taker receives it.
type BidEvaluator struct {
	Tuning Tuning
	rng    *rand.Rand
}

// NewBidEvaluator returns an evaluator drawing its risk from rng.
func NewBidEvaluator(tuning Tuning, rng *rand.Rand) *BidEvaluator {
	return &BidEvaluator{Tuning: tuning, rng: rng}
}

// Advise scores hand plus the turned card for trump without deciding.
func (e *BidEvaluator) Advise(hand []domain.Card, turned domain.Card, trump domain.Suit) []BidLine {
	return scoreHand(e.Tuning.Bid, withTurned(hand, turned), trump)
}

// FirstRound decides whether to take the turned card's suit.
func (e *BidEvaluator) FirstRound(hand []domain.Card, turned domain.Card) BidDecision {
	lines := e.Advise(hand, turned, turned.Suit)
	return e.decide(lines, turned.Suit, e.Tuning.Round1Risk)
}

// SecondRound picks the strongest suit other than the turned card's and
// decides whether to take it. Ties go to the first suit in enumeration order.
func (e *BidEvaluator) SecondRound(hand []domain.Card, turned domain.Card) BidDecision {
	bestSuit := domain.Suit(-1)
	var bestLines []BidLine
	bestTotal := 0
	for _, suit := range domain.AllSuits {
		if suit == turned.Suit {
			continue
		}
		lines := e.Advise(hand, turned, suit)
		if total := Total(lines); bestSuit < 0 || total > bestTotal {
			bestSuit, bestLines, bestTotal = suit, lines, total
		}
	}
	return e.decide(bestLines, bestSuit, e.Tuning.Round2Risk)
}

func (e *BidEvaluator) decide(lines []BidLine, trump domain.Suit, risk RiskRange) BidDecision {
	threshold := e.Tuning.BidCeiling - risk.Draw(e.rng)
	total := Total(lines)
	return BidDecision{
		Take:      total > threshold,
		Trump:     trump,
		Total:     total,
		Threshold: threshold,
		Lines:     lines,
	}
}

func withTurned(hand []domain.Card, turned domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(hand)+1)
	out = append(out, hand...)
	return append(out, turned)
}
