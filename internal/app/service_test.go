package app

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"belote/internal/config"
	"belote/internal/domain"
)

func cards(codes ...string) []domain.Card {
	out := make([]domain.Card, 0, len(codes))
	for _, code := range codes {
		c, err := domain.ParseCard(code)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

func newTestService(t *testing.T, seed int64) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.StrictInvariants = true
	svc, err := NewService(rand.New(rand.NewSource(seed)), nil, cfg)
	if err != nil {
		t.Fatalf("new service error: %v", err)
	}
	return svc
}

var testNames = [domain.NumSeats]string{"Ana", "Adversaire de droite", "Partenaire", "Adversaire de gauche"}

// bidState deals the unshuffled deck: five cards per seat, the next card turned.
func bidState(dealer, human domain.Seat) domain.Bid1 {
	deck := domain.NewDeck()
	var hands domain.Hands
	for i := 0; i < domain.FirstDealCards; i++ {
		seat := domain.DealDestination(dealer, i)
		hands[seat] = append(hands[seat], deck[i])
	}
	return domain.Bid1{
		Table: domain.Table{RoundID: "r1", Names: testNames, Dealer: dealer, HumanSeat: human},
		Stock: deck[domain.FirstDealCards+1:],
		Hands: hands,
		Card:  deck[domain.FirstDealCards],
	}
}

// humanTrick has West leading the nine of trumps and South, the human, to answer.
func humanTrick() domain.Running {
	var hands domain.Hands
	hands[domain.South] = cards("7S", "8S", "9S", "10S", "JS", "QS", "7H", "JH")
	hands[domain.West] = cards("KS", "AS", "8H", "10H", "QH", "KH", "AH")
	hands[domain.North] = cards("7C", "8C", "9C", "10C", "JC", "QC", "KC", "AC")
	hands[domain.East] = cards("7D", "8D", "9D", "10D", "JD", "QD", "KD", "AD")
	return domain.Running{
		Table:  domain.Table{RoundID: "r2", Names: testNames, Dealer: domain.North, HumanSeat: domain.South},
		Hands:  hands,
		Taker:  domain.West,
		Trump:  domain.Hearts,
		Leader: domain.West,
		Trick:  cards("9H"),
	}
}

func marshal(t *testing.T, state domain.State) []byte {
	t.Helper()
	data, err := domain.MarshalState(state)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return data
}

func TestNewRoundShufflesFullDeck(t *testing.T) {
	svc := newTestService(t, 1)
	fresh := svc.NewRound(testNames, domain.East, domain.South)
	if fresh.RoundID == "" {
		t.Fatalf("round id should be set")
	}
	if err := domain.CheckConservation(fresh); err != nil {
		t.Fatalf("new round breaks conservation: %v", err)
	}
	if other := svc.NewRound(testNames, domain.East, domain.South); other.RoundID == fresh.RoundID {
		t.Fatalf("round ids should differ")
	}
}

func TestBotRoundPlaysToScore(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		svc := newTestService(t, seed)
		var state domain.State = svc.NewRound(testNames, domain.South, domain.NoSeat)

		steps := 0
		for state.Phase() != domain.PhaseScored {
			if steps++; steps > 2000 {
				t.Fatalf("seed %d: round did not finish, stuck in %s", seed, state.Phase())
			}
			before := marshal(t, state)
			next, _, err := svc.Advance(state, nil)
			if err != nil {
				t.Fatalf("seed %d: advance from %s: %v", seed, state.Phase(), err)
			}
			if !bytes.Equal(before, marshal(t, state)) {
				t.Fatalf("seed %d: advance mutated the %s snapshot", seed, state.Phase())
			}
			if err := domain.CheckConservation(next); err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			state = next
		}

		scored := state.(domain.Scored)
		sum := 0
		for _, points := range scored.Score.Seats {
			sum += points
		}
		if sum != domain.TotalPoints {
			t.Fatalf("seed %d: seat scores sum to %d", seed, sum)
		}

		next, events, err := svc.Advance(scored, nil)
		if err != nil {
			t.Fatalf("seed %d: next round: %v", seed, err)
		}
		fresh, ok := next.(domain.Init)
		if !ok || fresh.Dealer != scored.Dealer.Next() || fresh.RoundID == scored.RoundID {
			t.Fatalf("seed %d: unexpected next round %+v", seed, next)
		}
		if fresh.Stock[0] != scored.Ended[0].Cards[0] || fresh.Stock[31] != scored.Ended[7].Cards[3] {
			t.Fatalf("seed %d: stock should gather the tricks in order", seed)
		}
		if len(events) != 1 || events[0].Kind != EventRoundCreated {
			t.Fatalf("seed %d: events = %+v", seed, events)
		}
	}
}

func TestDealFirstTurnsACard(t *testing.T) {
	svc := newTestService(t, 2)
	var state domain.State = svc.NewRound(testNames, domain.West, domain.South)
	for i := 0; i <= domain.FirstDealCards+1; i++ {
		next, _, err := svc.Advance(state, nil)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		state = next
	}
	bid, ok := state.(domain.Bid1)
	if !ok {
		t.Fatalf("phase = %s, want bid1", state.Phase())
	}
	for _, seat := range domain.AllSeats {
		if got := len(bid.Hands[seat]); got != 5 {
			t.Fatalf("%s holds %d cards, want 5", seat, got)
		}
	}
	if len(bid.Stock) != 11 {
		t.Fatalf("stock = %d, want 11", len(bid.Stock))
	}
	if AwaitingSeat(bid) != domain.South {
		t.Fatalf("South bids first after West deals")
	}
}

func TestHumanBidding(t *testing.T) {
	svc := newTestService(t, 3)
	state := bidState(domain.West, domain.South)
	turned := state.Card.Suit
	other := domain.Hearts
	if turned == other {
		other = domain.Clubs
	}

	tests := []struct {
		name   string
		action *Action
		want   error
	}{
		{"Missing action", nil, ErrAwaitingHuman},
		{"Other seat", DeclineBid(domain.East), ErrNotYourTurn},
		{"Other suit in first round", AcceptBid(domain.South, other), ErrInvalidBidSuit},
		{"Playing a card", PlayCard(domain.South, state.Hands[domain.South][0]), ErrWrongPhase},
		{"Unknown kind", &Action{Kind: "double", Seat: domain.South}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, events, err := svc.Advance(state, tt.action)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if events != nil {
				t.Fatalf("rejected actions emit no events")
			}
			if _, ok := next.(domain.Bid1); !ok {
				t.Fatalf("rejected actions keep the state")
			}
		})
	}

	passed, events, err := svc.Advance(state, DeclineBid(domain.South))
	if err != nil {
		t.Fatalf("decline error: %v", err)
	}
	if passed.(domain.Bid1).Bids != 1 || events[0].Kind != EventBidPassed {
		t.Fatalf("decline should count a pass, got %+v", passed)
	}

	taken, events, err := svc.Advance(state, AcceptBid(domain.South, turned))
	if err != nil {
		t.Fatalf("accept error: %v", err)
	}
	deal, ok := taken.(domain.Deal2)
	if !ok || deal.Taker != domain.South || deal.Trump != turned || deal.Card == nil || *deal.Card != state.Card {
		t.Fatalf("unexpected deal2 %+v", taken)
	}
	if events[0].Kind != EventBidTaken {
		t.Fatalf("events = %+v", events)
	}
}

func TestSecondDealGivesTurnedCardToTaker(t *testing.T) {
	svc := newTestService(t, 4)
	bid := bidState(domain.West, domain.South)
	var state domain.State
	state, _, err := svc.Advance(bid, AcceptBid(domain.South, bid.Card.Suit))
	if err != nil {
		t.Fatalf("accept error: %v", err)
	}

	for i := 0; i < 12; i++ {
		if state, _, err = svc.Advance(state, nil); err != nil {
			t.Fatalf("deal step %d: %v", i, err)
		}
	}
	deal := state.(domain.Deal2)
	if len(deal.Stock) != 0 || deal.Card != nil {
		t.Fatalf("stock and turned card should be dealt: %+v", deal)
	}
	if !domain.ContainsCard(deal.Hands[domain.South], bid.Card) {
		t.Fatalf("taker should hold the turned card")
	}

	state, events, err := svc.Advance(state, nil)
	if err != nil {
		t.Fatalf("start play: %v", err)
	}
	running := state.(domain.Running)
	if running.Leader != domain.South || events[0].Kind != EventPlayStarted {
		t.Fatalf("leader = %s, want the seat after the dealer", running.Leader)
	}
	for _, seat := range domain.AllSeats {
		if len(running.Hands[seat]) != domain.HandSize {
			t.Fatalf("%s holds %d cards", seat, len(running.Hands[seat]))
		}
	}
}

func TestSecondRoundAllPassRedeals(t *testing.T) {
	svc := newTestService(t, 5)
	bid := bidState(domain.North, domain.NoSeat)
	state := domain.Bid2{Table: bid.Table, Stock: bid.Stock, Hands: bid.Hands, Bids: domain.NumSeats, Card: bid.Card}

	next, events, err := svc.Advance(state, nil)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	fresh, ok := next.(domain.Init)
	if !ok || fresh.Dealer != domain.West || fresh.RoundID == state.RoundID {
		t.Fatalf("expected a redeal by West, got %+v", next)
	}
	if events[0].Kind != EventBiddingAbandoned {
		t.Fatalf("events = %+v", events)
	}
}

func TestSecondRoundRejectsTurnedSuit(t *testing.T) {
	svc := newTestService(t, 6)
	bid := bidState(domain.West, domain.South)
	state := domain.Bid2{Table: bid.Table, Stock: bid.Stock, Hands: bid.Hands, Card: bid.Card}

	if _, _, err := svc.Advance(state, AcceptBid(domain.South, bid.Card.Suit)); !errors.Is(err, ErrInvalidBidSuit) {
		t.Fatalf("err = %v, want ErrInvalidBidSuit", err)
	}
	actions := LegalActions(state, domain.South)
	if len(actions) != 4 || actions[3].Kind != ActionDeclineBid {
		t.Fatalf("legal actions = %+v, want three suits and a pass", actions)
	}
	for _, a := range actions[:3] {
		if a.Suit == bid.Card.Suit {
			t.Fatalf("turned suit offered in the second round")
		}
	}
}

func TestHumanPlay(t *testing.T) {
	svc := newTestService(t, 7)
	state := humanTrick()

	var violation *RuleViolation
	if _, _, err := svc.Advance(state, PlayCard(domain.South, cards("7H")[0])); !errors.As(err, &violation) || violation.Reason != domain.ReasonMustOvertrump {
		t.Fatalf("err = %v, want must_overtrump", err)
	}
	if _, _, err := svc.Advance(state, PlayCard(domain.South, cards("7S")[0])); !errors.As(err, &violation) || violation.Reason != domain.ReasonMustPlayTrump {
		t.Fatalf("err = %v, want must_play_trump", err)
	}
	if _, _, err := svc.Advance(state, NextRound(domain.South)); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("err = %v, want ErrWrongPhase", err)
	}

	var next domain.State
	next, events, err := svc.Advance(state, PlayCard(domain.South, cards("JH")[0]))
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if len(state.Trick) != 1 || len(state.Hands[domain.South]) != 8 {
		t.Fatalf("the previous snapshot was mutated")
	}
	if payload := events[0].Payload.(CardPlayedPayload); payload.ToPlay != domain.East {
		t.Fatalf("next to play = %s, want east", payload.ToPlay)
	}

	if _, _, err := svc.Advance(next, PlayCard(domain.South, cards("7H")[0])); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn while a bot plays", err)
	}

	// East and North answer, then the trick is collected.
	for i := 0; i < 3; i++ {
		if next, events, err = svc.Advance(next, nil); err != nil {
			t.Fatalf("bot step %d: %v", i, err)
		}
	}
	running := next.(domain.Running)
	if events[0].Kind != EventTrickWon || running.Leader != domain.South || len(running.Ended) != 1 {
		t.Fatalf("South should win the trick with the jack: %+v", running)
	}
	if AwaitingSeat(running) != domain.South {
		t.Fatalf("South leads the next trick")
	}
	if _, _, err := svc.Advance(running, nil); !errors.Is(err, ErrAwaitingHuman) {
		t.Fatalf("err = %v, want ErrAwaitingHuman", err)
	}
}

func TestScoredWaitsForHuman(t *testing.T) {
	svc := newTestService(t, 8)
	deck := domain.NewDeck()
	ended := make([]domain.ArchivedTrick, domain.NumTricks)
	for i := range ended {
		ended[i] = domain.ArchivedTrick{Leader: domain.South, Winner: domain.South, Cards: deck[i*4 : i*4+4]}
	}
	state := domain.Scored{
		Table: domain.Table{RoundID: "r3", Names: testNames, Dealer: domain.West, HumanSeat: domain.South},
		Taker: domain.South,
		Trump: domain.Spades,
		Ended: ended,
		Score: domain.ScoreRound(ended, domain.Spades, domain.South),
	}

	if _, _, err := svc.Advance(state, nil); !errors.Is(err, ErrAwaitingHuman) {
		t.Fatalf("err = %v, want ErrAwaitingHuman", err)
	}
	if _, _, err := svc.Advance(state, PlayCard(domain.South, deck[0])); !errors.Is(err, ErrRoundComplete) {
		t.Fatalf("err = %v, want ErrRoundComplete", err)
	}
	next, _, err := svc.Advance(state, NextRound(domain.South))
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if fresh := next.(domain.Init); fresh.Dealer != domain.South || len(fresh.Stock) != domain.DeckSize {
		t.Fatalf("unexpected next round %+v", fresh)
	}
}

func TestBidAdvice(t *testing.T) {
	svc := newTestService(t, 9)
	bid := bidState(domain.West, domain.South)

	advice, err := svc.BidAdvice(bid, domain.South)
	if err != nil || len(advice) != 1 || advice[0].Trump != bid.Card.Suit {
		t.Fatalf("first round advice = %+v, %v", advice, err)
	}

	second := domain.Bid2{Table: bid.Table, Stock: bid.Stock, Hands: bid.Hands, Card: bid.Card}
	advice, err = svc.BidAdvice(second, domain.South)
	if err != nil || len(advice) != 3 {
		t.Fatalf("second round advice = %+v, %v", advice, err)
	}

	if _, err := svc.BidAdvice(humanTrick(), domain.South); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("err = %v, want ErrWrongPhase", err)
	}
}

func TestPlayOptionsMatchLegalActions(t *testing.T) {
	svc := newTestService(t, 10)
	state := humanTrick()

	options, err := svc.PlayOptions(state, domain.South)
	if err != nil {
		t.Fatalf("play options: %v", err)
	}
	actions := LegalActions(state, domain.South)
	if len(options) != 1 || len(actions) != 1 || options[0].Card != actions[0].Card {
		t.Fatalf("options %+v and actions %+v should both offer only JH", options, actions)
	}
	if _, err := svc.PlayOptions(state, domain.East); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
}

func TestViewForHidesOtherHands(t *testing.T) {
	state := humanTrick()
	v := ViewFor(state, domain.South)
	if len(v.Hand) != 8 || v.Hand[0] != state.Hands[domain.South][0] {
		t.Fatalf("view hand = %v", v.Hand)
	}
	if v.HandCounts[domain.West] != 7 || v.HandCounts[domain.North] != 8 {
		t.Fatalf("hand counts = %v", v.HandCounts)
	}
	if v.ToAct != domain.South || v.Trump == nil || *v.Trump != domain.Hearts || len(v.Legal) != 1 {
		t.Fatalf("unexpected view %+v", v)
	}

	north := ViewFor(state, domain.North)
	if len(north.Legal) != 0 {
		t.Fatalf("a seat waiting for its turn has no legal actions")
	}
}
