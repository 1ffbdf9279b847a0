package bot

import (
	"math/rand"
	"testing"

	"belote/internal/domain"
)

func running(trump domain.Suit, leader, seat domain.Seat, hand, trick []domain.Card) domain.Running {
	var hands domain.Hands
	hands[seat] = hand
	return domain.Running{
		Table:  domain.Table{Dealer: leader.Relative(-1), HumanSeat: domain.NoSeat},
		Hands:  hands,
		Taker:  domain.East,
		Trump:  trump,
		Leader: leader,
		Trick:  trick,
	}
}

func TestChoosePlay(t *testing.T) {
	tests := []struct {
		name   string
		trump  domain.Suit
		leader domain.Seat
		hand   []domain.Card
		trick  []domain.Card
		want   string
		score  int
		tag    ThoughtTag
		rule   string
	}{
		{
			name:   "Only higher trump is locked",
			trump:  domain.Spades,
			leader: domain.West,
			hand:   cards("JS", "7S", "8H"),
			trick:  cards("QS"),
			want:   "JS",
			score:  9,
			tag:    TagOnlyHigherTrump,
			rule:   "TrumpLed",
		},
		{
			name:   "Void without trump plays the lowest value",
			trump:  domain.Spades,
			leader: domain.West,
			hand:   cards("KD", "7C", "10C"),
			trick:  cards("AH"),
			want:   "7C",
			score:  9,
			tag:    TagLowestValue,
			rule:   "CannotFollow",
		},
		{
			name:   "Partner winning and void discards a plain card",
			trump:  domain.Spades,
			leader: domain.North,
			hand:   cards("8S", "KC", "7D"),
			trick:  cards("AH", "7H"),
			want:   "7D",
			score:  9,
			tag:    TagDiscard,
			rule:   "CannotFollow",
		},
		{
			name:   "Single card of the asked suit",
			trump:  domain.Spades,
			leader: domain.West,
			hand:   cards("AS", "KH", "7C"),
			trick:  cards("10H"),
			want:   "KH",
			score:  9,
			tag:    TagOnlyAskedCard,
			rule:   "SingleAskedCard",
		},
		{
			name:   "Leader plays an untouched master card",
			trump:  domain.Spades,
			leader: domain.South,
			hand:   cards("7C", "AH", "8D"),
			want:   "AH",
			score:  8,
			tag:    TagMasterCard,
			rule:   "Lead",
		},
		{
			name:   "Master trump beats a lower trump lead",
			trump:  domain.Hearts,
			leader: domain.West,
			hand:   cards("JH", "9H"),
			trick:  cards("8H"),
			want:   "JH",
			score:  9,
			tag:    TagHighestMasterTrump,
			rule:   "TrumpLed",
		},
		{
			name:   "Partner winning keeps the boss and gives points",
			trump:  domain.Spades,
			leader: domain.North,
			hand:   cards("AH", "KH", "7C"),
			trick:  cards("JS", "7S"),
			want:   "KH",
			score:  9,
			tag:    TagDumpPoints,
			rule:   "TrumpLed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := running(tt.trump, tt.leader, domain.South, tt.hand, tt.trick)
			choice := ChoosePlay(state, domain.South)
			if choice.Card != card(tt.want) {
				t.Fatalf("played %s, want %s (options %+v)", choice.Card, tt.want, choice.Options)
			}
			if choice.Score != tt.score {
				t.Errorf("score = %d, want %d", choice.Score, tt.score)
			}
			if choice.CoverageGap {
				t.Errorf("unexpected coverage gap")
			}
			if choice.Rule != tt.rule {
				t.Errorf("rule = %q, want %q", choice.Rule, tt.rule)
			}
			found := false
			for _, opt := range choice.Options {
				if opt.Card != choice.Card {
					continue
				}
				for _, th := range opt.Thoughts {
					found = found || th.Tag == tt.tag
				}
			}
			if !found {
				t.Errorf("expected thought %s on the chosen card", tt.tag)
			}
		})
	}
}

func TestChoosePlayCoverageGap(t *testing.T) {
	state := running(domain.Spades, domain.South, domain.South, cards("KH"), nil)
	choice := ChoosePlay(state, domain.South)
	if !choice.CoverageGap || choice.Card != card("KH") {
		t.Fatalf("expected coverage gap on KH, got %+v", choice)
	}
}

func TestThinkStartsWithTrumpCount(t *testing.T) {
	state := running(domain.Hearts, domain.South, domain.South, cards("7C", "8C"), nil)
	thoughts := Think(state, domain.South)
	if len(thoughts) == 0 || thoughts[0].Tag != TagTrumpCount || thoughts[0].Card != nil {
		t.Fatalf("first thought = %+v, want an untargeted trump count", thoughts)
	}
}

func TestPlayOptionsAreLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		deck := domain.ShuffleDeck(domain.NewDeck(), rng)
		var hands domain.Hands
		for i, seat := range domain.AllSeats {
			hands[seat] = deck[i*domain.HandSize : (i+1)*domain.HandSize]
		}
		state := domain.Running{
			Table:  domain.Table{HumanSeat: domain.NoSeat},
			Hands:  hands,
			Taker:  domain.AllSeats[rng.Intn(domain.NumSeats)],
			Trump:  domain.AllSuits[rng.Intn(len(domain.AllSuits))],
			Leader: domain.AllSeats[rng.Intn(domain.NumSeats)],
		}

		for len(state.Trick) < domain.NumSeats {
			seat := state.ToPlay()
			options := PlayOptions(state, seat)
			legal := domain.LegalPlays(state)
			if len(options) != len(legal) {
				t.Fatalf("round %d: %d options for %d legal cards", round, len(options), len(legal))
			}
			for i, opt := range options {
				if opt.Card != legal[i] {
					t.Fatalf("round %d: option %d is %s, want %s", round, i, opt.Card, legal[i])
				}
			}
			choice := ChoosePlay(state, seat)
			if reason := domain.LegalReason(state, seat, choice.Card); reason != domain.ReasonNone {
				t.Fatalf("round %d: advisor played illegal %s: %s", round, choice.Card, reason)
			}
			state.Hands = state.Hands.With(seat, domain.RemoveCard(state.Hands[seat], choice.Card))
			state.Trick = append(append([]domain.Card(nil), state.Trick...), choice.Card)
		}
	}
}
