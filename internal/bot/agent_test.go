package bot

import (
	"math/rand"
	"testing"

	"belote/internal/domain"
)

func TestNewBrain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		level   BotLevel
		wantErr bool
	}{
		{BotLevelHeuristic, false},
		{BotLevelRandom, false},
		{"", false},
		{"godlike", true},
	}
	for _, tt := range tests {
		brain, err := NewBrain(tt.level, DefaultTuning, rng)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewBrain(%q) expected error", tt.level)
			}
			continue
		}
		if err != nil || brain == nil {
			t.Errorf("NewBrain(%q) = %v, %v", tt.level, brain, err)
		}
	}
}

func TestRandomBotPlaysLegalCards(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	brain, err := NewBrain(BotLevelRandom, DefaultTuning, rng)
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	state := running(domain.Hearts, domain.West, domain.South, cards("7H", "JH", "AC", "KS"), cards("9H"))
	for i := 0; i < 20; i++ {
		choice := brain.ChoosePlay(state, domain.South)
		if choice.Card != card("JH") {
			t.Fatalf("random bot played %s, only JH overtrumps", choice.Card)
		}
	}

	bid := brain.BidSecondRound(cards("7C", "8C", "9C", "10C", "JC"), card("7S"))
	if bid.Trump == domain.Spades {
		t.Fatalf("random bot named the turned suit")
	}
}

func TestAgentBid(t *testing.T) {
	brain, _ := NewBrain(BotLevelHeuristic, fixedTuning(), rand.New(rand.NewSource(1)))
	agent := &Agent{Seat: domain.East, Name: "Adversaire de droite", Strategy: brain}

	var hands domain.Hands
	hands[domain.East] = cards("JS", "9S", "AS", "8S", "7H")
	bid1 := domain.Bid1{
		Table: domain.Table{Dealer: domain.South, HumanSeat: domain.South},
		Hands: hands,
		Card:  card("7S"),
	}
	decision, err := agent.Bid(bid1)
	if err != nil {
		t.Fatalf("Bid: %v", err)
	}
	if !decision.Take || decision.Trump != domain.Spades {
		t.Errorf("expected East to take spades, got %+v", decision)
	}

	bid1.Bids = 1
	if _, err := agent.Bid(bid1); err == nil {
		t.Errorf("expected an error when bidding out of turn")
	}
	if _, err := agent.Bid(domain.Init{}); err == nil {
		t.Errorf("expected an error when bidding outside the bidding phases")
	}
}

func TestAgentPlayOutOfTurn(t *testing.T) {
	brain, _ := NewBrain(BotLevelHeuristic, DefaultTuning, rand.New(rand.NewSource(1)))
	agent := &Agent{Seat: domain.North, Strategy: brain}
	state := running(domain.Spades, domain.South, domain.South, cards("7C"), nil)
	if _, err := agent.Play(state); err == nil {
		t.Fatalf("expected an error when North plays on South's turn")
	}
}

func TestTableNames(t *testing.T) {
	names := TableNames("Alice", domain.South)
	want := [domain.NumSeats]string{"Alice", "Adversaire de droite", "Partenaire", "Adversaire de gauche"}
	if names != want {
		t.Fatalf("TableNames = %v, want %v", names, want)
	}
}

func TestConfiguredIdentities(t *testing.T) {
	setIdentities([]BotIdentity{{Seat: domain.North, DisplayName: "Marcel", Level: BotLevelRandom}})
	t.Cleanup(func() { setIdentities(nil) })

	if got := GetBotIdentity(domain.North); got.DisplayName != "Marcel" || got.Level != BotLevelRandom {
		t.Errorf("North identity = %+v", got)
	}
	if got := GetBotDisplayName(domain.West); got != "Adversaire de gauche" {
		t.Errorf("West falls back to its default name, got %q", got)
	}
}
