package config

import (
	"testing"
	"time"
)

func TestParseGameConfigKeepsDefaults(t *testing.T) {
	c, err := ParseGameConfig([]byte(`{"bid_ceiling": 8, "bot_level": "random"}`))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if c.BidCeiling != 8 || c.BotLevel != "random" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	def := Default()
	if c.Round1Risk != def.Round1Risk || c.TickRate != def.TickRate {
		t.Fatalf("omitted fields lost their defaults: %+v", c)
	}
}

func TestParseGameConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed JSON", `{"bid_ceiling":`},
		{"Inverted risk", `{"round1_risk": {"min": 3, "max": 1}}`},
		{"Zero tick rate", `{"tick_rate": 0}`},
		{"Negative delay", `{"bot_delay_ticks": -1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGameConfig([]byte(tt.data)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestGetGameConfigFallsBackToDefault(t *testing.T) {
	if GetGameConfig().BidCeiling != Default().BidCeiling {
		t.Fatalf("unexpected fallback config: %+v", GetGameConfig())
	}
	if got := Default().SnapshotTTL(); got != 24*time.Hour {
		t.Fatalf("SnapshotTTL = %v, want 24h", got)
	}
}
