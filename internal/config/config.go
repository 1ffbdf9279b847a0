package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// RiskRange bounds the random risk a bot accepts when bidding.
type RiskRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type GameConfig struct {
	// BidCeiling is the hand strength a bot must exceed, less its risk, to take.
	BidCeiling int       `json:"bid_ceiling"`
	Round1Risk RiskRange `json:"round1_risk"`
	Round2Risk RiskRange `json:"round2_risk"`
	// BotLevel applies to bot seats whose identity does not name one.
	BotLevel          string `json:"bot_level"`
	BotIdentitiesPath string `json:"bot_identities_path"`

	TickRate            int `json:"tick_rate"`
	DealDelayTicks      int `json:"deal_delay_ticks"`
	BotDelayTicks       int `json:"bot_delay_ticks"`
	AwarenessDelayTicks int `json:"awareness_delay_ticks"`

	SnapshotIssuer     string `json:"snapshot_issuer"`
	SnapshotTTLSeconds int    `json:"snapshot_ttl_seconds"`

	// StrictInvariants panics on a card conservation failure instead of logging it.
	StrictInvariants bool `json:"strict_invariants"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the configuration used when no file was loaded.
func Default() *GameConfig {
	return &GameConfig{
		BidCeiling:          7,
		Round1Risk:          RiskRange{Min: 1, Max: 3},
		Round2Risk:          RiskRange{Min: 0, Max: 2},
		BotLevel:            "heuristic",
		TickRate:            10,
		DealDelayTicks:      2,
		BotDelayTicks:       10,
		AwarenessDelayTicks: 20,
		SnapshotIssuer:      "belote",
		SnapshotTTLSeconds:  24 * 60 * 60,
	}
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseGameConfig decodes data over the defaults, so omitted fields keep
// their default value.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *GameConfig) Validate() error {
	if c.Round1Risk.Min > c.Round1Risk.Max || c.Round2Risk.Min > c.Round2Risk.Max {
		return fmt.Errorf("invalid game config: risk range min above max")
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("invalid game config: tick_rate must be positive")
	}
	if c.DealDelayTicks < 0 || c.BotDelayTicks < 0 || c.AwarenessDelayTicks < 0 {
		return fmt.Errorf("invalid game config: negative delay")
	}
	return nil
}

// GetGameConfig returns the global game configuration, or the defaults when
// none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// SnapshotTTL is how long a sealed round snapshot stays valid.
func (c *GameConfig) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}
