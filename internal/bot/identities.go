package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"belote/internal/domain"
)

type BotIdentity struct {
	Seat        domain.Seat `json:"seat"`
	DisplayName string      `json:"display_name"`
	Level       BotLevel    `json:"level,omitempty"` // "heuristic", "random"; empty uses the configured level
}

// DefaultIdentities seat the bots around a human sitting South.
var DefaultIdentities = []BotIdentity{
	{Seat: domain.North, DisplayName: "Partenaire"},
	{Seat: domain.East, DisplayName: "Adversaire de droite"},
	{Seat: domain.West, DisplayName: "Adversaire de gauche"},
}

var (
	botIdentities []BotIdentity
	botSeatMap    map[domain.Seat]BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path. An empty path
// keeps the default identities.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		identities := DefaultIdentities
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("failed to read bot identities: %w", err)
				return
			}
			identities = nil
			if err := json.Unmarshal(data, &identities); err != nil {
				loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
				return
			}
		}
		setIdentities(identities)
	})
	return loadErr
}

func setIdentities(identities []BotIdentity) {
	botIdentities = identities
	botSeatMap = make(map[domain.Seat]BotIdentity, len(identities))
	for _, identity := range identities {
		if identity.Seat.Valid() {
			botSeatMap[identity.Seat] = identity
		}
	}
}

// GetBotIdentity returns the identity of the bot sitting at seat. Seats
// without a configured bot get a generated name.
func GetBotIdentity(seat domain.Seat) BotIdentity {
	if identity, ok := botSeatMap[seat]; ok {
		return identity
	}
	for _, identity := range DefaultIdentities {
		if identity.Seat == seat {
			return identity
		}
	}
	return BotIdentity{
		Seat:        seat,
		DisplayName: fmt.Sprintf("Bot %s", seat),
	}
}

// GetBotDisplayName returns the display name of the bot at seat.
func GetBotDisplayName(seat domain.Seat) string {
	return GetBotIdentity(seat).DisplayName
}

// TableNames returns the names of all seats, with human at humanSeat.
func TableNames(human string, humanSeat domain.Seat) [domain.NumSeats]string {
	var names [domain.NumSeats]string
	for _, seat := range domain.AllSeats {
		if seat == humanSeat {
			names[seat] = human
			continue
		}
		names[seat] = GetBotDisplayName(seat)
	}
	return names
}
