package domain

const (
	// TotalPoints is the sum of every card value plus the last trick bonus.
	TotalPoints = 162
	// CapotPoints is awarded to a team taking every trick.
	CapotPoints = 252
	// ContractThreshold is the minimum the taker's team must reach.
	ContractThreshold = 81
	// LastTrickBonus goes to the winner of the eighth trick.
	LastTrickBonus = 10
	// BelotePoints rewards the seat that played both trump king and queen.
	BelotePoints = 20
)

// RoundScore is the outcome of a finished round.
type RoundScore struct {
	// Seats holds the raw card points won by each seat.
	Seats [NumSeats]int `json:"seats"`
	// Teams holds the final team totals after every override and bonus.
	Teams          [2]int `json:"teams"`
	BeloteSeat     Seat   `json:"belote_seat"`
	Capot          int    `json:"capot"` // team index, -1 when no team took every trick
	ContractFailed bool   `json:"contract_failed"`
}

// HandScore sums the values of the tricks won by seat, plus the last trick bonus.
func HandScore(ended []ArchivedTrick, trump Suit, seat Seat) int {
	total := 0
	for i, t := range ended {
		if t.Winner != seat {
			continue
		}
		for _, c := range t.Cards {
			total += c.Value(trump)
		}
		if i == NumTricks-1 {
			total += LastTrickBonus
		}
	}
	return total
}

// ScoreRound computes the round score. Capot replaces the raw totals with
// 252 to 0; otherwise a taker team below 81 scores 0 and the defence 162.
// The belote bonus is added last.
func ScoreRound(ended []ArchivedTrick, trump Suit, taker Seat) RoundScore {
	score := RoundScore{BeloteSeat: BeloteSeat(ended, trump), Capot: -1}
	for _, seat := range AllSeats {
		score.Seats[seat] = HandScore(ended, trump, seat)
		score.Teams[seat.Team()] += score.Seats[seat]
	}

	takerTeam := taker.Team()
	if team, ok := capotTeam(ended); ok {
		score.Capot = team
		score.Teams[team] = CapotPoints
		score.Teams[1-team] = 0
	} else if score.Teams[takerTeam] < ContractThreshold {
		score.ContractFailed = true
		score.Teams[takerTeam] = 0
		score.Teams[1-takerTeam] = TotalPoints
	}

	if score.BeloteSeat != NoSeat {
		score.Teams[score.BeloteSeat.Team()] += BelotePoints
	}
	return score
}

// BeloteSeat returns the seat that played both the king and the queen of
// trump, or NoSeat.
func BeloteSeat(ended []ArchivedTrick, trump Suit) Seat {
	king, queen := NoSeat, NoSeat
	for _, t := range ended {
		for i, c := range t.Cards {
			if c.Suit != trump {
				continue
			}
			switch c.Face {
			case King:
				king = t.PlayedBy(i)
			case Queen:
				queen = t.PlayedBy(i)
			}
		}
	}
	if king != NoSeat && king == queen {
		return king
	}
	return NoSeat
}

func capotTeam(ended []ArchivedTrick) (int, bool) {
	if len(ended) != NumTricks {
		return 0, false
	}
	team := ended[0].Winner.Team()
	for _, t := range ended[1:] {
		if t.Winner.Team() != team {
			return 0, false
		}
	}
	return team, true
}
