package domain

import "fmt"

// Seat is a position at the table. Play rotates South, East, North, West.
// East sits on South's right, North is South's partner.
type Seat int

const (
	South Seat = iota
	East
	North
	West
)

// NoSeat marks the absence of a seat, e.g. a table without a human player.
const NoSeat Seat = -1

// NumSeats is the number of players at a Belote table.
const NumSeats = 4

// AllSeats lists the seats in play order.
var AllSeats = []Seat{South, East, North, West}

var seatNames = [...]string{"south", "east", "north", "west"}

func (s Seat) Valid() bool { return s >= South && s <= West }

// Relative returns the seat the given number of steps after s in play order.
func (s Seat) Relative(steps int) Seat {
	if !s.Valid() {
		panic(fmt.Sprintf("domain: relative seat from %d", s))
	}
	return Seat(((int(s)+steps)%NumSeats + NumSeats) % NumSeats)
}

// Next returns the seat that plays after s.
func (s Seat) Next() Seat { return s.Relative(1) }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return s.Relative(2) }

// Team returns 0 for South/North and 1 for East/West.
func (s Seat) Team() int { return int(s) % 2 }

func (s Seat) String() string {
	if !s.Valid() {
		return "none"
	}
	return seatNames[s]
}

// ParseSeat is the inverse of String.
func ParseSeat(text string) (Seat, error) {
	for i, name := range seatNames {
		if name == text {
			return Seat(i), nil
		}
	}
	if text == "none" {
		return NoSeat, nil
	}
	return NoSeat, fmt.Errorf("unknown seat %q", text)
}

// MarshalText implements encoding.TextMarshaler.
func (s Seat) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seat) UnmarshalText(data []byte) error {
	parsed, err := ParseSeat(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
