package domain

// ArchivedTrick is a completed trick together with who led and who won it.
type ArchivedTrick struct {
	Leader Seat   `json:"leader"`
	Winner Seat   `json:"winner"`
	Cards  []Card `json:"cards"`
}

// PlayedBy returns the seat that played the card at index i of the trick.
func (t ArchivedTrick) PlayedBy(i int) Seat { return t.Leader.Relative(i) }

// Beats reports whether a wins over b in a trick where asked is the suit led.
// A trump beats any plain card, two trumps compare by trump rank, and two
// cards of the asked suit compare by plain rank. Off-suit discards never win.
func Beats(a, b Card, asked, trump Suit) bool {
	switch {
	case a.Suit == trump && b.Suit != trump:
		return true
	case a.Suit == trump && b.Suit == trump:
		return a.Face.TrumpRank() > b.Face.TrumpRank()
	case b.Suit == trump:
		return false
	case a.Suit == asked && b.Suit == asked:
		return a.Face.PlainRank() > b.Face.PlainRank()
	default:
		return a.Suit == asked && b.Suit != asked
	}
}

// WinningIndex returns the position of the card currently winning the trick.
// It works on partial tricks too.
func WinningIndex(cards []Card, trump Suit) int {
	if len(cards) == 0 {
		panic("domain: winning card of an empty trick")
	}
	asked := cards[0].Suit
	best := 0
	for i := 1; i < len(cards); i++ {
		if Beats(cards[i], cards[best], asked, trump) {
			best = i
		}
	}
	return best
}

// WinningCard returns the card currently winning the trick.
func WinningCard(cards []Card, trump Suit) Card {
	return cards[WinningIndex(cards, trump)]
}

// TrickWinner returns the seat holding the winning card of a trick led by leader.
func TrickWinner(leader Seat, cards []Card, trump Suit) Seat {
	return leader.Relative(WinningIndex(cards, trump))
}

// HighestTrump returns the highest trump in cards and whether one was found.
func HighestTrump(cards []Card, trump Suit) (Card, bool) {
	var best Card
	found := false
	for _, c := range cards {
		if c.Suit != trump {
			continue
		}
		if !found || c.Face.TrumpRank() > best.Face.TrumpRank() {
			best = c
			found = true
		}
	}
	return best, found
}
