package domain

import "sort"

// SortHand returns a new slice holding the hand in display order. Suit groups
// alternate colors where possible; inside a group cards are ordered by trump
// rank when the suit is one of trumps, by plain rank otherwise.
// Sorting an already sorted hand returns the same order.
func SortHand(hand []Card, trumps []Suit) []Card {
	order := SortSuits(presentSuits(hand))
	position := make(map[Suit]int, len(order))
	for i, s := range order {
		position[s] = i
	}

	out := make([]Card, len(hand))
	copy(out, hand)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Suit != b.Suit {
			return position[a.Suit] < position[b.Suit]
		}
		if containsSuit(trumps, a.Suit) {
			return a.Face.TrumpRank() < b.Face.TrumpRank()
		}
		return a.Face.PlainRank() < b.Face.PlainRank()
	})
	return out
}

// SortSuits orders suits so that neighbours differ in color when possible.
// The input is first put in enumeration order; the last suit seeds the result,
// then each step appends the first remaining suit whose color differs from the
// last placed one, or prepends the last remaining suit when none does.
func SortSuits(suits []Suit) []Suit {
	remaining := make([]Suit, len(suits))
	copy(remaining, suits)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i] < remaining[j] })

	out := make([]Suit, 0, len(remaining))
	for len(remaining) > 0 {
		if len(out) == 0 {
			out = append(out, remaining[len(remaining)-1])
			remaining = remaining[:len(remaining)-1]
			continue
		}
		lastColor := out[len(out)-1].Color()
		picked := -1
		for i, s := range remaining {
			if s.Color() != lastColor {
				picked = i
				break
			}
		}
		if picked >= 0 {
			out = append(out, remaining[picked])
			remaining = append(remaining[:picked:picked], remaining[picked+1:]...)
			continue
		}
		out = append([]Suit{remaining[len(remaining)-1]}, out...)
		remaining = remaining[:len(remaining)-1]
	}
	return out
}

func presentSuits(cards []Card) []Suit {
	var suits []Suit
	for _, c := range cards {
		if !containsSuit(suits, c.Suit) {
			suits = append(suits, c.Suit)
		}
	}
	return suits
}

func containsSuit(suits []Suit, s Suit) bool {
	for _, candidate := range suits {
		if candidate == s {
			return true
		}
	}
	return false
}
