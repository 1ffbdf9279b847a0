package domain

import (
	"fmt"
	"math/rand"
)

const (
	// DeckSize is the number of cards in a Belote deck.
	DeckSize = 32
	// FirstDealCards is dealt before the turned card, five per seat.
	FirstDealCards = 20
	// HandSize is the number of cards each seat holds once dealing is over.
	HandSize = 8
	// NumTricks per round.
	NumTricks = 8
)

// NewDeck returns the 32 cards in suit-major enumeration order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range AllSuits {
		for _, f := range AllFaces {
			deck = append(deck, Card{Suit: s, Face: f})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealDestination returns the seat receiving the next card when cardsDealt
// cards have already been dealt in the current deal. Dealing starts on the
// seat after the dealer.
func DealDestination(dealer Seat, cardsDealt int) Seat {
	if cardsDealt < 0 || cardsDealt >= DeckSize {
		panic(fmt.Sprintf("domain: deal destination for %d dealt cards", cardsDealt))
	}
	return dealer.Relative(1 + cardsDealt)
}

// DrawCard pops the last card of the stock. The returned stock is a new slice.
func DrawCard(stock []Card) (Card, []Card) {
	if len(stock) == 0 {
		panic("domain: draw from empty stock")
	}
	rest := make([]Card, len(stock)-1)
	copy(rest, stock)
	return stock[len(stock)-1], rest
}
