package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestSortSuits(t *testing.T) {
	tests := []struct {
		name     string
		suits    []Suit
		expected []Suit
	}{
		{"All suits", []Suit{Spades, Hearts, Clubs, Diamonds}, []Suit{Diamonds, Spades, Hearts, Clubs}},
		{"Three suits", []Suit{Clubs, Spades, Hearts}, []Suit{Clubs, Hearts, Spades}},
		{"Same color", []Suit{Clubs, Spades}, []Suit{Spades, Clubs}},
		{"Single", []Suit{Hearts}, []Suit{Hearts}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortSuits(tt.suits)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSortHand(t *testing.T) {
	hand := cards("AS", "JH", "7C", "9H", "7H", "10S", "AH")

	got := SortHand(hand, []Suit{Hearts})
	want := cards("7C", "7H", "AH", "9H", "JH", "10S", "AS")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = SortHand(hand, nil)
	want = cards("7C", "7H", "9H", "JH", "AH", "10S", "AS")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if hand[0] != card("AS") {
		t.Fatalf("input hand was modified")
	}
}

func TestSortHandIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	trumpSets := [][]Suit{nil, {Spades}, {Diamonds}, AllSuits}
	for i := 0; i < 200; i++ {
		deck := ShuffleDeck(NewDeck(), rng)
		hand := deck[:rng.Intn(HandSize)+1]
		for _, trumps := range trumpSets {
			once := SortHand(hand, trumps)
			twice := SortHand(once, trumps)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("sort not idempotent for %v with %v: %v then %v", hand, trumps, once, twice)
			}
		}
	}
}
