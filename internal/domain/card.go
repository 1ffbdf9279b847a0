package domain

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits. The numeric order is the display order.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// AllSuits lists every suit in enumeration order.
var AllSuits = []Suit{Spades, Hearts, Clubs, Diamonds}

// Color is the binary color of a suit.
type Color int

const (
	Black Color = iota
	Red
)

var suitLetters = [...]string{"S", "H", "C", "D"}
var suitSymbols = [...]string{"♠", "♥", "♣", "♦"}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool { return s >= Spades && s <= Diamonds }

// Color returns black for spades and clubs, red otherwise.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Letter returns the single letter code used in text encodings.
func (s Suit) Letter() string {
	if !s.Valid() {
		return "?"
	}
	return suitLetters[s]
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitSymbols[s]
}

// ParseSuit accepts a suit letter or symbol.
func ParseSuit(text string) (Suit, error) {
	for _, s := range AllSuits {
		if strings.EqualFold(text, suitLetters[s]) || text == suitSymbols[s] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", text)
}

// Face is the face value of a card, Seven through Ace.
type Face int

const (
	Seven Face = iota
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// AllFaces lists every face in enumeration order.
var AllFaces = []Face{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

type faceInfo struct {
	symbol     string
	plainRank  int
	plainValue int
	trumpRank  int
	trumpValue int
}

// faceTable is the single source of truth for every comparison and every point count.
var faceTable = [...]faceInfo{
	Seven: {"7", 1, 0, 1, 0},
	Eight: {"8", 2, 0, 2, 0},
	Nine:  {"9", 3, 0, 7, 14},
	Ten:   {"10", 7, 10, 5, 10},
	Jack:  {"J", 4, 2, 8, 20},
	Queen: {"Q", 5, 3, 3, 3},
	King:  {"K", 6, 4, 4, 4},
	Ace:   {"A", 8, 11, 6, 11},
}

func (f Face) Valid() bool { return f >= Seven && f <= Ace }

func (f Face) PlainRank() int  { return faceTable[f].plainRank }
func (f Face) PlainValue() int { return faceTable[f].plainValue }
func (f Face) TrumpRank() int  { return faceTable[f].trumpRank }
func (f Face) TrumpValue() int { return faceTable[f].trumpValue }

func (f Face) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceTable[f].symbol
}

// ParseFace accepts "7".."10", "J", "Q", "K", "A".
func ParseFace(text string) (Face, error) {
	for _, f := range AllFaces {
		if strings.EqualFold(text, faceTable[f].symbol) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown face %q", text)
}

// Card is a value type; two cards with the same suit and face are the same card.
type Card struct {
	Suit Suit
	Face Face
}

// IsTrump reports whether the card belongs to the trump suit.
func (c Card) IsTrump(trump Suit) bool { return c.Suit == trump }

// Rank returns the trump rank for trump cards and the plain rank otherwise.
func (c Card) Rank(trump Suit) int {
	if c.Suit == trump {
		return c.Face.TrumpRank()
	}
	return c.Face.PlainRank()
}

// Value returns the point value of the card under the given trump.
func (c Card) Value(trump Suit) int {
	if c.Suit == trump {
		return c.Face.TrumpValue()
	}
	return c.Face.PlainValue()
}

// String renders the card for display, e.g. "J♥".
func (c Card) String() string { return c.Face.String() + c.Suit.String() }

// Code renders the card in its ASCII form, e.g. "JH" or "10S".
func (c Card) Code() string { return c.Face.String() + c.Suit.Letter() }

// ParseCard reads the ASCII form produced by Code. The suit symbol is also accepted.
func ParseCard(text string) (Card, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", text)
	}
	// Suit symbols are multi-byte, so split on the last rune.
	runes := []rune(text)
	face, err := ParseFace(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", text, err)
	}
	suit, err := ParseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", text, err)
	}
	return Card{Suit: suit, Face: face}, nil
}

// MarshalText implements encoding.TextMarshaler so cards appear as "JH" in JSON.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Suit.Valid() || !c.Face.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Suit, c.Face)
	}
	return []byte(c.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(data []byte) error {
	parsed, err := ParseCard(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ContainsCard reports whether card is present in cards.
func ContainsCard(cards []Card, card Card) bool {
	return IndexOf(cards, card) >= 0
}

// IndexOf returns the position of card in cards, or -1.
func IndexOf(cards []Card, card Card) int {
	for i, c := range cards {
		if c == card {
			return i
		}
	}
	return -1
}

// RemoveCard returns a copy of hand without card. The input is left untouched.
func RemoveCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c != card {
			out = append(out, c)
		}
	}
	return out
}

// CardsOfSuit returns the cards of the given suit, preserving order.
func CardsOfSuit(cards []Card, suit Suit) []Card {
	var out []Card
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// HasSuit reports whether any card in cards has the given suit.
func HasSuit(cards []Card, suit Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler using the suit letter.
func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return []byte(s.Letter()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Suit) UnmarshalText(data []byte) error {
	parsed, err := ParseSuit(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
