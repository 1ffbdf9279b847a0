package domain

// Reason explains why a card cannot be played. ReasonNone means the play is legal.
type Reason string

const (
	ReasonNone Reason = ""

	// State level rejections.
	ReasonWrongPhase    Reason = "wrong_phase"
	ReasonNotYourTurn   Reason = "not_your_turn"
	ReasonTrickComplete Reason = "trick_complete"
	ReasonCardNotInHand Reason = "card_not_in_hand"

	// Trick rules.
	ReasonMustPlayTrump             Reason = "must_play_trump"
	ReasonMustOvertrump             Reason = "must_overtrump"
	ReasonMustFollowSuit            Reason = "must_follow_suit"
	ReasonCannotCutWhileHoldingSuit Reason = "cannot_cut_while_holding_suit"
	ReasonMustCut                   Reason = "must_cut"
	ReasonMustOvertrumpCut          Reason = "must_overtrump_cut"
)

var reasonMessages = map[Reason]string{
	ReasonWrongPhase:                "No card can be played right now.",
	ReasonNotYourTurn:               "It is not your turn to play.",
	ReasonTrickComplete:             "The trick is complete, wait for it to be collected.",
	ReasonCardNotInHand:             "This card is not in your hand.",
	ReasonMustPlayTrump:             "You must play trump.",
	ReasonMustOvertrump:             "You must play a higher trump.",
	ReasonMustFollowSuit:            "You must follow the suit that was led.",
	ReasonCannotCutWhileHoldingSuit: "You cannot trump while you hold the suit that was led.",
	ReasonMustCut:                   "You must trump.",
	ReasonMustOvertrumpCut:          "You must trump higher than the cut already played.",
}

// Message returns the sentence shown to a player for the reason.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// LegalReason reports why seat cannot play card in state, or ReasonNone when it can.
func LegalReason(state State, seat Seat, card Card) Reason {
	running, ok := state.(Running)
	if !ok {
		return ReasonWrongPhase
	}
	if running.TrickComplete() {
		return ReasonTrickComplete
	}
	if running.ToPlay() != seat {
		return ReasonNotYourTurn
	}
	hand := running.Hands[seat]
	if !ContainsCard(hand, card) {
		return ReasonCardNotInHand
	}
	return PlayReason(hand, running.Trick, running.Leader, seat, running.Trump, card)
}

// PlayReason applies the trick rules to a card taken from hand. trick holds
// the cards already played in order, starting with leader's.
func PlayReason(hand, trick []Card, leader, seat Seat, trump Suit, card Card) Reason {
	if len(trick) == 0 {
		return ReasonNone
	}
	asked := trick[0].Suit

	if asked == trump {
		if card.Suit != trump {
			if HasSuit(hand, trump) {
				return ReasonMustPlayTrump
			}
			return ReasonNone
		}
		if mustRaise(hand, trick, trump, card) {
			return ReasonMustOvertrump
		}
		return ReasonNone
	}

	if HasSuit(hand, asked) {
		switch {
		case card.Suit == asked:
			return ReasonNone
		case card.Suit == trump:
			return ReasonCannotCutWhileHoldingSuit
		default:
			return ReasonMustFollowSuit
		}
	}

	if PartnerWinning(trick, leader, seat, trump) {
		return ReasonNone
	}
	if !HasSuit(hand, trump) {
		return ReasonNone
	}
	if card.Suit != trump {
		return ReasonMustCut
	}
	if mustRaise(hand, trick, trump, card) {
		return ReasonMustOvertrumpCut
	}
	return ReasonNone
}

// mustRaise reports whether card is a trump that does not beat the highest
// trump of the trick while hand holds one that does.
func mustRaise(hand, trick []Card, trump Suit, card Card) bool {
	highest, found := HighestTrump(trick, trump)
	if !found || card.Face.TrumpRank() > highest.Face.TrumpRank() {
		return false
	}
	for _, c := range hand {
		if c.Suit == trump && c.Face.TrumpRank() > highest.Face.TrumpRank() {
			return true
		}
	}
	return false
}

// PartnerWinning reports whether the partner of seat currently holds the
// winning card of the trick.
func PartnerWinning(trick []Card, leader, seat Seat, trump Suit) bool {
	if len(trick) == 0 {
		return false
	}
	return TrickWinner(leader, trick, trump) == seat.Partner()
}

// LegalCards returns the cards of hand that seat may play, in hand order.
func LegalCards(hand, trick []Card, leader, seat Seat, trump Suit) []Card {
	var out []Card
	for _, c := range hand {
		if PlayReason(hand, trick, leader, seat, trump, c) == ReasonNone {
			out = append(out, c)
		}
	}
	return out
}

// LegalPlays returns the cards the seat to play may choose in a running round.
func LegalPlays(s Running) []Card {
	if s.TrickComplete() {
		return nil
	}
	seat := s.ToPlay()
	return LegalCards(s.Hands[seat], s.Trick, s.Leader, seat, s.Trump)
}
