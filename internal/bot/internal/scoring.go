package internal

import "math/rand"

// BidWeights are the points a card contributes to a hand's bidding strength.
type BidWeights struct {
	TrumpJack         int
	TrumpNine         int
	TrumpAce          int
	TrumpAceSupported int // replaces TrumpAce when more than two other trumps are held
	ExtraTrump        int
	Belote            int
	PlainAce          int
	GuardedTen        int
}

// PlayWeights tune the score deltas of the play advisor.
type PlayWeights struct {
	Locked int

	// Leading a trump.
	LastTrumpHolder    int
	MasterTrump        int
	TakerTeamTrumps    int
	TrumpMajority      int
	PartnerSecondTrump int
	NullTrump          int
	LowTrump           int
	PartnerManyTrumps  int
	SecondTrump        int
	SignalTrump        int

	// Leading a plain card.
	MasterCard     int
	NoTrumpLeft    int
	FewTrumpsBase  int
	EarlyRound     int
	LongSuit       int
	UntouchedSuit  int
	FreshSuit      int
	WorthlessCard  int
	NextMasterHeld int

	// Following a plain suit without a cut.
	FollowMasterLast int
	FollowMaster     int
	FollowLow        int
}

// RiskRange bounds the random risk a bot accepts when bidding.
type RiskRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Draw returns a uniformly random value in [Min, Max].
func (r RiskRange) Draw(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// BotTuning defines the weights and thresholds of a bot.
type BotTuning struct {
	Bid        BidWeights
	Play       PlayWeights
	BidCeiling int
	Round1Risk RiskRange
	Round2Risk RiskRange
}

// EarlyBonus returns the bonus for leading a master card while the round is young.
func (w PlayWeights) EarlyBonus(phase GamePhase) int {
	if phase == PhaseEnd {
		return 0
	}
	return w.EarlyRound
}

// FewTrumps returns the bonus for leading a master card when only n trumps
// are still held by the other seats.
func (w PlayWeights) FewTrumps(n int) int {
	if n <= 0 || n >= w.FewTrumpsBase {
		return 0
	}
	return w.FewTrumpsBase - n
}
