package bot

import botinternal "belote/internal/bot/internal"

// DefaultTuning reproduces the reference bidding table and play weights.
var DefaultTuning = botinternal.BotTuning{
	Bid: botinternal.BidWeights{
		TrumpJack:         4,
		TrumpNine:         3,
		TrumpAce:          2,
		TrumpAceSupported: 3,
		ExtraTrump:        1,
		Belote:            1,
		PlainAce:          2,
		GuardedTen:        1,
	},
	Play: botinternal.PlayWeights{
		Locked: 9,

		LastTrumpHolder:    -1,
		MasterTrump:        5,
		TakerTeamTrumps:    3,
		TrumpMajority:      2,
		PartnerSecondTrump: 2,
		NullTrump:          2,
		LowTrump:           1,
		PartnerManyTrumps:  4,
		SecondTrump:        1,
		SignalTrump:        1,

		MasterCard:     5,
		NoTrumpLeft:    4,
		FewTrumpsBase:  3,
		EarlyRound:     1,
		LongSuit:       1,
		UntouchedSuit:  1,
		FreshSuit:      1,
		WorthlessCard:  1,
		NextMasterHeld: 2,

		FollowMasterLast: 5,
		FollowMaster:     4,
		FollowLow:        2,
	},
	BidCeiling: 7,
	Round1Risk: botinternal.RiskRange{Min: 1, Max: 3},
	Round2Risk: botinternal.RiskRange{Min: 0, Max: 2},
}

// Tuning is the configuration a brain plays with.
type Tuning = botinternal.BotTuning

// RiskRange bounds the random risk a bot accepts when bidding.
type RiskRange = botinternal.RiskRange
