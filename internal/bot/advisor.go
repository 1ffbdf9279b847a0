package bot

import (
	"fmt"

	"belote/internal/bot/brain"
	botinternal "belote/internal/bot/internal"
	"belote/internal/domain"
)

// ThoughtTag names the observation behind a score delta.
type ThoughtTag string

const (
	TagTrumpCount ThoughtTag = "trump_count"

	// Leading.
	TagLeadTrump        ThoughtTag = "lead_trump"
	TagLastTrumpHolder  ThoughtTag = "last_trump_holder"
	TagMasterTrump      ThoughtTag = "master_trump"
	TagTakerTeamTrumps  ThoughtTag = "taker_team_many_trumps"
	TagTrumpMajority    ThoughtTag = "trump_majority"
	TagPartnerTook      ThoughtTag = "partner_took"
	TagSecondTrump      ThoughtTag = "second_trump"
	TagNullTrump        ThoughtTag = "null_trump"
	TagLowTrump         ThoughtTag = "low_trump"
	TagManyTrumpsLeft   ThoughtTag = "many_trumps_left"
	TagSignalTrump      ThoughtTag = "signal_trump"
	TagLeadPlain        ThoughtTag = "lead_plain"
	TagMasterCard       ThoughtTag = "master_card"
	TagNoTrumpLeft      ThoughtTag = "no_trump_left"
	TagFewTrumpsLeft    ThoughtTag = "few_trumps_left"
	TagEarlyRound       ThoughtTag = "early_round"
	TagLongSuit         ThoughtTag = "long_suit"
	TagUntouchedSuit    ThoughtTag = "untouched_suit"
	TagLowCardFreshSuit ThoughtTag = "low_card_fresh_suit"
	TagSuitUnplayed     ThoughtTag = "suit_unplayed"
	TagWorthlessCard    ThoughtTag = "worthless_card"
	TagNextMasterHeld   ThoughtTag = "next_master_held"

	// Following.
	TagOnlyAskedCard      ThoughtTag = "only_asked_card"
	TagOnlyHigherTrump    ThoughtTag = "only_higher_trump"
	TagLowestHigherLast   ThoughtTag = "lowest_higher_trump_last"
	TagHighestMasterTrump ThoughtTag = "highest_master_trump"
	TagLowestHigherTrump  ThoughtTag = "lowest_higher_trump"
	TagLowestTrump        ThoughtTag = "lowest_trump"
	TagOnlyTrump          ThoughtTag = "only_trump"
	TagDumpPoints         ThoughtTag = "dump_points"
	TagLowestValue        ThoughtTag = "lowest_value"
	TagMasterFollowLast   ThoughtTag = "master_follow_last"
	TagMasterFollow       ThoughtTag = "master_follow"
	TagLowestOfSuit       ThoughtTag = "lowest_of_suit"
	TagDiscard            ThoughtTag = "discard"
)

// Thought is one weighted observation. A thought without a card applies to every card.
type Thought struct {
	Tag   ThoughtTag   `json:"tag"`
	Card  *domain.Card `json:"card,omitempty"`
	Score int          `json:"score"`
}

// AppliesTo reports whether the thought scores card.
func (t Thought) AppliesTo(card domain.Card) bool {
	return t.Card == nil || *t.Card == card
}

// PlayOption is a legal card with its total score and the thoughts behind it.
type PlayOption struct {
	Card     domain.Card `json:"card"`
	Score    int         `json:"score"`
	Thoughts []Thought   `json:"thoughts"`
}

// PlayChoice is the card the advisor plays.
type PlayChoice struct {
	Card  domain.Card
	Score int
	// CoverageGap is set when no option scored above zero and the first
	// legal card was played instead.
	CoverageGap bool
	// Rule names the step that decided the card.
	Rule    string
	Options []PlayOption
}

// leadRule names the decision of a seat opening the trick.
const leadRule = "Lead"


// Advisor scores the cards of the seat to play.
type Advisor struct {
	Weights botinternal.PlayWeights
}

// NewAdvisor returns an advisor using the given weights.
func NewAdvisor(weights botinternal.PlayWeights) *Advisor {
	return &Advisor{Weights: weights}
}

var defaultAdvisor = NewAdvisor(DefaultTuning.Play)

// Think returns the observations of seat about its cards, with the default weights.
func Think(state domain.Running, seat domain.Seat) []Thought {
	return defaultAdvisor.Think(state, seat)
}

// PlayOptions scores the legal cards of seat with the default weights.
func PlayOptions(state domain.Running, seat domain.Seat) []PlayOption {
	return defaultAdvisor.PlayOptions(state, seat)
}

// ChoosePlay picks the card of seat with the default weights.
func ChoosePlay(state domain.Running, seat domain.Seat) PlayChoice {
	return defaultAdvisor.ChoosePlay(state, seat)
}

// Think returns the observations of seat about its cards. Leaders review
// every card; followers run the follow rules until one decides.
func (a *Advisor) Think(state domain.Running, seat domain.Seat) []Thought {
	thoughts, _ := a.think(state, seat)
	return thoughts
}

func (a *Advisor) think(state domain.Running, seat domain.Seat) ([]Thought, string) {
	ctx := newThinkContext(a.Weights, state, seat)
	ctx.add(TagTrumpCount, nil, 0)
	if len(ctx.trick) == 0 {
		ctx.lead()
		return ctx.thoughts, leadRule
	}
	for _, rule := range followRules {
		if rule.Apply(ctx) {
			return ctx.thoughts, rule.Name()
		}
	}
	return ctx.thoughts, ""
}

// PlayOptions scores every legal card of seat, in hand order.
func (a *Advisor) PlayOptions(state domain.Running, seat domain.Seat) []PlayOption {
	options, _ := a.playOptions(state, seat)
	return options
}

func (a *Advisor) playOptions(state domain.Running, seat domain.Seat) ([]PlayOption, string) {
	thoughts, rule := a.think(state, seat)
	legal := domain.LegalCards(state.Hands[seat], state.Trick, state.Leader, seat, state.Trump)

	options := make([]PlayOption, 0, len(legal))
	for _, c := range legal {
		opt := PlayOption{Card: c}
		for _, t := range thoughts {
			if t.AppliesTo(c) {
				opt.Score += t.Score
				opt.Thoughts = append(opt.Thoughts, t)
			}
		}
		options = append(options, opt)
	}
	return options, rule
}

// ChoosePlay picks the highest scoring legal card, the first in hand order on
// ties. When nothing scores above zero the first legal card is returned with
// CoverageGap set.
func (a *Advisor) ChoosePlay(state domain.Running, seat domain.Seat) PlayChoice {
	options, rule := a.playOptions(state, seat)
	if len(options) == 0 {
		panic(fmt.Sprintf("bot: %s has no legal card", seat))
	}
	best := 0
	for i, opt := range options {
		if opt.Score > options[best].Score {
			best = i
		}
	}
	if options[best].Score <= 0 {
		return PlayChoice{Card: options[0].Card, Score: options[0].Score, CoverageGap: true, Rule: rule, Options: options}
	}
	return PlayChoice{Card: options[best].Card, Score: options[best].Score, Rule: rule, Options: options}
}

type thinkContext struct {
	w        botinternal.PlayWeights
	state    domain.Running
	seat     domain.Seat
	hand     []domain.Card
	trick    []domain.Card
	trump    domain.Suit
	memory   *brain.GameMemory
	estimate *brain.Estimator

	myTrumps    []domain.Card // weakest first
	higher      []domain.Card // my trumps beating every trump of the trick
	trickTrumps bool
	partnerWins bool
	last        bool

	thoughts []Thought
}

func newThinkContext(w botinternal.PlayWeights, state domain.Running, seat domain.Seat) *thinkContext {
	memory := brain.FromRunning(state, seat)
	ctx := &thinkContext{
		w:        w,
		state:    state,
		seat:     seat,
		hand:     state.Hands[seat],
		trick:    state.Trick,
		trump:    state.Trump,
		memory:   memory,
		estimate: brain.NewEstimator(memory),
	}
	ctx.myTrumps = ascending(domain.CardsOfSuit(ctx.hand, ctx.trump), ctx.trump)

	highest, found := domain.HighestTrump(ctx.trick, ctx.trump)
	ctx.trickTrumps = found
	for _, c := range ctx.myTrumps {
		if !found || c.Face.TrumpRank() > highest.Face.TrumpRank() {
			ctx.higher = append(ctx.higher, c)
		}
	}
	ctx.partnerWins = domain.PartnerWinning(ctx.trick, state.Leader, seat, ctx.trump)
	ctx.last = len(ctx.trick) == domain.NumSeats-1
	return ctx
}

func (c *thinkContext) add(tag ThoughtTag, card *domain.Card, score int) {
	c.thoughts = append(c.thoughts, Thought{Tag: tag, Card: card, Score: score})
}

func (c *thinkContext) lock(tag ThoughtTag, card domain.Card) {
	c.add(tag, &card, c.w.Locked)
}

func (c *thinkContext) lead() {
	for i := range c.hand {
		card := &c.hand[i]
		if card.IsTrump(c.trump) {
			c.leadTrump(card)
		} else {
			c.leadPlain(card)
		}
	}
}

func (c *thinkContext) leadTrump(card *domain.Card) {
	w := c.w
	c.add(TagLeadTrump, card, 0)

	outstanding := c.estimate.OutstandingTrumps()
	if outstanding == 0 {
		c.add(TagLastTrumpHolder, card, w.LastTrumpHolder)
		return
	}

	remaining := c.estimate.RemainingTrumps()
	partner := c.seat.Partner()
	if c.memory.IsBoss(*card) {
		c.add(TagMasterTrump, card, w.MasterTrump)
		if (c.state.Taker == c.seat || c.state.Taker == partner) && remaining >= 6 {
			c.add(TagTakerTeamTrumps, card, w.TakerTeamTrumps)
		}
		if 2*len(c.myTrumps) > remaining {
			c.add(TagTrumpMajority, card, w.TrumpMajority)
		}
		return
	}

	second := c.estimate.HoldsSecondHighest(c.hand, c.trump)
	if c.state.Taker == partner {
		c.add(TagPartnerTook, card, 0)
		if second {
			c.add(TagSecondTrump, card, w.PartnerSecondTrump)
		}
		if card.Face.TrumpValue() == 0 {
			c.add(TagNullTrump, card, w.NullTrump)
		} else if card.Face.TrumpRank() <= 3 {
			c.add(TagLowTrump, card, w.LowTrump)
		}
		if remaining >= 6 {
			c.add(TagManyTrumpsLeft, card, w.PartnerManyTrumps)
		}
		return
	}

	if second {
		c.add(TagSecondTrump, card, w.SecondTrump)
	}
	if card.Face.TrumpRank() <= 3 {
		c.add(TagSignalTrump, card, w.SignalTrump)
	}
}

func (c *thinkContext) leadPlain(card *domain.Card) {
	w := c.w
	c.add(TagLeadPlain, card, 0)

	others := len(c.memory.Outstanding(card.Suit))
	if c.memory.IsBoss(*card) && isHighestHeld(c.hand, *card, c.trump) {
		c.add(TagMasterCard, card, w.MasterCard)
		trumps := c.estimate.OutstandingTrumps()
		if trumps == 0 {
			c.add(TagNoTrumpLeft, card, w.NoTrumpLeft)
		} else {
			if bonus := w.FewTrumps(trumps); bonus > 0 {
				c.add(TagFewTrumpsLeft, card, bonus)
			}
			if bonus := w.EarlyBonus(botinternal.DetectPhase(c.state)); bonus > 0 {
				c.add(TagEarlyRound, card, bonus)
			}
			if others > 5 {
				c.add(TagLongSuit, card, w.LongSuit)
			}
		}
		if others == len(domain.AllFaces)-1 {
			c.add(TagUntouchedSuit, card, w.UntouchedSuit)
		}
		return
	}

	remaining := len(c.memory.Remaining(card.Suit))
	if remaining < 6 || card.Face.PlainValue() > 3 {
		return
	}
	c.add(TagLowCardFreshSuit, card, 0)
	if remaining == len(domain.AllFaces) {
		c.add(TagSuitUnplayed, card, w.FreshSuit)
	}
	if card.Face.PlainValue() == 0 {
		c.add(TagWorthlessCard, card, w.WorthlessCard)
	}
	if c.estimate.HoldsNextBoss(c.hand, *card) {
		c.add(TagNextMasterHeld, card, w.NextMasterHeld)
	}
}

// raise picks among trumps that all beat the trick: the weakest when last to
// play, else the strongest when nobody can beat it, else the weakest.
func (c *thinkContext) raise(trumps []domain.Card) {
	switch {
	case len(trumps) == 1:
		c.lock(TagOnlyHigherTrump, trumps[0])
	case c.last:
		c.lock(TagLowestHigherLast, trumps[0])
	case c.memory.IsBoss(trumps[len(trumps)-1]):
		c.lock(TagHighestMasterTrump, trumps[len(trumps)-1])
	default:
		c.lock(TagLowestHigherTrump, trumps[0])
	}
}

// dump gives points to a winning partner: the most valuable card of cards
// that is not a boss, else the least valuable one.
func (c *thinkContext) dump(cards []domain.Card) {
	if card, ok := highestValueNonBoss(cards, c.estimate.GetBossCards(cards), c.trump); ok {
		c.lock(TagDumpPoints, card)
		return
	}
	c.lock(TagDumpPoints, lowestValue(cards, c.trump))
}

// followRule is one step of the follower pipeline. Apply returns true once
// the rule has decided.
type followRule interface {
	Name() string
	Apply(ctx *thinkContext) bool
}

var followRules = []followRule{
	singleAskedCardRule{},
	trumpLedRule{},
	followSuitRule{},
	cannotFollowRule{},
}

type singleAskedCardRule struct{}

func (singleAskedCardRule) Name() string { return "SingleAskedCard" }

func (singleAskedCardRule) Apply(ctx *thinkContext) bool {
	asked := domain.CardsOfSuit(ctx.hand, ctx.trick[0].Suit)
	if len(asked) != 1 {
		return false
	}
	ctx.lock(TagOnlyAskedCard, asked[0])
	return true
}

type trumpLedRule struct{}

func (trumpLedRule) Name() string { return "TrumpLed" }

func (trumpLedRule) Apply(ctx *thinkContext) bool {
	if ctx.trick[0].Suit != ctx.trump {
		return false
	}
	switch {
	case len(ctx.higher) > 0:
		ctx.raise(ctx.higher)
	case len(ctx.myTrumps) > 0:
		ctx.lock(TagLowestTrump, ctx.myTrumps[0])
	case ctx.partnerWins:
		ctx.dump(ctx.hand)
	default:
		ctx.lock(TagLowestValue, lowestValue(ctx.hand, ctx.trump))
	}
	return true
}

type followSuitRule struct{}

func (followSuitRule) Name() string { return "FollowSuit" }

func (followSuitRule) Apply(ctx *thinkContext) bool {
	askedSuit := ctx.trick[0].Suit
	asked := domain.CardsOfSuit(ctx.hand, askedSuit)
	if len(asked) == 0 {
		return false
	}

	if ctx.trickTrumps {
		if ctx.partnerWins {
			ctx.dump(asked)
		} else {
			ctx.lock(TagLowestValue, lowestValue(asked, ctx.trump))
		}
		return true
	}

	sorted := ascending(asked, ctx.trump)
	highest := sorted[len(sorted)-1]
	master := ctx.memory.IsBoss(highest)
	for _, played := range ctx.trick {
		if played.Suit == askedSuit && played.Face.PlainRank() > highest.Face.PlainRank() {
			master = false
		}
	}
	switch {
	case master && ctx.last:
		ctx.add(TagMasterFollowLast, &highest, ctx.w.FollowMasterLast)
	case master:
		ctx.add(TagMasterFollow, &highest, ctx.w.FollowMaster)
	default:
		ctx.add(TagLowestOfSuit, &sorted[0], ctx.w.FollowLow)
	}
	return true
}

type cannotFollowRule struct{}

func (cannotFollowRule) Name() string { return "CannotFollow" }

func (cannotFollowRule) Apply(ctx *thinkContext) bool {
	switch {
	case ctx.partnerWins:
		discards := ctx.hand
		if plain := withoutSuit(ctx.hand, ctx.trump); len(plain) > 0 {
			discards = plain
		}
		ctx.lock(TagDiscard, lowestValue(discards, ctx.trump))
	case len(ctx.myTrumps) == 0:
		ctx.lock(TagLowestValue, lowestValue(ctx.hand, ctx.trump))
	case len(ctx.myTrumps) == 1:
		ctx.lock(TagOnlyTrump, ctx.myTrumps[0])
	case len(ctx.higher) > 0:
		ctx.raise(ctx.higher)
	default:
		ctx.lock(TagLowestTrump, ctx.myTrumps[0])
	}
	return true
}

func ascending(cards []domain.Card, trump domain.Suit) []domain.Card {
	return domain.SortHand(cards, []domain.Suit{trump})
}

func lowestValue(cards []domain.Card, trump domain.Suit) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value(trump) < best.Value(trump) {
			best = c
		}
	}
	return best
}

func highestValueNonBoss(cards, bosses []domain.Card, trump domain.Suit) (domain.Card, bool) {
	var best domain.Card
	found := false
	for _, c := range cards {
		if domain.ContainsCard(bosses, c) {
			continue
		}
		if !found || c.Value(trump) > best.Value(trump) {
			best, found = c, true
		}
	}
	return best, found
}

func isHighestHeld(hand []domain.Card, card domain.Card, trump domain.Suit) bool {
	for _, c := range hand {
		if c != card && c.Suit == card.Suit && c.Rank(trump) > card.Rank(trump) {
			return false
		}
	}
	return true
}

func withoutSuit(cards []domain.Card, suit domain.Suit) []domain.Card {
	var out []domain.Card
	for _, c := range cards {
		if c.Suit != suit {
			out = append(out, c)
		}
	}
	return out
}
