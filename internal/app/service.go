package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"belote/internal/bot"
	"belote/internal/config"
	"belote/internal/domain"
)

// secondDealCards is the stock left after the turned card plus the turned card itself.
const secondDealCards = domain.DeckSize - domain.FirstDealCards

// Service contains the Belote use-cases operating on round snapshots.
type Service struct {
	rng    *rand.Rand
	logger runtime.Logger
	tuning bot.Tuning
	agents [domain.NumSeats]*bot.Agent
	strict bool
}

// NewService constructs a Service with provided rng or a time-seeded default.
// A nil logger discards logs and a nil cfg uses config.GetGameConfig.
func NewService(rng *rand.Rand, logger runtime.Logger, cfg *config.GameConfig) (*Service, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = discardLogger{}
	}
	if cfg == nil {
		cfg = config.GetGameConfig()
	}

	tuning := bot.DefaultTuning
	tuning.BidCeiling = cfg.BidCeiling
	tuning.Round1Risk = bot.RiskRange{Min: cfg.Round1Risk.Min, Max: cfg.Round1Risk.Max}
	tuning.Round2Risk = bot.RiskRange{Min: cfg.Round2Risk.Min, Max: cfg.Round2Risk.Max}

	s := &Service{rng: rng, logger: logger, tuning: tuning, strict: cfg.StrictInvariants}
	for _, seat := range domain.AllSeats {
		identity := bot.GetBotIdentity(seat)
		level := identity.Level
		if level == "" {
			level = bot.BotLevel(cfg.BotLevel)
		}
		brain, err := bot.NewBrain(level, tuning, rng)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat, err)
		}
		s.agents[seat] = &bot.Agent{Seat: seat, Name: identity.DisplayName, Strategy: brain}
	}
	return s, nil
}

// NewRound shuffles a fresh deck for a new round.
func (s *Service) NewRound(names [domain.NumSeats]string, dealer, humanSeat domain.Seat) domain.Init {
	return domain.Init{
		Table: domain.Table{
			RoundID:   uuid.NewString(),
			Names:     names,
			Dealer:    dealer,
			HumanSeat: humanSeat,
		},
		Stock: domain.ShuffleDeck(domain.NewDeck(), s.rng),
	}
}

// Advance produces the next snapshot from state. Automated steps take a nil
// action; the human seat must supply one when it is its turn to decide. A
// rejected action returns state unchanged along with the error.
func (s *Service) Advance(state domain.State, action *Action) (domain.State, []Event, error) {
	if action != nil && !action.Kind.valid() {
		return state, nil, fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}

	var (
		next   domain.State
		events []Event
		err    error
	)
	switch st := state.(type) {
	case domain.Init:
		next, events, err = s.startDeal(st, action)
	case domain.Deal1:
		next, events, err = s.dealFirst(st, action)
	case domain.Bid1:
		next, events, err = s.bidFirst(st, action)
	case domain.Bid2:
		next, events, err = s.bidSecond(st, action)
	case domain.Deal2:
		next, events, err = s.dealSecond(st, action)
	case domain.Running:
		next, events, err = s.play(st, action)
	case domain.Scored:
		next, events, err = s.nextRound(st, action)
	default:
		panic(fmt.Sprintf("app: unknown state %T", state))
	}
	if err != nil {
		return state, nil, err
	}

	if cerr := domain.CheckConservation(next); cerr != nil {
		if s.strict {
			panic(cerr)
		}
		s.logger.Error("Advance: %v", cerr)
		events = append(events, Event{
			Kind:    EventInvariantViolated,
			Payload: InvariantPayload{Phase: next.Phase(), Error: cerr.Error()},
		})
	}
	return next, events, nil
}

// AwaitingSeat returns the seat whose action the next Advance needs, or
// NoSeat when the next step is automated.
func AwaitingSeat(state domain.State) domain.Seat {
	table := state.TableInfo()
	var seat domain.Seat
	switch st := state.(type) {
	case domain.Bid1:
		if st.Bids >= domain.NumSeats {
			return domain.NoSeat
		}
		seat = st.Bidder()
	case domain.Bid2:
		if st.Bids >= domain.NumSeats {
			return domain.NoSeat
		}
		seat = st.Bidder()
	case domain.Running:
		if st.TrickComplete() || len(st.Ended) == domain.NumTricks {
			return domain.NoSeat
		}
		seat = st.ToPlay()
	case domain.Scored:
		seat = table.HumanSeat
	default:
		return domain.NoSeat
	}
	if !table.IsHuman(seat) {
		return domain.NoSeat
	}
	return seat
}

func (s *Service) startDeal(st domain.Init, action *Action) (domain.State, []Event, error) {
	if action != nil {
		return nil, nil, ErrWrongPhase
	}
	s.logger.Debug("Advance: %s deals round %s", st.Dealer, st.RoundID)
	next := domain.Deal1{Table: st.Table, Stock: copyCards(st.Stock)}
	return next, []Event{{
		Kind:    EventDealStarted,
		Payload: RoundPayload{RoundID: st.RoundID, Dealer: st.Dealer},
	}}, nil
}

func (s *Service) dealFirst(st domain.Deal1, action *Action) (domain.State, []Event, error) {
	if action != nil {
		return nil, nil, ErrWrongPhase
	}

	dealt := domain.DeckSize - len(st.Stock)
	if dealt >= domain.FirstDealCards {
		turned, stock := domain.DrawCard(st.Stock)
		next := domain.Bid1{
			Table: st.Table,
			Stock: stock,
			Hands: sortHands(st.Hands, []domain.Suit{turned.Suit}),
			Card:  turned,
		}
		return next, []Event{{
			Kind:    EventCardTurned,
			Payload: CardTurnedPayload{Dealer: st.Dealer, Card: turned},
		}}, nil
	}

	dest := domain.DealDestination(st.Dealer, dealt)
	card, stock := domain.DrawCard(st.Stock)
	next := domain.Deal1{
		Table: st.Table,
		Stock: stock,
		Hands: st.Hands.With(dest, domain.SortHand(appendCard(st.Hands[dest], card), domain.AllSuits)),
	}
	return next, []Event{dealtEvent(dest, card)}, nil
}

func (s *Service) bidFirst(st domain.Bid1, action *Action) (domain.State, []Event, error) {
	if st.Bids >= domain.NumSeats {
		if action != nil {
			return nil, nil, ErrNotYourTurn
		}
		next := domain.Bid2{
			Table: st.Table,
			Stock: st.Stock,
			Hands: sortHands(st.Hands, domain.AllSuits),
			Card:  st.Card,
		}
		return next, []Event{{Kind: EventSecondBidding, Payload: CardTurnedPayload{Dealer: st.Dealer, Card: st.Card}}}, nil
	}

	bidder := st.Bidder()
	take, lines, err := s.decideBid(st, bidder, action)
	if err != nil {
		return nil, nil, err
	}
	if take != nil {
		if *take != st.Card.Suit {
			return nil, nil, fmt.Errorf("%w: only %s can be taken in the first round", ErrInvalidBidSuit, st.Card.Suit)
		}
		return s.take(st.Table, st.Stock, st.Hands, st.Card, bidder, *take, 1, lines)
	}
	next := st
	next.Bids++
	return next, []Event{passedEvent(bidder, 1)}, nil
}

func (s *Service) bidSecond(st domain.Bid2, action *Action) (domain.State, []Event, error) {
	if st.Bids >= domain.NumSeats {
		if action != nil {
			return nil, nil, ErrNotYourTurn
		}
		s.logger.Info("Advance: every seat passed, %s deals again", st.Dealer.Next())
		next := s.NewRound(st.Names, st.Dealer.Next(), st.HumanSeat)
		return next, []Event{{
			Kind:    EventBiddingAbandoned,
			Payload: RoundPayload{RoundID: next.RoundID, Dealer: next.Dealer},
		}}, nil
	}

	bidder := st.Bidder()
	take, lines, err := s.decideBid(st, bidder, action)
	if err != nil {
		return nil, nil, err
	}
	if take != nil {
		if *take == st.Card.Suit || !take.Valid() {
			return nil, nil, fmt.Errorf("%w: %s cannot be named in the second round", ErrInvalidBidSuit, *take)
		}
		return s.take(st.Table, st.Stock, st.Hands, st.Card, bidder, *take, 2, lines)
	}
	next := st
	next.Bids++
	return next, []Event{passedEvent(bidder, 2)}, nil
}

// decideBid returns the suit taken by bidder, or nil when it passes.
func (s *Service) decideBid(st domain.State, bidder domain.Seat, action *Action) (*domain.Suit, []bot.BidLine, error) {
	if st.TableInfo().IsHuman(bidder) {
		if action == nil {
			return nil, nil, ErrAwaitingHuman
		}
		if action.Seat != bidder {
			return nil, nil, ErrNotYourTurn
		}
		switch action.Kind {
		case ActionAcceptBid:
			suit := action.Suit
			return &suit, nil, nil
		case ActionDeclineBid:
			return nil, nil, nil
		default:
			return nil, nil, ErrWrongPhase
		}
	}
	if action != nil {
		return nil, nil, ErrNotYourTurn
	}

	decision, err := s.agents[bidder].Bid(st)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("Advance: %s bids %d against %d for %s", bidder, decision.Total, decision.Threshold, decision.Trump)
	if !decision.Take {
		return nil, nil, nil
	}
	return &decision.Trump, decision.Lines, nil
}

func (s *Service) take(table domain.Table, stock []domain.Card, hands domain.Hands, turned domain.Card, taker domain.Seat, trump domain.Suit, round int, lines []bot.BidLine) (domain.State, []Event, error) {
	s.logger.Info("Advance: %s takes %s in round %d", taker, trump, round)
	card := turned
	next := domain.Deal2{
		Table: table,
		Stock: stock,
		Hands: sortHands(hands, []domain.Suit{trump}),
		Taker: taker,
		Trump: trump,
		Card:  &card,
	}
	return next, []Event{{
		Kind:    EventBidTaken,
		Payload: BidPayload{Seat: taker, Round: round, Trump: &trump, Lines: lines},
	}}, nil
}

func (s *Service) dealSecond(st domain.Deal2, action *Action) (domain.State, []Event, error) {
	if action != nil {
		return nil, nil, ErrWrongPhase
	}

	pending := 0
	if st.Card != nil {
		pending = 1
	}
	left := len(st.Stock) + pending
	if left == 0 {
		next := domain.Running{
			Table:  st.Table,
			Hands:  sortHands(st.Hands, []domain.Suit{st.Trump}),
			Taker:  st.Taker,
			Trump:  st.Trump,
			Leader: st.Dealer.Next(),
		}
		return next, []Event{{
			Kind:    EventPlayStarted,
			Payload: PlayStartedPayload{Leader: next.Leader, Taker: next.Taker, Trump: next.Trump},
		}}, nil
	}

	dest := domain.DealDestination(st.Dealer, secondDealCards-left)
	next := st
	var card domain.Card
	var events []Event
	if dest == st.Taker && st.Card != nil {
		card = *st.Card
		next.Card = nil
		events = append(events, Event{
			Kind:    EventTurnedCardTaken,
			Payload: CardDealtPayload{Seat: dest, Card: card},
		})
	} else {
		card, next.Stock = domain.DrawCard(st.Stock)
		events = append(events, dealtEvent(dest, card))
	}
	next.Hands = st.Hands.With(dest, domain.SortHand(appendCard(st.Hands[dest], card), []domain.Suit{st.Trump}))
	return next, events, nil
}

func (s *Service) play(st domain.Running, action *Action) (domain.State, []Event, error) {
	if len(st.Ended) == domain.NumTricks {
		if action != nil {
			return nil, nil, ErrRoundComplete
		}
		score := domain.ScoreRound(st.Ended, st.Trump, st.Taker)
		s.logger.Info("Advance: round %s scored %d/%d", st.RoundID, score.Teams[0], score.Teams[1])
		next := domain.Scored{
			Table: st.Table,
			Taker: st.Taker,
			Trump: st.Trump,
			Ended: st.Ended,
			Score: score,
		}
		return next, []Event{{
			Kind:    EventRoundScored,
			Payload: RoundScoredPayload{Taker: st.Taker, Trump: st.Trump, Score: score},
		}}, nil
	}

	if st.TrickComplete() {
		if action != nil {
			return nil, nil, ErrNotYourTurn
		}
		winner := domain.TrickWinner(st.Leader, st.Trick, st.Trump)
		archived := domain.ArchivedTrick{Leader: st.Leader, Winner: winner, Cards: st.Trick}
		ended := make([]domain.ArchivedTrick, 0, len(st.Ended)+1)
		ended = append(append(ended, st.Ended...), archived)

		next := st
		next.Ended = ended
		next.Leader = winner
		next.Trick = nil
		return next, []Event{{
			Kind:    EventTrickWon,
			Payload: TrickWonPayload{Winner: winner, Leader: st.Leader, Cards: st.Trick, Points: trickPoints(ended, st.Trump)},
		}}, nil
	}

	seat := st.ToPlay()
	var (
		card     domain.Card
		thoughts []bot.Thought
		events   []Event
	)
	if st.IsHuman(seat) {
		if action == nil {
			return nil, nil, ErrAwaitingHuman
		}
		if action.Kind != ActionPlayCard {
			return nil, nil, ErrWrongPhase
		}
		if action.Seat != seat {
			return nil, nil, ErrNotYourTurn
		}
		if reason := domain.LegalReason(st, seat, action.Card); reason != domain.ReasonNone {
			return nil, nil, &RuleViolation{Seat: seat, Card: action.Card, Reason: reason}
		}
		card = action.Card
	} else {
		if action != nil {
			return nil, nil, ErrNotYourTurn
		}
		choice, err := s.agents[seat].Play(st)
		if err != nil {
			return nil, nil, err
		}
		card = choice.Card
		s.logger.Debug("Advance: %s plays %s (%s)", seat, card, choice.Rule)
		for _, opt := range choice.Options {
			if opt.Card == card {
				thoughts = opt.Thoughts
			}
		}
		if choice.CoverageGap {
			s.logger.Warn("Advance: no positive option for %s, playing %s", seat, card)
			events = append(events, Event{
				Kind:    EventCoverageGap,
				Payload: CoverageGapPayload{Seat: seat, Card: card},
			})
		}
	}

	next := st
	next.Hands = st.Hands.With(seat, domain.RemoveCard(st.Hands[seat], card))
	next.Trick = appendCard(st.Trick, card)
	events = append([]Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, ToPlay: nextToPlay(next), Thoughts: thoughts},
	}}, events...)
	return next, events, nil
}

func (s *Service) nextRound(st domain.Scored, action *Action) (domain.State, []Event, error) {
	if st.HumanSeat != domain.NoSeat {
		if action == nil {
			return nil, nil, ErrAwaitingHuman
		}
		if action.Kind != ActionNextRound {
			return nil, nil, ErrRoundComplete
		}
	} else if action != nil {
		return nil, nil, ErrRoundComplete
	}

	stock := make([]domain.Card, 0, domain.DeckSize)
	for _, t := range st.Ended {
		stock = append(stock, t.Cards...)
	}
	table := st.Table
	table.RoundID = uuid.NewString()
	table.Dealer = st.Dealer.Next()
	next := domain.Init{Table: table, Stock: stock}
	return next, []Event{{
		Kind:    EventRoundCreated,
		Payload: RoundPayload{RoundID: table.RoundID, Dealer: table.Dealer},
	}}, nil
}

// LegalReason reports why seat cannot play card in state.
func (s *Service) LegalReason(state domain.State, seat domain.Seat, card domain.Card) domain.Reason {
	return domain.LegalReason(state, seat, card)
}

// PlayOptions scores the legal cards of seat with the service's weights.
func (s *Service) PlayOptions(state domain.State, seat domain.Seat) ([]bot.PlayOption, error) {
	st, ok := state.(domain.Running)
	if !ok {
		return nil, ErrWrongPhase
	}
	if st.TrickComplete() || st.ToPlay() != seat {
		return nil, ErrNotYourTurn
	}
	return bot.NewAdvisor(s.tuning.Play).PlayOptions(st, seat), nil
}

// SuitAdvice is the strength of a hand for one candidate trump.
type SuitAdvice struct {
	Trump domain.Suit   `json:"trump"`
	Total int           `json:"total"`
	Lines []bot.BidLine `json:"lines"`
}

// BidAdvice scores the hand of seat, with the turned card, for every suit it
// may bid in the current round.
func (s *Service) BidAdvice(state domain.State, seat domain.Seat) ([]SuitAdvice, error) {
	var (
		hand   []domain.Card
		turned domain.Card
		suits  []domain.Suit
	)
	switch st := state.(type) {
	case domain.Bid1:
		hand, turned = st.Hands[seat], st.Card
		suits = []domain.Suit{turned.Suit}
	case domain.Bid2:
		hand, turned = st.Hands[seat], st.Card
		for _, suit := range domain.AllSuits {
			if suit != turned.Suit {
				suits = append(suits, suit)
			}
		}
	default:
		return nil, ErrWrongPhase
	}

	evaluator := bot.NewBidEvaluator(s.tuning, s.rng)
	out := make([]SuitAdvice, 0, len(suits))
	for _, suit := range suits {
		lines := evaluator.Advise(hand, turned, suit)
		out = append(out, SuitAdvice{Trump: suit, Total: bot.Total(lines), Lines: lines})
	}
	return out, nil
}

func nextToPlay(st domain.Running) domain.Seat {
	if st.TrickComplete() {
		return domain.NoSeat
	}
	return st.ToPlay()
}

// trickPoints is the value of the last archived trick, with the last trick bonus.
func trickPoints(ended []domain.ArchivedTrick, trump domain.Suit) int {
	points := 0
	for _, c := range ended[len(ended)-1].Cards {
		points += c.Value(trump)
	}
	if len(ended) == domain.NumTricks {
		points += domain.LastTrickBonus
	}
	return points
}

func dealtEvent(seat domain.Seat, card domain.Card) Event {
	return Event{
		Kind:       EventCardDealt,
		Payload:    CardDealtPayload{Seat: seat, Card: card},
		Recipients: []domain.Seat{seat},
	}
}

func passedEvent(seat domain.Seat, round int) Event {
	return Event{Kind: EventBidPassed, Payload: BidPayload{Seat: seat, Round: round}}
}

func sortHands(hands domain.Hands, trumps []domain.Suit) domain.Hands {
	var out domain.Hands
	for i, hand := range hands {
		out[i] = domain.SortHand(hand, trumps)
	}
	return out
}

func appendCard(cards []domain.Card, card domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(cards)+1)
	return append(append(out, cards...), card)
}

func copyCards(cards []domain.Card) []domain.Card {
	return append([]domain.Card(nil), cards...)
}
