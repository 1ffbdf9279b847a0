package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"strconv"
	"time"

	"belote/internal/app"
	"belote/internal/bot"
	"belote/internal/config"
	"belote/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	// humanSeat is where the connected player sits; the three others are bots.
	humanSeat        = domain.South
	defaultHumanName = "Joueur"

	// idleTimeoutSeconds ends a table nobody has been connected to for that long.
	idleTimeoutSeconds = 120
)

// MatchState holds the authoritative runtime state for one belote table.
type MatchState struct {
	HumanID        string                      `json:"human_id"`        // User reserved for the human seat
	Presences      map[string]runtime.Presence `json:"-"`               // Map UserId -> Presence for targeted messaging
	App            *app.Service                `json:"-"`               // Round transitions and bot decisions
	Snapshots      *app.SnapshotService        `json:"-"`               // Seals rounds for resume_round
	Round          domain.State                `json:"-"`               // Current round snapshot
	Tick           int64                       `json:"tick"`            // Current tick of the match
	TickRate       int                         `json:"tick_rate"`       // Ticks per second
	NextStepTick   int64                       `json:"next_step_tick"`  // Tick when the next automated step may run
	IdleTicks      int64                       `json:"idle_ticks"`      // Ticks spent without a connected presence
	DealDelay      int64                       `json:"deal_delay"`      // Ticks between dealt cards
	BotDelay       int64                       `json:"bot_delay"`       // Ticks a bot waits before acting
	AwarenessDelay int64                       `json:"awareness_delay"` // Ticks to show a turned card, a take or a full trick
}

// humanPresence returns the connected presence of the human seat, if any.
func (ms *MatchState) humanPresence() (runtime.Presence, bool) {
	p, ok := ms.Presences[ms.HumanID]
	return p, ok
}

// delayAfter returns how many ticks to wait after a step that produced
// events and led to next.
func (ms *MatchState) delayAfter(events []app.Event, next domain.State) int64 {
	if run, ok := next.(domain.Running); ok && run.TrickComplete() {
		return ms.AwarenessDelay
	}
	for _, ev := range events {
		switch ev.Kind {
		case app.EventCardTurned, app.EventBidTaken, app.EventBiddingAbandoned, app.EventRoundScored:
			return ms.AwarenessDelay
		case app.EventDealStarted, app.EventCardDealt, app.EventTurnedCardTaken:
			return ms.DealDelay
		}
	}
	return ms.BotDelay
}

// newMatchState builds a table without a round from cfg and the runtime env.
func newMatchState(env map[string]string, cfg *config.GameConfig, logger runtime.Logger, rng *rand.Rand) (*MatchState, error) {
	svc, err := app.NewService(rng, logger, cfg)
	if err != nil {
		return nil, err
	}

	state := &MatchState{
		Presences:      make(map[string]runtime.Presence),
		App:            svc,
		Snapshots:      newSnapshotService(env, cfg),
		TickRate:       cfg.TickRate,
		DealDelay:      int64(cfg.DealDelayTicks),
		BotDelay:       int64(cfg.BotDelayTicks),
		AwarenessDelay: int64(cfg.AwarenessDelayTicks),
	}
	if val, ok := env[envBotDelayTicks]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			state.BotDelay = int64(i)
		} else {
			logger.Warn("MatchInit: Ignoring invalid %s=%q", envBotDelayTicks, val)
		}
	}
	return state, nil
}

func newSnapshotService(env map[string]string, cfg *config.GameConfig) *app.SnapshotService {
	return app.NewSnapshotService(env[envSnapshotSecret], cfg.SnapshotIssuer, cfg.SnapshotTTL())
}

// loadGameConfig loads the game config and bot identities once per process.
func loadGameConfig(env map[string]string, logger runtime.Logger) *config.GameConfig {
	path := defaultConfigPath
	if val, ok := env[envConfigPath]; ok && val != "" {
		path = val
	}
	if err := config.LoadGameConfig(path); err != nil {
		logger.Warn("Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()
	if err := bot.LoadIdentities(cfg.BotIdentitiesPath); err != nil {
		logger.Warn("Could not load bot identities: %v", err)
	}
	return cfg
}

func runtimeEnv(ctx context.Context) map[string]string {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	return env
}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the table is created. params may carry
// "user_id" and "name" of the human, and a "snapshot" token to resume.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing belote table.")

	env := runtimeEnv(ctx)
	cfg := loadGameConfig(env, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	state, err := newMatchState(env, cfg, logger, rng)
	if err != nil {
		logger.Error("MatchInit: Failed to build table: %v", err)
		return nil, 0, ""
	}

	state.HumanID, _ = params["user_id"].(string)
	if token, ok := params["snapshot"].(string); ok && token != "" {
		round, err := state.Snapshots.Open(token)
		if err != nil {
			logger.Error("MatchInit: Could not resume round: %v", err)
			return nil, 0, ""
		}
		state.Round = round
		logger.Info("MatchInit: Resumed round %s in phase %s.", round.TableInfo().RoundID, round.Phase())
	} else {
		name, _ := params["name"].(string)
		if name == "" {
			name = defaultHumanName
		}
		dealer := domain.AllSeats[rng.Intn(domain.NumSeats)]
		state.Round = state.App.NewRound(bot.TableNames(name, humanSeat), dealer, humanSeat)
	}

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, state.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.HumanID != "" && presence.GetUserId() != matchState.HumanID {
		return state, false, "Table reserved"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if matchState.HumanID == "" {
			matchState.HumanID = p.GetUserId()
		}
		if p.GetUserId() != matchState.HumanID {
			logger.Warn("MatchJoin: User %s joined a table reserved for %s.", p.GetUserId(), matchState.HumanID)
			continue
		}
		matchState.Presences[p.GetUserId()] = p
		logger.Debug("MatchJoin: User %s seated at %s.", p.GetUserId(), humanSeat)
	}
	matchState.IdleTicks = 0

	mh.updateLabel(matchState, dispatcher, logger)
	mh.sendView(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave keeps the round so the player can reconnect until the idle timeout.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		logger.Debug("MatchLeave: User %s left.", p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpBid, OpPlayCard, OpNextRound:
			mh.handleAction(matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
		case OpRequestSnapshot:
			mh.handleSnapshot(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if len(matchState.Presences) == 0 {
		matchState.IdleTicks++
		if matchState.IdleTicks >= int64(idleTimeoutSeconds*matchState.TickRate) {
			logger.Info("MatchLoop: Terminating idle table.")
			return nil
		}
		return matchState
	}

	mh.processAutomation(matchState, dispatcher, logger)
	return matchState
}

// handleAction applies a decision of the human seat.
func (mh *matchHandler) handleAction(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) {
	if senderID != state.HumanID {
		logger.Warn("handleAction: Ignoring message from unseated user %s.", senderID)
		return
	}

	action, err := decodeAction(opCode, data, state.Round.TableInfo().HumanSeat)
	if err != nil {
		logger.Warn("handleAction: User %s sent a malformed action: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	if err := mh.advance(state, dispatcher, logger, action); err != nil {
		logger.Warn("handleAction: User %s action %s rejected: %v", senderID, action.Kind, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
	}
}

// handleSnapshot seals the current round and sends the token to senderID.
func (mh *matchHandler) handleSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	presence, ok := state.Presences[senderID]
	if !ok {
		logger.Warn("handleSnapshot: Presence %s not found", senderID)
		return
	}

	token, err := state.Snapshots.Seal(state.Round)
	if err != nil {
		logger.Error("handleSnapshot: Failed to seal round: %v", err)
		msg := errorMessage{Code: codeInternal, Message: "snapshot unavailable"}
		mh.send(dispatcher, logger, OpGameError, msg, presence)
		return
	}

	msg := snapshotMessage{RoundID: state.Round.TableInfo().RoundID, Token: token}
	mh.send(dispatcher, logger, OpSnapshot, msg, presence)
}

// processAutomation runs at most one automated step per tick once its delay has passed.
func (mh *matchHandler) processAutomation(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Tick < state.NextStepTick {
		return
	}
	if app.AwaitingSeat(state.Round) != domain.NoSeat {
		return
	}
	if err := mh.advance(state, dispatcher, logger, nil); err != nil {
		logger.Error("processAutomation: Step from %s failed: %v", state.Round.Phase(), err)
	}
}

// advance feeds action to the round, then publishes the events and the new view.
func (mh *matchHandler) advance(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, action *app.Action) error {
	prev := state.Round
	next, events, err := state.App.Advance(prev, action)
	if err != nil {
		return err
	}
	state.Round = next
	state.NextStepTick = state.Tick + state.delayAfter(events, next)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.sendView(state, dispatcher, logger)

	if next.Phase() != prev.Phase() {
		mh.updateLabel(state, dispatcher, logger)
	}
	return nil
}

// broadcastEvent sends ev to the human if it may see it.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		human := state.Round.TableInfo().HumanSeat
		for _, seat := range ev.Recipients {
			if seat != human {
				continue
			}
			if p, ok := state.humanPresence(); ok {
				recipients = append(recipients, p)
			}
		}

		// Private events of bot seats go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	mh.send(dispatcher, logger, OpEvent, eventMessage{Kind: ev.Kind, Payload: ev.Payload}, recipients...)
}

// sendView sends the human its projection of the round.
func (mh *matchHandler) sendView(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	presence, ok := state.humanPresence()
	if !ok {
		return
	}
	view := app.ViewFor(state.Round, state.Round.TableInfo().HumanSeat)
	mh.send(dispatcher, logger, OpStateView, view, presence)
}

// sendError sends an error event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, err error) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	mh.send(dispatcher, logger, OpGameError, newErrorMessage(err), presence)
}

// send encodes payload and dispatches it to presences, or to everyone when none are given.
func (mh *matchHandler) send(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, presences ...runtime.Presence) {
	bytes, err := encodeMessage(payload)
	if err != nil {
		logger.Error("Failed to marshal message %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, presences, nil, true); err != nil {
		logger.Error("Failed to send message %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Table terminated with %d grace seconds", graceSeconds)
	return state
}

// MatchSignal answers "snapshot" with a sealed token of the current round.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok || data != "snapshot" {
		return state, ""
	}
	token, err := matchState.Snapshots.Seal(matchState.Round)
	if err != nil {
		logger.Warn("MatchSignal: Failed to seal round: %v", err)
		return state, ""
	}
	return state, token
}
