package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to open a table against three bots.
	RpcQuickMatch = "quick_match"
	// RpcResumeRound reopens a table from a sealed round snapshot.
	RpcResumeRound = "resume_round"

	// MatchNameBelote is the authoritative match handler name registered with Nakama.
	MatchNameBelote = "belote_table"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpBid             int64 = 1
	OpPlayCard        int64 = 2
	OpNextRound       int64 = 3
	OpRequestSnapshot int64 = 4

	// Server -> Client
	OpStateView int64 = 101 // send privately
	OpEvent     int64 = 102
	OpSnapshot  int64 = 103 // send privately
	OpGameError int64 = 199
)

// Environment keys read from the Nakama runtime config.
const (
	envSnapshotSecret = "belote_snapshot_secret"
	envBotDelayTicks  = "belote_bot_delay_ticks"
	envConfigPath     = "belote_config_path"
)

const defaultConfigPath = "data/game_config.json"
