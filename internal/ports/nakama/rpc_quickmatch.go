package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when opening or resuming a table.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

type quickMatchRequest struct {
	Name string `json:"name"`
}

type resumeRoundRequest struct {
	Token string `json:"token"`
}

var errNoUser = errors.New("rpc requires an authenticated user")

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcResumeRound, rpcResumeRound)
}

// rpcQuickMatch returns the caller's table if one is still running, otherwise
// creates one. Payload: optional {"name": "..."}.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUser
	}

	var req quickMatchRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", fmt.Errorf("invalid quick_match payload: %w", err)
		}
	}
	if req.Name == "" {
		req.Name, _ = ctx.Value(runtime.RUNTIME_CTX_USERNAME).(string)
	}

	query := fmt.Sprintf("+label.game:belote +label.owner:%s", userID)
	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("RpcQuickMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		logger.Info("RpcQuickMatch [User:%s]: Found existing table %s", userID, matches[0].MatchId)
		return encodeResponse(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameBelote, map[string]interface{}{
		"user_id": userID,
		"name":    req.Name,
	})
	if err != nil {
		logger.Error("RpcQuickMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("RpcQuickMatch [User:%s]: Created new table %s", userID, matchID)
	return encodeResponse(QuickMatchResponse{MatchID: matchID, IsNew: true})
}

// rpcResumeRound opens a new table continuing a sealed round.
// Payload: {"token": "<snapshot token>"}.
func rpcResumeRound(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errNoUser
	}

	var req resumeRoundRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("invalid resume_round payload: %w", err)
	}

	env := runtimeEnv(ctx)
	cfg := loadGameConfig(env, logger)
	round, err := newSnapshotService(env, cfg).Open(req.Token)
	if err != nil {
		logger.Warn("RpcResumeRound [User:%s]: Rejected snapshot: %v", userID, err)
		return "", err
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameBelote, map[string]interface{}{
		"user_id":  userID,
		"snapshot": req.Token,
	})
	if err != nil {
		logger.Error("RpcResumeRound [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("RpcResumeRound [User:%s]: Resumed round %s in table %s", userID, round.TableInfo().RoundID, matchID)
	return encodeResponse(QuickMatchResponse{MatchID: matchID, IsNew: true})
}

func encodeResponse(resp QuickMatchResponse) (string, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
