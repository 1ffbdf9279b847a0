package nakama

import (
	"encoding/json"
	"errors"
	"fmt"

	"belote/internal/app"
	"belote/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Error codes sent with OpGameError.
const (
	codeBadRequest    = 400
	codeConflict      = 409
	codeRuleViolation = 422
	codeInternal      = 500
)

type eventMessage struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

type errorMessage struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Reason  domain.Reason `json:"reason,omitempty"`
}

type snapshotMessage struct {
	RoundID string `json:"round_id"`
	Token   string `json:"token"`
}

// toStruct converts a JSON tagged value to a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// encodeMessage renders v as a binary Struct for BroadcastMessage.
func encodeMessage(v any) ([]byte, error) {
	msg, err := toStruct(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

func decodeStruct(data []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	if len(data) == 0 {
		return msg, nil
	}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}
	return msg, nil
}

// decodeAction maps a client message to an action of seat.
//
//	OpBid:       {"take": true, "suit": "H"} or {"take": false}
//	OpPlayCard:  {"card": "JH"}
//	OpNextRound: {}
func decodeAction(opCode int64, data []byte, seat domain.Seat) (*app.Action, error) {
	msg, err := decodeStruct(data)
	if err != nil {
		return nil, err
	}
	fields := msg.GetFields()

	switch opCode {
	case OpBid:
		if !fields["take"].GetBoolValue() {
			return app.DeclineBid(seat), nil
		}
		suit, err := domain.ParseSuit(fields["suit"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("bid: %w", err)
		}
		return app.AcceptBid(seat, suit), nil
	case OpPlayCard:
		card, err := domain.ParseCard(fields["card"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("play: %w", err)
		}
		return app.PlayCard(seat, card), nil
	case OpNextRound:
		return app.NextRound(seat), nil
	}
	return nil, fmt.Errorf("%w: op code %d", app.ErrUnknownAction, opCode)
}

func newErrorMessage(err error) errorMessage {
	msg := errorMessage{Code: codeBadRequest, Message: err.Error()}
	var violation *app.RuleViolation
	switch {
	case errors.As(err, &violation):
		msg.Code = codeRuleViolation
		msg.Reason = violation.Reason
	case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrWrongPhase),
		errors.Is(err, app.ErrAwaitingHuman), errors.Is(err, app.ErrRoundComplete):
		msg.Code = codeConflict
	}
	return msg
}

// matchLabel renders the JSON label used by MatchList queries.
func matchLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]any{
		"game":     "belote",
		"owner":    state.HumanID,
		"open":     len(state.Presences) == 0,
		"phase":    string(state.Round.Phase()),
		"round_id": state.Round.TableInfo().RoundID,
	})
	if err != nil {
		return "", err
	}
	labelBytes, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}
