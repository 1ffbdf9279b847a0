package domain

import (
	"encoding/json"
	"fmt"
)

type stateEnvelope struct {
	Phase Phase           `json:"phase"`
	State json.RawMessage `json:"state"`
}

// MarshalState encodes a snapshot as {"phase": ..., "state": {...}}.
func MarshalState(state State) ([]byte, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal %s state: %w", state.Phase(), err)
	}
	return json.Marshal(stateEnvelope{Phase: state.Phase(), State: body})
}

// UnmarshalState decodes the envelope written by MarshalState.
func UnmarshalState(data []byte) (State, error) {
	var env stateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode state envelope: %w", err)
	}

	var (
		state State
		err   error
	)
	switch env.Phase {
	case PhaseInit:
		state, err = decodeVariant[Init](env.State)
	case PhaseDeal1:
		state, err = decodeVariant[Deal1](env.State)
	case PhaseBid1:
		state, err = decodeVariant[Bid1](env.State)
	case PhaseBid2:
		state, err = decodeVariant[Bid2](env.State)
	case PhaseDeal2:
		state, err = decodeVariant[Deal2](env.State)
	case PhaseRunning:
		state, err = decodeVariant[Running](env.State)
	case PhaseScored:
		state, err = decodeVariant[Scored](env.State)
	default:
		return nil, fmt.Errorf("decode state: unknown phase %q", env.Phase)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s state: %w", env.Phase, err)
	}
	return state, nil
}

func decodeVariant[T State](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
