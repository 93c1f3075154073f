package model

import (
	"fmt"
	"strings"
)

type State string

const (
	StateAvailable State = "available"
	StateInUse     State = "in-use"
	StateInactive  State = "inactive"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateInUse, StateInactive:
		return true
	default:
		return false
	}
}

// ParseState is case-insensitive and accepts the underscore spelling
// (IN_USE) used by older clients.
func ParseState(s string) (State, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")

	state := State(normalized)
	if !state.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidState, s)
	}

	return state, nil
}

func AllStates() []State {
	return []State{StateAvailable, StateInUse, StateInactive}
}
