package session

import (
	"fmt"
	"time"
)

// State represents the session's view state
type State int

const (
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateInitializing, StateUnauthenticated, StateAuthenticated} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Snapshot is an immutable view of the session at one point in time.
// The token is never serialized.
type Snapshot struct {
	State   State     `json:"state"`
	Token   string    `json:"-"`
	Loading bool      `json:"loading"`
	Since   time.Time `json:"since"`
}

// Authenticated reports whether the snapshot carries a token.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.Token != ""
}
