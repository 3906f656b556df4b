package auth

import (
	"encoding/json"
	"fmt"

	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

type State int

const (
	StateUnknown State = iota
	StateAuthenticating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session is the in-memory view of the current authentication status.
// IsAuthenticated is true only when Identity came from a successful identity
// fetch since the last teardown.
type Session struct {
	State           State
	Identity        json.RawMessage // as returned by GET /auth/me, not interpreted here
	IsAuthenticated bool
	IsLoading       bool
}

// DecodeIdentity unmarshals the identity into v.
func (s Session) DecodeIdentity(v any) error {
	if len(s.Identity) == 0 {
		return panelerrors.ErrNotAuthenticated
	}
	return json.Unmarshal(s.Identity, v)
}

// Initial is the session before any check has run.
func Initial() Session {
	return Session{State: StateUnknown}
}

// Begin marks a check or login in flight. The previous identity stays visible
// until the outcome is known.
func Begin(prev Session) Session {
	return Session{
		State:           StateAuthenticating,
		Identity:        prev.Identity,
		IsAuthenticated: prev.IsAuthenticated,
		IsLoading:       true,
	}
}

// Authenticated attaches a freshly fetched identity.
func Authenticated(identity json.RawMessage) Session {
	return Session{
		State:           StateAuthenticated,
		Identity:        append(json.RawMessage(nil), identity...),
		IsAuthenticated: true,
	}
}

// Anonymous is the torn-down session.
func Anonymous() Session {
	return Session{State: StateAnonymous}
}
