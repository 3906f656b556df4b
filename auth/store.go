package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jrsteele09/panel-console/client"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/tokens"
	"github.com/rs/zerolog/log"
)

// Backend is the part of the panel API the session store needs.
type Backend interface {
	Login(ctx context.Context, username, password string) (tokens.Pair, error)
	Me(ctx context.Context) (json.RawMessage, error)
}

// Store owns the current Session. The lock only protects memory; overlapping
// transitions are not coalesced and the last one to finish wins.
type Store struct {
	backend Backend
	tokens  tokens.Repo

	mu          sync.RWMutex
	session     Session
	subscribers []func(Session)
}

func NewStore(backend Backend, repo tokens.Repo) *Store {
	return &Store{
		backend: backend,
		tokens:  repo,
		session: Initial(),
	}
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers fn to receive every new session.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// FetchSession rebuilds the session from the stored credentials. Without an
// access token no request is made. Any failure clears the stored tokens.
func (s *Store) FetchSession(ctx context.Context) Session {
	_, ok, err := tokens.AccessToken(s.tokens)
	if err != nil {
		log.Err(err).Msg("Failed to read access token")
	}
	if !ok {
		return s.set(Anonymous())
	}

	s.set(Begin(s.Current()))

	identity, err := s.fetchIdentity(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("identity fetch failed, clearing session")
		s.clearTokens()
		return s.set(Anonymous())
	}
	return s.set(Authenticated(identity))
}

// Login obtains a credential pair, persists it and fetches the identity. On any
// failure the session ends Anonymous and no token written here is left behind.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	s.set(Begin(s.Current()))

	pair, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return s.set(Anonymous()), err
	}

	if err := tokens.Save(s.tokens, pair); err != nil {
		s.clearTokens()
		return s.set(Anonymous()), fmt.Errorf("[auth Login] %w", err)
	}

	identity, err := s.fetchIdentity(ctx)
	if err != nil {
		s.clearTokens()
		return s.set(Anonymous()), err
	}
	return s.set(Authenticated(identity)), nil
}

// Logout clears the stored tokens and ends the session. No request is made.
func (s *Store) Logout() Session {
	s.clearTokens()
	return s.set(Anonymous())
}

// HandleUnauthorized is the client.OnUnauthorized observer: any 401 ends the session.
func (s *Store) HandleUnauthorized(event client.UnauthorizedEvent) {
	log.Debug().Str("request_id", event.RequestID).Str("path", event.Path).Msg("unauthorized response, tearing down session")
	s.Logout()
}

// fetchIdentity only succeeds with a non-empty identity, so an authenticated
// session always carries one.
func (s *Store) fetchIdentity(ctx context.Context) (json.RawMessage, error) {
	identity, err := s.backend.Me(ctx)
	if err != nil {
		return nil, err
	}
	if isEmptyIdentity(identity) {
		return nil, panelerrors.Wrapf(panelerrors.ErrNotAuthenticated, "[auth fetchIdentity] empty identity")
	}
	return identity, nil
}

func (s *Store) set(next Session) Session {
	s.mu.Lock()
	s.session = next
	subscribers := append([]func(Session){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
	return next
}

func (s *Store) clearTokens() {
	if err := tokens.Clear(s.tokens); err != nil {
		log.Err(err).Msg("Failed to clear stored tokens")
	}
}
