package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/panel-console/client"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/tokens"
)

const (
	RouteLogin  = "/auth/login"
	RouteMe     = "/auth/me"
	RouteLogout = "/auth/logout"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// API is the backend's /auth surface.
type API struct {
	requester client.Requester
}

var _ Backend = (*API)(nil)

func NewAPI(requester client.Requester) *API {
	return &API{requester: requester}
}

// Login exchanges credentials for a token pair.
func (a *API) Login(ctx context.Context, username, password string) (tokens.Pair, error) {
	var pair tokens.Pair
	err := client.Invoke(ctx, a.requester, client.Request{
		Method: http.MethodPost,
		Path:   RouteLogin,
		Body:   LoginRequest{Username: username, Password: password},
	}, &pair)
	if err != nil {
		return tokens.Pair{}, fmt.Errorf("[auth Login] %w", err)
	}
	return pair, nil
}

// Me returns the raw identity of the authenticated admin.
func (a *API) Me(ctx context.Context) (json.RawMessage, error) {
	var identity json.RawMessage
	if err := client.Invoke(ctx, a.requester, client.Request{Method: http.MethodGet, Path: RouteMe}, &identity); err != nil {
		return nil, fmt.Errorf("[auth Me] %w", err)
	}
	if isEmptyIdentity(identity) {
		return nil, panelerrors.Wrapf(panelerrors.ErrNotAuthenticated, "[auth Me] empty identity")
	}
	return identity, nil
}

// Logout tells the backend the session ended. The local teardown is
// Store.Logout and does not depend on this call.
func (a *API) Logout(ctx context.Context) error {
	if err := client.Invoke(ctx, a.requester, client.Request{Method: http.MethodPost, Path: RouteLogout}, nil); err != nil {
		return fmt.Errorf("[auth Logout] %w", err)
	}
	return nil
}

// isEmptyIdentity reports a missing body or a JSON null.
func isEmptyIdentity(identity json.RawMessage) bool {
	trimmed := bytes.TrimSpace(identity)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
