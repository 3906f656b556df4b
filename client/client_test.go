package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/panel-console/apierrors"
	"github.com/jrsteele09/panel-console/client"
	"github.com/jrsteele09/panel-console/internal/fakepanel"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/tokens"
	tokenrepofake "github.com/jrsteele09/panel-console/tokens/repofake"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T) (*client.Client, *fakepanel.Server, *tokenrepofake.FakeTokenRepo) {
	t.Helper()

	panel := fakepanel.New(t)
	repo := tokenrepofake.NewFakeTokenRepo()
	c, err := client.New(panel.BaseURL(), repo)
	require.NoError(t, err)
	return c, panel, repo
}

func TestNew_InvalidBaseURL(t *testing.T) {
	repo := tokenrepofake.NewFakeTokenRepo()

	_, err := client.New("/api/v1", repo)
	require.ErrorIs(t, err, panelerrors.ErrInvalidBaseURL)

	_, err = client.New("http://[::1", repo)
	require.ErrorIs(t, err, panelerrors.ErrInvalidBaseURL)

	_, err = client.New("http://localhost:8000/api/v1", nil)
	require.Error(t, err)
}

func TestDo_AttachesBearerWhenTokenStored(t *testing.T) {
	c, panel, repo := setupClient(t)
	require.NoError(t, tokens.Save(repo, tokens.Pair{AccessToken: fakepanel.DefaultAccessToken, RefreshToken: fakepanel.DefaultRefreshToken}))

	var identity map[string]any
	require.NoError(t, c.Get(context.Background(), "/auth/me", nil, &identity))
	require.Equal(t, "admin", identity["username"])

	last := panel.Last()
	require.Equal(t, "Bearer "+fakepanel.DefaultAccessToken, last.Authorization)
	require.NotEmpty(t, last.RequestID)
}

func TestDo_NoHeaderWithoutToken(t *testing.T) {
	c, panel, _ := setupClient(t)

	err := c.Post(context.Background(), "/auth/login", map[string]string{"username": "admin", "password": "password123"}, nil)
	require.NoError(t, err)

	last := panel.Last()
	require.Equal(t, "/api/v1/auth/login", last.Path)
	require.Empty(t, last.Authorization)
	require.Equal(t, "admin", last.Body["username"])
}

func TestDo_TokenIsReadOnEveryRequest(t *testing.T) {
	c, panel, repo := setupClient(t)
	ctx := context.Background()

	_ = c.Get(ctx, "/users/", nil, nil)
	require.Empty(t, panel.Last().Authorization)

	require.NoError(t, repo.Set(tokens.AccessTokenKey, fakepanel.DefaultAccessToken))
	require.NoError(t, c.Get(ctx, "/users/", nil, nil))
	require.Equal(t, "Bearer "+fakepanel.DefaultAccessToken, panel.Last().Authorization)
}

func TestDo_QueryAndTrailingSlash(t *testing.T) {
	c, panel, repo := setupClient(t)
	require.NoError(t, repo.Set(tokens.AccessTokenKey, fakepanel.DefaultAccessToken))

	query := url.Values{"search": {"ali"}, "limit": {"10"}}
	require.NoError(t, c.Get(context.Background(), "/users/", query, nil))

	last := panel.Last()
	require.Equal(t, "/api/v1/users/", last.Path)
	require.Equal(t, "ali", last.Query.Get("search"))
	require.Equal(t, "10", last.Query.Get("limit"))
}

func TestDo_UnauthorizedClearsTokensAndNotifiesOnce(t *testing.T) {
	c, panel, repo := setupClient(t)
	require.NoError(t, tokens.Save(repo, tokens.Pair{AccessToken: "stale", RefreshToken: "stale-refresh"}))

	var events []client.UnauthorizedEvent
	c.OnUnauthorized(func(e client.UnauthorizedEvent) {
		// Tokens are already gone when observers run
		require.False(t, repo.Has(tokens.AccessTokenKey))
		events = append(events, e)
	})

	err := c.Get(context.Background(), "/nodes/", nil, nil)
	require.Error(t, err)
	require.True(t, apierrors.IsUnauthorized(err))
	require.ErrorIs(t, err, panelerrors.ErrSessionExpired)
	require.Equal(t, "Could not validate credentials", apierrors.HandleAPIError(err, "fallback"))

	require.False(t, repo.Has(tokens.AccessTokenKey))
	require.False(t, repo.Has(tokens.RefreshTokenKey))
	require.Len(t, events, 1)
	require.Equal(t, http.MethodGet, events[0].Method)
	require.Equal(t, "/nodes/", events[0].Path)
	require.Equal(t, panel.Last().RequestID, events[0].RequestID)

	t.Run("every failing call notifies", func(t *testing.T) {
		_ = c.Get(context.Background(), "/inbounds/", nil, nil)
		_ = c.Post(context.Background(), "/auth/login", map[string]string{"username": "admin", "password": "wrong-pass"}, nil)
		require.Len(t, events, 3)
	})
}

func TestDo_OtherErrorsPropagateWithoutTeardown(t *testing.T) {
	c, panel, repo := setupClient(t)
	require.NoError(t, tokens.Save(repo, tokens.Pair{AccessToken: fakepanel.DefaultAccessToken, RefreshToken: fakepanel.DefaultRefreshToken}))

	notified := 0
	c.OnUnauthorized(func(client.UnauthorizedEvent) { notified++ })

	err := c.Get(context.Background(), "/users/999", nil, nil)
	require.Error(t, err)

	var httpErr *apierrors.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Equal(t, "User not found", apierrors.HandleAPIError(err, "fallback"))
	require.NotErrorIs(t, err, panelerrors.ErrSessionExpired)

	require.Equal(t, 0, notified)
	require.True(t, repo.Has(tokens.AccessTokenKey))
	require.Equal(t, 1, panel.Count(http.MethodGet, "/users/999"), "no retry")
}

func TestDo_ValidationErrorBody(t *testing.T) {
	c, _, _ := setupClient(t)

	err := c.Post(context.Background(), "/auth/login", map[string]string{"username": "ab", "password": "x"}, nil)
	require.Error(t, err)
	require.Equal(t, "username: Must be at least 3 characters (got 2)", apierrors.HandleAPIError(err, "fallback"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo_TransportError(t *testing.T) {
	repo := tokenrepofake.NewFakeTokenRepo()
	c, err := client.New("http://panel.invalid/api/v1", repo, client.WithHTTPClient(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/auth/me", nil, nil)
	require.Error(t, err)
	require.Contains(t, apierrors.HandleAPIError(err, "fallback"), "connection refused")
}

func TestDo_UnencodableBody(t *testing.T) {
	c, panel, _ := setupClient(t)

	err := c.Post(context.Background(), "/users/", map[string]any{"bad": make(chan int)}, nil)
	require.ErrorIs(t, err, panelerrors.ErrEncodeBody)
	require.Empty(t, panel.Requests())
}

func TestResponse_Decode(t *testing.T) {
	var out map[string]any
	require.NoError(t, (&client.Response{Body: []byte("  ")}).Decode(&out))
	require.Nil(t, out)

	err := (&client.Response{Body: []byte("{oops")}).Decode(&out)
	require.ErrorIs(t, err, panelerrors.ErrDecodeBody)
}
