package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/panel-console/auth"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestTransitions(t *testing.T) {
	identity := json.RawMessage(`{"id":1,"username":"admin"}`)

	initial := auth.Initial()
	require.Equal(t, auth.StateUnknown, initial.State)
	require.False(t, initial.IsAuthenticated)

	authenticated := auth.Authenticated(identity)
	require.Equal(t, auth.StateAuthenticated, authenticated.State)
	require.True(t, authenticated.IsAuthenticated)
	require.False(t, authenticated.IsLoading)
	require.JSONEq(t, string(identity), string(authenticated.Identity))

	refreshing := auth.Begin(authenticated)
	require.Equal(t, auth.StateAuthenticating, refreshing.State)
	require.True(t, refreshing.IsLoading)
	require.True(t, refreshing.IsAuthenticated)

	fromUnknown := auth.Begin(initial)
	require.False(t, fromUnknown.IsAuthenticated)
	require.Nil(t, fromUnknown.Identity)

	anonymous := auth.Anonymous()
	require.Equal(t, auth.StateAnonymous, anonymous.State)
	require.False(t, anonymous.IsAuthenticated)
	require.Nil(t, anonymous.Identity)
}

func TestAuthenticated_CopiesIdentity(t *testing.T) {
	identity := json.RawMessage(`{"id":1}`)
	session := auth.Authenticated(identity)
	identity[1] = 'X'
	require.JSONEq(t, `{"id":1}`, string(session.Identity))
}

func TestDecodeIdentity(t *testing.T) {
	var admin struct {
		Username string `json:"username"`
	}
	require.NoError(t, auth.Authenticated(json.RawMessage(`{"username":"root"}`)).DecodeIdentity(&admin))
	require.Equal(t, "root", admin.Username)

	require.ErrorIs(t, auth.Anonymous().DecodeIdentity(&admin), panelerrors.ErrNotAuthenticated)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unknown", auth.StateUnknown.String())
	require.Equal(t, "authenticating", auth.StateAuthenticating.String())
	require.Equal(t, "authenticated", auth.StateAuthenticated.String())
	require.Equal(t, "anonymous", auth.StateAnonymous.String())
	require.Equal(t, "state(9)", auth.State(9).String())
}
