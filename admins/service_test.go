package admins_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/panel-console/admins"
	"github.com/jrsteele09/panel-console/apierrors"
	"github.com/jrsteele09/panel-console/client"
	"github.com/jrsteele09/panel-console/internal/fakepanel"
	"github.com/jrsteele09/panel-console/internal/utils"
	"github.com/jrsteele09/panel-console/tokens"
	tokenrepofake "github.com/jrsteele09/panel-console/tokens/repofake"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	panel := fakepanel.New(t)
	repo := tokenrepofake.NewFakeTokenRepo()
	require.NoError(t, tokens.Save(repo, tokens.Pair{AccessToken: fakepanel.DefaultAccessToken}))
	c, err := client.New(panel.BaseURL(), repo)
	require.NoError(t, err)

	svc := admins.NewService(c)
	ctx := context.Background()

	created, err := svc.Create(ctx, admins.CreateRequest{Username: "operator", Password: "operator-pass", Roles: []string{"viewer"}})
	require.NoError(t, err)
	require.Equal(t, "operator", created.Username)
	require.Equal(t, []string{"viewer"}, created.Roles)
	require.Equal(t, false, panel.Last().Body["is_sudo"])

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.Update(ctx, created.ID, admins.UpdateRequest{IsActive: utils.Ptr(false)})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	require.Equal(t, http.StatusNotFound, apierrors.StatusCode(err))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestService_Unauthenticated(t *testing.T) {
	panel := fakepanel.New(t)
	c, err := client.New(panel.BaseURL(), tokenrepofake.NewFakeTokenRepo())
	require.NoError(t, err)

	_, err = admins.NewService(c).List(context.Background())
	require.True(t, apierrors.IsUnauthorized(err))
	require.Equal(t, "Could not validate credentials", apierrors.HandleAPIError(err, "Failed to load admins"))
}
