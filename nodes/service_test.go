package nodes_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/panel-console/apierrors"
	"github.com/jrsteele09/panel-console/client"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/internal/fakepanel"
	"github.com/jrsteele09/panel-console/internal/utils"
	"github.com/jrsteele09/panel-console/nodes"
	"github.com/jrsteele09/panel-console/tokens"
	tokenrepofake "github.com/jrsteele09/panel-console/tokens/repofake"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*nodes.Service, *fakepanel.Server) {
	t.Helper()

	panel := fakepanel.New(t)
	repo := tokenrepofake.NewFakeTokenRepo()
	require.NoError(t, tokens.Save(repo, tokens.Pair{AccessToken: fakepanel.DefaultAccessToken}))

	c, err := client.New(panel.BaseURL(), repo)
	require.NoError(t, err)
	return nodes.NewService(c), panel
}

func TestService_List(t *testing.T) {
	svc, panel := setupService(t)
	panel.SeedNode(map[string]any{"name": "de-1", "is_connected": true, "is_enabled": true})
	panel.SeedNode(map[string]any{"name": "nl-1", "is_connected": false, "is_enabled": true})

	all, err := svc.List(context.Background(), nodes.ListParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Empty(t, panel.Last().Query)

	online, err := svc.List(context.Background(), nodes.ListParams{OnlineOnly: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, online, 1)
	require.Equal(t, "de-1", online[0].Name)
	require.Equal(t, "true", panel.Last().Query.Get("online_only"))
	require.Equal(t, "10", panel.Last().Query.Get("limit"))
}

func TestService_CRUD(t *testing.T) {
	svc, panel := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, nodes.CreateRequest{
		Name:        "fi-1",
		Address:     "10.0.0.5",
		APIPort:     50051,
		APIProtocol: nodes.ProtocolGRPC,
		APIKey:      "0123456789abcdef",
	})
	require.NoError(t, err)
	require.Equal(t, "fi-1", created.Name)
	require.Equal(t, nodes.ProtocolGRPC, created.APIProtocol)

	updated, err := svc.Update(ctx, created.ID, nodes.UpdateRequest{IsEnabled: utils.Ptr(false)})
	require.NoError(t, err)
	require.False(t, updated.IsEnabled)
	require.Equal(t, map[string]any{"is_enabled": false}, panel.Last().Body)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "10.0.0.5", got.Address)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	require.Equal(t, http.StatusNotFound, apierrors.StatusCode(err))
	require.Equal(t, "Node not found", apierrors.HandleAPIError(err, "Delete failed"))
}

func TestService_ConnectDisconnect(t *testing.T) {
	svc, panel := setupService(t)
	id := panel.SeedNode(map[string]any{"name": "de-1", "is_connected": false})

	result, err := svc.Connect(context.Background(), id)
	require.NoError(t, err)
	require.True(t, result.Success)

	node, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, node.IsConnected)

	result, err = svc.Disconnect(context.Background(), id)
	require.NoError(t, err)
	require.True(t, result.Success)

	node, err = svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.False(t, node.IsConnected)
}

func TestService_GenerateSSL(t *testing.T) {
	svc, panel := setupService(t)

	t.Run("query params and no body", func(t *testing.T) {
		bundle, err := svc.GenerateSSL(context.Background(), "de-1", "203.0.113.7")
		require.NoError(t, err)
		require.True(t, bundle.Success)
		require.Equal(t, "de-1", bundle.Name)
		require.NotEmpty(t, bundle.ClientKey)

		last := panel.Last()
		require.Equal(t, http.MethodPost, last.Method)
		require.Equal(t, fakepanel.APIPrefix+"/nodes/generate-ssl", last.Path)
		require.Equal(t, "de-1", last.Query.Get("node_name"))
		require.Equal(t, "203.0.113.7", last.Query.Get("node_address"))
		require.Nil(t, last.Body)
	})

	t.Run("missing argument", func(t *testing.T) {
		before := len(panel.Requests())
		_, err := svc.GenerateSSL(context.Background(), "de-1", "")
		require.ErrorIs(t, err, panelerrors.ErrMissingArgument)
		require.Len(t, panel.Requests(), before)
	})
}
