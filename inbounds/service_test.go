package inbounds_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/panel-console/apierrors"
	"github.com/jrsteele09/panel-console/client"
	"github.com/jrsteele09/panel-console/inbounds"
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

	svc := inbounds.NewService(c)
	ctx := context.Background()

	created, err := svc.Create(ctx, inbounds.CreateRequest{
		Tag:             "vless-reality",
		Type:            "vless",
		Port:            443,
		Security:        utils.Ptr("reality"),
		RealitySettings: map[string]any{"dest": "www.example.com:443", "serverNames": []any{"www.example.com"}},
	})
	require.NoError(t, err)
	require.Equal(t, "vless-reality", created.Tag)
	require.Equal(t, "www.example.com:443", created.RealitySettings["dest"])

	t.Run("list", func(t *testing.T) {
		list, err := svc.List(ctx, inbounds.ListParams{Limit: 20})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "20", panel.Last().Query.Get("limit"))
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, inbounds.UpdateRequest{Port: utils.Ptr(8443)})
		require.NoError(t, err)
		require.Equal(t, 8443, updated.Port)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, 8443, got.Port)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.Get(ctx, created.ID)
		require.Equal(t, http.StatusNotFound, apierrors.StatusCode(err))
		require.Equal(t, "Inbound not found", apierrors.HandleAPIError(err, "Failed"))
	})
}
