package filestore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/tokens"
	"github.com/jrsteele09/panel-console/tokens/filestore"
	"github.com/stretchr/testify/require"
)

func TestStore_PlainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := filestore.New(path)

	_, err := store.Get(tokens.AccessTokenKey)
	require.ErrorIs(t, err, tokens.ErrNotFound)

	require.NoError(t, tokens.Save(store, tokens.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	// A fresh store over the same file sees the values
	reopened := filestore.New(path)
	value, err := reopened.Get(tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a1", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, reopened.Delete(tokens.AccessTokenKey))
	require.NoError(t, reopened.Delete(tokens.AccessTokenKey))

	_, err = store.Get(tokens.AccessTokenKey)
	require.ErrorIs(t, err, tokens.ErrNotFound)

	value, err = store.Get(tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "r1", value)
}

func TestStore_Sealed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := filestore.New(path, filestore.WithPassphrase("correct horse"))

	require.NoError(t, store.Set(tokens.AccessTokenKey, "secret-access-token"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "secret-access-token"))

	value, err := filestore.New(path, filestore.WithPassphrase("correct horse")).Get(tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "secret-access-token", value)

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := filestore.New(path, filestore.WithPassphrase("battery staple")).Get(tokens.AccessTokenKey)
		require.ErrorIs(t, err, panelerrors.ErrTokenStore)
	})

	t.Run("no passphrase", func(t *testing.T) {
		_, err := filestore.New(path).Get(tokens.AccessTokenKey)
		require.ErrorIs(t, err, panelerrors.ErrTokenStore)
	})
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := filestore.New(path).Get(tokens.AccessTokenKey)
	require.ErrorIs(t, err, panelerrors.ErrInvalidPayload)
}
