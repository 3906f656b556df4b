package tokens

import (
	"errors"
	"fmt"

	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

// Durable storage keys. The pair is stored as two independent slots.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// ErrNotFound is returned by Repo.Get when the key has no value.
var ErrNotFound = panelerrors.ErrTokenNotFound

// Repo is the durable key/value storage backing the credential pair.
// Writes are atomic per key only.
type Repo interface {
	// Get returns the value stored under key or ErrNotFound
	Get(key string) (string, error)

	// Set stores value under key
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Save persists both halves of the pair. The two writes are not a single
// transaction: a failure between them leaves the access token updated and the
// refresh token stale.
func Save(repo Repo, pair Pair) error {
	if err := repo.Set(AccessTokenKey, pair.AccessToken); err != nil {
		return fmt.Errorf("[tokens Save] access token: %w", err)
	}
	if err := repo.Set(RefreshTokenKey, pair.RefreshToken); err != nil {
		return fmt.Errorf("[tokens Save] refresh token: %w", err)
	}
	return nil
}

// Clear deletes both tokens. Both deletes are attempted even if the first fails.
func Clear(repo Repo) error {
	return errors.Join(repo.Delete(AccessTokenKey), repo.Delete(RefreshTokenKey))
}

// AccessToken reads the stored access token. ok is false when nothing (or an
// empty value) is stored.
func AccessToken(repo Repo) (token string, ok bool, err error) {
	token, err = repo.Get(AccessTokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[tokens AccessToken] %w", err)
	}
	return token, token != "", nil
}

// Load reads the full pair. A missing refresh token is tolerated.
func Load(repo Repo) (Pair, bool, error) {
	access, ok, err := AccessToken(repo)
	if err != nil || !ok {
		return Pair{}, false, err
	}
	refresh, err := repo.Get(RefreshTokenKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Pair{}, false, fmt.Errorf("[tokens Load] refresh token: %w", err)
	}
	return Pair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, true, nil
}
