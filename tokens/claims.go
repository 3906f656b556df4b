package tokens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

// Claims are the fields the panel puts into its access tokens. They are read
// without verifying the signature and must only be used for display.
type Claims struct {
	Subject   string
	Type      string // "access" or "refresh"
	ExpiresAt time.Time
}

// Expired reports whether the token expiry has passed at now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims extracts the claims from a JWT access token without verification.
func ParseClaims(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, panelerrors.ErrTokenNotFound
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("[tokens ParseClaims] %w: %w", panelerrors.ErrInvalidPayload, err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.New("error extracting claims")
	}

	var claims Claims
	claims.Subject, _ = mapClaims.GetSubject()
	claims.Type, _ = mapClaims["type"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
