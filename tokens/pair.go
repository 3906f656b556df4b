package tokens

import (
	"golang.org/x/oauth2"
)

// Pair is the credential pair issued by POST /auth/login.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"` // "bearer"
}

// OAuth2 converts the pair into an oauth2.Token so callers can reuse
// Token.SetAuthHeader and Token.Type.
func (p Pair) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
}
