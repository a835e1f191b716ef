package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone sends no credentials. As a request override it suppresses
	// the client-level auth.
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthToken sends "Authorization: Token <token>".
	AuthToken
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type  AuthType
	Token string
}

// NoAuth returns an override that strips client-level credentials,
// e.g. for pre-signed download URLs.
func NoAuth() *AuthConfig {
	return &AuthConfig{Type: AuthNone}
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// TokenAuth creates a "Token" scheme auth config.
func TokenAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthToken, Token: token}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthToken:
		req.Header.Set("Authorization", "Token "+a.Token)
	}
}
