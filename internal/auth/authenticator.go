package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned for every authentication failure. The caller
// gets no detail about which check failed.
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator decides whether a request may proceed to handler dispatch.
// On success it returns the request context, possibly enriched (the JWT
// variant stores the authenticated user ID).
type Authenticator interface {
	Authenticate(r *http.Request) (context.Context, error)
}

// SharedSecretAuthenticator accepts a request iff the configured header
// carries exactly the configured secret value.
type SharedSecretAuthenticator struct {
	Header string
	Secret string
}

func NewSharedSecretAuthenticator(header, secret string) *SharedSecretAuthenticator {
	return &SharedSecretAuthenticator{Header: header, Secret: secret}
}

func (a *SharedSecretAuthenticator) Authenticate(r *http.Request) (context.Context, error) {
	got := r.Header.Get(a.Header)
	if got == "" {
		return nil, ErrUnauthorized
	}
	// constant-time compare so the secret cannot be probed byte by byte
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.Secret)) != 1 {
		return nil, ErrUnauthorized
	}
	return r.Context(), nil
}

// JWTAuthenticator accepts a request iff it carries a well-formed,
// correctly signed and unexpired bearer token.
type JWTAuthenticator struct {
	tokens *TokenManager
}

func NewJWTAuthenticator(tokens *TokenManager) *JWTAuthenticator {
	return &JWTAuthenticator{tokens: tokens}
}

func (a *JWTAuthenticator) Authenticate(r *http.Request) (context.Context, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, ErrUnauthorized
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrUnauthorized
	}
	userID, err := a.tokens.Verify(parts[1])
	if err != nil {
		return nil, ErrUnauthorized
	}
	return context.WithValue(r.Context(), UserIDKey, userID), nil
}
