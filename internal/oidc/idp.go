// Package oidc lets the portfolio admin sign in with an external identity
// provider instead of the local password.
package oidc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/folio/folio/pkg/middleware"
)

// claimSet is a decoded token payload.
type claimSet map[string]interface{}

func (c claimSet) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(c))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

type idTokens struct {
	v *gooidc.IDTokenVerifier
}

// Discover loads the issuer's metadata and signing keys and verifies ID
// tokens whose audience is clientID.
func Discover(ctx context.Context, issuer, clientID string) (middleware.Verifier, error) {
	p, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc: discover %s: %w", issuer, err)
	}
	return idTokens{v: p.Verifier(&gooidc.Config{ClientID: clientID})}, nil
}

func (t idTokens) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	tok, err := t.v.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

var (
	errMalformed = errors.New("oidc: malformed token")
	errExpired   = errors.New("oidc: token expired")
	errEarly     = errors.New("oidc: token not valid yet")
)

type unverified struct {
	now func() time.Time
}

// Unverified reads token payloads without checking signatures; only exp and
// nbf are enforced. Wired only when ALLOW_INSECURE_TOKEN is set.
func Unverified() middleware.Verifier { return unverified{now: time.Now} }

func (u unverified) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[1] == "" {
		return nil, errMalformed
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	claims := claimSet{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	now := u.now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return nil, errExpired
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return nil, errEarly
	}
	return claims, nil
}
