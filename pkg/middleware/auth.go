package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/pkg/logger"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Revocations reports tokens revoked before expiry.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Context keys set by AuthMiddleware.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
	TokenKey  = "access_token"
)

type chain []Verifier

// ChainVerifier accepts a token when any verifier does, trying them in order.
func ChainVerifier(vs ...Verifier) Verifier { return chain(vs) }

func (c chain) Verify(ctx context.Context, raw string) (Token, error) {
	err := errors.New("no verifier configured")
	for _, v := range c {
		var tok Token
		if tok, err = v.Verify(ctx, raw); err == nil {
			return tok, nil
		}
	}
	return nil, err
}

type authOptions struct {
	revoked Revocations
}

type AuthOption func(*authOptions)

// WithRevocations rejects tokens present in r.
func WithRevocations(r Revocations) AuthOption {
	return func(o *authOptions) { o.revoked = r }
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(strings.TrimSpace(auth), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier, opts ...AuthOption) gin.HandlerFunc {
	var o authOptions
	for _, fn := range opts {
		fn(&o)
	}
	const op = "AuthMiddleware"
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "Not authenticated", nil))
			return
		}
		token, ok := BearerToken(c)
		if !ok {
			apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "invalid Authorization header", nil))
			return
		}

		if o.revoked != nil {
			revoked, err := o.revoked.IsRevoked(c.Request.Context(), token)
			if err != nil {
				apperr.Respond(c, apperr.E(apperr.CodeUnavailable, op, "Token revocation check unavailable", err))
				return
			}
			if revoked {
				apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "Token has been revoked", nil))
				return
			}
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debugf("token rejected: %v", err)
			apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "Could not validate credentials", err))
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "failed to parse claims", err))
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "Could not validate credentials", nil))
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, sub)
		c.Set(RoleKey, role)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireRole lets the request through only for one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		a = strings.TrimSpace(strings.ToLower(a))
		if a != "" {
			allow[a] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(RoleKey)))
		if _, ok := allow[role]; !ok || role == "" {
			apperr.Respond(c, apperr.E(apperr.CodeForbidden, "RequireRole", "forbidden", nil))
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole("admin") }
