package oidc

import (
	"context"
	"errors"
	"strings"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/middleware"
)

// AdminLookup resolves the local admin account for a verified identity.
type AdminLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AdminVerifier accepts IdP tokens only for the configured admin email and
// presents them to the auth middleware as that admin's local identity.
type AdminVerifier struct {
	inner middleware.Verifier
	email string
	users AdminLookup
}

func NewAdminVerifier(inner middleware.Verifier, adminEmail string, users AdminLookup) *AdminVerifier {
	return &AdminVerifier{inner: inner, email: strings.ToLower(strings.TrimSpace(adminEmail)), users: users}
}

var ErrNotAdmin = errors.New("identity is not the portfolio admin")

func (v *AdminVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	tok, err := v.inner.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var idc struct {
		Email         string  `json:"email"`
		EmailVerified *bool   `json:"email_verified"`
		Exp           float64 `json:"exp"`
	}
	if err := tok.Claims(&idc); err != nil {
		return nil, err
	}
	if idc.EmailVerified != nil && !*idc.EmailVerified {
		return nil, errors.New("email not verified")
	}
	if v.email == "" || strings.ToLower(strings.TrimSpace(idc.Email)) != v.email {
		return nil, ErrNotAdmin
	}
	u, err := v.users.GetByEmail(ctx, v.email)
	if err != nil {
		return nil, err
	}
	claims := claimSet{
		"sub":   u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
	if idc.Exp > 0 {
		claims["exp"] = idc.Exp
	}
	return claims, nil
}
