package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/models"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	now  func() time.Time
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, now: time.Now}
}

// Authenticate checks email and password. Unknown email and wrong password
// produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "Users.Authenticate"
	bad := apperr.E(apperr.CodeUnauthorized, op, "Incorrect email or password", nil)
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load user", err)
	}
	if u == nil {
		return nil, bad
	}
	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return nil, bad
	}
	return u, nil
}

// GetByID returns the user or a NOT_FOUND error.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	const op = "Users.GetByID"
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load user", err)
	}
	if u == nil {
		return nil, apperr.E(apperr.CodeNotFound, op, "User not found", nil)
	}
	return u, nil
}

// GetByEmail returns the user or a NOT_FOUND error.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "Users.GetByEmail"
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load user", err)
	}
	if u == nil {
		return nil, apperr.E(apperr.CodeNotFound, op, "User not found", nil)
	}
	return u, nil
}

// EnsureAdmin creates the admin account when no admin exists yet. It reports
// whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	const op = "Users.EnsureAdmin"
	n, err := s.repo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, apperr.E(apperr.CodeInternal, op, "failed to count admins", err)
	}
	if n > 0 {
		return false, nil
	}
	if normalizeEmail(email) == "" || password == "" {
		return false, apperr.E(apperr.CodeInvalidArgument, op, "admin email and password are required", nil)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, apperr.E(apperr.CodeInternal, op, "failed to hash password", err)
	}
	now := s.now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return false, apperr.E(apperr.CodeInternal, op, "failed to create admin", err)
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
