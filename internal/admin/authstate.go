package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/client"
	"github.com/folio/folio/pkg/logger"
)

type Phase int

const (
	Anonymous Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "anonymous"
}

// LoginResult is what the login screen needs: success, or a message to show.
type LoginResult struct {
	Success bool
	Error   string
}

// AuthState tracks who is signed in. Any clear of the token store, including
// the one done by the client on a 401, drops it back to Anonymous.
type AuthState struct {
	c *client.Client

	mu    sync.Mutex
	phase Phase
	user  *models.PublicUser

	unsubscribe func()
}

func NewAuthState(c *client.Client) *AuthState {
	a := &AuthState{c: c}
	a.unsubscribe = c.Tokens().Subscribe(a.onToken)
	return a
}

// Close stops following the token store.
func (a *AuthState) Close() { a.unsubscribe() }

func (a *AuthState) onToken(token string) {
	if token != "" {
		return
	}
	a.mu.Lock()
	a.phase = Anonymous
	a.user = nil
	a.mu.Unlock()
}

func (a *AuthState) set(p Phase, u *models.PublicUser) {
	a.mu.Lock()
	a.phase = p
	a.user = u
	a.mu.Unlock()
}

func (a *AuthState) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// User returns the signed-in user, nil unless Authenticated.
func (a *AuthState) User() *models.PublicUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Login exchanges credentials for a token. The client stores the token.
func (a *AuthState) Login(ctx context.Context, email, password string) LoginResult {
	a.set(Authenticating, nil)
	resp, err := a.c.Login(ctx, email, password)
	if err != nil {
		a.set(Anonymous, nil)
		return LoginResult{Error: loginMessage(err)}
	}
	u := resp.User
	a.set(Authenticated, &u)
	logger.Infof("admin: signed in as %s", u.Email)
	return LoginResult{Success: true}
}

func loginMessage(err error) string {
	var ce *client.Error
	if errors.As(err, &ce) && ce.Kind != client.KindNetwork && ce.Message != "" {
		return ce.Message
	}
	return "Login failed"
}

// Logout forgets the user and the token before returning. Revoking the token
// on the server is best effort.
func (a *AuthState) Logout(ctx context.Context) {
	a.set(Anonymous, nil)
	if err := a.c.Logout(ctx); err != nil {
		logger.Warnf("admin: logout: %v", err)
	}
}

// Restore confirms a previously stored token with the backend. Any failure
// clears the token.
func (a *AuthState) Restore(ctx context.Context) error {
	if a.c.Tokens().Get() == "" {
		a.set(Anonymous, nil)
		return nil
	}
	a.set(Authenticating, nil)
	u, err := a.c.Me(ctx)
	if err != nil {
		a.set(Anonymous, nil)
		if cerr := a.c.Tokens().Clear(); cerr != nil {
			logger.Warnf("admin: clear token: %v", cerr)
		}
		return err
	}
	a.set(Authenticated, u)
	return nil
}

// Guard reports whether admin screens may render.
func (a *AuthState) Guard() bool { return a.Phase() == Authenticated }

// RequireAdmin sends anonymous visitors to the login screen.
func (a *AuthState) RequireAdmin(nav client.Navigator) bool {
	if a.Guard() {
		return true
	}
	if nav != nil {
		nav.ToLogin()
	}
	return false
}
