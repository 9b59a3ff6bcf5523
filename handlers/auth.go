package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/sessions"
	"github.com/folio/folio/internal/tokens"
	"github.com/folio/folio/internal/users"
	"github.com/folio/folio/pkg/logger"
	"github.com/folio/folio/pkg/metrics"
	"github.com/folio/folio/pkg/middleware"
)

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg       *config.Config
	usersSvc  *users.Service
	blacklist sessions.Blacklist
}

func NewAuthHandler(cfg *config.Config, u *users.Service, b sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, blacklist: b}
}

// Register routes under /auth. authMW guards logout and me; loginMW (for
// example a rate limiter) runs before login.
func (h *AuthHandler) Register(rg *gin.RouterGroup, authMW gin.HandlerFunc, loginMW ...gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", append(loginMW, h.Login)...)
	a.POST("/logout", authMW, h.Logout)
	a.GET("/me", authMW, h.Me)
}

// Login checks the admin credentials and issues a bearer access token.
func (h *AuthHandler) Login(c *gin.Context) {
	const op = "Auth.Login"
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.E(apperr.CodeInvalidArgument, op, "email and password are required", err))
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeUnauthorized) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			c.Header("WWW-Authenticate", "Bearer")
		}
		apperr.Respond(c, err)
		return
	}
	at, err := tokens.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		apperr.Respond(c, apperr.E(apperr.CodeInternal, op, "failed to issue token", err))
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Infof("admin %s logged in", u.Email)
	c.JSON(http.StatusOK, models.LoginResponse{AccessToken: at, TokenType: "bearer", User: u.Public()})
}

// Logout blacklists the presented access token until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	const op = "Auth.Logout"
	token := c.GetString(middleware.TokenKey)
	if ttl := remaining(c); ttl > 0 && token != "" {
		if err := h.blacklist.Revoke(c.Request.Context(), token, ttl); err != nil {
			apperr.Respond(c, apperr.E(apperr.CodeUnavailable, op, "failed to blacklist access token", err))
			return
		}
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the user behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	const op = "Auth.Me"
	u, err := h.usersSvc.GetByID(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if apperr.IsCode(err, apperr.CodeNotFound) {
		c.Header("WWW-Authenticate", "Bearer")
		apperr.Respond(c, apperr.E(apperr.CodeUnauthorized, op, "User not found", err))
		return
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// remaining reads the exp claim stored by the auth middleware.
func remaining(c *gin.Context) time.Duration {
	raw, _ := c.Get(middleware.ClaimsKey)
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return 0
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0
	}
	return time.Until(time.Unix(int64(exp), 0))
}
