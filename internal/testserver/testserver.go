// Package testserver runs the real API routes over in-memory services for
// tests of code that talks to the API over HTTP.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/handlers"
	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/portfolio/handler"
	"github.com/folio/folio/internal/portfolio/service"
	"github.com/folio/folio/internal/sessions"
	"github.com/folio/folio/internal/storage"
	"github.com/folio/folio/internal/tokens"
	"github.com/folio/folio/internal/users"
	"github.com/folio/folio/pkg/middleware"
)

const (
	AdminEmail    = "admin@portfolio.com"
	AdminPassword = "admin123"
	AdminName     = "Admin"
)

// Server is a running API with handles on its services.
type Server struct {
	*httptest.Server
	Content *service.Service
}

// New starts the server; it is closed through t.Cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{Secret: "testserver-secret", AccessTokenTTL: time.Hour}

	uSvc := users.NewService(users.NewMemoryUserRepository())
	_, err := uSvc.EnsureAdmin(context.Background(), AdminEmail, AdminPassword, AdminName)
	require.NoError(t, err)
	bl := sessions.NewMemoryBlacklist()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	files := storage.NewManager(store, config.UploadsConfig{MaxBytes: 1 << 20, PublicPrefix: "/api/files", MaxDimension: 1920})

	r := gin.New()
	api := r.Group("/api")
	authMW := middleware.AuthMiddleware(tokens.NewVerifier(cfg.JWT.Secret), middleware.WithRevocations(bl))
	svc := service.NewMemory()
	handler.RegisterPublicRoutes(api, svc)
	handlers.NewAuthHandler(cfg, uSvc, bl).Register(api, authMW)
	up := handlers.NewUploadHandler(files)
	up.RegisterPublic(api)
	admin := api.Group("/admin", authMW, middleware.RequireAdmin())
	handler.RegisterAdminRoutes(admin, svc)
	up.RegisterAdmin(admin)

	srv := &Server{Server: httptest.NewServer(r), Content: svc}
	t.Cleanup(srv.Close)
	return srv
}
