package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/folio/folio/handlers"
	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/portfolio/handler"
	"github.com/folio/folio/internal/portfolio/service"
	"github.com/folio/folio/internal/sessions"
	"github.com/folio/folio/internal/storage"
	"github.com/folio/folio/internal/users"
	"github.com/folio/folio/pkg/logger"
	"github.com/folio/folio/pkg/middleware"
)

// app holds the wired services shared by the router and readiness checks.
type app struct {
	cfg       *config.Config
	svc       *service.Service
	users     *users.Service
	blacklist sessions.Blacklist
	files     *storage.Manager
	verifier  middleware.Verifier
	rdb       *redis.Client
	mongo     *mongo.Client
	oidc      bool
	started   time.Time
}

func (a *app) close() {
	if a.mongo != nil {
		_ = a.mongo.Disconnect(context.Background())
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

// limit returns the rate limiter for scope, or a pass-through when disabled.
func (a *app) limit(scope string) gin.HandlerFunc {
	rl := a.cfg.RateLimit
	if !rl.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	if rl.UseRedis && a.rdb != nil {
		return middleware.RedisRateLimitMiddleware(scope, a.rdb, rl.RPS, rl.Burst, rl.Window)
	}
	return middleware.RateLimitMiddleware(scope, rl.RPS, rl.Burst)
}

func (a *app) router() *gin.Engine {
	if a.cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger.L()), middleware.CORS(a.cfg.Server.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", a.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	api := r.Group("/api")
	authMW := middleware.AuthMiddleware(a.verifier, middleware.WithRevocations(a.blacklist))

	handler.RegisterPublicRoutes(api, a.svc, a.limit("contact"))
	handlers.NewAuthHandler(a.cfg, a.users, a.blacklist).Register(api, authMW, a.limit("login"))
	uploads := handlers.NewUploadHandler(a.files)
	uploads.RegisterPublic(api)

	admin := api.Group("/admin", authMW, middleware.RequireAdmin())
	handler.RegisterAdminRoutes(admin, a.svc)
	uploads.RegisterAdmin(admin)
	return r
}

// ready reports 200 only when every configured backend answers.
func (a *app) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	deps := map[string]bool{"storage": a.files != nil, "oidc": a.cfg.OIDC.Issuer == "" || a.oidc}
	if a.cfg.MongoDB.URI != "" {
		deps["mongo"] = a.mongo != nil && a.mongo.Ping(ctx, nil) == nil
	}
	if a.cfg.Redis.Host != "" {
		deps["redis"] = a.rdb != nil && a.rdb.Ping(ctx).Err() == nil
	}
	status, code := "ready", http.StatusOK
	for _, ok := range deps {
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(a.started).String()})
}
