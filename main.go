package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/folio/folio/internal/cache"
	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/database"
	"github.com/folio/folio/internal/oidc"
	"github.com/folio/folio/internal/portfolio/service"
	"github.com/folio/folio/internal/sessions"
	"github.com/folio/folio/internal/storage"
	"github.com/folio/folio/internal/tokens"
	"github.com/folio/folio/internal/users"
	"github.com/folio/folio/pkg/logger"
	"github.com/folio/folio/pkg/metrics"
	"github.com/folio/folio/pkg/middleware"
)

func main() {
	// initialize logging (LOG_LEVEL: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.OIDC.Issuer != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cfg)
	if err != nil {
		logger.Fatalf("startup failed: %v", err)
	}
	defer a.close()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("portfolio API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("graceful shutdown failed: %v", err)
	}
}

// setup connects the optional backends and wires the services. Missing Mongo
// means in-memory content; missing Redis means in-process blacklist and limiter.
func setup(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, started: time.Now()}

	if addr := cfg.Redis.Addr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = rdb.Close()
		} else {
			logger.Infof("connected to Redis at %s", addr)
			a.rdb = rdb
		}
	}

	var contentCache cache.Cache = cache.Nop{}
	a.blacklist = sessions.NewMemoryBlacklist()
	if a.rdb != nil {
		contentCache = cache.NewRedisCache(a.rdb, "folio:cache:")
		a.blacklist = sessions.NewRedisBlacklist(a.rdb)
	}

	var userRepo users.UserRepository = users.NewMemoryUserRepository()
	repos := service.NewMemoryRepos()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			return nil, err
		}
		a.mongo = client
		db := client.Database(cfg.MongoDB.Database)
		if err := database.EnsureIndexes(ctx, db, service.OrderedCollections...); err != nil {
			logger.Warnf("index bootstrap: %v", err)
		}
		repos = service.NewMongoRepos(db)
		userRepo = users.NewMongoUserRepository(db.Collection("users"))
		logger.Infof("content stored in MongoDB database %q", cfg.MongoDB.Database)
	} else {
		logger.Warn("MONGODB_URI not set; content is kept in memory and lost on restart")
	}

	a.svc = service.New(repos, contentCache, cfg.Cache.TTL)
	a.users = users.NewService(userRepo)
	created, err := a.users.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Infof("created default admin %s", cfg.Admin.Email)
	}

	store, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.files = storage.NewManager(store, cfg.Uploads)

	verifiers := []middleware.Verifier{tokens.NewVerifier(cfg.JWT.Secret)}
	switch {
	case cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "":
		ver, err := oidc.Discover(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifiers = append(verifiers, oidc.NewAdminVerifier(ver, cfg.OIDC.AdminEmail, a.users))
			a.oidc = true
		}
	case cfg.OIDC.AllowInsecure:
		logger.Warn("enabling insecure OIDC verifier (integration mode)")
		verifiers = append(verifiers, oidc.NewAdminVerifier(oidc.Unverified(), cfg.OIDC.AdminEmail, a.users))
		a.oidc = true
	}
	a.verifier = middleware.ChainVerifier(verifiers...)
	return a, nil
}
