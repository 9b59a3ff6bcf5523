package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/folio/folio/pkg/logger"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Uploads   UploadsConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	OIDC      OIDCConfig
	Cache     CacheConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MongoDBConfig is optional; an empty URI selects the in-memory repositories.
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type UploadsConfig struct {
	Dir          string
	MaxBytes     int64
	PublicPrefix string
	MaxDimension int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type RateLimitConfig struct {
	Enabled  bool
	RPS      float64
	Burst    int
	UseRedis bool
	Window   time.Duration
}

// OIDCConfig enables an external identity provider for the admin when Issuer is set.
type OIDCConfig struct {
	Issuer     string
	ClientID   string
	AdminEmail string

	// AllowInsecure accepts IdP tokens without signature checks (integration tests only).
	AllowInsecure bool
}

type CacheConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

const devJWTSecret = "folio-dev-secret-change-me"

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("MONGODB_DATABASE", "portfolio")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_BUCKET", "portfolio")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)
	v.SetDefault("UPLOAD_PUBLIC_PREFIX", "/api/files")
	v.SetDefault("UPLOAD_MAX_DIMENSION", 1920)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", 30*24*60)
	v.SetDefault("ADMIN_EMAIL", "admin@portfolio.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_NAME", "Portfolio Admin")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("CACHE_TTL_SECONDS", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			CORSOrigin:   v.GetString("CORS_ALLOWED_ORIGIN"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Uploads: UploadsConfig{
			Dir:          v.GetString("UPLOAD_DIR"),
			MaxBytes:     v.GetInt64("UPLOAD_MAX_BYTES"),
			PublicPrefix: strings.TrimRight(v.GetString("UPLOAD_PUBLIC_PREFIX"), "/"),
			MaxDimension: v.GetInt("UPLOAD_MAX_DIMENSION"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(v.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     v.GetString("ADMIN_NAME"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:      v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    v.GetInt("RATE_LIMIT_BURST"),
			UseRedis: v.GetBool("RATE_LIMIT_USE_REDIS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		OIDC: OIDCConfig{
			Issuer:     v.GetString("OIDC_ISSUER"),
			ClientID:   v.GetString("OIDC_CLIENT_ID"),
			AdminEmail: strings.ToLower(strings.TrimSpace(v.GetString("OIDC_ADMIN_EMAIL"))),

			AllowInsecure: v.GetBool("ALLOW_INSECURE_TOKEN"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set; using a development secret, set a secure value in production")
		cfg.JWT.Secret = devJWTSecret
	}
	if (cfg.OIDC.Issuer != "" || cfg.OIDC.AllowInsecure) && cfg.OIDC.AdminEmail == "" {
		cfg.OIDC.AdminEmail = cfg.Admin.Email
	}

	return cfg, nil
}
