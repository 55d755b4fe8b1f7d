package main

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sirajadmin/internal/backend"
	"sirajadmin/internal/ratelimiter"
)

type config struct {
	Addr          string        `default:":8080" validate:"required"`
	Env           string        `default:"development" validate:"oneof=development staging production"`
	BackendURL    string        `validate:"required,url"`
	CloudinaryURL string        `validate:"omitempty,startswith=cloudinary://"`
	SessionIdle   time.Duration `default:"2h" validate:"gte=1m"`
	Auth          authConfig
	RateLimiter   ratelimiter.Config
}

type authConfig struct {
	User string
	Pass string
	// PassHash is a bcrypt hash; when set it is used instead of Pass.
	PassHash string
}

// matches reports whether user and pass are the configured credentials.
// An unset user never matches.
func (a authConfig) matches(user, pass string) bool {
	if a.User == "" || subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) != 1 {
		return false
	}
	if a.PassHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.PassHash), []byte(pass)) == nil
	}
	return a.Pass != "" && subtle.ConstantTimeCompare([]byte(pass), []byte(a.Pass)) == 1
}

func (c config) production() bool { return c.Env == "production" }

// loadConfig reads the environment over the struct defaults. Unparseable
// numbers and flags are logged and left at their default.
func loadConfig(getenv func(string) (string, bool), logger *zap.SugaredLogger) (config, error) {
	var cfg config
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("config defaults: %w", err)
	}
	cfg.BackendURL = backend.DefaultBaseURL

	str := func(key string, dst *string) {
		if v, ok := getenv(key); ok && v != "" {
			*dst = v
		}
	}
	str("ADDR", &cfg.Addr)
	str("ENV", &cfg.Env)
	str("BACKEND_URL", &cfg.BackendURL)
	str("CLOUDINARY_URL", &cfg.CloudinaryURL)
	str("AUTH_BASIC_USER", &cfg.Auth.User)
	str("AUTH_BASIC_PASS", &cfg.Auth.Pass)
	str("AUTH_BASIC_PASS_HASH", &cfg.Auth.PassHash)

	if v, ok := getenv("RATELIMITER_REQUESTS_COUNT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimiter.RequestsPerTimeFrame = n
		} else {
			logger.Warnw("invalid RATELIMITER_REQUESTS_COUNT, using default", "value", v, "default", cfg.RateLimiter.RequestsPerTimeFrame)
		}
	}
	if v, ok := getenv("RATE_LIMITER_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RateLimiter.Enabled = b
		} else {
			logger.Warnw("invalid RATE_LIMITER_ENABLED, using default", "value", v, "default", cfg.RateLimiter.Enabled)
		}
	}
	if v, ok := getenv("SESSION_IDLE_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionIdle = d
		} else {
			logger.Warnw("invalid SESSION_IDLE_TIMEOUT, using default", "value", v, "default", cfg.SessionIdle)
		}
	}

	if err := Validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func osLookup(key string) (string, bool) { return os.LookupEnv(key) }
