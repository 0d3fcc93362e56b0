package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PublishNone  = "none"
	PublishHTTP  = "http"
	PublishWS    = "ws"
	PublishRedis = "redis"
)

var ErrUnknownPublishMode = errors.New("unknown PUBLISH_MODE")

type AppConfig struct {
	FEN         string
	Parallel    bool
	PNGPath     string
	JSONPath    string
	MessagesDir string
	SquareSize  int

	PublishMode    string
	PublishBaseURL string
	PublishWSURL   string
	RedisURL       string
	PublishChannel string
	PublishRoom    string
	PublishDryRun  bool
	PublishTimeout time.Duration

	XUserID    string
	XUserEmail string
	XSessionID string
}

// Publishing reports whether an outbound transport is configured.
func (c *AppConfig) Publishing() bool {
	return c != nil && c.PublishMode != PublishNone
}

// Headers returns the identity headers sent with HTTP and WebSocket publishing.
func (c *AppConfig) Headers() map[string]string {
	h := map[string]string{}
	if c.XUserID != "" {
		h["X-User-Id"] = c.XUserID
	}
	if c.XUserEmail != "" {
		h["X-User-Email"] = c.XUserEmail
	}
	if c.XSessionID != "" {
		h["X-Session-Id"] = c.XSessionID
	}
	return h
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		SquareSize:     64,
		PublishMode:    PublishNone,
		PublishChannel: "heatmap",
		PublishTimeout: 8 * time.Second,
	}

	cfg.FEN = strings.TrimSpace(os.Getenv("HEATMAP_FEN"))
	cfg.PNGPath = strings.TrimSpace(os.Getenv("HEATMAP_PNG_PATH"))
	cfg.JSONPath = strings.TrimSpace(os.Getenv("HEATMAP_JSON_PATH"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("HEATMAP_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("HEATMAP_PARALLEL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Parallel = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("HEATMAP_SQUARE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SquareSize = clamp(n, 24, 160)
		}
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("PUBLISH_MODE"))); v != "" {
		cfg.PublishMode = v
	}
	cfg.PublishBaseURL = strings.TrimSpace(os.Getenv("PUBLISH_BASE_URL"))
	cfg.PublishWSURL = strings.TrimSpace(os.Getenv("PUBLISH_WS_URL"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.PublishRoom = strings.TrimSpace(os.Getenv("PUBLISH_ROOM"))
	if v := strings.TrimSpace(os.Getenv("PUBLISH_CHANNEL")); v != "" {
		cfg.PublishChannel = v
	}
	if v := strings.TrimSpace(os.Getenv("PUBLISH_DRYRUN")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.PublishDryRun = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PUBLISH_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PublishTimeout = time.Duration(n) * time.Millisecond
		}
	}

	cfg.XUserID = strings.TrimSpace(os.Getenv("X_USER_ID"))
	cfg.XUserEmail = strings.TrimSpace(os.Getenv("X_USER_EMAIL"))
	cfg.XSessionID = strings.TrimSpace(os.Getenv("X_SESSION_ID"))

	switch cfg.PublishMode {
	case PublishNone:
		return cfg, nil
	case PublishHTTP:
		if cfg.PublishBaseURL == "" {
			return nil, errors.New("PUBLISH_BASE_URL is required for PUBLISH_MODE=http")
		}
	case PublishWS:
		if cfg.PublishWSURL == "" {
			return nil, errors.New("PUBLISH_WS_URL is required for PUBLISH_MODE=ws")
		}
	case PublishRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required for PUBLISH_MODE=redis")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPublishMode, cfg.PublishMode)
	}
	if cfg.PublishRoom == "" {
		return nil, errors.New("PUBLISH_ROOM is required when publishing")
	}

	return cfg, nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
