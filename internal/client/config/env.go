package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with BIDSYNC_* environment variables. Values in
// .env and .env.local are loaded first; variables already set in the
// process environment win over both files.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env", ".env.local")

	cfg.ServerEndpointAddr = getEnv("BIDSYNC_SERVER_ADDR", cfg.ServerEndpointAddr)
	cfg.PushURL = getEnv("BIDSYNC_PUSH_URL", cfg.PushURL)
	cfg.SignUpURL = getEnv("BIDSYNC_SIGNUP_URL", cfg.SignUpURL)
	cfg.SuccessURL = getEnv("BIDSYNC_SUCCESS_URL", cfg.SuccessURL)
	cfg.CancelURL = getEnv("BIDSYNC_CANCEL_URL", cfg.CancelURL)
	cfg.AccessToken = getEnv("BIDSYNC_ACCESS_TOKEN", cfg.AccessToken)
	cfg.RefreshToken = getEnv("BIDSYNC_REFRESH_TOKEN", cfg.RefreshToken)
	cfg.DeviceSecret = getEnv("BIDSYNC_DEVICE_SECRET", cfg.DeviceSecret)
	cfg.DatabaseDSN = getEnv("BIDSYNC_DB", cfg.DatabaseDSN)
	cfg.Locale = getEnv("BIDSYNC_LOCALE", cfg.Locale)
	cfg.LogFormat = getEnv("BIDSYNC_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getEnv("BIDSYNC_LOG_LEVEL", cfg.LogLevel)
	cfg.OnlineCheckInterval = getEnvDuration("BIDSYNC_ONLINE_CHECK_INTERVAL", cfg.OnlineCheckInterval)
	cfg.ValidationDebounce = getEnvDuration("BIDSYNC_VALIDATION_DEBOUNCE", cfg.ValidationDebounce)
	cfg.ConstantsTTL = getEnvDuration("BIDSYNC_CONSTANTS_TTL", cfg.ConstantsTTL)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
