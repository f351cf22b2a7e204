package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env", ".env.local")

	cfg.EndpointAddrGRPC = getEnv("DEVSERVER_GRPC_ADDR", cfg.EndpointAddrGRPC)
	cfg.EndpointAddrHTTP = getEnv("DEVSERVER_HTTP_ADDR", cfg.EndpointAddrHTTP)
	cfg.SecretKey = getEnv("DEVSERVER_JWT_SECRET", cfg.SecretKey)
	cfg.DemoUsername = getEnv("DEVSERVER_DEMO_USER", cfg.DemoUsername)
	cfg.LogFormat = getEnv("DEVSERVER_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getEnv("DEVSERVER_LOG_LEVEL", cfg.LogLevel)
	cfg.AccessTokenValidityDuration = getEnvDuration("DEVSERVER_ACCESS_TOKEN_TTL", cfg.AccessTokenValidityDuration)
	cfg.RefreshTokenValidityDuration = getEnvDuration("DEVSERVER_REFRESH_TOKEN_TTL", cfg.RefreshTokenValidityDuration)
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
