// Package config handles configuration for the development backend,
// including defaults, environment, JSON overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the dev server.
//
// Fields:
//   - EndpointAddrGRPC: bind address of the gRPC endpoint.
//   - EndpointAddrHTTP: bind address of the push channel and sign-up pages.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Development only.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - DemoUsername: the account whose tokens are printed at start-up.
type Config struct {
	EndpointAddrGRPC             string
	EndpointAddrHTTP             string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	DemoUsername                 string
	LogFormat                    string
	LogLevel                     string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.DemoUsername = "demo"
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
