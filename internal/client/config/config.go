package config

import (
	"time"

	"github.com/dmitrijs2005/bidsync/internal/logging"
)

// Config holds runtime settings for the bidsync CLI.
//
// AccessToken and RefreshToken are optional; without them the client runs
// as a guest unless a sealed session is stored in the cache. DeviceSecret
// is the input of the key that seals that session.
type Config struct {
	ServerEndpointAddr  string
	PushURL             string
	SignUpURL           string
	SuccessURL          string
	CancelURL           string
	AccessToken         string
	RefreshToken        string
	DeviceSecret        string
	DatabaseDSN         string
	Locale              string
	LogFormat           string
	LogLevel            string
	OnlineCheckInterval time.Duration
	ValidationDebounce  time.Duration
	ConstantsTTL        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.PushURL = "http://127.0.0.1:8080"
	c.SignUpURL = "http://127.0.0.1:8080/signup"
	c.SuccessURL = "http://127.0.0.1:8080/payments/success"
	c.CancelURL = "http://127.0.0.1:8080/payments/cancel"
	c.DeviceSecret = "bidsync-device"
	c.DatabaseDSN = "bidsync.db"
	c.Locale = "en"
	c.LogFormat = logging.FormatConsole
	c.LogLevel = "info"
	c.OnlineCheckInterval = 3 * time.Second
	c.ValidationDebounce = 250 * time.Millisecond
	c.ConstantsTTL = 10 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
