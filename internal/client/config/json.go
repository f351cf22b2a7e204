package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bidsync/internal/flagx"
	"github.com/dmitrijs2005/bidsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields left
// out of the file keep their earlier value.
type JsonConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	PushURL             string          `json:"push_url"`
	SignUpURL           string          `json:"signup_url"`
	DatabaseDSN         string          `json:"database_dsn"`
	Locale              string          `json:"locale"`
	LogFormat           string          `json:"log_format"`
	LogLevel            string          `json:"log_level"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ValidationDebounce  *timex.Duration `json:"validation_debounce"`
	ConstantsTTL        *timex.Duration `json:"constants_ttl"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config, or by BIDSYNC_CONFIG. Without either it does nothing. Read
// and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "BIDSYNC_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.PushURL, jc.PushURL)
	setString(&cfg.SignUpURL, jc.SignUpURL)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.ValidationDebounce != nil {
		cfg.ValidationDebounce = jc.ValidationDebounce.Duration
	}
	if jc.ConstantsTTL != nil {
		cfg.ConstantsTTL = jc.ConstantsTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
