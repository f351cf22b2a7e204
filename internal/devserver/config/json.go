package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bidsync/internal/flagx"
	"github.com/dmitrijs2005/bidsync/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "15m" or
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string          `json:"endpoint_addr_http"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	DemoUsername                 string          `json:"demo_username"`
	LogFormat                    string          `json:"log_format"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson loads the file named by -c or -config (DEVSERVER_CONFIG when
// neither is given) into config. Read and unmarshal errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "DEVSERVER_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	for dst, v := range map[*string]string{
		&config.EndpointAddrGRPC: c.EndpointAddrGRPC,
		&config.EndpointAddrHTTP: c.EndpointAddrHTTP,
		&config.SecretKey:        c.SecretKey,
		&config.DemoUsername:     c.DemoUsername,
		&config.LogFormat:        c.LogFormat,
		&config.LogLevel:         c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
}
