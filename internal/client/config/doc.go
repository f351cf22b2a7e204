// Package config loads runtime configuration for the bidsync terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading .env and .env.local if present
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-p string   base URL of the push channel
//	-d string   path of the local SQLite cache
//	-l string   locale of the interface (en, es)
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "push_url": "http://127.0.0.1:8080",
//	  "database_dsn": "bidsync.db",
//	  "locale": "es",
//	  "online_check_interval": "3s",
//	  "validation_debounce": "250ms"
//	}
//
// Tokens and the device secret are read from the environment only.
package config
