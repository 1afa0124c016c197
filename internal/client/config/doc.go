// Package config loads runtime configuration for the Billed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the store REST API
//	-g string   host:port of the store gRPC health endpoint
//	-i int      online status check interval (seconds)
//	-t int      store request timeout (seconds)
//	-s string   session file path
//
// # JSON schema
//
// Intervals are timex.Duration values, so "3s" and integer nanoseconds both work:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:5678",
//	  "health_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "15s",
//	  "session_file": "session.json"
//	}
//
// Keys missing from the JSON file keep their default values.
package config
