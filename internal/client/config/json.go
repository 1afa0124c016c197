package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/billed/internal/flagx"
	"github.com/dmitrijs2005/billed/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value checks let a partial file override only what it names.
type JsonConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	HealthEndpointAddr  string          `json:"health_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SessionFile         string          `json:"session_file"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
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

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.HealthEndpointAddr != "" {
		cfg.HealthEndpointAddr = jc.HealthEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
}
