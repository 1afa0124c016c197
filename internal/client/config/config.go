package config

import "time"

// Config holds runtime settings for the Billed CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the store REST API.
//   - HealthEndpointAddr: host:port of the store gRPC health endpoint.
//   - OnlineCheckInterval: how often the client probes store reachability.
//   - RequestTimeout: upper bound for a single store call.
//   - SessionFile: where the logged-in identity is kept between runs.
type Config struct {
	ServerEndpointAddr  string
	HealthEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SessionFile         string
}

// DefaultOnlineCheckInterval replaces a non-positive OnlineCheckInterval.
const DefaultOnlineCheckInterval = 3 * time.Second

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:5678"
	c.HealthEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = DefaultOnlineCheckInterval
	c.RequestTimeout = 15 * time.Second
	c.SessionFile = "session.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	cfg.clamp()
	return cfg
}

// clamp replaces settings that would break the client at runtime: the
// online check interval must be positive and a negative request timeout
// means no timeout.
func (c *Config) clamp() {
	if c.OnlineCheckInterval <= 0 {
		c.OnlineCheckInterval = DefaultOnlineCheckInterval
	}
	if c.RequestTimeout < 0 {
		c.RequestTimeout = 0
	}
}
