// Package config parses the scheduler server configuration. Configs are
// JSON so deployments can check them in next to the platform descriptions
// they serve.
package config

import (
	"encoding/json"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Config is the top-level configuration for the scheduler server.
type Config struct {
	// Bind address for the http api + admin endpoints.
	Addr string `json:"addr"`

	// Logrus level name, ex: "info", "debug".
	LogLevel string `json:"log_level"`

	Limits LimitsConfig `json:"limits"`
}

// LimitsConfig throttles the api. A zero Rps disables throttling.
type LimitsConfig struct {
	Rps   float64 `json:"rps"`
	Burst int     `json:"burst"`
}

func DefaultConfig() Config {
	return Config{
		Addr:     "localhost:9091",
		LogLevel: "info",
		Limits:   LimitsConfig{Rps: 0, Burst: 1},
	}
}

// Parse overlays a JSON config text onto the defaults. Empty input returns
// the defaults unchanged.
func Parse(data []byte) (Config, error) {
	c := DefaultConfig()
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(err, "parsing scheduler config")
	}
	if c.Limits.Rps < 0 {
		return c, errors.Errorf("invalid limits.rps:%v. Must be >= 0", c.Limits.Rps)
	}
	if c.Limits.Burst < 1 {
		c.Limits.Burst = 1
	}
	return c, nil
}

// Limiter creates the api rate limiter, or nil when throttling is disabled.
func (c Config) Limiter() *rate.Limiter {
	if c.Limits.Rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(c.Limits.Rps), c.Limits.Burst)
}
