package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointLimit overrides the default limit for paths matching Prefix.
type EndpointLimit struct {
	Prefix string
	Method string // empty matches any method
	Limit  int
	Window time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointLimit
}

// DefaultConfig returns the default configuration: a generous global limit
// with a much tighter budget on the endpoints that call the AI collaborator.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Endpoints: []EndpointLimit{
			{Prefix: "/extract-job-info", Limit: 10, Window: time.Minute},
			{Prefix: "/applications/import", Limit: 10, Window: time.Minute},
			{Prefix: "/fetch-job", Limit: 30, Window: time.Minute},
			{Prefix: "/health", Limit: 0}, // unlimited
		},
	}
}

// LoadConfig builds a Config from environment variables, falling back to
// defaults. RATE_LIMIT_ENABLED=false disables limiting entirely;
// RATE_LIMIT_DEFAULT overrides the per-minute default.
func LoadConfig() *Config {
	config := DefaultConfig()

	if raw := os.Getenv("RATE_LIMIT_ENABLED"); raw != "" {
		config.Enabled = raw != "false" && raw != "0"
	}
	if raw := os.Getenv("RATE_LIMIT_DEFAULT"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			config.DefaultLimit = limit
		}
	}

	return config
}

// limitFor returns the limit and window applying to an endpoint.
func (c *Config) limitFor(path, method string) (int, time.Duration) {
	for _, ep := range c.Endpoints {
		if !strings.HasPrefix(path, ep.Prefix) {
			continue
		}
		if ep.Method != "" && ep.Method != method {
			continue
		}
		window := ep.Window
		if window <= 0 {
			window = c.DefaultWindow
		}
		return ep.Limit, window
	}
	return c.DefaultLimit, c.DefaultWindow
}
