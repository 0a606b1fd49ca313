package config

import (
	"time"
)

// UpstreamConfig points at the deployed booking backend that the proxy
// and the booking synchronizer talk to.
type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

func loadUpstreamConfig() *UpstreamConfig {
	return &UpstreamConfig{
		BaseURL: getEnv("UPSTREAM_BASE_URL", "https://mastoride-web-dev-production-d469.up.railway.app"),
		Timeout: getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),
	}
}
