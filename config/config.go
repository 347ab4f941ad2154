// Package config provides configuration settings for the short URL relay and its client.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRemoteBaseURL is the remote shortening service the relay forwards to.
const DefaultRemoteBaseURL = "https://myuniqueappname12345mick01.azurewebsites.net"

// Config holds the configuration settings for the application.
type Config struct {
	// Relay side.
	ServerPort         int
	RemoteBaseURL      string
	UpstreamTimeout    time.Duration
	RequestTimeout     time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	// Client side.
	RelayBaseURL     string
	TransportTimeout time.Duration
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerPort:         3000,
		RemoteBaseURL:      DefaultRemoteBaseURL,
		UpstreamTimeout:    10 * time.Second,
		RequestTimeout:     15 * time.Second,
		BreakerMaxFailures: 5,
		BreakerOpenTimeout: 30 * time.Second,
		RelayBaseURL:       "http://localhost:3000",
		TransportTimeout:   30 * time.Second,
	}
}

// Load returns DefaultConfig overridden by an optional .env file and the process environment.
// Malformed numeric or duration values are ignored in favour of the default.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	cfg := DefaultConfig()
	cfg.ServerPort = getEnvInt("PORT", cfg.ServerPort)
	cfg.RemoteBaseURL = getEnv("REMOTE_BASE_URL", cfg.RemoteBaseURL)
	cfg.UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.BreakerMaxFailures = uint32(getEnvInt("BREAKER_MAX_FAILURES", int(cfg.BreakerMaxFailures)))
	cfg.BreakerOpenTimeout = getEnvDuration("BREAKER_OPEN_TIMEOUT", cfg.BreakerOpenTimeout)
	cfg.RelayBaseURL = getEnv("RELAY_BASE_URL", cfg.RelayBaseURL)
	cfg.TransportTimeout = getEnvDuration("TRANSPORT_TIMEOUT", cfg.TransportTimeout)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			return d
		}
	}
	return defaultVal
}
