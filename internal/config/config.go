// Package config resolves the client's base configuration from the
// environment. Configuration is read once at process start and is
// immutable afterwards.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// APIPathPrefix is the versioned path suffix appended to the base URL.
	APIPathPrefix = "/api"

	defaultBaseURL = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
)

// Config holds the resolved base configuration.
type Config struct {
	// BaseURL is the backend endpoint including the API path prefix.
	BaseURL string
	// Timeout bounds every request.
	Timeout time.Duration
	// StateDir is where client-local state (the session token) is persisted.
	StateDir string
}

// Load resolves configuration from the environment:
//
//	GUARDIAN_API_URL   backend root, defaults to http://localhost:5000
//	GUARDIAN_TIMEOUT   request timeout, defaults to 10s
//	GUARDIAN_STATE_DIR client state directory, defaults to ~/.guardian
func Load() (*Config, error) {
	base := strings.TrimSpace(os.Getenv("GUARDIAN_API_URL"))
	if base == "" {
		base = defaultBaseURL
	}
	base = strings.TrimRight(base, "/")

	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("config: GUARDIAN_API_URL must be a valid URL, got %q", base)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("config: GUARDIAN_API_URL scheme must be http or https, got %q", parsed.Scheme)
	}

	timeout := defaultTimeout
	if raw := strings.TrimSpace(os.Getenv("GUARDIAN_TIMEOUT")); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: parse GUARDIAN_TIMEOUT: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("config: GUARDIAN_TIMEOUT must be positive, got %s", timeout)
		}
	}

	stateDir := strings.TrimSpace(os.Getenv("GUARDIAN_STATE_DIR"))
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		stateDir = filepath.Join(home, ".guardian")
	}

	return &Config{
		BaseURL:  base + APIPathPrefix,
		Timeout:  timeout,
		StateDir: stateDir,
	}, nil
}
