// Package config loads and validates environment-driven configuration.
// Fail-fast: if a required variable is missing, startup aborts.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for tunables that have no documented rationale beyond the values
// the system has always run with. Both are overridable via environment.
const (
	DefaultGuardWindowHours  = 6
	DefaultAutoDeepThreshold = 3
	DefaultGuardFile         = "agent_last_run.txt"
)

// Config holds all runtime configuration for the agent and the API server.
type Config struct {
	DatabaseURL string

	// Aggregator API credentials. When empty the aggregator adapter skips
	// fetching and logs a warning instead of failing the task.
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string

	Port int

	// GuardFile holds the UNIX timestamp of the last deep scan; the window
	// limits how often deep scans run on this machine.
	GuardFile        string
	GuardWindowHours int

	// AutoDeepThreshold is the minimum number of saved results below which
	// a FAST scan escalates to a deep scan (when the task opts in).
	AutoDeepThreshold int

	// UseBrowser enables headless rendering of career portals whose static
	// HTML exposes no job links.
	UseBrowser bool
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	country := os.Getenv("ADZUNA_COUNTRY")
	if country == "" {
		country = "in"
	}

	port := 8080
	if s := os.Getenv("PORT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("PORT must be a positive integer, got %q", s)
		}
		port = v
	}

	window := DefaultGuardWindowHours
	if s := os.Getenv("DEEP_SCAN_GUARD_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("DEEP_SCAN_GUARD_HOURS must be a positive integer, got %q", s)
		}
		window = v
	}

	threshold := DefaultAutoDeepThreshold
	if s := os.Getenv("AUTO_DEEP_THRESHOLD"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("AUTO_DEEP_THRESHOLD must be a non-negative integer, got %q", s)
		}
		threshold = v
	}

	guardFile := os.Getenv("DEEP_SCAN_GUARD_FILE")
	if guardFile == "" {
		guardFile = DefaultGuardFile
	}

	return &Config{
		DatabaseURL:       dbURL,
		AdzunaAppID:       os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:      os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:     country,
		Port:              port,
		GuardFile:         guardFile,
		GuardWindowHours:  window,
		AutoDeepThreshold: threshold,
		UseBrowser:        os.Getenv("USE_BROWSER") == "true",
	}, nil
}
