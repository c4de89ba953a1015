package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdrpinto/gridastar"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Default returns a fully defaulted config.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills zero fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Search.Algorithm == "" {
		cfg.Search.Algorithm = gridastar.AStar.String()
	}
	if cfg.Search.Frontier == "" {
		cfg.Search.Frontier = gridastar.ScanFrontier.String()
	}
	if cfg.Search.MaxCells == 0 {
		cfg.Search.MaxCells = 250_000
	}
	if cfg.Search.Workers == 0 {
		cfg.Search.Workers = 4
	}
	if cfg.Search.MaxBatch == 0 {
		cfg.Search.MaxBatch = 100
	}
	if cfg.Sessions.MaxSessions == 0 {
		cfg.Sessions.MaxSessions = 64
	}
	if cfg.Sessions.TTL == 0 {
		cfg.Sessions.TTL = 10 * time.Minute
	}
}

// Validate reports every problem in cfg at once.
func Validate(cfg *Config) error {
	var errs []string
	if _, err := gridastar.ParseAlgorithm(cfg.Search.Algorithm); err != nil {
		errs = append(errs, fmt.Sprintf("search.algorithm: %s", err))
	}
	if _, err := gridastar.ParseFrontier(cfg.Search.Frontier); err != nil {
		errs = append(errs, fmt.Sprintf("search.frontier: %s", err))
	}
	if cfg.Search.MaxCells < 1 {
		errs = append(errs, "search.max_cells must be positive")
	}
	if cfg.Search.Workers < 1 {
		errs = append(errs, "search.workers must be positive")
	}
	if cfg.Search.MaxBatch < 1 {
		errs = append(errs, "search.max_batch must be positive")
	}
	if cfg.Sessions.MaxSessions < 1 {
		errs = append(errs, "sessions.max_sessions must be positive")
	}
	if cfg.Sessions.TTL < 0 {
		errs = append(errs, "sessions.ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(errs, "\n  - "))
	}
	return nil
}
