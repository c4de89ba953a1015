package config

import "time"

// Config is the root of the server configuration file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Search   SearchConfig   `yaml:"search"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// SearchConfig holds the defaults applied to path requests.
type SearchConfig struct {
	// Algorithm and Frontier are used when a request leaves them empty.
	Algorithm string `yaml:"algorithm"`
	Frontier  string `yaml:"frontier"`
	// MaxCells rejects larger grids.
	MaxCells int `yaml:"max_cells"`
	// Workers bounds concurrent queries in a batch.
	Workers int `yaml:"workers"`
	// MaxBatch caps the number of queries in one batch request.
	MaxBatch int `yaml:"max_batch"`
}

// SessionsConfig limits step-through sessions.
type SessionsConfig struct {
	MaxSessions int           `yaml:"max_sessions"`
	TTL         time.Duration `yaml:"ttl"`
}
