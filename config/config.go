package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"challengesim/profile"
)

// Config represents the complete challenge configuration
type Config struct {
	Profile    profile.Profile  `json:"profile" yaml:"profile"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}

// SimulationConfig contains auto-simulate parameters
type SimulationConfig struct {
	// StepDelay is the pause between revealed auto-simulate trades,
	// e.g. "250ms". Empty or "0" drains batches synchronously.
	StepDelay string `json:"step_delay,omitempty" yaml:"step_delay,omitempty"`
	// Seed fixes the outcome generator; 0 means random.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// ParseStepDelay converts the delay string to time.Duration
func (sc SimulationConfig) ParseStepDelay() (time.Duration, error) {
	if sc.StepDelay == "" || sc.StepDelay == "0" {
		return 0, nil
	}
	return time.ParseDuration(sc.StepDelay)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	BalanceFile string `json:"balance_file,omitempty" yaml:"balance_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ServerConfig contains the web presentation-layer parameters
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Profile.Validate(); err != nil {
		return err
	}
	if _, err := c.Simulation.ParseStepDelay(); err != nil {
		return fmt.Errorf("simulation.step_delay: %w", err)
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.BalanceFile == "" {
			return fmt.Errorf("journal trades_file and balance_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Profile: profile.Profile{
			AccountBalance:   10000,
			TargetPercentage: 10,
			DaysRemaining:    14,
			RiskLevel:        profile.RiskBalanced,
			TradingStyle:     profile.StyleIntraday,
			TimeCommitment:   profile.PartTime,
			TradesPerDay:     3,
		},
		Simulation: SimulationConfig{
			StepDelay: "250ms",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./challenge.sqlite",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
