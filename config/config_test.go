package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengesim/profile"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 10000.0, cfg.Profile.AccountBalance)
	assert.Equal(t, profile.RiskBalanced, cfg.Profile.RiskLevel)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid profile",
			mutate:  func(c *Config) { c.Profile.AccountBalance = -1 },
			wantErr: true,
			errMsg:  "account_balance",
		},
		{
			name:    "bad step delay",
			mutate:  func(c *Config) { c.Simulation.StepDelay = "soon" },
			wantErr: true,
			errMsg:  "step_delay",
		},
		{
			name:    "bad journal type",
			mutate:  func(c *Config) { c.Journal.Type = "parquet" },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name: "csv without files",
			mutate: func(c *Config) {
				c.Journal.Type = "csv"
				c.Journal.TradesFile = ""
			},
			wantErr: true,
			errMsg:  "trades_file and balance_file required",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Journal.Type = "sqlite"
				c.Journal.DBPath = ""
			},
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name: "journal none needs nothing",
			mutate: func(c *Config) {
				c.Journal = JournalConfig{Type: "none"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseStepDelay(t *testing.T) {
	sc := SimulationConfig{}
	d, err := sc.ParseStepDelay()
	assert.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)

	sc.StepDelay = "250ms"
	d, err = sc.ParseStepDelay()
	assert.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	sc.StepDelay = "later"
	_, err = sc.ParseStepDelay()
	assert.Error(t, err)
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
profile:
  account_balance: 25000
  target_percentage: 8
  days_remaining: 21
  risk_level: high
  trading_style: swing
  time_commitment: full-time
  trades_per_day: 6
simulation:
  step_delay: 100ms
  seed: 7
journal:
  type: none
server:
  addr: ":9999"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, cfg.Profile.AccountBalance)
	assert.Equal(t, profile.StyleSwing, cfg.Profile.TradingStyle)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
profile:
  account_balance: -5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.Profile.TradesPerDay = 9
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
