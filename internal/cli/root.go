package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"challengesim/config"
	"challengesim/journal"
)

// RootConfig carries the global flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	DBPath     string
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "challenge",
		Short:         "Challenge — strategy calculation and account simulation for prop-firm challenges",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./challenge.sqlite", "SQLite journal database")

	// Subcommands
	cmd.AddCommand(
		newCalcCmd(rc),
		newRunCmd(rc),
		newServeCmd(rc),
		newJournalCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("challenge (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig returns the config file if one was given, defaults
// otherwise. The --db flag overrides the configured sqlite path.
func loadConfig(rc *RootConfig) (*config.Config, error) {
	if rc.ConfigPath == "" {
		cfg := config.Default()
		if rc.DBPath != "" {
			cfg.Journal.DBPath = rc.DBPath
		}
		return cfg, nil
	}
	cfg, err := config.LoadFromFile(rc.ConfigPath)
	if err != nil {
		return nil, err
	}
	if rc.DBPath != "" && cfg.Journal.Type == "sqlite" {
		cfg.Journal.DBPath = rc.DBPath
	}
	return cfg, nil
}

// openJournal builds the configured journal, or nil for type "none".
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.BalanceFile)
	default:
		return nil, nil
	}
}
