package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"challengesim/journal"
	"challengesim/profile"
	"challengesim/sim"
	"challengesim/strategy"
)

func newRunCmd(rc *RootConfig) *cobra.Command {
	var (
		days       int
		seed       int64
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Auto-simulate the challenge for N days and print the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}
			if days <= 0 {
				days = cfg.Profile.DaysRemaining
			}

			strat, err := strategy.Calculate(cfg.Profile)
			if err != nil {
				return err
			}

			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if j != nil {
				defer j.Close()
			}

			engine := sim.NewEngine(j)
			// Headless run: drain the batch synchronously.
			engine.SetStepDelay(0)
			if seed != 0 {
				engine.Seed(seed)
			} else if cfg.Simulation.Seed != 0 {
				engine.Seed(cfg.Simulation.Seed)
			}

			if _, err := engine.Initialize(cfg.Profile, strat); err != nil {
				return err
			}
			snap, err := engine.AutoSimulate(cmd.Context(), days)
			if err != nil {
				return err
			}

			if sq, ok := j.(*journal.SQLite); ok {
				if err := sq.SaveProfile(cfg.Profile); err != nil {
					return err
				}
			}

			printSummary(snap, days)

			if reportPath != "" {
				rep := buildReport(cfg.Profile, strat, snap)
				if err := rep.WriteOrg(reportPath); err != nil {
					return err
				}
				fmt.Printf("report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to simulate (default: profile days_remaining)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible outcomes (0 = random)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an org-mode attempt report to this path")

	return cmd
}

func printSummary(snap sim.Snapshot, days int) {
	fmt.Printf("Attempt %s — %d trades over %d days\n", snap.AttemptID, len(snap.Trades), days)
	fmt.Printf("Balance:    %.2f (target %.2f)\n", snap.Balance, snap.TargetBalance)
	fmt.Printf("Wins:       %d\n", snap.WinCount)
	fmt.Printf("Losses:     %d\n", snap.LossCount)
	fmt.Printf("Max streaks: %d wins / %d losses\n", snap.MaxWinStreak, snap.MaxLossStreak)
	if snap.Passed {
		fmt.Println("Result:     PASSED")
	} else {
		fmt.Println("Result:     target not reached")
	}
}

func buildReport(p profile.Profile, s strategy.Strategy, snap sim.Snapshot) *journal.AttemptReport {
	return &journal.AttemptReport{
		AttemptID:     snap.AttemptID,
		Created:       time.Now(),
		Profile:       p,
		Strategy:      s,
		Trades:        len(snap.Trades),
		Wins:          snap.WinCount,
		Losses:        snap.LossCount,
		StartBalance:  p.AccountBalance,
		FinalBalance:  snap.Balance,
		TargetBalance: snap.TargetBalance,
		MaxWinStreak:  snap.MaxWinStreak,
		MaxLossStreak: snap.MaxLossStreak,
		Passed:        snap.Passed,
	}
}
