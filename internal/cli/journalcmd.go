package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"challengesim/journal"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the trade journal",
	}

	cmd.AddCommand(
		newJournalTradeCmd(rc),
		newJournalAttemptCmd(rc),
		newJournalDayCmd(rc),
	)

	return cmd
}

func newJournalTradeCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "trade <trade_id>",
		Short: "Show a single trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetTrade(args[0])
			if err != nil {
				return err
			}
			printTrades([]journal.TradeRecord{rec})
			return nil
		},
	}
}

func newJournalAttemptCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "attempt <attempt_id>",
		Short: "List all trades of a challenge attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListTradesByAttempt(args[0])
			if err != nil {
				return err
			}
			printTrades(recs)
			return nil
		},
	}
}

func newJournalDayCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "List trades applied on a calendar day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := dayBounds(time.Local, args[0])
			if err != nil {
				return err
			}

			j, err := journal.NewSQLite(rc.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListTradesBetween(start, end)
			if err != nil {
				return err
			}
			printTrades(recs)
			return nil
		},
	}
}

func printTrades(recs []journal.TradeRecord) {
	if len(recs) == 0 {
		fmt.Println("no trades")
		return
	}
	fmt.Printf("%-26s  %-26s  %-5s  %10s  %12s  %s\n",
		"TRADE", "ATTEMPT", "WIN", "AMOUNT", "BALANCE", "TIME")
	for _, r := range recs {
		outcome := "loss"
		if r.Win {
			outcome = "win"
		}
		fmt.Printf("%-26s  %-26s  %-5s  %10.2f  %12.2f  %s\n",
			r.TradeID, r.AttemptID, outcome, r.Amount, r.BalanceAfter,
			r.Time.Format(time.RFC3339))
	}
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)
	return start, end, nil
}
