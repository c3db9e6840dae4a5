package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"challengesim/strategy"
)

func newCalcCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Derive the trading strategy for the configured profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}

			strat, err := strategy.Calculate(cfg.Profile)
			if err != nil {
				return err
			}

			p := cfg.Profile
			fmt.Printf("Profile: %.2f account, %.1f%% target in %d days (%s, %s, %s, %d trades/day)\n",
				p.AccountBalance, p.TargetPercentage, p.DaysRemaining,
				p.RiskLevel, p.TradingStyle, p.TimeCommitment, p.TradesPerDay)
			fmt.Println()
			fmt.Printf("Strategy:            %s\n", strat.Type)
			fmt.Printf("Reward:Risk:         %.2f\n", strat.RewardRiskRatio)
			fmt.Printf("Risk per trade:      %.2f%%\n", strat.RiskPerTradePct)
			fmt.Printf("Break-even win rate: %.2f%%\n", strat.BreakEvenWinRate)
			fmt.Printf("Min wins required:   %d\n", strat.MinWinsRequired)
			fmt.Printf("Trades estimate:     %d\n", strat.TotalTradesEstimate)
			fmt.Printf("Confidence:          %s\n", strat.Confidence)
			return nil
		},
	}

	return cmd
}
