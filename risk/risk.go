package risk

import "challengesim/profile"

// Per-level parameters are fixed lookup tables, not computed. The
// challenge strategy always risks the same fraction of the starting
// account per trade, with a take-profit at RewardRisk times the risk.

// RewardRisk returns the reward:risk ratio for a risk level.
func RewardRisk(level profile.RiskLevel) float64 {
	switch level {
	case profile.RiskLow:
		return 1.5
	case profile.RiskHigh:
		return 2.5
	default:
		return 2.0
	}
}

// PerTradePct returns the percent of the account risked on each trade.
func PerTradePct(level profile.RiskLevel) float64 {
	switch level {
	case profile.RiskLow:
		return 0.5
	case profile.RiskHigh:
		return 2.0
	default:
		return 1.0
	}
}

// BreakEvenWinRate is the win percentage at which expected value is
// zero for a given reward:risk ratio: 100 / (1 + rr).
func BreakEvenWinRate(rewardRisk float64) float64 {
	return 100 / (1 + rewardRisk)
}

// Amounts returns the currency amounts lost on a losing trade and
// gained on a winning trade, for an account balance and the strategy's
// risk parameters. riskPct is a percentage (1.0 = 1%).
func Amounts(balance, riskPct, rewardRisk float64) (riskAmt, rewardAmt float64) {
	riskAmt = balance * riskPct / 100
	rewardAmt = riskAmt * rewardRisk
	return riskAmt, rewardAmt
}
