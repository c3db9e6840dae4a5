package strategy

import (
	"math"

	"challengesim/profile"
	"challengesim/risk"
)

// Calculate derives the trading plan for a profile. Pure and
// deterministic: the same profile always yields the same Strategy.
//
// The calculator is more tolerant than profile.Validate — any positive
// numeric inputs are accepted, so profiles persisted under older,
// wider UI bounds still calculate.
func Calculate(p profile.Profile) (Strategy, error) {
	if p.AccountBalance <= 0 {
		return Strategy{}, &profile.ValidationError{Field: "account_balance", Reason: "must be positive"}
	}
	if p.TargetPercentage <= 0 {
		return Strategy{}, &profile.ValidationError{Field: "target_percentage", Reason: "must be positive"}
	}
	if p.DaysRemaining <= 0 {
		return Strategy{}, &profile.ValidationError{Field: "days_remaining", Reason: "must be positive"}
	}
	if p.TradesPerDay <= 0 {
		return Strategy{}, &profile.ValidationError{Field: "trades_per_day", Reason: "must be positive"}
	}

	rr := risk.RewardRisk(p.RiskLevel)
	riskPct := risk.PerTradePct(p.RiskLevel)
	return derive(p, rr, riskPct)
}

// derive runs the arithmetic for explicit risk parameters. Split out
// so the zero/non-finite guards stay testable even though the lookup
// tables can't currently produce bad values.
func derive(p profile.Profile, rr, riskPct float64) (Strategy, error) {
	breakEven := risk.BreakEvenWinRate(rr)

	requiredProfit := p.RequiredProfit()
	_, avgWinProfit := risk.Amounts(p.AccountBalance, riskPct, rr)
	if avgWinProfit <= 0 || math.IsInf(avgWinProfit, 0) || math.IsNaN(avgWinProfit) {
		return Strategy{}, &DomainError{Quantity: "avg win profit", Value: avgWinProfit}
	}

	minWins := int(math.Ceil(requiredProfit / avgWinProfit))

	lossFactor := 1 - breakEven/100
	if lossFactor <= 0 {
		return Strategy{}, &DomainError{Quantity: "loss factor", Value: lossFactor}
	}
	totalTrades := int(math.Ceil(float64(minWins) / lossFactor))

	return Strategy{
		Type:                classify(p),
		RewardRiskRatio:     rr,
		RiskPerTradePct:     riskPct,
		BreakEvenWinRate:    breakEven,
		MinWinsRequired:     minWins,
		TotalTradesEstimate: totalTrades,
		Confidence:          rate(p, totalTrades),
	}, nil
}

// classify picks the strategy type from the fixed decision table over
// (trading style, risk level, time commitment).
func classify(p profile.Profile) Type {
	switch {
	case p.TradingStyle == profile.StyleIntraday &&
		p.RiskLevel == profile.RiskHigh &&
		p.TimeCommitment == profile.FullTime:
		return TypeScalpSprint
	case p.TradingStyle == profile.StyleSwing && p.RiskLevel == profile.RiskLow:
		return TypeSniper
	case p.TradingStyle == profile.StyleHybrid:
		return TypeHybrid
	default:
		return TypeBalancedDay
	}
}

// rate scores how achievable the estimated trade count is within the
// remaining days at the trader's stated pace.
func rate(p profile.Profile, totalTrades int) Confidence {
	perDayNeeded := float64(totalTrades) / float64(p.DaysRemaining)
	pace := float64(p.TradesPerDay)

	switch {
	case perDayNeeded > pace*1.5,
		p.TargetPercentage > 15 && p.DaysRemaining < 10:
		return ConfidenceLow
	case perDayNeeded > pace*0.8, p.TargetPercentage > 10:
		return ConfidenceModerate
	default:
		return ConfidenceHigh
	}
}
