package strategy

import "fmt"

// Type names the trading plan derived for a profile.
type Type string

const (
	TypeSniper      Type = "sniper"
	TypeScalpSprint Type = "scalp-sprint"
	TypeBalancedDay Type = "balanced-day-trader"
	TypeHybrid      Type = "hybrid"
)

// Confidence rates how realistic the plan is for the time the trader
// has available.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)

// Strategy is the derived trading plan for one profile. Immutable once
// computed; recalculating from a new profile replaces it wholesale.
type Strategy struct {
	Type                Type       `json:"type" yaml:"type"`
	RewardRiskRatio     float64    `json:"reward_risk_ratio" yaml:"reward_risk_ratio"`
	RiskPerTradePct     float64    `json:"risk_per_trade_pct" yaml:"risk_per_trade_pct"`
	BreakEvenWinRate    float64    `json:"break_even_win_rate" yaml:"break_even_win_rate"`
	MinWinsRequired     int        `json:"min_wins_required" yaml:"min_wins_required"`
	TotalTradesEstimate int        `json:"total_trades_estimate" yaml:"total_trades_estimate"`
	Confidence          Confidence `json:"confidence" yaml:"confidence"`
}

// DomainError reports a derived quantity that came out zero or
// non-finite, leaving the trade-count estimates undefined.
type DomainError struct {
	Quantity string
	Value    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("strategy: %s is undefined (%v)", e.Quantity, e.Value)
}
