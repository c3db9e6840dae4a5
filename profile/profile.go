package profile

import "fmt"

// RiskLevel is the trader's stated risk appetite. It selects the
// reward:risk and risk-per-trade tables in the risk package.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskBalanced RiskLevel = "balanced"
	RiskHigh     RiskLevel = "high"
)

type TradingStyle string

const (
	StyleIntraday TradingStyle = "intraday"
	StyleSwing    TradingStyle = "swing"
	StylePosition TradingStyle = "position"
	StyleHybrid   TradingStyle = "hybrid"
)

type TimeCommitment string

const (
	PartTime TimeCommitment = "part-time"
	FullTime TimeCommitment = "full-time"
)

// Profile describes one challenge attempt: the account being traded,
// the profit target, and how the trader intends to work it.
type Profile struct {
	AccountBalance   float64        `json:"account_balance" yaml:"account_balance"`
	TargetPercentage float64        `json:"target_percentage" yaml:"target_percentage"`
	DaysRemaining    int            `json:"days_remaining" yaml:"days_remaining"`
	RiskLevel        RiskLevel      `json:"risk_level" yaml:"risk_level"`
	TradingStyle     TradingStyle   `json:"trading_style" yaml:"trading_style"`
	TimeCommitment   TimeCommitment `json:"time_commitment" yaml:"time_commitment"`
	TradesPerDay     int            `json:"trades_per_day" yaml:"trades_per_day"`
}

// RequiredProfit is the absolute profit needed to pass the challenge.
func (p Profile) RequiredProfit() float64 {
	return p.AccountBalance * p.TargetPercentage / 100
}

// TargetBalance is the balance at which the challenge is passed.
func (p Profile) TargetBalance() float64 {
	return p.AccountBalance * (1 + p.TargetPercentage/100)
}

// ValidationError names the profile field that failed its bounds check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile: %s %s", e.Field, e.Reason)
}

// Validate checks the boundary bounds. The strategy calculator itself
// tolerates any positive inputs; these are the limits enforced when a
// profile enters the system (form submit, config file, reload from
// the profile store).
func (p Profile) Validate() error {
	if p.AccountBalance <= 0 {
		return &ValidationError{"account_balance", "must be positive"}
	}
	if p.TargetPercentage < 5 || p.TargetPercentage > 30 {
		return &ValidationError{"target_percentage", "must be between 5 and 30"}
	}
	if p.DaysRemaining < 3 || p.DaysRemaining > 30 {
		return &ValidationError{"days_remaining", "must be between 3 and 30"}
	}
	if _, err := ParseRiskLevel(string(p.RiskLevel)); err != nil {
		return &ValidationError{"risk_level", err.Error()}
	}
	if _, err := ParseTradingStyle(string(p.TradingStyle)); err != nil {
		return &ValidationError{"trading_style", err.Error()}
	}
	if _, err := ParseTimeCommitment(string(p.TimeCommitment)); err != nil {
		return &ValidationError{"time_commitment", err.Error()}
	}
	if p.TradesPerDay < 1 || p.TradesPerDay > 15 {
		return &ValidationError{"trades_per_day", "must be between 1 and 15"}
	}
	return nil
}

func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskBalanced, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

func ParseTradingStyle(s string) (TradingStyle, error) {
	switch TradingStyle(s) {
	case StyleIntraday, StyleSwing, StylePosition, StyleHybrid:
		return TradingStyle(s), nil
	}
	return "", fmt.Errorf("unknown trading style %q", s)
}

func ParseTimeCommitment(s string) (TimeCommitment, error) {
	switch TimeCommitment(s) {
	case PartTime, FullTime:
		return TimeCommitment(s), nil
	}
	return "", fmt.Errorf("unknown time commitment %q", s)
}
