package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"challengesim/profile"
)

func TestTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   profile.RiskLevel
		rr      float64
		riskPct float64
	}{
		{profile.RiskLow, 1.5, 0.5},
		{profile.RiskBalanced, 2.0, 1.0},
		{profile.RiskHigh, 2.5, 2.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.rr, RewardRisk(tt.level), 1e-12)
			assert.InDelta(t, tt.riskPct, PerTradePct(tt.level), 1e-12)
		})
	}
}

func TestBreakEvenWinRate(t *testing.T) {
	t.Parallel()

	// 100/(1+rr) exactly, across the whole table.
	for _, level := range []profile.RiskLevel{profile.RiskLow, profile.RiskBalanced, profile.RiskHigh} {
		rr := RewardRisk(level)
		assert.InDelta(t, 100/(1+rr), BreakEvenWinRate(rr), 1e-12)
	}

	assert.InDelta(t, 33.333333, BreakEvenWinRate(2.0), 1e-5)
	assert.InDelta(t, 40.0, BreakEvenWinRate(1.5), 1e-12)
}

func TestAmounts(t *testing.T) {
	t.Parallel()

	riskAmt, rewardAmt := Amounts(10000, 1.0, 2.0)
	assert.InDelta(t, 100.0, riskAmt, 1e-9)
	assert.InDelta(t, 200.0, rewardAmt, 1e-9)

	riskAmt, rewardAmt = Amounts(50000, 0.5, 1.5)
	assert.InDelta(t, 250.0, riskAmt, 1e-9)
	assert.InDelta(t, 375.0, rewardAmt, 1e-9)
}
