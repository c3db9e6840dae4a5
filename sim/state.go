package sim

import "time"

// TradeResult is one applied trade in an attempt's history.
type TradeResult struct {
	ID           string    `json:"id"`
	Win          bool      `json:"win"`
	Amount       float64   `json:"amount"` // unsigned size of the move
	BalanceAfter float64   `json:"balance_after"`
	Time         time.Time `json:"time"`
}

// State is the mutable aggregate for one challenge attempt. All
// mutation goes through the Engine; nothing outside this package
// touches it directly.
type State struct {
	CurrentBalance float64
	History        []TradeResult

	WinCount  int
	LossCount int

	// Exactly one of WinStreak/LossStreak is non-zero after a trade.
	WinStreak  int
	LossStreak int

	MaxWinStreak  int
	MaxLossStreak int

	// Passed latches: once the balance touches the target it stays
	// true no matter how the balance moves afterwards.
	Passed bool
}

func newState(balance float64) State {
	return State{CurrentBalance: balance}
}

// applyOutcome folds one trade outcome into the counters and streaks.
func (s *State) applyOutcome(win bool) {
	if win {
		s.WinCount++
		s.WinStreak++
		s.LossStreak = 0
		if s.WinStreak > s.MaxWinStreak {
			s.MaxWinStreak = s.WinStreak
		}
	} else {
		s.LossCount++
		s.LossStreak++
		s.WinStreak = 0
		if s.LossStreak > s.MaxLossStreak {
			s.MaxLossStreak = s.LossStreak
		}
	}
}

// Snapshot is a read-only copy of the live state, safe to hand to
// presentation and export code while the engine keeps mutating.
type Snapshot struct {
	AttemptID     string        `json:"attempt_id"`
	Balance       float64       `json:"balance"`
	TargetBalance float64       `json:"target_balance"`
	Trades        []TradeResult `json:"trades"`

	WinCount  int `json:"win_count"`
	LossCount int `json:"loss_count"`

	WinStreak  int `json:"win_streak"`
	LossStreak int `json:"loss_streak"`

	MaxWinStreak  int `json:"max_win_streak"`
	MaxLossStreak int `json:"max_loss_streak"`

	Passed bool `json:"passed"`

	// BatchRemaining is non-zero while an auto-simulate batch still
	// has undelivered trades.
	BatchRemaining int `json:"batch_remaining"`
}
