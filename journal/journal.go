package journal

import "time"

// TradeRecord is one applied simulated trade, win or loss.
type TradeRecord struct {
	TradeID      string
	AttemptID    string
	Win          bool
	Amount       float64 // unsigned size of the move; Win says which way
	BalanceAfter float64
	Time         time.Time
}

// BalanceSnapshot is the account balance after a state change.
type BalanceSnapshot struct {
	AttemptID string
	Time      time.Time
	Balance   float64
	Passed    bool
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordBalance(BalanceSnapshot) error
	Close() error
}
