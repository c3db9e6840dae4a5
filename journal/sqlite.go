package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, attempt_id, win, amount, balance_after, time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.AttemptID, t.Win, t.Amount, t.BalanceAfter, t.Time,
	)
	return err
}

func (j *SQLite) RecordBalance(b BalanceSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO balance_history
		(attempt_id, time, balance, passed)
		VALUES (?, ?, ?, ?)`,
		b.AttemptID, b.Time, b.Balance, b.Passed,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
