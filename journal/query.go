package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, attempt_id, win, amount, balance_after, time
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := row.Scan(
		&rec.TradeID,
		&rec.AttemptID,
		&rec.Win,
		&rec.Amount,
		&rec.BalanceAfter,
		&rec.Time,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesByAttempt returns an attempt's trades in chronological
// order — the same order the engine applied them.
func (j *SQLite) ListTradesByAttempt(attemptID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, attempt_id, win, amount, balance_after, time
		FROM trades
		WHERE attempt_id = ?
		ORDER BY trade_id ASC`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListTradesBetween returns trades applied within [start, end).
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, attempt_id, win, amount, balance_after, time
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListBalanceByAttempt returns the balance curve for an attempt.
func (j *SQLite) ListBalanceByAttempt(attemptID string) ([]BalanceSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT attempt_id, time, balance, passed
		FROM balance_history
		WHERE attempt_id = ?
		ORDER BY time ASC`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceSnapshot
	for rows.Next() {
		var rec BalanceSnapshot
		if err := rows.Scan(&rec.AttemptID, &rec.Time, &rec.Balance, &rec.Passed); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.AttemptID,
			&rec.Win,
			&rec.Amount,
			&rec.BalanceAfter,
			&rec.Time,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
