package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	attempt_id TEXT NOT NULL,
	win INTEGER NOT NULL,
	amount REAL NOT NULL,
	balance_after REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_attempt ON trades(attempt_id);
CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);

CREATE TABLE IF NOT EXISTS balance_history (
	attempt_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	balance REAL NOT NULL,
	passed INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_balance_time ON balance_history(time);

CREATE TABLE IF NOT EXISTS profiles (
	namespace TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated DATETIME NOT NULL
);
`
