package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalWritesRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	balancePath := filepath.Join(dir, "balance.csv")

	j, err := NewCSV(tradesPath, balancePath)
	require.NoError(t, err)

	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:      "T1",
		AttemptID:    "A1",
		Win:          false,
		Amount:       100,
		BalanceAfter: 9900,
		Time:         at,
	}))
	require.NoError(t, j.RecordBalance(BalanceSnapshot{
		AttemptID: "A1",
		Time:      at,
		Balance:   9900,
		Passed:    false,
	}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"trade_id", "attempt_id", "outcome", "amount", "balance_after", "time"}, rows[0])
	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "loss", rows[1][2])
	assert.Equal(t, "100.00", rows[1][3])
	assert.Equal(t, "9900.00", rows[1][4])

	bf, err := os.Open(balancePath)
	require.NoError(t, err)
	defer bf.Close()

	brows, err := csv.NewReader(bf).ReadAll()
	require.NoError(t, err)
	require.Len(t, brows, 2)
	assert.Equal(t, "A1", brows[1][0])
	assert.Equal(t, "false", brows[1][3])
}
