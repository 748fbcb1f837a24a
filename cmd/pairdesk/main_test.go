package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadImportFileSingle(t *testing.T) {
	reqs, err := readImportFile(writeFile(t, `{"symbol":"eurusd","timeframe":"1h","version":"v1","sheets":{"performance":[]}}`))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "eurusd", reqs[0].Symbol)
	assert.JSONEq(t, `[]`, string(reqs[0].Sheets.Performance))
}

func TestReadImportFileArray(t *testing.T) {
	reqs, err := readImportFile(writeFile(t, `[{"symbol":"BTCUSDT"},{"symbol":"XAUUSD"}]`))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "XAUUSD", reqs[1].Symbol)
}

func TestReadImportFileInvalid(t *testing.T) {
	_, err := readImportFile(writeFile(t, `not json`))
	require.Error(t, err)

	_, err = readImportFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestViewStateFromFlags(t *testing.T) {
	saved := tableFlags
	t.Cleanup(func() { tableFlags = saved })

	tableFlags.filter = "crypto"
	tableFlags.query = "btc"
	tableFlags.sort = "roi"
	tableFlags.desc = true
	tableFlags.limit = 20
	tableFlags.page = 3

	state := viewStateFromFlags(views.BacktestOptions([]int{10, 20}, 10))
	assert.Equal(t, "crypto", state.Filter)
	assert.Equal(t, "btc", state.Query)
	assert.Equal(t, "roi", state.Sort)
	assert.Equal(t, table.Desc, state.Dir)
	assert.Equal(t, 20, state.Limit)
	assert.Equal(t, 3, state.Page)
}
