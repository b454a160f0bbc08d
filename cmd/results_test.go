package cmd

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotough/gotough/tough"
)

func TestStoreResults(t *testing.T) {
	steps := []tough.TimeStep{
		{
			Time:    1.0e4,
			Columns: []string{"P", "T"},
			Labels:  []string{"00000", "00001"},
			Data: map[string][]float64{
				"P": {1.0133e5, 1.0250e5},
				"T": {25.0, 26.0},
			},
		},
		{
			Time:    2.0e4,
			Columns: []string{"P", "T"},
			Labels:  []string{"00000", "00001"},
			Data: map[string][]float64{
				"P": {1.0140e5, 1.0260e5},
				"T": {25.4, 26.5},
			},
		},
	}

	dbFile := filepath.Join(t.TempDir(), "results.sqlite")
	require.NoError(t, storeResults(dbFile, steps))

	db, err := sql.Open("sqlite", dbFile)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM timesteps").Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n))
	assert.Equal(t, 8, n)

	var v float64
	require.NoError(t, db.QueryRow(
		"SELECT value FROM results WHERE timestep = 1 AND element = '00001' AND variable = 'T'").Scan(&v))
	assert.InDelta(t, 26.5, v, 1e-9)
}
