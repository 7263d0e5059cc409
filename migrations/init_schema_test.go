package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/college_db/models"
	"github.com/nonsonwune/college_db/store"
)

func objectNames(t *testing.T, s *store.Store, kind string) []string {
	t.Helper()
	rows, err := s.DB().Query("SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE 'sqlite_%' ORDER BY name", kind)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestInitSchema_EmptyStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{Driver: store.SQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, InitSchema(ctx, s))

	assert.ElementsMatch(t, models.AllTables, objectNames(t, s, "table"))
	assert.ElementsMatch(t, []string{
		"idx_admissions_unitid",
		"idx_earnings_unitid",
		"idx_financial_unitid",
		"idx_institutions_control",
		"idx_institutions_state",
		"idx_institutions_unitid",
		"idx_programs_cip",
		"idx_programs_unitid",
	}, objectNames(t, s, "index"))
}

func TestInitSchema_DiscardsExistingData(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{Driver: store.SQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, InitSchema(ctx, s))
	_, err = s.Append(ctx, models.InstitutionsTable, []string{"unitid", "name"}, [][]any{{int64(1), "A"}})
	require.NoError(t, err)
	_, err = s.Append(ctx, models.FinancialDataTable, []string{"unitid", "year"}, [][]any{{int64(1), int64(2023)}})
	require.NoError(t, err)

	require.NoError(t, InitSchema(ctx, s))

	for _, table := range models.AllTables {
		n, err := s.CountRows(ctx, table)
		require.NoError(t, err)
		assert.Zero(t, n, table)
	}
}

func TestDialectReplacer(t *testing.T) {
	ddl := tableDDL[models.FinancialDataTable]

	sqlite := dialectReplacer(store.SQLite).Replace(ddl)
	assert.Contains(t, sqlite, "id INTEGER PRIMARY KEY")
	assert.Contains(t, sqlite, "fees REAL")

	pg := dialectReplacer(store.Postgres).Replace(ddl)
	assert.Contains(t, pg, "id BIGSERIAL PRIMARY KEY")
	assert.Contains(t, pg, "fees DOUBLE PRECISION")
	assert.NotContains(t, pg, "{{")

	for _, table := range models.AllTables {
		assert.Contains(t, tableDDL, table)
	}
}
