package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonsonwune/college_db/migrations"
	"github.com/nonsonwune/college_db/store"
)

func openMemory(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{Driver: store.SQLite, Path: store.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, migrations.InitSchema(context.Background(), s))
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), store.Options{Driver: "oracle"})
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestOpen_CreatesDatabaseDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "college_data.db")

	s, err := store.Open(context.Background(), store.Options{Path: path})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, store.SQLite, s.Dialect())
	require.NoError(t, migrations.InitSchema(context.Background(), s))

	size, err := s.Size(context.Background())
	require.NoError(t, err)
	assert.Positive(t, size)
}

func TestOpen_ForeignKeysDisabled(t *testing.T) {
	s := openMemory(t)

	var enabled int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Zero(t, enabled)
}

func TestAppendAndUnitIDs(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	n, err := s.Append(ctx, "institutions", []string{"unitid", "name", "state"}, [][]any{
		{int64(100654), "Example College", "CA"},
		{int64(100663), "Second University", nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ids, err := s.UnitIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]struct{}{100654: {}, 100663: {}}, ids)

	count, err := s.CountRows(ctx, "institutions")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	n, err = s.Append(ctx, "institutions", []string{"unitid"}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAppend_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	_, err := s.Append(ctx, "institutions", []string{"unitid", "name"}, [][]any{
		{int64(1), "First"},
		{int64(1), "Duplicate"},
	})
	require.Error(t, err)

	count, err := s.CountRows(ctx, "institutions")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.Append(ctx, "institutions", []string{"unitid", "name"}, [][]any{{int64(2)}})
	assert.Error(t, err)
}

func TestInstitutionLookup(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	_, err := s.Append(ctx, "institutions", []string{"unitid", "name", "city", "state", "latitude", "control_public_private"},
		[][]any{{int64(100654), "Example College", "Los Angeles", "CA", 34.05, int64(1)}})
	require.NoError(t, err)
	_, err = s.Append(ctx, "financial_data", []string{"unitid", "year", "tuition_in_state"},
		[][]any{{int64(100654), int64(2022), 9000.0}, {int64(100654), int64(2023), 9500.0}})
	require.NoError(t, err)
	_, err = s.Append(ctx, "academic_programs", []string{"unitid", "cipcode", "completions", "year"},
		[][]any{{int64(100654), "01.0000", int64(12), int64(2022)}, {int64(100654), "11.0701", nil, int64(2022)}})
	require.NoError(t, err)

	inst, err := s.Institution(ctx, 100654)
	require.NoError(t, err)
	assert.Equal(t, "Example College", inst.Name)
	require.NotNil(t, inst.State)
	assert.Equal(t, "CA", *inst.State)
	assert.Nil(t, inst.Website)
	require.NotNil(t, inst.Latitude)
	assert.InDelta(t, 34.05, *inst.Latitude, 1e-9)
	require.Len(t, inst.Financial, 2)
	assert.EqualValues(t, 2023, *inst.Financial[0].Year)
	assert.Nil(t, inst.Earnings)
	assert.EqualValues(t, 2, inst.ProgramCount)

	programs, err := s.Programs(ctx, 100654, 1)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "01.0000", *programs[0].CIPCode)

	_, err = s.Institution(ctx, 999999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSize_MemoryIsZero(t *testing.T) {
	s := openMemory(t)
	size, err := s.Size(context.Background())
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", store.SQLite.Placeholder(3))
	assert.Equal(t, "$3", store.Postgres.Placeholder(3))
}
