package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "bankcat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testRun(records ...model.TransactionRecord) *model.Run {
	return &model.Run{
		ID:         uuid.NewString(),
		SourceFile: "statement-jan.pdf",
		CreatedAt:  time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
		Records:    records,
	}
}

func txn(position int, amount string) model.TransactionRecord {
	return model.TransactionRecord{
		Date:              "2024-01-02",
		Description:       "Transaction " + string(rune('A'+position)),
		Amount:            decimal.RequireFromString(amount),
		SuggestedCategory: "Supplies",
		Confidence:        model.ConfidenceHigh,
		Reasoning:         "test",
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	run := testRun(txn(0, "-45.99"), txn(1, "1200"), txn(2, "-0.10"))
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.SourceFile, got.SourceFile)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Records, 3)

	// Order and amounts must round-trip exactly.
	for i := range run.Records {
		assert.Equal(t, run.Records[i].Description, got.Records[i].Description)
		assert.True(t, run.Records[i].Amount.Equal(got.Records[i].Amount),
			"amount %d = %s, want %s", i, got.Records[i].Amount, run.Records[i].Amount)
	}
}

func TestSaveRun_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.Error(t, store.SaveRun(ctx, nil))
	require.Error(t, store.SaveRun(ctx, &model.Run{}))

	run := testRun(txn(0, "-1"))
	require.NoError(t, store.SaveRun(ctx, run))
	assert.Error(t, store.SaveRun(ctx, run), "duplicate run IDs are rejected")
}

func TestGetRun_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetRun(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestListRuns_NewestFirst(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	older := testRun(txn(0, "-1"))
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testRun(txn(0, "-1"), txn(1, "-2"))
	newer.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, older))
	require.NoError(t, store.SaveRun(ctx, newer))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, 2, runs[0].TransactionCount)
	assert.Equal(t, older.ID, runs[1].ID)
	assert.Equal(t, 1, runs[1].TransactionCount)
}

func TestLatestRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.LatestRun(ctx)
	assert.True(t, errors.Is(err, ErrRunNotFound))

	older := testRun(txn(0, "-1"))
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testRun(txn(0, "-2"))
	newer.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, older))
	require.NoError(t, store.SaveRun(ctx, newer))

	got, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	require.Len(t, got.Records, 1)
}

func TestDeleteRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	run := testRun(txn(0, "-1"))
	require.NoError(t, store.SaveRun(ctx, run))
	require.NoError(t, store.DeleteRun(ctx, run.ID))

	_, err := store.GetRun(ctx, run.ID)
	assert.True(t, errors.Is(err, ErrRunNotFound))

	err = store.DeleteRun(ctx, run.ID)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveRun_EmptyRecords(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	run := testRun()
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Records)
}
