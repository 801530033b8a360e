package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
)

// createTestStorage creates a migrated store backed by a temp file.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testAmount(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.ParseAmount(s)
	require.NoError(t, err)
	return m
}

// mustCategory creates a category or fails the test.
func mustCategory(t *testing.T, store *SQLiteStorage, name string, kind model.Kind) *model.Category {
	t.Helper()
	cat, err := store.CreateCategory(context.Background(), name, kind)
	require.NoError(t, err)
	return cat
}

// mustTransaction inserts a transaction or fails the test.
func mustTransaction(t *testing.T, store *SQLiteStorage, date string, kind model.Kind, amount string, categoryID *int64, desc string) *model.Transaction {
	t.Helper()
	txn, err := store.CreateTransaction(context.Background(), model.Transaction{
		Date:        testDate(t, date),
		Kind:        kind,
		Amount:      testAmount(t, amount),
		CategoryID:  categoryID,
		Description: desc,
	})
	require.NoError(t, err)
	return txn
}

func TestMigrateIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Running migrations again must be a no-op.
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
