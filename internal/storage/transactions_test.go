package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
)

func TestTransactionRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := mustCategory(t, store, "Groceries", model.KindExpense)

	created, err := store.CreateTransaction(ctx, model.Transaction{
		Date:        testDate(t, "2024-05-17"),
		Kind:        model.KindExpense,
		Amount:      testAmount(t, "42.75"),
		CategoryID:  &cat.ID,
		Description: "weekly shop",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetTransaction(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.Date.Equal(got.Date))
	assert.Equal(t, model.KindExpense, got.Kind)
	assert.True(t, created.Amount.Equal(got.Amount))
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, cat.ID, *got.CategoryID)
	assert.Equal(t, "weekly shop", got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateTransactionWithoutCategory(t *testing.T) {
	store := createTestStorage(t)

	txn := mustTransaction(t, store, "2024-05-17", model.KindIncome, "1000", nil, "")

	got, err := store.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Empty(t, got.Description)
}

func TestCreateTransactionValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{
			name: "zero amount",
			txn: model.Transaction{
				Date:   testDate(t, "2024-01-01"),
				Kind:   model.KindExpense,
				Amount: money.Zero(),
			},
		},
		{
			name: "negative amount",
			txn: model.Transaction{
				Date:   testDate(t, "2024-01-01"),
				Kind:   model.KindExpense,
				Amount: money.FromFloat(-5),
			},
		},
		{
			name: "missing date",
			txn: model.Transaction{
				Kind:   model.KindExpense,
				Amount: money.FromFloat(5),
			},
		},
		{
			name: "unknown kind",
			txn: model.Transaction{
				Date:   testDate(t, "2024-01-01"),
				Kind:   model.Kind("transfer"),
				Amount: money.FromFloat(5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateTransaction(ctx, tt.txn)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}

	// No partial writes: nothing reached storage.
	entries, err := store.FindTransactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := mustCategory(t, store, "Salary", model.KindIncome)
	txn := mustTransaction(t, store, "2024-02-10", model.KindExpense, "10", nil, "typo entry")

	updated := *txn
	updated.Date = testDate(t, "2024-02-11")
	updated.Kind = model.KindIncome
	updated.Amount = testAmount(t, "2500")
	updated.CategoryID = &cat.ID
	updated.Description = "february salary"
	require.NoError(t, store.UpdateTransaction(ctx, updated))

	got, err := store.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(testDate(t, "2024-02-11")))
	assert.Equal(t, model.KindIncome, got.Kind)
	assert.Equal(t, "2500.00", got.Amount.String())
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, cat.ID, *got.CategoryID)
	assert.Equal(t, "february salary", got.Description)

	// Creation timestamp is immutable.
	assert.True(t, got.CreatedAt.Equal(txn.CreatedAt))
}

func TestUpdateTransactionNotFound(t *testing.T) {
	store := createTestStorage(t)

	err := store.UpdateTransaction(context.Background(), model.Transaction{
		ID:     12345,
		Date:   testDate(t, "2024-01-01"),
		Kind:   model.KindExpense,
		Amount: testAmount(t, "1"),
	})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txn := mustTransaction(t, store, "2024-03-03", model.KindExpense, "7.50", nil, "")

	require.NoError(t, store.DeleteTransaction(ctx, txn.ID))

	_, err := store.GetTransaction(ctx, txn.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	// Deleting a missing id fails rather than no-oping.
	err = store.DeleteTransaction(ctx, txn.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetTransactionNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetTransaction(context.Background(), 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTransactionCreatedAtIsRecent(t *testing.T) {
	store := createTestStorage(t)

	txn := mustTransaction(t, store, "2024-06-01", model.KindIncome, "100", nil, "")

	// datetime('now') is UTC; allow generous clock skew.
	assert.WithinDuration(t, time.Now().UTC(), txn.CreatedAt, time.Minute)
}
