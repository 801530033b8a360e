package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtify/debtify/internal/model"
)

func TestFindTransactionsOrdering(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Inserted out of date order on purpose.
	first := mustTransaction(t, store, "2024-01-02", model.KindExpense, "5", nil, "")
	second := mustTransaction(t, store, "2024-01-01", model.KindIncome, "100", nil, "")
	third := mustTransaction(t, store, "2024-01-02", model.KindIncome, "20", nil, "")

	entries, err := store.FindTransactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Date descending, then id descending: the later insert on 2024-01-02
	// comes first.
	assert.Equal(t, third.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, second.ID, entries[2].ID)
}

func TestFindTransactionsFilters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	food := mustCategory(t, store, "Food", model.KindExpense)
	salary := mustCategory(t, store, "Salary", model.KindIncome)

	mustTransaction(t, store, "2024-01-01", model.KindExpense, "10", &food.ID, "groceries run")
	mustTransaction(t, store, "2024-01-15", model.KindIncome, "2000", &salary.ID, "january pay")
	mustTransaction(t, store, "2024-02-01", model.KindExpense, "30", &food.ID, "restaurant")
	mustTransaction(t, store, "2024-02-15", model.KindExpense, "50", nil, "cash withdrawal")

	t.Run("inclusive date bounds", func(t *testing.T) {
		from := testDate(t, "2024-01-15")
		to := testDate(t, "2024-02-01")
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{CategoryID: &food.ID})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		for _, e := range entries {
			assert.Equal(t, "Food", e.CategoryName)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		income := model.KindIncome
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{Kind: &income})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "january pay", entries[0].Description)
	})

	t.Run("text matches description case-insensitively", func(t *testing.T) {
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{Text: "RESTAURANT"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "restaurant", entries[0].Description)
	})

	t.Run("text matches category name", func(t *testing.T) {
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{Text: "sala"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "january pay", entries[0].Description)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		from := testDate(t, "2024-02-01")
		expense := model.KindExpense
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{
			From:       &from,
			Kind:       &expense,
			CategoryID: &food.ID,
		})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "restaurant", entries[0].Description)
	})

	t.Run("no match", func(t *testing.T) {
		entries, err := store.FindTransactions(ctx, model.TransactionFilter{Text: "yacht"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFindTransactionsJoinsCategoryName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := mustCategory(t, store, "Gifts", model.KindIncome)
	mustTransaction(t, store, "2024-03-08", model.KindIncome, "50", &cat.ID, "")
	mustTransaction(t, store, "2024-03-09", model.KindExpense, "5", nil, "uncategorized")

	entries, err := store.FindTransactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Empty(t, entries[0].CategoryName)
	assert.Equal(t, "Gifts", entries[1].CategoryName)
}

func TestRunningBalance(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mustTransaction(t, store, "2024-01-01", model.KindIncome, "100", nil, "")
	mustTransaction(t, store, "2024-01-01", model.KindExpense, "30", nil, "")
	mustTransaction(t, store, "2024-01-02", model.KindIncome, "20", nil, "")

	points, err := store.RunningBalance(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01-01", model.FormatDate(points[0].Date))
	assert.Equal(t, "70.00", points[0].Balance.String())
	assert.Equal(t, "2024-01-02", model.FormatDate(points[1].Date))
	assert.Equal(t, "90.00", points[1].Balance.String())
}

func TestRunningBalanceBounds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mustTransaction(t, store, "2024-01-01", model.KindIncome, "100", nil, "")
	mustTransaction(t, store, "2024-01-05", model.KindExpense, "40", nil, "")
	mustTransaction(t, store, "2024-01-10", model.KindIncome, "10", nil, "")

	from := testDate(t, "2024-01-05")
	to := testDate(t, "2024-01-10")
	points, err := store.RunningBalance(ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// The cumulative sum starts within the bounds, not from all history.
	assert.Equal(t, "-40.00", points[0].Balance.String())
	assert.Equal(t, "-30.00", points[1].Balance.String())
}

func TestRunningBalanceSkipsEmptyDates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mustTransaction(t, store, "2024-01-01", model.KindIncome, "100", nil, "")
	mustTransaction(t, store, "2024-01-31", model.KindExpense, "10", nil, "")

	points, err := store.RunningBalance(ctx, nil, nil)
	require.NoError(t, err)

	// No interpolation of the 29 empty days between.
	require.Len(t, points, 2)
}

func TestRunningBalanceExactAccumulation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// 300 expenses of 0.10 on one date: exactly -30.00, no float drift.
	for i := 0; i < 300; i++ {
		mustTransaction(t, store, "2024-04-01", model.KindExpense, "0.10", nil, "")
	}

	points, err := store.RunningBalance(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "-30.00", points[0].Balance.String())
}

func TestRunningBalanceEmpty(t *testing.T) {
	store := createTestStorage(t)

	points, err := store.RunningBalance(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCategoryTotals(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	food := mustCategory(t, store, "Food", model.KindExpense)
	transport := mustCategory(t, store, "Transport", model.KindExpense)
	salary := mustCategory(t, store, "Salary", model.KindIncome)

	mustTransaction(t, store, "2024-01-01", model.KindExpense, "60", &food.ID, "")
	mustTransaction(t, store, "2024-01-02", model.KindExpense, "20", &food.ID, "")
	mustTransaction(t, store, "2024-01-03", model.KindExpense, "15", &transport.ID, "")
	mustTransaction(t, store, "2024-01-04", model.KindIncome, "2000", &salary.ID, "")
	// Uncategorized rows never contribute to category totals.
	mustTransaction(t, store, "2024-01-05", model.KindExpense, "500", nil, "")

	totals, err := store.CategoryTotals(ctx, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, "Salary", totals[0].Name)
	assert.Equal(t, "2000.00", totals[0].Total.String())
	assert.Equal(t, "Food", totals[1].Name)
	assert.Equal(t, "80.00", totals[1].Total.String())
	assert.Equal(t, "Transport", totals[2].Name)
	assert.Equal(t, "15.00", totals[2].Total.String())
}

func TestCategoryTotalsKindFilter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	food := mustCategory(t, store, "Food", model.KindExpense)
	salary := mustCategory(t, store, "Salary", model.KindIncome)

	mustTransaction(t, store, "2024-01-01", model.KindExpense, "80", &food.ID, "")
	mustTransaction(t, store, "2024-01-02", model.KindIncome, "2000", &salary.ID, "")

	expense := model.KindExpense
	totals, err := store.CategoryTotals(ctx, nil, nil, &expense)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "Food", totals[0].Name)
}

func TestCategoryTotalsDateBounds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	food := mustCategory(t, store, "Food", model.KindExpense)

	mustTransaction(t, store, "2024-01-01", model.KindExpense, "10", &food.ID, "")
	mustTransaction(t, store, "2024-02-01", model.KindExpense, "20", &food.ID, "")

	from := testDate(t, "2024-02-01")
	totals, err := store.CategoryTotals(ctx, &from, nil, nil)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "20.00", totals[0].Total.String())
}

func TestCategoryTotalsTieBreak(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Two categories with identical totals resolve by ascending id.
	a := mustCategory(t, store, "Bravo", model.KindExpense)
	b := mustCategory(t, store, "Alpha", model.KindExpense)

	mustTransaction(t, store, "2024-01-01", model.KindExpense, "25", &a.ID, "")
	mustTransaction(t, store, "2024-01-02", model.KindExpense, "25", &b.ID, "")

	totals, err := store.CategoryTotals(ctx, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, a.ID, totals[0].CategoryID)
	assert.Equal(t, b.ID, totals[1].CategoryID)
}
