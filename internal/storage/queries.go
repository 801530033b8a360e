package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
)

// BalancePoint is one step of the cumulative running balance: the net
// position at the end of the given calendar date.
type BalancePoint struct {
	Date    time.Time
	Balance money.Money
}

// CategoryTotal is the summed amount of all categorized transactions for
// one category within the queried range.
type CategoryTotal struct {
	Name       string
	Total      money.Money
	CategoryID int64
}

// FindTransactions returns transactions matching the filter, joined with
// their category's display name, ordered by date descending and then id
// descending (newest first, insertion order breaking ties).
func (s *SQLiteStorage) FindTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.dt, t.kind, t.amount, t.category_id, t.description, t.created_at, c.name
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE 1=1`
	args := []any{}

	if filter.From != nil {
		query += " AND t.dt >= ?"
		args = append(args, model.FormatDate(*filter.From))
	}
	if filter.To != nil {
		query += " AND t.dt <= ?"
		args = append(args, model.FormatDate(*filter.To))
	}
	if filter.CategoryID != nil {
		query += " AND t.category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	if filter.Kind != nil {
		if err := validateKind(*filter.Kind); err != nil {
			return nil, err
		}
		query += " AND t.kind = ?"
		args = append(args, string(*filter.Kind))
	}
	if filter.Text != "" {
		query += " AND (t.description LIKE ? OR c.name LIKE ?)"
		pattern := "%" + filter.Text + "%"
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY t.dt DESC, t.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions: %w", common.ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var (
			entry      model.Entry
			dt         string
			kind       string
			amount     float64
			categoryID sql.NullInt64
			desc       sql.NullString
			createdAt  string
			catName    sql.NullString
		)
		if err := rows.Scan(&entry.ID, &dt, &kind, &amount, &categoryID, &desc, &createdAt, &catName); err != nil {
			return nil, fmt.Errorf("%w: failed to scan entry: %w", common.ErrStorage, err)
		}

		date, err := model.ParseDate(dt)
		if err != nil {
			return nil, fmt.Errorf("%w: stored date %q is corrupt: %w", common.ErrStorage, dt, err)
		}
		created, err := time.ParseInLocation(createdAtLayout, createdAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: stored timestamp %q is corrupt: %w", common.ErrStorage, createdAt, err)
		}

		entry.Date = date
		entry.CreatedAt = created
		entry.Kind = model.Kind(kind)
		entry.Amount = money.FromFloat(amount)
		if categoryID.Valid {
			id := categoryID.Int64
			entry.CategoryID = &id
		}
		if desc.Valid {
			entry.Description = desc.String
		}
		if catName.Valid {
			entry.CategoryName = catName.String
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating entries: %w", common.ErrStorage, err)
	}

	return entries, nil
}

// RunningBalance computes the cumulative net balance per calendar date
// within the optional inclusive bounds, ordered by ascending date. Income
// counts positive and expense negative. Dates without transactions are
// absent from the sequence. Every sum is accumulated in exact decimal
// arithmetic over the whole ordered row set, never as per-row float sums.
func (s *SQLiteStorage) RunningBalance(ctx context.Context, from, to *time.Time) ([]BalancePoint, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT dt, kind, amount FROM transactions WHERE 1=1`
	args := []any{}
	if from != nil {
		query += " AND dt >= ?"
		args = append(args, model.FormatDate(*from))
	}
	if to != nil {
		query += " AND dt <= ?"
		args = append(args, model.FormatDate(*to))
	}
	query += " ORDER BY dt ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query balance rows: %w", common.ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		points  []BalancePoint
		total   = money.Zero()
		curDate string
	)

	flush := func() error {
		if curDate == "" {
			return nil
		}
		date, err := model.ParseDate(curDate)
		if err != nil {
			return fmt.Errorf("%w: stored date %q is corrupt: %w", common.ErrStorage, curDate, err)
		}
		points = append(points, BalancePoint{Date: date, Balance: total})
		return nil
	}

	for rows.Next() {
		var (
			dt     string
			kind   string
			amount float64
		)
		if err := rows.Scan(&dt, &kind, &amount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan balance row: %w", common.ErrStorage, err)
		}

		if dt != curDate {
			if err := flush(); err != nil {
				return nil, err
			}
			curDate = dt
		}

		delta := money.FromFloat(amount)
		if model.Kind(kind) == model.KindExpense {
			delta = delta.Neg()
		}
		total = total.Add(delta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating balance rows: %w", common.ErrStorage, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return points, nil
}

// CategoryTotals sums transaction amounts per category within the optional
// bounds and kind filter, ordered by total descending with category id
// ascending breaking ties. Uncategorized transactions are excluded.
func (s *SQLiteStorage) CategoryTotals(ctx context.Context, from, to *time.Time, kind *model.Kind) ([]CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.category_id, c.name, t.amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE 1=1`
	args := []any{}
	if from != nil {
		query += " AND t.dt >= ?"
		args = append(args, model.FormatDate(*from))
	}
	if to != nil {
		query += " AND t.dt <= ?"
		args = append(args, model.FormatDate(*to))
	}
	if kind != nil {
		if err := validateKind(*kind); err != nil {
			return nil, err
		}
		query += " AND t.kind = ?"
		args = append(args, string(*kind))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query category totals: %w", common.ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[int64]*CategoryTotal)
	for rows.Next() {
		var (
			categoryID int64
			name       string
			amount     float64
		)
		if err := rows.Scan(&categoryID, &name, &amount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan category total: %w", common.ErrStorage, err)
		}

		ct, ok := totals[categoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: categoryID, Name: name, Total: money.Zero()}
			totals[categoryID] = ct
		}
		ct.Total = ct.Total.Add(money.FromFloat(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating category totals: %w", common.ErrStorage, err)
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		result = append(result, *ct)
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Total.Cmp(result[j].Total); c != 0 {
			return c > 0
		}
		return result[i].CategoryID < result[j].CategoryID
	})

	return result, nil
}
