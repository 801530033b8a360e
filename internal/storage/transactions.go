package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
)

// createdAtLayout is how SQLite's datetime('now') renders timestamps.
const createdAtLayout = "2006-01-02 15:04:05"

// CreateTransaction inserts a new transaction and returns the stored record
// with its assigned id and creation timestamp.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(&txn); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (dt, kind, amount, category_id, description)
		VALUES (?, ?, ?, ?, ?)`,
		model.FormatDate(txn.Date),
		string(txn.Kind),
		txn.Amount.Float64(),
		nullableID(txn.CategoryID),
		nullableText(txn.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert transaction: %w", common.ErrStorage, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get transaction ID: %w", common.ErrStorage, err)
	}

	slog.Debug("created transaction", "id", id, "kind", txn.Kind, "amount", txn.Amount)
	return s.GetTransaction(ctx, id)
}

// UpdateTransaction replaces all mutable fields of an existing transaction.
// The id and creation timestamp are immutable.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(&txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET dt = ?, kind = ?, amount = ?, category_id = ?, description = ?
		WHERE id = ?`,
		model.FormatDate(txn.Date),
		string(txn.Kind),
		txn.Amount.Float64(),
		nullableID(txn.CategoryID),
		nullableText(txn.Description),
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update transaction: %w", common.ErrStorage, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check update result: %w", common.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, txn.ID)
	}

	return nil
}

// DeleteTransaction removes a transaction. Deleting a missing id returns
// common.ErrNotFound.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete transaction: %w", common.ErrStorage, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check delete result: %w", common.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// GetTransaction returns a single transaction by id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, dt, kind, amount, category_id, description, created_at
		FROM transactions
		WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn        model.Transaction
		dt         string
		kind       string
		amount     float64
		categoryID sql.NullInt64
		desc       sql.NullString
		createdAt  string
	)

	if err := row.Scan(&txn.ID, &dt, &kind, &amount, &categoryID, &desc, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to scan transaction: %w", common.ErrStorage, err)
	}

	date, err := model.ParseDate(dt)
	if err != nil {
		return nil, fmt.Errorf("%w: stored date %q is corrupt: %w", common.ErrStorage, dt, err)
	}
	txn.Date = date
	txn.Kind = model.Kind(kind)
	txn.Amount = money.FromFloat(amount)
	if categoryID.Valid {
		id := categoryID.Int64
		txn.CategoryID = &id
	}
	if desc.Valid {
		txn.Description = desc.String
	}

	created, err := time.ParseInLocation(createdAtLayout, createdAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: stored timestamp %q is corrupt: %w", common.ErrStorage, createdAt, err)
	}
	txn.CreatedAt = created

	return &txn, nil
}

// nullableID maps an optional category reference to its SQL value.
func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// nullableText maps an optional description to its SQL value.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
