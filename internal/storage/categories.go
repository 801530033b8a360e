package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/model"
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint hit.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// CreateCategory creates a new category. The name must be unique across
// both kinds; a collision returns common.ErrDuplicateName.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string, kind model.Kind) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, kind) VALUES (?, ?)`,
		name, string(kind))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q", common.ErrDuplicateName, name)
		}
		return nil, fmt.Errorf("%w: failed to insert category: %w", common.ErrStorage, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get category ID: %w", common.ErrStorage, err)
	}

	slog.Debug("created category", "id", id, "name", name, "kind", kind)
	return &model.Category{ID: id, Name: name, Kind: kind}, nil
}

// UpdateCategory renames and/or re-kinds an existing category.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, id int64, name string, kind model.Kind) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if err := validateKind(kind); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, kind = ? WHERE id = ?`,
		name, string(kind), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateName, name)
		}
		return fmt.Errorf("%w: failed to update category: %w", common.ErrStorage, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check update result: %w", common.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	return nil
}

// DeleteCategory removes a category. The category reference on all
// referencing transactions is cleared to NULL; the transactions themselves
// are never deleted.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete category: %w", common.ErrStorage, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check delete result: %w", common.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	slog.Debug("deleted category", "id", id)
	return nil
}

// GetCategory returns a single category by id.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var cat model.Category
	var kind string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, kind FROM categories WHERE id = ?`, id).
		Scan(&cat.ID, &cat.Name, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query category: %w", common.ErrStorage, err)
	}
	cat.Kind = model.Kind(kind)

	return &cat, nil
}

// ListCategories returns categories ordered by (kind, name), or by name
// alone when filtered to a single kind.
func (s *SQLiteStorage) ListCategories(ctx context.Context, kind *model.Kind) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, kind FROM categories ORDER BY kind, name`
	args := []any{}
	if kind != nil {
		if err := validateKind(*kind); err != nil {
			return nil, err
		}
		query = `SELECT id, name, kind FROM categories WHERE kind = ? ORDER BY name`
		args = append(args, string(*kind))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query categories: %w", common.ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var k string
		if err := rows.Scan(&cat.ID, &cat.Name, &k); err != nil {
			return nil, fmt.Errorf("%w: failed to scan category: %w", common.ErrStorage, err)
		}
		cat.Kind = model.Kind(k)
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating categories: %w", common.ErrStorage, err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}
