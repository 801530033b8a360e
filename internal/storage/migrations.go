package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/debtify/debtify/internal/model"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL UNIQUE,
					kind TEXT NOT NULL CHECK(kind IN ('expense','income'))
				)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					dt TEXT NOT NULL,
					kind TEXT NOT NULL CHECK(kind IN ('expense','income')),
					amount REAL NOT NULL,
					category_id INTEGER,
					description TEXT,
					created_at TEXT NOT NULL DEFAULT (datetime('now')),
					FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE SET NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_dt ON transactions(dt)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// defaultCategories is the fixed seed list inserted at first initialization:
// four expense categories and three income categories.
var defaultCategories = []struct {
	Name string
	Kind model.Kind
}{
	{"Продукты", model.KindExpense},
	{"Кафе и рестораны", model.KindExpense},
	{"Транспорт", model.KindExpense},
	{"Развлечения", model.KindExpense},
	{"Зарплата", model.KindIncome},
	{"Подарки", model.KindIncome},
	{"Проценты/Дивиденды", model.KindIncome},
}

// Migrate applies any pending schema migrations. Safe to call on every
// startup.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SeedDefaults inserts the fixed default categories, silently skipping any
// name that already exists. Idempotent.
func (s *SQLiteStorage) SeedDefaults(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	stmt, err := s.db.PrepareContext(ctx, `INSERT OR IGNORE INTO categories (name, kind) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range defaultCategories {
		if _, err := stmt.ExecContext(ctx, c.Name, string(c.Kind)); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	slog.Debug("seeded default categories", "count", len(defaultCategories))
	return nil
}
