package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
)

// SQLRepository persists history and settings in SQLite or Postgres.
type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var (
	_ ports.HistoryRepository  = (*SQLRepository)(nil)
	_ ports.SettingsRepository = (*SQLRepository)(nil)
)

// NewSQLRepository wires a sql.DB opened with driver.
func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	return &SQLRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder(driver)),
	}
}

// LoadHistory returns entries most-recent-first.
func (r *SQLRepository) LoadHistory(ctx context.Context) ([]domain.Summary, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("payload").
		From("history").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.Summary
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		var entry domain.Summary
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return entries, nil
}

// ReplaceHistory overwrites the stored list in one transaction.
func (r *SQLRepository) ReplaceHistory(ctx context.Context, entries []domain.Summary) (err error) {
	if r.db == nil {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := r.builder.Delete("history").ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	if len(entries) > 0 {
		insert := r.builder.Insert("history").Columns("original_url", "position", "payload")
		for i, entry := range entries {
			payload, mErr := json.Marshal(entry)
			if mErr != nil {
				return fmt.Errorf("encode history entry: %w", mErr)
			}
			insert = insert.Values(entry.OriginalURL, i, string(payload))
		}

		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// GetSetting returns the stored value and whether it exists.
func (r *SQLRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if r.db == nil {
		return "", false, nil
	}

	query, args, err := r.builder.
		Select("value").
		From("settings").
		Where(sq.Eq{"name": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build setting query: %w", err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting upserts a setting.
func (r *SQLRepository) SetSetting(ctx context.Context, key, value string) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("settings").
		Columns("name", "value").
		Values(key, value).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build setting upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
