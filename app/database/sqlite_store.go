package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	version, dirty, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("SQLite store ready", "path", path, "schema_version", version, "dirty", dirty)

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	collection, key := splitPath(path)

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM nodes WHERE collection = ? AND key = ?`,
		collection, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", path, err)
	}

	return []byte(value), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, path string, value []byte) error {
	collection, key := splitPath(path)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (collection, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, collection, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}

	return nil
}

func (s *SQLiteStore) Append(ctx context.Context, collection string, value []byte) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	key := id.String()
	if err := s.Set(ctx, collection+"/"+key, value); err != nil {
		return "", err
	}

	return key, nil
}

func (s *SQLiteStore) Scan(ctx context.Context, collection, field, value string) ([][]byte, error) {
	query := `SELECT value FROM nodes WHERE collection = ? ORDER BY key`
	args := []any{collection}
	if field != "" {
		query = `SELECT value FROM nodes WHERE collection = ? AND json_extract(value, '$.' || ?) = ? ORDER BY key`
		args = append(args, field, value)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", collection, err)
		}
		values = append(values, []byte(v))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
	}

	return values, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
