package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MySQLAdapter keeps one row per collection key in the collections table.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT body FROM collections WHERE name = ?`, key,
	).Scan(&body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", key, err)
	}
	return body, nil
}

func (m *MySQLAdapter) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO collections (name, body, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE body = VALUES(body), updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert collection %s: %w", key, err)
	}
	return nil
}
