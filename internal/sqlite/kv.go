package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/soundxcape/internal/repository"
)

var _ repository.KeyValueRepository = (*KVRepository)(nil)

const usageQuery = `SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(value)), 0) FROM kv_entries`

// KVRepository implements repository.KeyValueRepository for SQLite. A
// non-zero quota caps the bytes of all keys and values together.
type KVRepository struct {
	db    *DB
	quota int64
}

// NewKVRepository creates a new KVRepository. quota <= 0 means unlimited.
func NewKVRepository(db *DB, quota int64) *KVRepository {
	if quota < 0 {
		quota = 0
	}
	return &KVRepository{db: db, quota: quota}
}

// Get returns the value stored at key
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// SetBatch upserts every entry in one transaction. The transaction is rolled
// back with repository.ErrQuotaExceeded when the result would exceed the quota.
func (r *KVRepository) SetBatch(ctx context.Context, entries []repository.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, e := range entries {
		value := e.Value
		if value == nil {
			value = []byte{}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, e.Key, value, now)
		if isDiskFull(err) {
			return repository.ErrQuotaExceeded
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", e.Key, err)
		}
	}

	if r.quota > 0 {
		var used int64
		if err := tx.QueryRowContext(ctx, usageQuery).Scan(&used); err != nil {
			return fmt.Errorf("failed to measure usage: %w", err)
		}
		if used > r.quota {
			return repository.ErrQuotaExceeded
		}
	}

	if err := tx.Commit(); err != nil {
		if isDiskFull(err) {
			return repository.ErrQuotaExceeded
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Keys lists every stored key in sorted order
func (r *KVRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating key rows: %w", err)
	}
	return keys, nil
}

// Usage reports the bytes stored and the configured quota
func (r *KVRepository) Usage(ctx context.Context) (int64, int64, error) {
	var used int64
	if err := r.db.QueryRowContext(ctx, usageQuery).Scan(&used); err != nil {
		return 0, 0, fmt.Errorf("failed to measure usage: %w", err)
	}
	return used, r.quota, nil
}
