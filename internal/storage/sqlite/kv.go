package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/bondtrack/pkg/log"
)

// KVRepo implements core.KV over a sqlite table. It is the durable stand-in
// for a browser-local facility when the tracker runs outside a browser host.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

func (r *KVRepo) Get(ctx context.Context, key string) (string, bool) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.FromCtx(ctx).Debug().Err(err).Str("key", key).Msg("kv read failed")
		}
		return "", false
	}
	return value, true
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert kv entry: %w", err)
	}
	return nil
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv entry: %w", err)
	}
	return nil
}

// Keys lists stored keys with the given prefix, oldest first by key order.
func (r *KVRepo) Keys(ctx context.Context, prefix string) []string {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key`, prefix)
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("kv key listing failed")
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			log.FromCtx(ctx).Debug().Err(err).Msg("kv key scan failed")
			return keys
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("kv key listing failed")
	}
	return keys
}
