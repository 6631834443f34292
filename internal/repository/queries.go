package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	db DBTX
}

func newQueries(db DBTX) *queries {
	return &queries{db: db}
}

const getSnapshot = `SELECT payload FROM snapshots WHERE owner_id = $1 AND key = $2`

// GetSnapshot reports pgx.ErrNoRows as a miss.
func (q *queries) GetSnapshot(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	var payload []byte

	err := q.db.QueryRow(ctx, getSnapshot, ownerID, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return payload, true, nil
}

const upsertSnapshot = `
INSERT INTO snapshots (owner_id, key, payload, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (owner_id, key) DO UPDATE
SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

func (q *queries) UpsertSnapshot(ctx context.Context, ownerID, key string, payload []byte) error {
	_, err := q.db.Exec(ctx, upsertSnapshot, ownerID, key, payload)
	return err
}

const deleteSnapshot = `DELETE FROM snapshots WHERE owner_id = $1 AND key = $2`

func (q *queries) DeleteSnapshot(ctx context.Context, ownerID, key string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteSnapshot, ownerID, key)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
