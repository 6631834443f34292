package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nikolayk812/vespa-storefront/internal/db"
	"github.com/nikolayk812/vespa-storefront/internal/port"
)

type sqliteRepository struct {
	db *db.DB
}

func NewSQLite(database *db.DB) port.SnapshotStore {
	return &sqliteRepository{db: database}
}

func (r *sqliteRepository) Load(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return nil, false, err
	}

	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE owner_id = ? AND key = ?`,
		ownerID, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("db.QueryRowContext: %w", err)
	}

	return []byte(payload), true, nil
}

func (r *sqliteRepository) Save(ctx context.Context, ownerID, key string, payload []byte) error {
	if err := validatePayload(ownerID, key, payload); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (owner_id, key, payload, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (owner_id, key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at`,
		ownerID, key, string(payload),
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE owner_id = ? AND key = ?`,
		ownerID, key,
	)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("res.RowsAffected: %w", err)
	}

	return n > 0, nil
}
