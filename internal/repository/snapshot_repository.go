package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vespa-storefront/internal/port"
)

type snapshotRepository struct {
	q *queries
}

// NewSnapshot stores snapshots in Postgres. Each call is a single
// statement and runs in its own implicit transaction.
func NewSnapshot(pool *pgxpool.Pool) port.SnapshotStore {
	return &snapshotRepository{q: newQueries(pool)}
}

// NewSnapshotWithTx runs every call inside a caller-owned transaction.
func NewSnapshotWithTx(tx pgx.Tx) port.SnapshotStore {
	return &snapshotRepository{q: newQueries(tx)}
}

func (r *snapshotRepository) Load(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return nil, false, err
	}

	payload, found, err := r.q.GetSnapshot(ctx, ownerID, key)
	if err != nil {
		return nil, false, fmt.Errorf("q.GetSnapshot: %w", err)
	}

	return payload, found, nil
}

func (r *snapshotRepository) Save(ctx context.Context, ownerID, key string, payload []byte) error {
	if err := validatePayload(ownerID, key, payload); err != nil {
		return err
	}

	if err := r.q.UpsertSnapshot(ctx, ownerID, key, payload); err != nil {
		return fmt.Errorf("q.UpsertSnapshot: %w", err)
	}

	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return false, err
	}

	rowsAffected, err := r.q.DeleteSnapshot(ctx, ownerID, key)
	if err != nil {
		return false, fmt.Errorf("q.DeleteSnapshot: %w", err)
	}

	return rowsAffected > 0, nil
}

func validateKey(ownerID, key string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	return nil
}

func validatePayload(ownerID, key string, payload []byte) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}
	if !json.Valid(payload) {
		return fmt.Errorf("payload is not valid JSON")
	}
	return nil
}
