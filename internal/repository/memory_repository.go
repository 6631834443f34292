package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/nikolayk812/vespa-storefront/internal/port"
)

type memoryRepository struct {
	mu        sync.RWMutex
	snapshots map[[2]string][]byte
}

func NewMemory() port.SnapshotStore {
	return &memoryRepository{
		snapshots: make(map[[2]string][]byte),
	}
}

func (r *memoryRepository) Load(_ context.Context, ownerID, key string) ([]byte, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.snapshots[[2]string{ownerID, key}]
	return slices.Clone(payload), ok, nil
}

func (r *memoryRepository) Save(_ context.Context, ownerID, key string, payload []byte) error {
	if err := validatePayload(ownerID, key, payload); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[[2]string{ownerID, key}] = slices.Clone(payload)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, ownerID, key string) (bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := [2]string{ownerID, key}
	_, ok := r.snapshots[k]
	delete(r.snapshots, k)
	return ok, nil
}
