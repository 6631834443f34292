// Package state holds per-visitor lists mirrored to a snapshot store.
//
// A container starts Uninitialized and becomes Ready after Load. Loaded is
// the step between decoding and validating the snapshot; it is held only
// inside Load under the container lock, so callers observe Uninitialized or
// Ready. Mutations are only accepted, and therefore only persisted, in the
// Ready phase, so an empty list can never overwrite a snapshot that has not
// been read yet.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/sirupsen/logrus"
)

var ErrNotReady = errors.New("state is not loaded")

type Phase int

const (
	Uninitialized Phase = iota
	// Loaded is internal to Load and never returned by Phase.
	Loaded
	Ready
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Container[T any] struct {
	mu sync.Mutex

	store   port.SnapshotStore
	ownerID string
	key     string
	log     logrus.FieldLogger

	// validate rejects decoded snapshots that break list invariants.
	validate func([]T) error

	phase Phase
	items []T
}

func NewContainer[T any](store port.SnapshotStore, ownerID, key string, log logrus.FieldLogger, validate func([]T) error) *Container[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Container[T]{
		store:    store,
		ownerID:  ownerID,
		key:      key,
		validate: validate,
		log: log.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"key":      key,
		}),
	}
}

// Load rehydrates the container once. A corrupt snapshot is logged and
// replaced by an empty list; a store failure is returned and the
// container stays Uninitialized so Load can be retried.
func (c *Container[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Uninitialized {
		return nil
	}

	payload, found, err := c.store.Load(ctx, c.ownerID, c.key)
	if err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	var items []T
	if found {
		if err := json.Unmarshal(payload, &items); err != nil {
			c.log.WithError(err).Warn("discarding corrupt snapshot")
			items = nil
		}
	}
	c.items = items
	c.phase = Loaded

	if c.validate != nil {
		if err := c.validate(c.items); err != nil {
			c.log.WithError(err).Warn("discarding invalid snapshot")
			c.items = nil
		}
	}
	c.phase = Ready

	c.log.WithField("items", len(c.items)).Debug("snapshot loaded")

	return nil
}

func (c *Container[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase
}

// Items returns a copy of the current list.
func (c *Container[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

// View runs fn against the current list without copying it.
// fn must not retain or modify the slice.
func (c *Container[T]) View(fn func(items []T)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(c.items)
}

// Mutate applies fn atomically. When fn reports a change the new list is
// kept and persisted. A failed save is returned but the in-memory change stays.
func (c *Container[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Ready {
		return ErrNotReady
	}

	items, changed := fn(slices.Clone(c.items))
	if !changed {
		return nil
	}
	c.items = items

	return c.persist(ctx)
}

func (c *Container[T]) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.store.Save(ctx, c.ownerID, c.key, payload); err != nil {
		c.log.WithError(err).Error("failed to save snapshot")
		return fmt.Errorf("store.Save: %w", err)
	}

	return nil
}
