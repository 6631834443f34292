// Package session hands out the cart and wishlist of each visitor.
package session

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nikolayk812/vespa-storefront/internal/cart"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/wishlist"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxSessions bounds the number of visitors kept in memory.
const DefaultMaxSessions = 10_000

type Session struct {
	OwnerID  string
	Cart     *cart.Cart
	Wishlist *wishlist.Wishlist
}

type Option func(*Registry)

// WithMaxSessions sets how many visitors stay cached before the least
// recently used one is evicted. Evicted visitors are rehydrated from the
// store on their next request.
func WithMaxSessions(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxSessions = n
		}
	}
}

// Registry creates sessions lazily and rehydrates them from the store.
type Registry struct {
	store       port.SnapshotStore
	log         logrus.FieldLogger
	maxSessions int

	sessions *lru.Cache[string, *Session]
	loads    singleflight.Group

	notesMu sync.Mutex
	notes   map[string]wishlist.Notification
}

func NewRegistry(store port.SnapshotStore, log logrus.FieldLogger, opts ...Option) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &Registry{
		store:       store,
		log:         log,
		maxSessions: DefaultMaxSessions,
		notes:       make(map[string]wishlist.Notification),
	}
	for _, opt := range opts {
		opt(r)
	}

	sessions, err := lru.NewWithEvict(r.maxSessions, r.evicted)
	if err != nil {
		// size is always positive here
		panic(err)
	}
	r.sessions = sessions

	return r
}

// Get returns the ready session of the owner, loading it from the store on
// first use. Concurrent first requests of one owner share a single load.
func (r *Registry) Get(ctx context.Context, ownerID string) (*Session, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	if s, ok := r.sessions.Get(ownerID); ok {
		return s, nil
	}

	// the shared load outlives the caller that started it
	loadCtx := context.WithoutCancel(ctx)

	v, err, _ := r.loads.Do(ownerID, func() (any, error) {
		if s, ok := r.sessions.Get(ownerID); ok {
			return s, nil
		}

		s, err := r.load(loadCtx, ownerID)
		if err != nil {
			return nil, err
		}

		r.sessions.Add(ownerID, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Session), nil
}

// Len reports how many sessions are cached.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

func (r *Registry) load(ctx context.Context, ownerID string) (*Session, error) {
	log := r.log.WithField("owner_id", ownerID)
	s := &Session{
		OwnerID:  ownerID,
		Cart:     cart.New(r.store, ownerID, log),
		Wishlist: wishlist.New(r.store, ownerID, wishlist.NotifierFunc(r.notify), log),
	}

	if err := s.Cart.Load(ctx); err != nil {
		return nil, fmt.Errorf("cart.Load: %w", err)
	}
	if err := s.Wishlist.Load(ctx); err != nil {
		return nil, fmt.Errorf("wishlist.Load: %w", err)
	}

	return s, nil
}

func (r *Registry) evicted(ownerID string, _ *Session) {
	r.log.WithField("owner_id", ownerID).Debug("session evicted")

	r.notesMu.Lock()
	defer r.notesMu.Unlock()
	delete(r.notes, ownerID)
}

// TakeNotification returns and forgets the latest wishlist notification of the owner.
func (r *Registry) TakeNotification(ownerID string) (wishlist.Notification, bool) {
	r.notesMu.Lock()
	defer r.notesMu.Unlock()

	n, ok := r.notes[ownerID]
	delete(r.notes, ownerID)
	return n, ok
}

func (r *Registry) notify(ownerID string, n wishlist.Notification) {
	r.log.WithFields(logrus.Fields{
		"owner_id": ownerID,
		"title":    n.Title,
	}).Info(n.Description)

	r.notesMu.Lock()
	defer r.notesMu.Unlock()
	r.notes[ownerID] = n
}
