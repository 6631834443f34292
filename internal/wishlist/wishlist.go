package wishlist

import (
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/state"
	"github.com/sirupsen/logrus"
)

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier surfaces wishlist changes to the visitor.
type Notifier interface {
	Notify(ownerID string, n Notification)
}

type NotifierFunc func(ownerID string, n Notification)

func (f NotifierFunc) Notify(ownerID string, n Notification) {
	f(ownerID, n)
}

func AddedNotification(p domain.Product) Notification {
	return Notification{
		Title:       "Ajouté à la liste de souhaits",
		Description: fmt.Sprintf("%s a été ajouté à vos favoris.", p.Name),
	}
}

func RemovedNotification() Notification {
	return Notification{
		Title:       "Retiré de la liste de souhaits",
		Description: "Produit retiré de vos favoris.",
	}
}

// Wishlist is a set of products keyed by slug.
type Wishlist struct {
	ownerID  string
	items    *state.Container[domain.Product]
	notifier Notifier
}

func New(store port.SnapshotStore, ownerID string, notifier Notifier, log logrus.FieldLogger) *Wishlist {
	if notifier == nil {
		notifier = NotifierFunc(func(string, Notification) {})
	}

	return &Wishlist{
		ownerID:  ownerID,
		items:    state.NewContainer(store, ownerID, port.WishlistKey, log, validateItems),
		notifier: notifier,
	}
}

func (w *Wishlist) Load(ctx context.Context) error {
	return w.items.Load(ctx)
}

func (w *Wishlist) Phase() state.Phase {
	return w.items.Phase()
}

// Add is a no-op for a product already present, the visitor is notified either way.
func (w *Wishlist) Add(ctx context.Context, product domain.Product) error {
	err := w.items.Mutate(ctx, func(items []domain.Product) ([]domain.Product, bool) {
		if indexOf(items, product.Slug) >= 0 {
			return items, false
		}
		return append(items, product), true
	})
	if err != nil {
		return err
	}

	w.notifier.Notify(w.ownerID, AddedNotification(product))
	return nil
}

func (w *Wishlist) Remove(ctx context.Context, slug string) error {
	err := w.items.Mutate(ctx, func(items []domain.Product) ([]domain.Product, bool) {
		i := indexOf(items, slug)
		if i < 0 {
			return items, false
		}
		return slices.Delete(items, i, i+1), true
	})
	if err != nil {
		return err
	}

	w.notifier.Notify(w.ownerID, RemovedNotification())
	return nil
}

// Toggle adds an absent product or removes a present one and reports
// whether the product is in the wishlist afterwards.
func (w *Wishlist) Toggle(ctx context.Context, product domain.Product) (bool, error) {
	var added bool

	err := w.items.Mutate(ctx, func(items []domain.Product) ([]domain.Product, bool) {
		if i := indexOf(items, product.Slug); i >= 0 {
			return slices.Delete(items, i, i+1), true
		}
		added = true
		return append(items, product), true
	})
	if err != nil {
		return false, err
	}

	if added {
		w.notifier.Notify(w.ownerID, AddedNotification(product))
	} else {
		w.notifier.Notify(w.ownerID, RemovedNotification())
	}

	return added, nil
}

func (w *Wishlist) Contains(slug string) bool {
	var found bool
	w.items.View(func(items []domain.Product) {
		found = indexOf(items, slug) >= 0
	})
	return found
}

func (w *Wishlist) Count() int {
	var n int
	w.items.View(func(items []domain.Product) {
		n = len(items)
	})
	return n
}

func (w *Wishlist) Clear(ctx context.Context) error {
	return w.items.Mutate(ctx, func([]domain.Product) ([]domain.Product, bool) {
		return nil, true
	})
}

func (w *Wishlist) Items() []domain.Product {
	return w.items.Items()
}

func indexOf(items []domain.Product, slug string) int {
	return slices.IndexFunc(items, func(p domain.Product) bool {
		return p.Slug == slug
	})
}

func validateItems(items []domain.Product) error {
	seen := make(map[string]struct{}, len(items))
	for _, p := range items {
		if p.Slug == "" {
			return fmt.Errorf("wishlist product slug is empty")
		}
		if _, ok := seen[p.Slug]; ok {
			return fmt.Errorf("wishlist product[%s] is duplicated", p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}
