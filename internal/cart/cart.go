package cart

import (
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/state"
	"github.com/sirupsen/logrus"
)

// Cart keeps at most one item per slug, each with a quantity of at least 1.
type Cart struct {
	ownerID string
	items   *state.Container[domain.CartItem]
}

func New(store port.SnapshotStore, ownerID string, log logrus.FieldLogger) *Cart {
	return &Cart{
		ownerID: ownerID,
		items:   state.NewContainer(store, ownerID, port.CartKey, log, validateItems),
	}
}

func (c *Cart) Load(ctx context.Context) error {
	return c.items.Load(ctx)
}

func (c *Cart) Phase() state.Phase {
	return c.items.Phase()
}

// AddItem increments the quantity of an existing item or appends a new one.
func (c *Cart) AddItem(ctx context.Context, product domain.Product) error {
	return c.AddItemWithColor(ctx, product, "")
}

// AddItemWithColor is AddItem where a newly appended item remembers the
// customizer color. An existing item keeps its color.
func (c *Cart) AddItemWithColor(ctx context.Context, product domain.Product, color string) error {
	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		if i := indexOf(items, product.Slug); i >= 0 {
			items[i].Quantity++
			return items, true
		}
		return append(items, domain.CartItem{Product: product, Quantity: 1, SelectedColor: color}), true
	})
}

// Subtract takes the given quantities out of the cart, removing items that
// drop to zero. Items and quantities not listed are kept.
func (c *Cart) Subtract(ctx context.Context, ordered []domain.CartItem) error {
	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		changed := false
		for _, o := range ordered {
			i := indexOf(items, o.Slug)
			if i < 0 {
				continue
			}
			changed = true
			if items[i].Quantity <= o.Quantity {
				items = slices.Delete(items, i, i+1)
				continue
			}
			items[i].Quantity -= o.Quantity
		}
		return items, changed
	})
}

func (c *Cart) RemoveItem(ctx context.Context, slug string) error {
	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		i := indexOf(items, slug)
		if i < 0 {
			return items, false
		}
		return slices.Delete(items, i, i+1), true
	})
}

// UpdateQuantity sets the quantity exactly; a non-positive quantity removes the item.
func (c *Cart) UpdateQuantity(ctx context.Context, slug string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, slug)
	}

	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		i := indexOf(items, slug)
		if i < 0 || items[i].Quantity == quantity {
			return items, false
		}
		items[i].Quantity = quantity
		return items, true
	})
}

func (c *Cart) SetSelectedColor(ctx context.Context, slug, color string) error {
	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		i := indexOf(items, slug)
		if i < 0 || items[i].SelectedColor == color {
			return items, false
		}
		items[i].SelectedColor = color
		return items, true
	})
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.items.Mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		return nil, true
	})
}

func (c *Cart) Items() []domain.CartItem {
	return c.items.Items()
}

func (c *Cart) Snapshot() domain.Cart {
	return domain.Cart{OwnerID: c.ownerID, Items: c.items.Items()}
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	var n int
	c.items.View(func(items []domain.CartItem) {
		n = domain.Cart{Items: items}.ItemCount()
	})
	return n
}

func (c *Cart) Total() domain.Money {
	var total domain.Money
	c.items.View(func(items []domain.CartItem) {
		total = domain.Cart{Items: items}.Total()
	})
	return total
}

// FormattedTotal renders the total as "32 100 TND".
func (c *Cart) FormattedTotal() string {
	return c.Total().String()
}

func indexOf(items []domain.CartItem, slug string) int {
	return slices.IndexFunc(items, func(item domain.CartItem) bool {
		return item.Slug == slug
	})
}

func validateItems(items []domain.CartItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.Slug]; ok {
			return fmt.Errorf("cart item[%s] is duplicated", item.Slug)
		}
		seen[item.Slug] = struct{}{}
	}
	return nil
}
