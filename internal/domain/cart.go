package domain

import (
	"encoding/json"
	"fmt"
)

type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

func (i *CartItem) UnmarshalJSON(data []byte) error {
	type plain CartItem

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Slug == "" {
		return fmt.Errorf("cart item slug is empty")
	}
	if p.Quantity < 1 {
		return fmt.Errorf("cart item[%s] quantity %d is not positive", p.Slug, p.Quantity)
	}

	*i = CartItem(p)
	return nil
}

type Cart struct {
	OwnerID string
	Items   []CartItem
}

func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) Total() Money {
	total := NewMoney(0)
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
