package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes,omitempty"`
}

type Order struct {
	ID       uuid.UUID  `json:"id"`
	OwnerID  string     `json:"ownerId"`
	Customer Customer   `json:"customer"`
	Items    []CartItem `json:"items"`
	Total    Money      `json:"total"`

	PlacedAt time.Time `json:"placedAt"`
}
