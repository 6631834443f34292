package checkout

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikolayk812/vespa-storefront/internal/cart"
	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/sirupsen/logrus"
)

var ErrEmptyCart = errors.New("cart is empty")

type Form struct {
	FirstName  string `json:"firstName" validate:"min=2"`
	LastName   string `json:"lastName" validate:"min=2"`
	Email      string `json:"email" validate:"email"`
	Phone      string `json:"phone" validate:"min=8"`
	Address    string `json:"address" validate:"min=5"`
	City       string `json:"city" validate:"min=2"`
	PostalCode string `json:"postalCode" validate:"min=4"`
	Notes      string `json:"notes"`
}

// FieldError is a user-facing message for one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout form: %d field(s)", len(e.Fields))
}

var messages = map[string]string{
	"firstName":  "Le prénom doit contenir au moins 2 caractères.",
	"lastName":   "Le nom doit contenir au moins 2 caractères.",
	"email":      "Email invalide.",
	"phone":      "Le numéro doit contenir au moins 8 caractères.",
	"address":    "L'adresse doit contenir au moins 5 caractères.",
	"city":       "La ville doit contenir au moins 2 caractères.",
	"postalCode": "Code postal invalide.",
}

type Service struct {
	validate *validator.Validate
	delay    time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

// NewService simulates order processing by waiting delay before confirming.
func NewService(delay time.Duration, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return &Service{
		validate: validate,
		delay:    delay,
		log:      log,
		now:      time.Now,
		wait:     wait,
	}
}

func (s *Service) Validate(form Form) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	result := &ValidationError{}
	for _, fe := range verrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Message: messages[fe.Field()],
		})
	}

	return result
}

// Submit places the order for the current cart content. Once the simulated
// call completes the ordered quantities are taken out of the cart; anything
// added meanwhile stays.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, form Form) (domain.Order, error) {
	snapshot := c.Snapshot()
	if len(snapshot.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	if err := s.Validate(form); err != nil {
		return domain.Order{}, err
	}

	if s.delay > 0 {
		if err := s.wait(ctx, s.delay); err != nil {
			return domain.Order{}, fmt.Errorf("submit order: %w", err)
		}
	}

	order := domain.Order{
		ID:       uuid.New(),
		OwnerID:  snapshot.OwnerID,
		Customer: domain.Customer(form),
		Items:    snapshot.Items,
		Total:    snapshot.Total(),
		PlacedAt: s.now().UTC(),
	}

	// only what was ordered leaves the cart
	if err := c.Subtract(ctx, order.Items); err != nil {
		return domain.Order{}, fmt.Errorf("c.Subtract: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"owner_id": order.OwnerID,
		"items":    snapshot.ItemCount(),
		"total":    order.Total.String(),
	}).Info("order placed")

	return order, nil
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
