// Package checkout drives the order submission flow:
// authenticated with a non-empty cart, then a valid form, then an order
// in the log, then a cleared cart. Any failure halts at its step.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ministore/internal/account"
	"ministore/internal/cart"
	"ministore/internal/models"
	"ministore/internal/order"
	"ministore/internal/pricing"
	"ministore/internal/util"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrNotAuthenticated halts checkout when no session is active.
	ErrNotAuthenticated = errors.New("checkout requires an active session")

	// ErrEmptyCart halts checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
)

// Form is the combined shipping and payment form. Card fields are only
// format-checked; nothing is charged.
type Form struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Address string `validate:"required"`
	City    string `validate:"required"`
	ZipCode string `validate:"required"`
	Country string

	CardNumber string `validate:"required,len=16,numeric"`
	ExpiryDate string `validate:"required"`
	CVV        string `validate:"required,len=3,numeric"`
	CardName   string `validate:"required"`
}

// ValidationError carries per-field messages for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout form: %d field(s)", len(e.Fields))
}

// Service wires the cart, accounts and orders into the checkout flow.
type Service struct {
	cart     *cart.Store
	accounts *account.Service
	orders   *order.Service
	policy   pricing.Policy
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(c *cart.Store, accounts *account.Service, orders *order.Service, policy pricing.Policy) *Service {
	return &Service{
		cart:     c,
		accounts: accounts,
		orders:   orders,
		policy:   policy,
		validate: validator.New(),
		logger:   util.GetLogger(),
	}
}

// Quote prices the current cart under the service's policy.
func (s *Service) Quote() pricing.Quote {
	return s.policy.Quote(s.cart.Subtotal())
}

// Submit runs the checkout flow and returns the stored order. The cart
// is cleared only after the order is in the log; a storage error while
// writing the order leaves the cart untouched.
func (s *Service) Submit(ctx context.Context, form Form) (*models.Order, error) {
	user := s.accounts.CurrentUser(ctx)
	if user == nil {
		util.CheckoutFailedTotal.WithLabelValues("not_authenticated").Inc()
		return nil, ErrNotAuthenticated
	}

	items := s.cart.Items()
	if len(items) == 0 {
		util.CheckoutFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	if err := s.ValidateForm(form); err != nil {
		util.CheckoutFailedTotal.WithLabelValues("invalid_form").Inc()
		return nil, err
	}

	quote := s.Quote()
	draft := models.Order{
		UserID: user.ID,
		Items:  items,
		Total:  quote.Total,
		Status: models.OrderStatusProcessing,
		ShippingAddress: models.ShippingAddress{
			Name:    form.Name,
			Address: form.Address,
			City:    form.City,
			ZipCode: form.ZipCode,
			Country: form.Country,
		},
	}

	placed, err := s.orders.Create(ctx, draft)
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.cart.Clear()
	if err := s.cart.Flush(ctx); err != nil {
		// The order is already placed; a stale cart snapshot is the
		// lesser problem.
		s.logger.Error("Failed to persist cleared cart", zap.Error(err))
	}

	s.logger.Info("Checkout completed",
		zap.String("order_id", placed.ID),
		zap.String("total", placed.Total.StringFixed(2)))
	return placed, nil
}

// ValidateForm collects per-field messages instead of failing on the
// first problem. Card number spaces are tolerated, matching how people
// type them.
func (s *Service) ValidateForm(form Form) error {
	form.CardNumber = strings.ReplaceAll(form.CardNumber, " ", "")

	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("form validation failed: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "Name is required"
		}
	case "Email":
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Email is invalid"
	case "Address":
		return "Address is required"
	case "City":
		return "City is required"
	case "ZipCode":
		return "ZIP code is required"
	case "CardNumber":
		if fe.Tag() == "required" {
			return "Card number is required"
		}
		return "Card number must be 16 digits"
	case "ExpiryDate":
		return "Expiry date is required"
	case "CVV":
		if fe.Tag() == "required" {
			return "CVV is required"
		}
		return "CVV must be 3 digits"
	case "CardName":
		return "Cardholder name is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
