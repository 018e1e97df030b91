package provider

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
)

// CustomerInput is the body shape for customer creation.
type CustomerInput struct {
	Email    string            `json:"email,omitempty" validate:"omitempty,email"`
	Name     string            `json:"name,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SubscriptionItemInput is one priced line of a subscription.
type SubscriptionItemInput struct {
	Price    string `json:"price" validate:"required"`
	Quantity int64  `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// SubscriptionInput is the body shape for subscription creation.
type SubscriptionInput struct {
	Customer string                  `json:"customer" validate:"required"`
	Items    []SubscriptionItemInput `json:"items" validate:"required,min=1,dive"`
	Metadata map[string]string       `json:"metadata,omitempty"`
}

// ChargeInput is the body shape for charge creation. Amount is in the
// currency's smallest unit.
type ChargeInput struct {
	Amount      int64             `json:"amount" validate:"required,gt=0"`
	Currency    string            `json:"currency" validate:"required,len=3"`
	Customer    string            `json:"customer,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InvoiceInput is the body shape for invoice creation.
type InvoiceInput struct {
	Customer    string            `json:"customer,omitempty"`
	Description string            `json:"description,omitempty"`
	AutoAdvance bool              `json:"auto_advance,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ProductInput is the body shape for product creation.
type ProductInput struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PriceRecurringInput selects a billing interval for recurring prices.
type PriceRecurringInput struct {
	Interval string `json:"interval" validate:"required,oneof=day week month year"`
}

// PriceInput is the body shape for price creation.
type PriceInput struct {
	Product    string               `json:"product" validate:"required"`
	UnitAmount int64                `json:"unit_amount" validate:"required,gt=0"`
	Currency   string               `json:"currency" validate:"required,len=3"`
	Recurring  *PriceRecurringInput `json:"recurring,omitempty"`
	Metadata   map[string]string    `json:"metadata,omitempty"`
}

// Gateway is the upstream capability: named operations that succeed with a
// typed value or fail with a typed *Error. Implementations own the mapping
// from SDK failures to the closed error-kind set.
type Gateway interface {
	CreateCustomer(ctx context.Context, in CustomerInput) (*stripe.Customer, error)
	GetCustomer(ctx context.Context, id string) (*stripe.Customer, error)

	CreateSubscription(ctx context.Context, in SubscriptionInput) (*stripe.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error)

	CreateCharge(ctx context.Context, in ChargeInput) (*stripe.Charge, error)
	GetCharge(ctx context.Context, id string) (*stripe.Charge, error)

	CreateInvoice(ctx context.Context, in InvoiceInput) (*stripe.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*stripe.Invoice, error)

	CreateProduct(ctx context.Context, in ProductInput) (*stripe.Product, error)
	GetProduct(ctx context.Context, id string) (*stripe.Product, error)

	CreatePrice(ctx context.Context, in PriceInput) (*stripe.Price, error)
	GetPrice(ctx context.Context, id string) (*stripe.Price, error)
}
