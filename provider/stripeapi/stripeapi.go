// Package stripeapi implements the provider gateway over the official
// Stripe client.
package stripeapi

import (
	"context"
	"errors"
	"net/http"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/payfront/payfront/provider"
)

// Client wraps the Stripe SDK client behind the provider.Gateway interface.
type Client struct {
	api *client.API
}

// New constructs a gateway for the given secret key.
func New(secretKey string) *Client {
	return &Client{api: client.New(secretKey, nil)}
}

// NewWithAPI constructs a gateway over an existing SDK client. Used by tests
// to point at a stub backend.
func NewWithAPI(api *client.API) *Client {
	return &Client{api: api}
}

func (c *Client) CreateCustomer(ctx context.Context, in provider.CustomerInput) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx, Metadata: in.Metadata},
	}
	if in.Email != "" {
		params.Email = stripe.String(in.Email)
	}
	if in.Name != "" {
		params.Name = stripe.String(in.Name)
	}

	customer, err := c.api.Customers.New(params)
	return customer, mapError(err)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	customer, err := c.api.Customers.Get(id, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	return customer, mapError(err)
}

func (c *Client) CreateSubscription(ctx context.Context, in provider.SubscriptionInput) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx, Metadata: in.Metadata},
		Customer: stripe.String(in.Customer),
	}
	for _, item := range in.Items {
		itemParams := &stripe.SubscriptionItemsParams{Price: stripe.String(item.Price)}
		if item.Quantity > 0 {
			itemParams.Quantity = stripe.Int64(item.Quantity)
		}
		params.Items = append(params.Items, itemParams)
	}

	subscription, err := c.api.Subscriptions.New(params)
	return subscription, mapError(err)
}

func (c *Client) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	subscription, err := c.api.Subscriptions.Get(id, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	})
	return subscription, mapError(err)
}

func (c *Client) CancelSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	subscription, err := c.api.Subscriptions.Cancel(id, &stripe.SubscriptionCancelParams{
		Params: stripe.Params{Context: ctx},
	})
	return subscription, mapError(err)
}

func (c *Client) CreateCharge(ctx context.Context, in provider.ChargeInput) (*stripe.Charge, error) {
	params := &stripe.ChargeParams{
		Params:   stripe.Params{Context: ctx, Metadata: in.Metadata},
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(in.Currency),
	}
	if in.Customer != "" {
		params.Customer = stripe.String(in.Customer)
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}

	charge, err := c.api.Charges.New(params)
	return charge, mapError(err)
}

func (c *Client) GetCharge(ctx context.Context, id string) (*stripe.Charge, error) {
	charge, err := c.api.Charges.Get(id, &stripe.ChargeParams{
		Params: stripe.Params{Context: ctx},
	})
	return charge, mapError(err)
}

func (c *Client) CreateInvoice(ctx context.Context, in provider.InvoiceInput) (*stripe.Invoice, error) {
	params := &stripe.InvoiceParams{
		Params: stripe.Params{Context: ctx, Metadata: in.Metadata},
	}
	if in.Customer != "" {
		params.Customer = stripe.String(in.Customer)
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}
	if in.AutoAdvance {
		params.AutoAdvance = stripe.Bool(true)
	}

	invoice, err := c.api.Invoices.New(params)
	return invoice, mapError(err)
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*stripe.Invoice, error) {
	invoice, err := c.api.Invoices.Get(id, &stripe.InvoiceParams{
		Params: stripe.Params{Context: ctx},
	})
	return invoice, mapError(err)
}

func (c *Client) CreateProduct(ctx context.Context, in provider.ProductInput) (*stripe.Product, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx, Metadata: in.Metadata},
		Name:   stripe.String(in.Name),
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}

	product, err := c.api.Products.New(params)
	return product, mapError(err)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*stripe.Product, error) {
	product, err := c.api.Products.Get(id, &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
	})
	return product, mapError(err)
}

func (c *Client) CreatePrice(ctx context.Context, in provider.PriceInput) (*stripe.Price, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx, Metadata: in.Metadata},
		Product:    stripe.String(in.Product),
		UnitAmount: stripe.Int64(in.UnitAmount),
		Currency:   stripe.String(in.Currency),
	}
	if in.Recurring != nil {
		params.Recurring = &stripe.PriceRecurringParams{
			Interval: stripe.String(in.Recurring.Interval),
		}
	}

	price, err := c.api.Prices.New(params)
	return price, mapError(err)
}

func (c *Client) GetPrice(ctx context.Context, id string) (*stripe.Price, error) {
	price, err := c.api.Prices.Get(id, &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
	})
	return price, mapError(err)
}

// mapError converts an SDK failure into the closed provider error-kind set.
// Statuses take precedence over error types because Stripe reports
// authentication and rate-limit failures as generic api_error types.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return provider.WrapError(provider.KindUnknown, err.Error(), err)
	}

	message := stripeErr.Msg
	if message == "" {
		message = err.Error()
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
		return provider.WrapError(provider.KindAuthentication, message, err)
	case stripeErr.HTTPStatusCode == http.StatusTooManyRequests:
		return provider.WrapError(provider.KindRateLimit, message, err)
	case stripeErr.Type == stripe.ErrorTypeInvalidRequest, stripeErr.Type == stripe.ErrorTypeCard:
		return provider.WrapError(provider.KindValidation, message, err)
	default:
		return provider.WrapError(provider.KindUnknown, message, err)
	}
}
