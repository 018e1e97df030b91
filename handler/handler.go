package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/infra/store"
	"github.com/payfront/payfront/provider"
)

// Handler exposes the provider's resources as thin pass-through routes.
type Handler struct {
	facade   *provider.Facade
	validate *validator.Validate
	events   *store.EventStore // nil disables webhook dedup
}

// New creates a handler. The event store may be nil.
func New(facade *provider.Facade, validate *validator.Validate, events *store.EventStore) *Handler {
	return &Handler{
		facade:   facade,
		validate: validate,
		events:   events,
	}
}

// Routes returns the gateway route table, in match order.
func (h *Handler) Routes() []gateway.Route {
	return []gateway.Route{
		{Method: http.MethodGet, Pattern: "/", Handler: h.Discovery},

		{Method: http.MethodPost, Pattern: "/customers", Handler: h.CreateCustomer},
		{Method: http.MethodGet, Pattern: "/customers/:id", Handler: h.GetCustomer},

		{Method: http.MethodPost, Pattern: "/subscriptions", Handler: h.CreateSubscription},
		{Method: http.MethodGet, Pattern: "/subscriptions/:id", Handler: h.GetSubscription},
		{Method: http.MethodDelete, Pattern: "/subscriptions/:id", Handler: h.CancelSubscription},

		{Method: http.MethodPost, Pattern: "/charges", Handler: h.CreateCharge},
		{Method: http.MethodGet, Pattern: "/charges/:id", Handler: h.GetCharge},

		{Method: http.MethodPost, Pattern: "/invoices", Handler: h.CreateInvoice},
		{Method: http.MethodGet, Pattern: "/invoices/:id", Handler: h.GetInvoice},

		{Method: http.MethodPost, Pattern: "/products", Handler: h.CreateProduct},
		{Method: http.MethodGet, Pattern: "/products/:id", Handler: h.GetProduct},

		{Method: http.MethodPost, Pattern: "/prices", Handler: h.CreatePrice},
		{Method: http.MethodGet, Pattern: "/prices/:id", Handler: h.GetPrice},

		{Method: http.MethodPost, Pattern: "/webhooks", Handler: h.HandleWebhook},
	}
}

// decodeBody parses a JSON request body into dst and validates it. Decode
// failures are wrapped with gateway.ErrInvalidBody so the dispatcher answers
// the fixed 400; validation failures become typed validation errors.
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", gateway.ErrInvalidBody, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return provider.NewError(provider.KindValidation, "Validation error: "+err.Error())
	}
	return nil
}

// gw resolves the capability singleton, constructing it on first use.
func (h *Handler) gw() (provider.Gateway, error) {
	return h.facade.Gateway()
}
