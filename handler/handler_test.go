package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/infra/store"
	"github.com/payfront/payfront/provider"
)

// stubGateway returns canned values so handler tests run without the
// upstream provider.
type stubGateway struct {
	customer     *stripe.Customer
	subscription *stripe.Subscription
	charge       *stripe.Charge
	invoice      *stripe.Invoice
	product      *stripe.Product
	price        *stripe.Price
	err          error

	lastCustomerInput provider.CustomerInput
	lastChargeInput   provider.ChargeInput
	lastID            string
}

func (s *stubGateway) CreateCustomer(_ context.Context, in provider.CustomerInput) (*stripe.Customer, error) {
	s.lastCustomerInput = in
	return s.customer, s.err
}

func (s *stubGateway) GetCustomer(_ context.Context, id string) (*stripe.Customer, error) {
	s.lastID = id
	return s.customer, s.err
}

func (s *stubGateway) CreateSubscription(_ context.Context, _ provider.SubscriptionInput) (*stripe.Subscription, error) {
	return s.subscription, s.err
}

func (s *stubGateway) GetSubscription(_ context.Context, id string) (*stripe.Subscription, error) {
	s.lastID = id
	return s.subscription, s.err
}

func (s *stubGateway) CancelSubscription(_ context.Context, id string) (*stripe.Subscription, error) {
	s.lastID = id
	return s.subscription, s.err
}

func (s *stubGateway) CreateCharge(_ context.Context, in provider.ChargeInput) (*stripe.Charge, error) {
	s.lastChargeInput = in
	return s.charge, s.err
}

func (s *stubGateway) GetCharge(_ context.Context, id string) (*stripe.Charge, error) {
	s.lastID = id
	return s.charge, s.err
}

func (s *stubGateway) CreateInvoice(_ context.Context, _ provider.InvoiceInput) (*stripe.Invoice, error) {
	return s.invoice, s.err
}

func (s *stubGateway) GetInvoice(_ context.Context, id string) (*stripe.Invoice, error) {
	s.lastID = id
	return s.invoice, s.err
}

func (s *stubGateway) CreateProduct(_ context.Context, _ provider.ProductInput) (*stripe.Product, error) {
	return s.product, s.err
}

func (s *stubGateway) GetProduct(_ context.Context, id string) (*stripe.Product, error) {
	s.lastID = id
	return s.product, s.err
}

func (s *stubGateway) CreatePrice(_ context.Context, _ provider.PriceInput) (*stripe.Price, error) {
	return s.price, s.err
}

func (s *stubGateway) GetPrice(_ context.Context, id string) (*stripe.Price, error) {
	s.lastID = id
	return s.price, s.err
}

// newTestDispatcher wires a dispatcher over the full route table with the
// stub standing in for the upstream client.
func newTestDispatcher(t *testing.T, stub provider.Gateway, events *store.EventStore) *gateway.Dispatcher {
	t.Helper()
	t.Setenv(provider.SecretKeyEnv, "sk_test_handler")

	facade := provider.NewFacade(func(string) (provider.Gateway, error) {
		return stub, nil
	})
	h := New(facade, validator.New(), events)

	table, err := gateway.NewTable(h.Routes())
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return gateway.NewDispatcher(table, nil)
}

func doJSON(d *gateway.Dispatcher, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	d.ServeHTTP(w, req)
	return w
}

func TestCreateCustomer(t *testing.T) {
	stub := &stubGateway{customer: &stripe.Customer{ID: "cus_1", Email: "a@example.com"}}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "POST", "/customers", `{"email":"a@example.com","name":"Ada"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if body["id"] != "cus_1" {
		t.Errorf("Expected id cus_1, got %v", body["id"])
	}
	if stub.lastCustomerInput.Email != "a@example.com" || stub.lastCustomerInput.Name != "Ada" {
		t.Errorf("Gateway saw unexpected input: %+v", stub.lastCustomerInput)
	}
}

func TestCreateCustomer_InvalidJSON(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/customers", `{"email":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Invalid request body" {
		t.Errorf("Expected fixed invalid-body message, got %q", body["error"])
	}
}

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/customers", `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !strings.Contains(body["error"], "Validation error") {
		t.Errorf("Expected a validation message, got %q", body["error"])
	}
}

func TestGetCustomer(t *testing.T) {
	stub := &stubGateway{customer: &stripe.Customer{ID: "cus_9"}}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "GET", "/customers/cus_9", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if stub.lastID != "cus_9" {
		t.Errorf("Expected path id to reach the gateway, got %q", stub.lastID)
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	stub := &stubGateway{err: provider.NewError(provider.KindValidation, "No such customer: cus_404")}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "GET", "/customers/cus_404", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateSubscription(t *testing.T) {
	stub := &stubGateway{subscription: &stripe.Subscription{ID: "sub_1", Status: stripe.SubscriptionStatusActive}}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "POST", "/subscriptions", `{"customer":"cus_1","items":[{"price":"price_1"}]}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateSubscription_MissingItems(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/subscriptions", `{"customer":"cus_1"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCancelSubscription(t *testing.T) {
	stub := &stubGateway{subscription: &stripe.Subscription{ID: "sub_1", Status: stripe.SubscriptionStatusCanceled}}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "DELETE", "/subscriptions/sub_1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if stub.lastID != "sub_1" {
		t.Errorf("Expected sub_1, got %q", stub.lastID)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if body["status"] != "canceled" {
		t.Errorf("Expected status canceled, got %v", body["status"])
	}
}

func TestCreateCharge(t *testing.T) {
	stub := &stubGateway{charge: &stripe.Charge{ID: "ch_1", Amount: 1000}}
	d := newTestDispatcher(t, stub, nil)

	w := doJSON(d, "POST", "/charges", `{"amount":1000,"currency":"usd"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if stub.lastChargeInput.Amount != 1000 || stub.lastChargeInput.Currency != "usd" {
		t.Errorf("Gateway saw unexpected input: %+v", stub.lastChargeInput)
	}
}

func TestCreateCharge_BadCurrency(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/charges", `{"amount":1000,"currency":"dollars"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateProduct_MissingName(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/products", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestCreatePrice_BadInterval(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "POST", "/prices", `{"product":"prod_1","unit_amount":500,"currency":"usd","recurring":{"interval":"fortnight"}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestRoutes_Unconfigured(t *testing.T) {
	t.Setenv(provider.SecretKeyEnv, "")

	facade := provider.NewFacade(func(string) (provider.Gateway, error) {
		t.Fatal("build must not run without a credential")
		return nil, nil
	})
	h := New(facade, validator.New(), nil)

	table, err := gateway.NewTable(h.Routes())
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	d := gateway.NewDispatcher(table, nil)

	w := doJSON(d, "GET", "/customers/cus_1", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDiscovery(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)

	w := doJSON(d, "GET", "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if body["service"] != "payfront" {
		t.Errorf("Expected service payfront, got %v", body["service"])
	}
	if body["status"] != "ready" {
		t.Errorf("Expected status ready with a credential set, got %v", body["status"])
	}
	if _, ok := body["resources"].([]any); !ok {
		t.Error("Expected a resources list")
	}
}

func TestDiscovery_Unconfigured(t *testing.T) {
	d := newTestDispatcher(t, &stubGateway{}, nil)
	t.Setenv(provider.SecretKeyEnv, "")

	w := doJSON(d, "GET", "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "unconfigured" {
		t.Errorf("Expected status unconfigured, got %v", body["status"])
	}
}
