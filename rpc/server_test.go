package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"

	"github.com/payfront/payfront/provider"
)

// rpcStub answers every operation with canned values.
type rpcStub struct {
	customer *stripe.Customer
	err      error
	lastID   string
}

func (s *rpcStub) CreateCustomer(_ context.Context, in provider.CustomerInput) (*stripe.Customer, error) {
	return s.customer, s.err
}

func (s *rpcStub) GetCustomer(_ context.Context, id string) (*stripe.Customer, error) {
	s.lastID = id
	return s.customer, s.err
}

func (s *rpcStub) CreateSubscription(context.Context, provider.SubscriptionInput) (*stripe.Subscription, error) {
	return nil, s.err
}
func (s *rpcStub) GetSubscription(context.Context, string) (*stripe.Subscription, error) {
	return nil, s.err
}
func (s *rpcStub) CancelSubscription(_ context.Context, id string) (*stripe.Subscription, error) {
	s.lastID = id
	return &stripe.Subscription{ID: id, Status: stripe.SubscriptionStatusCanceled}, s.err
}
func (s *rpcStub) CreateCharge(context.Context, provider.ChargeInput) (*stripe.Charge, error) {
	return nil, s.err
}
func (s *rpcStub) GetCharge(context.Context, string) (*stripe.Charge, error) { return nil, s.err }
func (s *rpcStub) CreateInvoice(context.Context, provider.InvoiceInput) (*stripe.Invoice, error) {
	return nil, s.err
}
func (s *rpcStub) GetInvoice(context.Context, string) (*stripe.Invoice, error) { return nil, s.err }
func (s *rpcStub) CreateProduct(context.Context, provider.ProductInput) (*stripe.Product, error) {
	return nil, s.err
}
func (s *rpcStub) GetProduct(context.Context, string) (*stripe.Product, error) { return nil, s.err }
func (s *rpcStub) CreatePrice(context.Context, provider.PriceInput) (*stripe.Price, error) {
	return nil, s.err
}
func (s *rpcStub) GetPrice(context.Context, string) (*stripe.Price, error) { return nil, s.err }

func newTestServer(t *testing.T, stub provider.Gateway) *Server {
	t.Helper()
	t.Setenv(provider.SecretKeyEnv, "sk_test_rpc")
	return NewServer(provider.NewFacade(func(string) (provider.Gateway, error) {
		return stub, nil
	}))
}

func call(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest("POST", "/rpc", strings.NewReader(body))
	w := httptest.NewRecorder()
	if err := s.Handle(w, req); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	return w, resp
}

func TestHandle_ParseError(t *testing.T) {
	s := newTestServer(t, &rpcStub{})

	w, resp := call(t, s, `{"jsonrpc":`)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, -32700, resp.Error.Code)
	}
}

func TestHandle_InvalidRequest(t *testing.T) {
	s := newTestServer(t, &rpcStub{})

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"customers.create"}`},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp := call(t, s, tt.body)
			if assert.NotNil(t, resp.Error) {
				assert.Equal(t, -32600, resp.Error.Code)
			}
		})
	}
}

func TestHandle_MethodNotFound(t *testing.T) {
	s := newTestServer(t, &rpcStub{})

	_, resp := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"customers.destroy","params":{}}`)

	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, -32601, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "customers.destroy")
	}
}

func TestHandle_CreateCustomer(t *testing.T) {
	stub := &rpcStub{customer: &stripe.Customer{ID: "cus_rpc", Email: "rpc@example.com"}}
	s := newTestServer(t, stub)

	w, resp := call(t, s, `{"jsonrpc":"2.0","id":7,"method":"customers.create","params":{"email":"rpc@example.com"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, resp.Error)
	assert.Equal(t, float64(7), resp.ID)

	result, ok := resp.Result.(map[string]any)
	if assert.True(t, ok, "result should be an object") {
		assert.Equal(t, "cus_rpc", result["id"])
	}
}

func TestHandle_RetrieveByID(t *testing.T) {
	stub := &rpcStub{customer: &stripe.Customer{ID: "cus_5"}}
	s := newTestServer(t, stub)

	_, resp := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"customers.retrieve","params":{"id":"cus_5"}}`)

	assert.Nil(t, resp.Error)
	assert.Equal(t, "cus_5", stub.lastID)
}

func TestHandle_MissingIDParam(t *testing.T) {
	s := newTestServer(t, &rpcStub{})

	_, resp := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"customers.retrieve","params":{}}`)

	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, -32600, resp.Error.Code)
	}
}

func TestHandle_ProviderErrorSanitized(t *testing.T) {
	stub := &rpcStub{err: provider.NewError(provider.KindAuthentication, "Invalid API Key provided: sk_live_topsecret99")}
	s := newTestServer(t, stub)

	w, resp := call(t, s, `{"jsonrpc":"2.0","id":1,"method":"customers.retrieve","params":{"id":"cus_1"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, -32000, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "sk_live_topsecret99")
		assert.Contains(t, resp.Error.Message, "[REDACTED]")
	}
}

func TestHandle_NotConfigured(t *testing.T) {
	t.Setenv(provider.SecretKeyEnv, "")
	s := NewServer(provider.NewFacade(func(string) (provider.Gateway, error) {
		t.Fatal("build must not run without a credential")
		return nil, nil
	}))

	req := httptest.NewRequest("POST", "/rpc", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"customers.retrieve","params":{"id":"cus_1"}}`))
	w := httptest.NewRecorder()

	err := s.Handle(w, req)
	assert.ErrorIs(t, err, provider.ErrNotConfigured)
}

func TestHandle_CancelSubscription(t *testing.T) {
	stub := &rpcStub{}
	s := newTestServer(t, stub)

	_, resp := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"subscriptions.cancel","params":{"id":"sub_9"}}`)

	assert.Nil(t, resp.Error)
	assert.Equal(t, "sub_9", stub.lastID)

	result, ok := resp.Result.(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, "canceled", result["status"])
	}
}
