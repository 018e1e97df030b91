// Package rpc implements the JSON-RPC 2.0 fallback surface. It serves any
// request the route table did not claim, exposing the same provider
// operations to typed clients by method name.
package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeProviderError  = -32000
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server dispatches JSON-RPC requests to the provider gateway.
type Server struct {
	facade *provider.Facade
}

// NewServer creates the fallback RPC server over the capability facade.
func NewServer(facade *provider.Facade) *Server {
	return &Server{facade: facade}
}

// Handle serves one fallback request. It satisfies gateway.Fallback: a
// returned error means the request could not be served at all (most notably
// a missing provider credential) and the dispatcher's boundary answers;
// protocol-level failures are written as JSON-RPC error objects at 200.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return writeResponse(w, Response{
			JSONRPC: "2.0",
			Error:   &Error{Code: codeParseError, Message: "Parse error"},
		})
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		return writeResponse(w, Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: codeInvalidRequest, Message: "Invalid request"},
		})
	}

	gw, err := s.facade.Gateway()
	if err != nil {
		return err
	}

	result, callErr := s.call(r.Context(), gw, req.Method, req.Params)
	if callErr != nil {
		return writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Error: callErr})
	}

	return writeResponse(w, Response{JSONRPC: "2.0", ID: req.ID, Result: result})
}

// call dispatches a method name to the matching gateway operation.
func (s *Server) call(ctx context.Context, gw provider.Gateway, method string, params json.RawMessage) (any, *Error) {
	switch method {
	case "customers.create":
		var in provider.CustomerInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreateCustomer(ctx, in))
	case "customers.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetCustomer(ctx, id))

	case "subscriptions.create":
		var in provider.SubscriptionInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreateSubscription(ctx, in))
	case "subscriptions.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetSubscription(ctx, id))
	case "subscriptions.cancel":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.CancelSubscription(ctx, id))

	case "charges.create":
		var in provider.ChargeInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreateCharge(ctx, in))
	case "charges.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetCharge(ctx, id))

	case "invoices.create":
		var in provider.InvoiceInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreateInvoice(ctx, in))
	case "invoices.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetInvoice(ctx, id))

	case "products.create":
		var in provider.ProductInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreateProduct(ctx, in))
	case "products.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetProduct(ctx, id))

	case "prices.create":
		var in provider.PriceInput
		if err := unmarshalParams(params, &in); err != nil {
			return nil, err
		}
		return wrap(gw.CreatePrice(ctx, in))
	case "prices.retrieve":
		id, err := idParam(params)
		if err != nil {
			return nil, err
		}
		return wrap(gw.GetPrice(ctx, id))
	}

	return nil, &Error{Code: codeMethodNotFound, Message: "Method not found: " + method}
}

// wrap converts an operation outcome into a JSON-RPC result or a sanitized
// provider error.
func wrap[T any](value T, err error) (any, *Error) {
	if err != nil {
		message, _ := gateway.Classify(err)
		return nil, &Error{Code: codeProviderError, Message: message}
	}
	return value, nil
}

func unmarshalParams(params json.RawMessage, dst any) *Error {
	if len(params) == 0 {
		return &Error{Code: codeInvalidRequest, Message: "Missing params"}
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return &Error{Code: codeInvalidRequest, Message: "Invalid params: " + err.Error()}
	}
	return nil
}

// idParam extracts {"id": "..."} from params.
func idParam(params json.RawMessage) (string, *Error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := unmarshalParams(params, &in); err != nil {
		return "", err
	}
	if in.ID == "" {
		return "", &Error{Code: codeInvalidRequest, Message: "Missing id param"}
	}
	return in.ID, nil
}

func writeResponse(w http.ResponseWriter, resp Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}
