package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/payfront/payfront/infra/logger"
	"github.com/payfront/payfront/infra/response"
	"github.com/payfront/payfront/provider"
)

// ErrInvalidBody marks a malformed structured payload. Handlers wrap body
// decode failures with it so the dispatcher can answer a fixed 400 instead of
// classifying the parser's message.
var ErrInvalidBody = errors.New("invalid request body")

// invalidBodyMessage and notConfiguredMessage are the fixed texts for the two
// failure modes that bypass generic classification.
const (
	invalidBodyMessage   = "Invalid request body"
	notConfiguredMessage = "Payment provider is not configured. Set STRIPE_SECRET_KEY in the environment or .env file."
)

// Fallback handles any request no route matched. It writes its own response;
// a returned error means the fallback could not serve the request at all and
// the dispatcher's error boundary takes over.
type Fallback func(w http.ResponseWriter, r *http.Request) error

// Dispatcher matches requests against an immutable route table and runs the
// winning handler inside a failure boundary. Unmatched requests are delegated
// to the fallback handler verbatim.
type Dispatcher struct {
	table    *Table
	fallback Fallback
}

// NewDispatcher builds a dispatcher over a compiled table. The fallback may
// be nil, in which case unmatched requests answer 404.
func NewDispatcher(table *Table, fallback Fallback) *Dispatcher {
	return &Dispatcher{table: table, fallback: fallback}
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, params, ok := d.table.Match(r.Method, r.URL.Path)
	if !ok {
		d.dispatchFallback(w, r)
		return
	}

	result, err := invoke(handler, r, params)
	if err != nil {
		if errors.Is(err, ErrInvalidBody) {
			response.WriteError(w, http.StatusBadRequest, invalidBodyMessage)
			return
		}
		message, status := Classify(err)
		logger.Warn("request failed", logger.Context{
			Component: "dispatcher",
			Fields:    map[string]any{"method": r.Method, "path": r.URL.Path, "status": status},
		})
		response.WriteError(w, status, message)
		return
	}

	if err := response.WriteJSON(w, result.Status, result.Body); err != nil {
		logger.Error("write response", err, logger.Context{Component: "dispatcher"})
	}
}

// dispatchFallback hands the original, unread request to the secondary
// protocol handler. Route matching always wins over the fallback: a path
// claimed by the table is never fallback-servable.
func (d *Dispatcher) dispatchFallback(w http.ResponseWriter, r *http.Request) {
	if d.fallback == nil {
		response.WriteError(w, http.StatusNotFound, "Not Found")
		return
	}

	err := d.fallback(w, r)
	if err == nil {
		return
	}

	if errors.Is(err, provider.ErrNotConfigured) {
		response.WriteError(w, http.StatusServiceUnavailable, notConfiguredMessage)
		return
	}
	message, status := Classify(err)
	response.WriteError(w, status, message)
}

// invoke runs a route handler, converting panics into errors so a single
// request's failure never escapes its boundary.
func invoke(handler Handler, r *http.Request, params Params) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("handler panic", fmt.Errorf("%v", rec), logger.Context{
				Component: "dispatcher",
				Fields:    map[string]any{"path": r.URL.Path, "stack": string(debug.Stack())},
			})
			result = nil
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	result, err = handler(r, params)
	if err == nil && result == nil {
		err = errors.New("handler returned no result")
	}
	return result, err
}
