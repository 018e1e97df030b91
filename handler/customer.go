package handler

import (
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// CreateCustomer handles POST /customers
func (h *Handler) CreateCustomer(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.CustomerInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	customer, err := gw.CreateCustomer(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: customer}, nil
}

// GetCustomer handles GET /customers/:id
func (h *Handler) GetCustomer(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	customer, err := gw.GetCustomer(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: customer}, nil
}
