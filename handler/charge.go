package handler

import (
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// CreateCharge handles POST /charges
func (h *Handler) CreateCharge(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.ChargeInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	charge, err := gw.CreateCharge(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: charge}, nil
}

// GetCharge handles GET /charges/:id
func (h *Handler) GetCharge(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	charge, err := gw.GetCharge(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: charge}, nil
}
