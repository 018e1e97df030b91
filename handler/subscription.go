package handler

import (
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// CreateSubscription handles POST /subscriptions
func (h *Handler) CreateSubscription(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.SubscriptionInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	subscription, err := gw.CreateSubscription(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: subscription}, nil
}

// GetSubscription handles GET /subscriptions/:id
func (h *Handler) GetSubscription(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	subscription, err := gw.GetSubscription(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: subscription}, nil
}

// CancelSubscription handles DELETE /subscriptions/:id
func (h *Handler) CancelSubscription(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	subscription, err := gw.CancelSubscription(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: subscription}, nil
}
