package handler

import (
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// CreateInvoice handles POST /invoices
func (h *Handler) CreateInvoice(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.InvoiceInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	invoice, err := gw.CreateInvoice(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: invoice}, nil
}

// GetInvoice handles GET /invoices/:id
func (h *Handler) GetInvoice(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	invoice, err := gw.GetInvoice(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: invoice}, nil
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.ProductInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	product, err := gw.CreateProduct(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: product}, nil
}

// GetProduct handles GET /products/:id
func (h *Handler) GetProduct(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	product, err := gw.GetProduct(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: product}, nil
}

// CreatePrice handles POST /prices
func (h *Handler) CreatePrice(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	var in provider.PriceInput
	if err := h.decodeBody(r, &in); err != nil {
		return nil, err
	}

	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	price, err := gw.CreatePrice(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusCreated, Body: price}, nil
}

// GetPrice handles GET /prices/:id
func (h *Handler) GetPrice(r *http.Request, params gateway.Params) (*gateway.Result, error) {
	gw, err := h.gw()
	if err != nil {
		return nil, err
	}

	price, err := gw.GetPrice(r.Context(), params.Get("id"))
	if err != nil {
		return nil, err
	}

	return &gateway.Result{Status: http.StatusOK, Body: price}, nil
}
