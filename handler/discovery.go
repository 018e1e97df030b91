package handler

import (
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/provider"
)

// Discovery handles GET /. It reports readiness from credential presence
// without constructing the provider client.
func (h *Handler) Discovery(_ *http.Request, _ gateway.Params) (*gateway.Result, error) {
	status := "unconfigured"
	if provider.Configured() {
		status = "ready"
	}

	return &gateway.Result{
		Status: http.StatusOK,
		Body: map[string]any{
			"service": "payfront",
			"version": "1.0.0",
			"status":  status,
			"resources": []string{
				"/customers",
				"/subscriptions",
				"/charges",
				"/invoices",
				"/products",
				"/prices",
				"/webhooks",
			},
		},
	}, nil
}
