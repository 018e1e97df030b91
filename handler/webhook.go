package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/payfront/payfront/gateway"
	"github.com/payfront/payfront/infra/config"
	"github.com/payfront/payfront/infra/logger"
	"github.com/payfront/payfront/infra/response"
	"github.com/payfront/payfront/webhook"
)

// maxWebhookBody bounds webhook payload reads. Oversize deliveries are
// rejected outright; truncating would hand verification a prefix of the wire
// bytes and every signature check on it would fail.
const maxWebhookBody = int64(10 * 1024 * 1024)

// WebhookAck is the response body for an accepted webhook delivery.
type WebhookAck struct {
	Received bool   `json:"received"`
	Type     string `json:"type"`
}

// HandleWebhook handles POST /webhooks. The raw body is captured once,
// before any JSON parsing, because verification needs the exact wire bytes.
func (h *Handler) HandleWebhook(r *http.Request, _ gateway.Params) (*gateway.Result, error) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrInvalidBody, err)
	}
	if int64(len(payload)) > maxWebhookBody {
		return &gateway.Result{
			Status: http.StatusRequestEntityTooLarge,
			Body:   response.ErrorBody{Error: "Webhook payload too large"},
		}, nil
	}

	secret := config.GetEnv(webhook.SecretEnv, "")
	event, err := webhook.Verify(payload, r.Header.Get(webhook.SignatureHeader), secret)
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		firstSeen, err := h.events.MarkProcessed(event.ID, string(event.Type))
		if err != nil {
			// Dedup is best-effort; a store failure never drops a verified event.
			logger.Error("webhook event store", err, logger.Context{Component: "handler"})
		} else if !firstSeen {
			logger.Info("duplicate webhook delivery acknowledged", logger.Context{
				Component: "handler",
				Fields:    map[string]any{"event_id": event.ID, "event_type": event.Type},
			})
			return &gateway.Result{Status: http.StatusOK, Body: WebhookAck{Received: true, Type: string(event.Type)}}, nil
		}
	}

	logger.Info("webhook event verified", logger.Context{
		Component: "handler",
		Fields:    map[string]any{"event_id": event.ID, "event_type": event.Type},
	})

	return &gateway.Result{Status: http.StatusOK, Body: WebhookAck{Received: true, Type: string(event.Type)}}, nil
}
