// Package payfront is a lightweight HTTP gateway in front of a third-party
// payments provider. It re-exposes the provider's customers, subscriptions,
// charges, invoices, products and prices as plain REST resources, verifies
// incoming webhooks, and answers anything outside the REST surface over a
// JSON-RPC fallback.
//
// # Overview
//
// Payfront solves the problem of sprinkling provider SDK calls and provider
// credentials across application services. Applications talk to one small,
// stable HTTP surface; payfront owns the credential, the upstream client,
// and the error normalization.
//
// # Architecture
//
// Requests flow through an ordered route table before reaching the upstream
// provider:
//
//	┌─────────────────┐    ┌─────────────────┐    ┌─────────────────┐
//	│                 │    │                 │    │                 │
//	│   Your Apps     │◄──►│    Payfront     │◄──►│    Payment      │
//	│                 │    │   (Gateway)     │    │    Provider     │
//	│                 │    │                 │    │                 │
//	└─────────────────┘    └─────────────────┘    └─────────────────┘
//
// The dispatcher matches the method and path against an ordered route table
// (first match wins). Matched routes call thin resource handlers; unmatched
// requests fall through to the JSON-RPC server, so typed clients can reach
// every operation by method name.
//
// # HTTP API
//
//	# Discovery
//	GET /
//
//	# Customers
//	POST /customers
//	GET  /customers/{id}
//
//	# Subscriptions
//	POST   /subscriptions
//	GET    /subscriptions/{id}
//	DELETE /subscriptions/{id}
//
//	# Charges, invoices, products, prices
//	POST /charges        GET /charges/{id}
//	POST /invoices       GET /invoices/{id}
//	POST /products       GET /products/{id}
//	POST /prices         GET /prices/{id}
//
//	# Webhooks
//	POST /webhooks
//
// Errors always come back as {"error": "<message>"} with credential material
// redacted from the message.
//
// # Configuration
//
// Configuration is environment-driven, optionally via a .env file:
//
//	STRIPE_SECRET_KEY=sk_test_...       # read lazily on first provider call
//	STRIPE_WEBHOOK_SECRET=whsec_...     # required to accept webhooks
//	APP_PORT=8080
//	WEBHOOK_DB_PATH=events.db           # enables webhook deduplication
//	ENABLE_OPENSEARCH_LOGGING=true      # ships dispatch logs to OpenSearch
//
// The upstream client is created on first use, so the service boots and
// serves discovery requests without a credential; provider-backed routes
// answer 503 until one is supplied.
//
// # Webhooks
//
// Incoming webhooks are verified against the Stripe-Signature header before
// any parsing of the payload, acknowledged with {"received": true}, and
// optionally deduplicated by event ID in a local SQLite store.
//
// # Logging
//
// Request dispatch logs and structured system logs can be shipped to
// OpenSearch; without it, logging degrades to console output.
package payfront
