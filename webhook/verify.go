// Package webhook validates inbound signed payloads from the upstream
// provider. Verification runs over the exact raw request bytes; a
// re-serialized body can change byte layout and invalidate the signature.
package webhook

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"

	"github.com/payfront/payfront/provider"
)

// SignatureHeader carries the provider's payload signature.
const SignatureHeader = "Stripe-Signature"

// SecretEnv names the environment variable carrying the shared signing
// secret. It is read lazily by the webhook route, independent of the API
// credential.
const SecretEnv = "STRIPE_WEBHOOK_SECRET"

// Verify checks the signature over the raw payload bytes and returns the
// decoded event. Failure modes are distinct: a missing header is a client
// error, an unset secret is a server-side configuration error, and a bad
// signature is a verification failure carrying the underlying reason.
// The provider's verification algorithm is never invoked without a header.
func Verify(payload []byte, sigHeader, secret string) (*stripe.Event, error) {
	if sigHeader == "" {
		return nil, provider.NewError(provider.KindValidation,
			fmt.Sprintf("Missing %s header", SignatureHeader))
	}
	if secret == "" {
		return nil, provider.WrapError(provider.KindConfiguration,
			fmt.Sprintf("%s is not set; supply it via the environment or a .env file", SecretEnv),
			provider.ErrNotConfigured)
	}

	event, err := stripewebhook.ConstructEventWithOptions(payload, sigHeader, secret,
		stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, provider.WrapError(provider.KindValidation,
			"webhook signature verification failed: "+err.Error(), err)
	}

	return &event, nil
}
