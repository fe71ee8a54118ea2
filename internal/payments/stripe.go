// Package payments wraps the external payment provider used for
// application-fee checkout. No payment state is persisted locally.
package payments

import (
	"context"
	"errors"
	"math"

	"nextstep/internal/observability"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Currency is the fixed settlement currency for application fees.
const Currency = "usd"

// ErrNotConfigured is returned when no provider secret key is set.
var ErrNotConfigured = errors.New("payment provider is not configured")

// Provider creates payment intents with an external payment service and
// returns the opaque client secret.
type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// AmountCents converts a fee in decimal currency units to the smallest
// currency unit the provider expects.
func AmountCents(fee float64) int64 {
	return int64(math.Round(fee * 100))
}

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a Stripe-backed provider. An empty secret key
// yields a provider whose calls fail with ErrNotConfigured.
func NewStripeProvider(secretKey string) *StripeProvider {
	if secretKey == "" {
		return &StripeProvider{}
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// CreateIntent requests a PaymentIntent for the given amount and returns
// the client secret unmodified.
func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if p.api == nil {
		return "", ErrNotConfigured
	}

	ctx, span := observability.TracePaymentCall(ctx, "create_intent")
	defer span.End()

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	// Guards against double-charges on client retries.
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return intent.ClientSecret, nil
}
