package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// IntentCreator creates a processor-side payment intent and returns its client
// secret. Amounts are in minor units (cents).
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// StripeCreator creates USD payment intents with automatic payment methods.
type StripeCreator struct {
	api *client.API
}

func NewStripeCreator(secretKey string) *StripeCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCreator{api: api}
}

func (s *StripeCreator) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
