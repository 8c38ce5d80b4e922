package services

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider creates payment intents through the Stripe API
type StripeProvider struct {
	sc *client.API
}

// NewStripeProvider creates a Stripe backed provider
func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{sc: client.New(secretKey, nil)}
}

func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
