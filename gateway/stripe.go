package gateway

import (
	"context"
	"fmt"
	"math"

	"membership/config"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
)

const chargeDescription = "Pirate party membership."

// ChargeResult is the provider's confirmation of a successful card charge.
type ChargeResult struct {
	TransactionID string
}

// CardCharger executes a card charge against the payment provider.
type CardCharger interface {
	ChargeCard(ctx context.Context, token string, totalAmount float64) (*ChargeResult, error)
}

// StripeCharger charges cards through Stripe. Provider errors are
// returned untouched; the caller decides what the client may see.
type StripeCharger struct{}

// NewStripeCharger returns a charger using the globally configured key.
func NewStripeCharger() *StripeCharger {
	return &StripeCharger{}
}

// ChargeCard converts the decimal amount to minor units and issues the
// charge in the fixed membership currency.
func (s *StripeCharger) ChargeCard(ctx context.Context, token string, totalAmount float64) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(int64(math.Round(totalAmount * 100))),
		Currency:    stripe.String(string(stripe.CurrencyAUD)),
		Description: stripe.String(chargeDescription),
	}
	if err := params.SetSource(token); err != nil {
		return nil, fmt.Errorf("invalid card token: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return nil, err
	}
	return &ChargeResult{TransactionID: ch.ID}, nil
}

// StripeHeaders exposes the publishable key to the sign-up and renew pages.
func StripeHeaders() map[string]string {
	return map[string]string{
		"Stripe-Public-Key": config.AppConfig.StripePublicKey,
	}
}
