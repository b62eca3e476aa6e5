package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// StripeProcessor talks to the live Stripe API.  The secret key is set on
// the stripe client once at construction and never leaves this package.
type StripeProcessor struct{}

// NewStripeProcessor configures the Stripe client with the given secret
// key and returns a processor backed by the real API.
func NewStripeProcessor(secretKey string) *StripeProcessor {
	stripe.Key = secretKey
	return &StripeProcessor{}
}

// CreateIntent opens a payment intent carrying the booking metadata.
func (s *StripeProcessor) CreateIntent(ctx context.Context, p CreateParams) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
	}
	params.Context = ctx
	if p.CustomerRef != "" {
		params.Customer = stripe.String(p.CustomerRef)
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return fromStripeIntent(pi), nil
}

// RetrieveIntent fetches an intent by id for verification.
func (s *StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}

// wrapStripeErr converts stripe errors into this package's error types.
// A missing resource becomes ErrIntentNotFound; everything else keeps the
// processor's own message, which is safe to return to clients.
func wrapStripeErr(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		if sErr.Code == stripe.ErrorCodeResourceMissing {
			return ErrIntentNotFound
		}
		return &ProcessorError{Code: string(sErr.Code), Message: sErr.Msg}
	}
	return &ProcessorError{Message: err.Error()}
}
