package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// ErrEmptyCart : pas de paiement pour un panier vide.
var ErrEmptyCart = errors.New("panier vide")

// CreateCartPaymentIntent crée un PaymentIntent Stripe pour le total exact
// du panier. Le montant est converti en centimes sans passer par du
// flottant (le total a au plus 2 décimales).
func CreateCartPaymentIntent(userID string, total decimal.Decimal) (*stripe.PaymentIntent, error) {
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, ErrEmptyCart
	}

	amount := total.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", userID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("création PaymentIntent: %w", err)
	}
	return pi, nil
}
