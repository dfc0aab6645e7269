package payments

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// Stripe opens and retrieves hosted checkout sessions. The site domain is
// the base for the redirect URLs shown to the buyer.
type Stripe struct {
	siteDomain string
}

func NewStripe(secretKey, siteDomain string) *Stripe {
	stripe.Key = secretKey
	return &Stripe{siteDomain: siteDomain}
}

func (s *Stripe) CreateCheckoutSession(p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(amountInCents(p.Price)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.BookName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(p.Email),
		SuccessURL:    stripe.String(s.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.siteDomain + "/payment-cancelled"),
		Metadata: map[string]string{
			"bookId":  p.BookID,
			"orderId": p.OrderID,
		},
	}

	checkout, err := session.New(params)
	if err != nil {
		return "", err
	}
	return checkout.URL, nil
}

func (s *Stripe) GetSession(id string) (*Session, error) {
	checkout, err := session.Get(id, nil)
	if err != nil {
		return nil, err
	}

	result := &Session{
		ID:            checkout.ID,
		PaymentStatus: string(checkout.PaymentStatus),
		Metadata:      checkout.Metadata,
	}
	if checkout.PaymentIntent != nil {
		result.PaymentIntentID = checkout.PaymentIntent.ID
	}
	return result, nil
}
