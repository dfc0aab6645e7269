package payments

// CheckoutParams carries everything needed to open a hosted checkout
// session for a single order.
type CheckoutParams struct {
	BookName string
	Price    float64
	BookID   string
	OrderID  string
	Email    string
}

// Session is the retrievable state of a hosted checkout session.
type Session struct {
	ID              string
	PaymentStatus   string
	PaymentIntentID string
	Metadata        map[string]string
}

// PaymentStatusPaid is the provider's terminal success status.
const PaymentStatusPaid = "paid"

// Provider abstracts the hosted payment-session provider so handlers can
// be exercised with a fake.
type Provider interface {
	CreateCheckoutSession(p CheckoutParams) (string, error)
	GetSession(id string) (*Session, error)
}

// amountInCents converts a listing price to the provider's integer unit
// amount. Truncates, matching the checkout contract.
func amountInCents(price float64) int64 {
	return int64(price * 100)
}
