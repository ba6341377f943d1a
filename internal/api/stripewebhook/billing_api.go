package stripewebhooks

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/subscription"
)

// BillingAPI is the slice of the payment provider's API the reconciler
// calls back into: webhook payloads carry only object ids for the
// customer, and checkout sessions only reference their subscription.
type BillingAPI interface {
	Subscription(id string) (*stripe.Subscription, error)
	Customer(id string) (*stripe.Customer, error)
}

type stripeBilling struct{}

func (stripeBilling) Subscription(id string) (*stripe.Subscription, error) {
	return subscription.Get(id, nil)
}

func (stripeBilling) Customer(id string) (*stripe.Customer, error) {
	return customer.Get(id, nil)
}
