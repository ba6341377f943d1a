package stripewebhooks

import (
	"villma-portal/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	// Cancelled is terminal; the record stays for history.
	return h.Store.UpdateSubscriptionByStripeID(sub.ID, map[string]interface{}{
		"status": subscriptions.StatusCancelled,
	})
}
