package stripewebhooks

import (
	"time"

	stripeinfra "villma-portal/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	updates := map[string]interface{}{
		"status":   stripeinfra.StatusOnUpdate(string(sub.Status)),
		"end_date": time.Unix(sub.CurrentPeriodEnd, 0),
	}

	return h.Store.UpdateSubscriptionByStripeID(sub.ID, updates)
}
