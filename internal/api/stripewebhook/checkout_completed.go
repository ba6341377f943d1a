package stripewebhooks

import (
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutCompleted re-fetches the session's subscription and
// forwards it to the created handler. The webhook payload only carries the
// subscription id.
func (h *Handler) handleCheckoutCompleted(session *stripe.CheckoutSession) error {
	if session.Subscription == nil || session.Subscription.ID == "" {
		h.Log.Info().Str("session_id", session.ID).Msg("no subscription found in session")
		return nil
	}

	sub, err := h.Billing.Subscription(session.Subscription.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch subscription %s: %w", session.Subscription.ID, err)
	}

	return h.handleSubscriptionCreated(sub)
}
