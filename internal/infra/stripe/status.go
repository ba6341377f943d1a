package stripe

import (
	"villma-portal/internal/domain/subscriptions"
)

// Local lifecycle mapping for Stripe subscription statuses. The portal
// only distinguishes active/pending/cancelled; anything not active at
// creation time is pending, anything not active on update is cancelled.

func StatusOnCreate(stripeStatus string) string {
	if stripeStatus == "active" {
		return subscriptions.StatusActive
	}
	return subscriptions.StatusPending
}

func StatusOnUpdate(stripeStatus string) string {
	if stripeStatus == "active" {
		return subscriptions.StatusActive
	}
	return subscriptions.StatusCancelled
}
