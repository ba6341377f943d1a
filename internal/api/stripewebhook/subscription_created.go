package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"villma-portal/internal/domain/plans"
	"villma-portal/internal/domain/subscriptions"
	stripeinfra "villma-portal/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

// duplicateWindow suppresses the race between checkout.session.completed
// and customer.subscription.created both trying to insert the same record.
const duplicateWindow = 5 * time.Minute

func (h *Handler) handleSubscriptionCreated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription %q missing id/items/price", sub.ID)
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return errors.New("subscription missing customer")
	}
	customerID := sub.Customer.ID

	// Metadata may be absent on provider-initiated events, so the customer
	// record is the source of truth for the email.
	customerEmail := ""
	if cust, err := h.Billing.Customer(customerID); err == nil && cust != nil {
		customerEmail = cust.Email
	} else if err != nil {
		return fmt.Errorf("failed to fetch customer %s: %w", customerID, err)
	}

	existing, err := h.Store.SubscriptionsByStripeCustomer(customerID)
	if err != nil {
		return fmt.Errorf("failed to load subscriptions for customer %s: %w", customerID, err)
	}
	for _, e := range existing {
		if e.StripeSubscriptionID != nil && *e.StripeSubscriptionID == sub.ID {
			h.Log.Info().Str("subscription_id", sub.ID).Msg("subscription already exists, skipping creation")
			return nil
		}
	}
	if hasRecentSubscription(existing, time.Now()) {
		h.Log.Info().Str("customer_id", customerID).Msg("recent subscription found, skipping creation to prevent duplicates")
		return nil
	}

	planName, billingCycle, fromNickname := resolvePlan(sub.Metadata, sub.Items.Data[0].Price)
	if fromNickname {
		h.Log.Warn().
			Str("subscription_id", sub.ID).
			Str("nickname", sub.Items.Data[0].Price.Nickname).
			Str("plan", planName).
			Str("cycle", billingCycle).
			Msg("plan resolved from price nickname (degraded fallback)")
	}

	if planName == "" || billingCycle == "" || customerEmail == "" {
		return fmt.Errorf("missing data for subscription creation: plan=%q cycle=%q email=%q",
			planName, billingCycle, customerEmail)
	}

	user, err := h.Store.UserByEmail(customerEmail)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", customerEmail, err)
	}
	if user == nil {
		return fmt.Errorf("user profile not found for email %s", customerEmail)
	}

	record := buildSubscriptionRecord(sub, planName, billingCycle, user.UID)
	if err := h.Store.CreateSubscription(&record); err != nil {
		return fmt.Errorf("failed to create user subscription: %w", err)
	}

	h.Log.Info().
		Str("subscription_id", sub.ID).
		Str("user_uid", user.UID).
		Str("plan", planName).
		Str("cycle", billingCycle).
		Msg("user subscription created")
	return nil
}

// hasRecentSubscription reports whether any record for the same customer
// was created inside the duplicate window.
func hasRecentSubscription(existing []subscriptions.UserSubscription, now time.Time) bool {
	for _, e := range existing {
		if now.Sub(e.CreatedAt) < duplicateWindow {
			return true
		}
	}
	return false
}

// buildSubscriptionRecord maps a provider subscription plus resolved plan
// info to a local record. Pure; dates come from the provider's billing
// period.
func buildSubscriptionRecord(sub *stripe.Subscription, planName, billingCycle, userUID string) subscriptions.UserSubscription {
	item := sub.Items.Data[0]
	subscriptionID := sub.ID
	customerID := sub.Customer.ID

	return subscriptions.UserSubscription{
		UserUID:              userUID,
		PlanID:               sub.ID,
		PlanName:             planName,
		PlanBillingCycle:     billingCycle,
		PlanPrice:            float64(item.Price.UnitAmount) / 100,
		PlanDescription:      fmt.Sprintf("Stripe subscription for %s %s", planName, billingCycle),
		HasExtraProdData:     plans.HasExtraProdData(planName),
		Status:               stripeinfra.StatusOnCreate(string(sub.Status)),
		StartDate:            time.Unix(sub.StartDate, 0),
		EndDate:              time.Unix(sub.CurrentPeriodEnd, 0),
		StripeSubscriptionID: &subscriptionID,
		StripeCustomerID:     &customerID,
	}
}
