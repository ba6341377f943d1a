package stripewebhooks

import (
	"testing"
	"time"

	"villma-portal/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func TestHasRecentSubscription(t *testing.T) {
	now := time.Now()

	assert.False(t, hasRecentSubscription(nil, now))

	old := []subscriptions.UserSubscription{{CreatedAt: now.Add(-10 * time.Minute)}}
	assert.False(t, hasRecentSubscription(old, now))

	recent := []subscriptions.UserSubscription{
		{CreatedAt: now.Add(-10 * time.Minute)},
		{CreatedAt: now.Add(-2 * time.Minute)},
	}
	assert.True(t, hasRecentSubscription(recent, now))
}

func TestBuildSubscriptionRecord(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	sub := &stripe.Subscription{
		ID:       "sub_123",
		Status:   "active",
		Customer: &stripe.Customer{ID: "cus_123"},
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_1", UnitAmount: 17000}},
			},
		},
		StartDate:        start.Unix(),
		CurrentPeriodEnd: end.Unix(),
	}

	record := buildSubscriptionRecord(sub, "EXTRA", "monthly", "uid-1")

	assert.Equal(t, "uid-1", record.UserUID)
	assert.Equal(t, "EXTRA", record.PlanName)
	assert.Equal(t, "monthly", record.PlanBillingCycle)
	assert.Equal(t, 170.0, record.PlanPrice)
	assert.True(t, record.HasExtraProdData)
	assert.Equal(t, subscriptions.StatusActive, record.Status)
	assert.True(t, record.StartDate.Equal(start))
	assert.True(t, record.EndDate.Equal(end))

	require.NotNil(t, record.StripeSubscriptionID)
	assert.Equal(t, "sub_123", *record.StripeSubscriptionID)
	require.NotNil(t, record.StripeCustomerID)
	assert.Equal(t, "cus_123", *record.StripeCustomerID)
}

func TestBuildSubscriptionRecordPendingWhenNotActive(t *testing.T) {
	sub := &stripe.Subscription{
		ID:       "sub_456",
		Status:   "incomplete",
		Customer: &stripe.Customer{ID: "cus_456"},
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_2", UnitAmount: 9000}},
			},
		},
	}

	record := buildSubscriptionRecord(sub, "BASE", "monthly", "uid-2")

	assert.Equal(t, subscriptions.StatusPending, record.Status)
	assert.Equal(t, 90.0, record.PlanPrice)
	assert.False(t, record.HasExtraProdData)
}
