package stripewebhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villma-portal/config"
	"villma-portal/internal/domain/subscriptions"
	"villma-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

const testWebhookSecret = "whsec_test_secret"

type fakeStore struct {
	processed    map[string]bool
	usersByEmail map[string]*users.User
	subs         []subscriptions.UserSubscription

	created []subscriptions.UserSubscription
	updates map[string]map[string]interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		processed:    map[string]bool{},
		usersByEmail: map[string]*users.User{},
		updates:      map[string]map[string]interface{}{},
	}
}

func (s *fakeStore) EventProcessed(eventID string) (bool, error) {
	return s.processed[eventID], nil
}

func (s *fakeStore) MarkEventProcessed(eventID string) error {
	s.processed[eventID] = true
	return nil
}

func (s *fakeStore) UserByEmail(email string) (*users.User, error) {
	return s.usersByEmail[email], nil
}

func (s *fakeStore) SubscriptionsByStripeCustomer(customerID string) ([]subscriptions.UserSubscription, error) {
	var out []subscriptions.UserSubscription
	for _, sub := range s.subs {
		if sub.StripeCustomerID != nil && *sub.StripeCustomerID == customerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateSubscription(sub *subscriptions.UserSubscription) error {
	s.created = append(s.created, *sub)
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *fakeStore) UpdateSubscriptionByStripeID(stripeSubscriptionID string, updates map[string]interface{}) error {
	s.updates[stripeSubscriptionID] = updates
	return nil
}

type fakeBilling struct {
	subscriptions map[string]*stripe.Subscription
	customers     map[string]*stripe.Customer
}

func (b *fakeBilling) Subscription(id string) (*stripe.Subscription, error) {
	sub, ok := b.subscriptions[id]
	if !ok {
		return nil, fmt.Errorf("no such subscription %s", id)
	}
	return sub, nil
}

func (b *fakeBilling) Customer(id string) (*stripe.Customer, error) {
	cust, ok := b.customers[id]
	if !ok {
		return nil, fmt.Errorf("no such customer %s", id)
	}
	return cust, nil
}

func newTestRouter(store Store, billing BillingAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := &Handler{Store: store, Billing: billing, Log: zerolog.Nop()}
	r := gin.New()
	r.POST("/webhook", h.Webhook)
	return r
}

// signPayload computes a Stripe-Signature header for the payload.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(t *testing.T, r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func setupWebhookEnv(t *testing.T) {
	t.Helper()
	config.STRIPE_SECRET_KEY = "sk_test_dummy"
	config.STRIPE_WEBHOOK_SECRET = testWebhookSecret
}

func subscriptionCreatedPayload(eventID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "customer.subscription.created",
		"data": {
			"object": {
				"id": "sub_100",
				"status": "active",
				"customer": "cus_100",
				"metadata": {"planName": "EXTRA", "billingCycle": "monthly"},
				"items": {"data": [{"price": {"id": "price_1", "unit_amount": 17000}}]},
				"start_date": 1767225600,
				"current_period_end": 1769904000
			}
		}
	}`, eventID))
}

func TestWebhookSubscriptionCreated(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	store.usersByEmail["buyer@example.com"] = &users.User{UID: "uid-100", Email: "buyer@example.com"}

	billing := &fakeBilling{
		customers: map[string]*stripe.Customer{
			"cus_100": {ID: "cus_100", Email: "buyer@example.com"},
		},
	}

	r := newTestRouter(store, billing)
	payload := subscriptionCreatedPayload("evt_1")

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())

	require.Len(t, store.created, 1)
	rec := store.created[0]
	assert.Equal(t, "uid-100", rec.UserUID)
	assert.Equal(t, "EXTRA", rec.PlanName)
	assert.Equal(t, "monthly", rec.PlanBillingCycle)
	assert.Equal(t, 170.0, rec.PlanPrice)
	assert.Equal(t, subscriptions.StatusActive, rec.Status)
	require.NotNil(t, rec.StripeSubscriptionID)
	assert.Equal(t, "sub_100", *rec.StripeSubscriptionID)

	assert.True(t, store.processed["evt_1"], "event should be marked processed")
}

func TestWebhookInvalidSignature(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	r := newTestRouter(store, &fakeBilling{})
	payload := subscriptionCreatedPayload("evt_2")

	w := postWebhook(t, r, payload, signPayload(payload, "whsec_wrong"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.created)
	assert.Empty(t, store.processed)
}

func TestWebhookDuplicateEventIsSkipped(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	store.processed["evt_3"] = true
	store.usersByEmail["buyer@example.com"] = &users.User{UID: "uid-100", Email: "buyer@example.com"}

	billing := &fakeBilling{
		customers: map[string]*stripe.Customer{
			"cus_100": {ID: "cus_100", Email: "buyer@example.com"},
		},
	}

	r := newTestRouter(store, billing)
	payload := subscriptionCreatedPayload("evt_3")

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.created, "replayed event must not create a second record")
}

func TestWebhookDuplicateSubscriptionIsSkipped(t *testing.T) {
	setupWebhookEnv(t)

	subID := "sub_100"
	custID := "cus_100"
	store := newFakeStore()
	store.usersByEmail["buyer@example.com"] = &users.User{UID: "uid-100", Email: "buyer@example.com"}
	store.subs = []subscriptions.UserSubscription{{
		UserUID:              "uid-100",
		StripeSubscriptionID: &subID,
		StripeCustomerID:     &custID,
		CreatedAt:            time.Now().Add(-time.Hour),
	}}

	billing := &fakeBilling{
		customers: map[string]*stripe.Customer{
			"cus_100": {ID: "cus_100", Email: "buyer@example.com"},
		},
	}

	r := newTestRouter(store, billing)
	payload := subscriptionCreatedPayload("evt_4")

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.created)
	assert.True(t, store.processed["evt_4"])
}

func TestWebhookRecentSubscriptionWindow(t *testing.T) {
	setupWebhookEnv(t)

	otherSub := "sub_other"
	custID := "cus_100"
	store := newFakeStore()
	store.usersByEmail["buyer@example.com"] = &users.User{UID: "uid-100", Email: "buyer@example.com"}
	// A different subscription for the same customer, created moments ago:
	// the checkout/created race.
	store.subs = []subscriptions.UserSubscription{{
		UserUID:              "uid-100",
		StripeSubscriptionID: &otherSub,
		StripeCustomerID:     &custID,
		CreatedAt:            time.Now().Add(-time.Minute),
	}}

	billing := &fakeBilling{
		customers: map[string]*stripe.Customer{
			"cus_100": {ID: "cus_100", Email: "buyer@example.com"},
		},
	}

	r := newTestRouter(store, billing)
	payload := subscriptionCreatedPayload("evt_5")

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.created)
}

func TestWebhookCheckoutCompleted(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	store.usersByEmail["buyer@example.com"] = &users.User{UID: "uid-100", Email: "buyer@example.com"}

	billing := &fakeBilling{
		subscriptions: map[string]*stripe.Subscription{
			"sub_200": {
				ID:     "sub_200",
				Status: "active",
				Customer: &stripe.Customer{ID: "cus_100"},
				Metadata: map[string]string{"planName": "BASE", "billingCycle": "yearly"},
				Items: &stripe.SubscriptionItemList{
					Data: []*stripe.SubscriptionItem{
						{Price: &stripe.Price{ID: "price_2", UnitAmount: 90000}},
					},
				},
				StartDate:        time.Now().Unix(),
				CurrentPeriodEnd: time.Now().AddDate(1, 0, 0).Unix(),
			},
		},
		customers: map[string]*stripe.Customer{
			"cus_100": {ID: "cus_100", Email: "buyer@example.com"},
		},
	}

	r := newTestRouter(store, billing)
	payload := []byte(`{
		"id": "evt_6",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "subscription": "sub_200"}}
	}`)

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, "BASE", store.created[0].PlanName)
	assert.Equal(t, "yearly", store.created[0].PlanBillingCycle)
	assert.Equal(t, 900.0, store.created[0].PlanPrice)
	assert.False(t, store.created[0].HasExtraProdData)
}

func TestWebhookSubscriptionUpdated(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	r := newTestRouter(store, &fakeBilling{})

	payload := []byte(`{
		"id": "evt_7",
		"type": "customer.subscription.updated",
		"data": {"object": {"id": "sub_100", "status": "past_due", "current_period_end": 1769904000}}
	}`)

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, store.updates, "sub_100")
	assert.Equal(t, subscriptions.StatusCancelled, store.updates["sub_100"]["status"])
	assert.Equal(t, time.Unix(1769904000, 0), store.updates["sub_100"]["end_date"])
}

func TestWebhookSubscriptionDeleted(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	r := newTestRouter(store, &fakeBilling{})

	payload := []byte(`{
		"id": "evt_8",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_100", "status": "canceled"}}
	}`)

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, store.updates, "sub_100")
	assert.Equal(t, map[string]interface{}{"status": subscriptions.StatusCancelled}, store.updates["sub_100"])
}

func TestWebhookUnhandledEventStillAcknowledged(t *testing.T) {
	setupWebhookEnv(t)

	store := newFakeStore()
	r := newTestRouter(store, &fakeBilling{})

	payload := []byte(`{"id": "evt_9", "type": "invoice.paid", "data": {"object": {}}}`)

	w := postWebhook(t, r, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.processed["evt_9"])
}
