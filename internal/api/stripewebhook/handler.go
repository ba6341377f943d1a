package stripewebhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"villma-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
)

// Handler reconciles payment-provider webhook events into local
// subscription records. Delivery is at-most-once by design: handler
// failures are logged and swallowed, the event id is recorded as
// processed, and the provider is never asked to redeliver.
type Handler struct {
	Store   Store
	Billing BillingAPI
	Log     zerolog.Logger
}

func NewHandler(db *gorm.DB, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:   NewStore(db),
		Billing: stripeBilling{},
		Log:     logger,
	}
}

// Webhook handles POST /webhook.
func (h *Handler) Webhook(c *gin.Context) {
	// Stripe key is required for follow-up API calls (subscription.Get,
	// customer.Get).
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_SECRET_KEY not configured"})
		return
	}

	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.Log.Warn().Err(err).Msg("stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	h.Log.Info().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("received webhook event")

	processed, err := h.Store.EventProcessed(event.ID)
	if err != nil {
		h.Log.Error().Err(err).Str("event_id", event.ID).Msg("idempotency lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}
	if processed {
		h.Log.Info().Str("event_id", event.ID).Msg("webhook event already processed, skipping")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.dispatch(event)

	if err := h.Store.MarkEventProcessed(event.ID); err != nil {
		h.Log.Error().Err(err).Str("event_id", event.ID).Msg("failed to record processed event")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// dispatch routes the event to its handler. Errors never abort the HTTP
// acknowledgement; each one is logged here and the event still counts as
// processed.
func (h *Handler) dispatch(event stripe.Event) {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("failed to parse checkout session")
			return
		}
		if err := h.handleCheckoutCompleted(&session); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("checkout.session.completed handler failed")
		}

	case "customer.subscription.created":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("failed to parse subscription")
			return
		}
		if err := h.handleSubscriptionCreated(&sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("customer.subscription.created handler failed")
		}

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("failed to parse subscription")
			return
		}
		if err := h.handleSubscriptionUpdated(&sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("customer.subscription.updated handler failed")
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("failed to parse subscription")
			return
		}
		if err := h.handleSubscriptionDeleted(&sub); err != nil {
			h.Log.Error().Err(err).Str("event_id", event.ID).Msg("customer.subscription.deleted handler failed")
		}

	default:
		h.Log.Info().Str("type", string(event.Type)).Msg("unhandled event type")
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
