package billing

import (
	"net/http"

	"villma-portal/config"
	"villma-portal/database"
	"villma-portal/internal/domain/users"
	stripeinfra "villma-portal/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// CreateCheckoutSession opens a hosted checkout for a plan/cycle pair.
// Metadata embeds plan name, cycle and email so the webhook handler can
// reconstruct intent without re-querying the catalog.
func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PlanName     string `json:"planName"`
		BillingCycle string `json:"billingCycle"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PlanName == "" || body.BillingCycle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	priceID, ok := stripeinfra.NewPriceTable().PriceID(body.PlanName, body.BillingCycle)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan or billing cycle"})
		return
	}

	metadata := map[string]string{
		"planName":      body.PlanName,
		"billingCycle":  body.BillingCycle,
		"customerEmail": user.Email,
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL:    stripe.String(config.APP_URL + "/subscriptions?success=true&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(config.APP_URL + "/plans?canceled=true"),
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(user.Email),

		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},

		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String("required"),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}
