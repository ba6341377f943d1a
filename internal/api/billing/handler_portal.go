package billing

import (
	"net/http"

	"villma-portal/config"
	"villma-portal/database"
	"villma-portal/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalsession "github.com/stripe/stripe-go/v75/billingportal/session"
)

// CreateBillingPortal returns a Stripe customer portal URL for the
// caller's most recent subscription.
func CreateBillingPortal(c *gin.Context) {
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

	var sub subscriptions.UserSubscription
	err := database.DB.
		Where("user_uid = ? AND stripe_customer_id IS NOT NULL", uid).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil || sub.StripeCustomerID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No billing account found for this user"})
		return
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*sub.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/subscriptions"),
	}

	s, err := portalsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}
