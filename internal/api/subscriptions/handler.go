package subscriptions

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"villma-portal/database"
	"villma-portal/internal/domain/plans"
	"villma-portal/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

func canAccess(c *gin.Context, ownerUID string) bool {
	return c.GetString("role") == "admin" || c.GetString("uid") == ownerUID
}

func ListForUser(c *gin.Context) {
	uid := c.Query("userId")
	if uid == "" {
		uid = c.GetString("uid")
	}
	if !canAccess(c, uid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var subs []subscriptions.UserSubscription
	if err := database.DB.Where("user_uid = ?", uid).Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, buildSubscriptionDTO(s))
	}
	c.JSON(http.StatusOK, out)
}

func GetByID(c *gin.Context) {
	var sub subscriptions.UserSubscription
	if err := database.DB.First(&sub, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	if !canAccess(c, sub.UserUID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, buildSubscriptionDTO(sub))
}

// Create records a subscription directly, without going through
// checkout. The record starts pending until billing confirms it.
func Create(c *gin.Context) {
	var body struct {
		PlanName     string `json:"planName" binding:"required"`
		BillingCycle string `json:"billingCycle" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var plan plans.Plan
	err := database.DB.Where("name = ? AND billing_cycle = ?", body.PlanName, body.BillingCycle).First(&plan).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan or billing cycle"})
		return
	}

	now := time.Now()
	end := now.AddDate(0, 1, 0)
	if plan.BillingCycle == plans.CycleYearly {
		end = now.AddDate(1, 0, 0)
	}

	sub := subscriptions.UserSubscription{
		UserUID:          uid,
		PlanID:           strconv.FormatUint(uint64(plan.ID), 10),
		PlanName:         plan.Name,
		PlanBillingCycle: plan.BillingCycle,
		PlanPrice:        plan.Price,
		PlanDescription:  plan.Description,
		HasExtraProdData: plan.HasExtraProdData,
		Status:           subscriptions.StatusPending,
		StartDate:        now,
		EndDate:          end,
	}

	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, buildSubscriptionDTO(sub))
}

// UpdateSettings changes the webshop integration settings of a
// subscription. Only the settings fields are writable here; plan and
// billing fields stay under webhook control.
func UpdateSettings(c *gin.Context) {
	var sub subscriptions.UserSubscription
	if err := database.DB.First(&sub, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	if !canAccess(c, sub.UserUID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var body struct {
		WebshopURL         *string         `json:"webshopUrl"`
		EcommerceType      *string         `json:"ecommerceType"`
		Credentials        json.RawMessage `json:"credentials"`
		RegenerateAPIToken bool            `json:"regenerateApiToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if body.WebshopURL != nil {
		sub.WebshopURL = *body.WebshopURL
	}

	if body.EcommerceType != nil {
		creds, err := decodeCredentials(*body.EcommerceType, body.Credentials)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sub.SetCredentials(creds)
	} else if len(body.Credentials) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ecommerceType is required when sending credentials"})
		return
	}

	if sub.APIToken == "" || body.RegenerateAPIToken {
		sub.APIToken = subscriptions.GenerateAPIToken()
	}

	if err := database.DB.Save(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, buildSubscriptionDTO(sub))
}

// GetByStripeCustomer lists the subscriptions tied to a Stripe
// customer id. Admin only.
func GetByStripeCustomer(c *gin.Context) {
	customerID := c.Param("customerId")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing customer id"})
		return
	}

	var subs []subscriptions.UserSubscription
	if err := database.DB.Where("stripe_customer_id = ?", customerID).Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	out := make([]SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, buildSubscriptionDTO(s))
	}
	c.JSON(http.StatusOK, out)
}
