package middleware

import (
	"net/http"
	"time"

	"villma-portal/database"
	"villma-portal/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription gates routes behind an active, unexpired
// subscription of the authenticated user.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var sub subscriptions.UserSubscription
		err := database.DB.
			Where("user_uid = ? AND status = ?", uid, subscriptions.StatusActive).
			Order("end_date DESC").
			First(&sub).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if time.Now().After(sub.EndDate) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
