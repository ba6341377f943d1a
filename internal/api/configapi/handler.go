package configapi

import (
	"net/http"

	"villma-portal/config"

	"github.com/gin-gonic/gin"
)

// GetPublicConfig exposes the publishable Stripe key for the frontend.
// Nothing secret leaves through here.
func GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stripePublishableKey": config.STRIPE_PUBLISHABLE_KEY,
	})
}
