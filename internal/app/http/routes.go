package routes

import (
	adminapi "villma-portal/internal/api/admin"
	authapi "villma-portal/internal/api/auth"
	"villma-portal/internal/api/billing"
	"villma-portal/internal/api/commerce"
	"villma-portal/internal/api/configapi"
	"villma-portal/internal/api/plans"
	"villma-portal/internal/api/products"
	stripewebhooks "villma-portal/internal/api/stripewebhook"
	subscriptionsapi "villma-portal/internal/api/subscriptions"
	"villma-portal/internal/api/users"
	"villma-portal/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, webhook *stripewebhooks.Handler, shop *commerce.Handler) {
	// Webhook needs the raw body for signature checks, so it skips the
	// sanitizer entirely.
	r.POST("/webhook", webhook.Webhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/config", configapi.GetPublicConfig)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.GET("/users/by-email", users.GetUserByEmail)
	auth.GET("/users/:uid", users.GetUserProfile)
	auth.PATCH("/users/:uid", users.UpdateProfile)

	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/subscriptions", subscriptionsapi.ListForUser)
	auth.POST("/subscriptions", subscriptionsapi.Create)
	auth.GET("/subscriptions/:id", subscriptionsapi.GetByID)
	auth.PATCH("/subscriptions/:id/settings", subscriptionsapi.UpdateSettings)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.GET("/products", products.ListForUser)
	subscribed.POST("/products", products.Add)
	subscribed.PATCH("/products/:id", products.UpdateDescription)

	subscribed.POST("/commerce/shopify/token", shop.ShopifyToken)
	subscribed.POST("/commerce/shopify/products", shop.ShopifyProducts)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/subscriptions", adminapi.ListAllSubscriptions)
	admin.GET("/subscriptions/by-stripe-customer/:customerId", subscriptionsapi.GetByStripeCustomer)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/user/:uid", adminapi.GetUserDetails)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
