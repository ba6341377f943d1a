package main

import (
	"os"
	"time"

	"villma-portal/config"
	"villma-portal/database"
	"villma-portal/internal/api/commerce"
	stripewebhooks "villma-portal/internal/api/stripewebhook"
	routes "villma-portal/internal/app/http"
	"villma-portal/internal/infra/shopify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	webhook := stripewebhooks.NewHandler(database.DB, logger)
	shop := commerce.NewHandler(shopify.NewClient(nil, logger), logger)

	routes.RegisterRoutes(r, webhook, shop)

	r.Run(":" + config.PORT)
}
