package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"villma-portal/internal/domain/billing"
	"villma-portal/internal/domain/plans"
	"villma-portal/internal/domain/products"
	"villma-portal/internal/domain/subscriptions"
	"villma-portal/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&subscriptions.UserSubscription{},
		&products.UserProduct{},
		&billing.WebhookEvent{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := seedPlans(DB); err != nil {
		log.Fatal("❌ Plan seeding error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

type seedPlan struct {
	name        string
	cycle       string
	price       float64
	priceEnv    string
	features    []string
	description string
}

// seedPlans fills the catalog on first boot. The catalog is read-only for
// the app; the admin sync endpoint can refresh prices from Stripe later.
func seedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&plans.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	baseFeatures := []string{
		"Intelligent scan of your store",
		"Chatbot agent connected to Villma Server",
		"Specialized Agent for pre-sales",
		"Specialized Agent for sales",
		"Specialized Agent for customer support",
	}
	extraFeatures := []string{
		"Everything in BASE Plan",
		"Consultant Agent",
		"Super Sales Agent",
	}

	seeds := []seedPlan{
		{plans.NameBase, plans.CycleMonthly, 90, "STRIPE_BASE_MONTHLY_PRICE_ID", baseFeatures, "Good for all levels of business"},
		{plans.NameBase, plans.CycleYearly, 900, "STRIPE_BASE_YEARLY_PRICE_ID", append(baseFeatures, "2 months free (annual savings)"), "Good for all levels of business"},
		{plans.NameExtra, plans.CycleMonthly, 170, "STRIPE_EXTRA_MONTHLY_PRICE_ID", extraFeatures, "For complex products and enhanced sales support"},
		{plans.NameExtra, plans.CycleYearly, 1700, "STRIPE_EXTRA_YEARLY_PRICE_ID", append(extraFeatures, "2 months free (annual savings)"), "For complex products and enhanced sales support"},
	}

	for _, s := range seeds {
		features, err := json.Marshal(s.features)
		if err != nil {
			return err
		}
		plan := plans.Plan{
			Name:             s.name,
			BillingCycle:     s.cycle,
			Price:            s.price,
			Features:         string(features),
			Description:      s.description,
			StripePriceID:    os.Getenv(s.priceEnv),
			HasExtraProdData: plans.HasExtraProdData(s.name),
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}
