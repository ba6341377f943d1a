package plans

import (
	"encoding/json"
	"net/http"

	"villma-portal/config"
	"villma-portal/database"
	"villma-portal/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

type planDTO struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	BillingCycle     string   `json:"billingCycle"`
	Price            float64  `json:"price"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	HasExtraProdData bool     `json:"hasExtraProdData"`
}

func buildPlanDTO(p plans.Plan) planDTO {
	var features []string
	if p.Features != "" {
		_ = json.Unmarshal([]byte(p.Features), &features)
	}
	return planDTO{
		ID:               p.ID,
		Name:             p.Name,
		BillingCycle:     p.BillingCycle,
		Price:            p.Price,
		Description:      p.Description,
		Features:         features,
		HasExtraProdData: p.HasExtraProdData,
	}
}

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.Order("price ASC").Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	out := make([]planDTO, 0, len(plansList))
	for _, p := range plansList {
		out = append(out, buildPlanDTO(p))
	}

	c.JSON(http.StatusOK, out)
}

// SyncPlansFromStripe walks the active recurring prices and refreshes
// the local catalog's price ids and amounts. Plan identity comes from
// price metadata (plan + cycle), so a rotated price id lands on the
// same catalog row.
func SyncPlansFromStripe(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")

	it := price.List(params)

	synced := 0
	skipped := 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil {
			skipped++
			continue
		}

		planName := ""
		billingCycle := ""
		if p.Metadata != nil {
			planName = p.Metadata["planName"]
			billingCycle = p.Metadata["billingCycle"]
		}
		if !plans.ValidName(planName) || !plans.ValidCycle(billingCycle) {
			skipped++
			continue
		}

		var existing plans.Plan
		err := database.DB.Where("name = ? AND billing_cycle = ?", planName, billingCycle).First(&existing).Error
		if err != nil {
			skipped++
			continue
		}

		existing.Price = float64(p.UnitAmount) / 100.0
		existing.StripePriceID = p.ID
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
			return
		}
		synced++
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"synced": synced, "skipped": skipped})
}
