package plans

type Plan struct {
	ID               uint    `gorm:"primaryKey" json:"-"`
	Name             string  `json:"name"`         // "BASE" | "EXTRA"
	BillingCycle     string  `json:"billingCycle"` // "monthly" | "yearly"
	Price            float64 `json:"price"`
	Features         string  `gorm:"type:text" json:"-"` // JSON-encoded []string
	Description      string  `json:"description"`
	StripePriceID    string  `gorm:"column:stripe_price_id;index:idx_plans_stripe_price_id" json:"-"`
	HasExtraProdData bool    `gorm:"column:has_extra_prod_data" json:"hasExtraProdData"`
}
