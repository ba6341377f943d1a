package subscriptions

import "time"

// Lifecycle statuses. Cancelled is terminal; rows are never deleted.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

type UserSubscription struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserUID string `gorm:"column:user_uid;index:idx_subscriptions_user_uid" json:"userId"`

	// Plan snapshot taken at checkout. The catalog may change later; the
	// subscription keeps what was sold.
	PlanID           string  `json:"planId"`
	PlanName         string  `json:"planName"`
	PlanBillingCycle string  `json:"planBillingCycle"`
	PlanPrice        float64 `json:"planPrice"`
	PlanDescription  string  `json:"planDescription"`
	HasExtraProdData bool    `gorm:"column:has_extra_prod_data" json:"hasExtraProdData"`

	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_subscriptions_stripe_sub_id" json:"stripeSubscriptionId,omitempty"`
	StripeCustomerID     *string `gorm:"column:stripe_customer_id;index:idx_subscriptions_stripe_customer_id" json:"stripeCustomerId,omitempty"`

	// Portal-side integration settings, shared by every ecommerce type.
	WebshopURL string `gorm:"column:webshop_url" json:"webshopUrl,omitempty"`
	APIToken   string `gorm:"column:api_token" json:"apiToken,omitempty"`

	// Credential union, discriminated by EcommerceType. At most one group
	// is populated; SetCredentials keeps that invariant.
	EcommerceType  string `gorm:"column:ecommerce_type" json:"ecommerceType,omitempty"`
	APIBaseURL     string `gorm:"column:api_base_url" json:"apiBaseUrl,omitempty"`
	APIKey         string `gorm:"column:api_key" json:"apiKey,omitempty"`
	ShopDomain     string `gorm:"column:shop_domain" json:"shopDomain,omitempty"`
	ClientID       string `gorm:"column:client_id" json:"clientId,omitempty"`
	ClientSecret   string `gorm:"column:client_secret" json:"clientSecret,omitempty"`
	StoreURL       string `gorm:"column:store_url" json:"storeUrl,omitempty"`
	ConsumerKey    string `gorm:"column:consumer_key" json:"consumerKey,omitempty"`
	ConsumerSecret string `gorm:"column:consumer_secret" json:"consumerSecret,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
