package products

import "time"

// UserProduct is a storefront catalog item the user picked and annotated.
// The ID is the external product id from the commerce provider.
type UserProduct struct {
	ID                     string    `gorm:"primaryKey" json:"id"`
	Title                  string    `json:"title"`
	UserUID                string    `gorm:"column:user_uid;index:idx_products_user_uid" json:"userId"`
	UserSubscriptionPlanID string    `gorm:"column:user_subscription_plan_id" json:"userSubscriptionPlanId"`
	Description            string    `gorm:"type:text" json:"description"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
