package subscriptions

import (
	"time"

	"villma-portal/internal/domain/subscriptions"
)

type SubscriptionDTO struct {
	ID               uint      `json:"id"`
	UserUID          string    `json:"userUid"`
	PlanName         string    `json:"planName"`
	BillingCycle     string    `json:"billingCycle"`
	Price            float64   `json:"price"`
	Description      string    `json:"description,omitempty"`
	HasExtraProdData bool      `json:"hasExtraProdData"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`

	WebshopURL       string                 `json:"webshopUrl"`
	APIToken         string                 `json:"apiToken"`
	EcommerceType    string                 `json:"ecommerceType"`
	Credentials      map[string]string      `json:"credentials,omitempty"`
	SettingsComplete bool                   `json:"settingsComplete"`
}

func buildSubscriptionDTO(s subscriptions.UserSubscription) SubscriptionDTO {
	dto := SubscriptionDTO{
		ID:               s.ID,
		UserUID:          s.UserUID,
		PlanName:         s.PlanName,
		BillingCycle:     s.PlanBillingCycle,
		Price:            s.PlanPrice,
		Description:      s.PlanDescription,
		HasExtraProdData: s.HasExtraProdData,
		Status:           s.Status,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		WebshopURL:       s.WebshopURL,
		APIToken:         s.APIToken,
		EcommerceType:    s.EcommerceType,
		SettingsComplete: s.SettingsComplete(),
	}

	if creds, ok := s.Credentials(); ok {
		switch c := creds.(type) {
		case subscriptions.CustomCredentials:
			dto.Credentials = map[string]string{"apiBaseUrl": c.APIBaseURL, "apiKey": c.APIKey}
		case subscriptions.ShopifyCredentials:
			dto.Credentials = map[string]string{"shopDomain": c.ShopDomain, "clientId": c.ClientID, "clientSecret": c.ClientSecret}
		case subscriptions.WooCommerceCredentials:
			dto.Credentials = map[string]string{"storeUrl": c.StoreURL, "consumerKey": c.ConsumerKey, "consumerSecret": c.ConsumerSecret}
		case subscriptions.PrestaShopCredentials:
			dto.Credentials = map[string]string{"storeUrl": c.StoreURL, "apiKey": c.APIKey}
		}
	}

	return dto
}
