package subscriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCredentialsClearsOtherGroups(t *testing.T) {
	var sub UserSubscription

	sub.SetCredentials(ShopifyCredentials{
		ShopDomain:   "demo.myshopify.com",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
	})
	assert.Equal(t, EcommerceShopify, sub.EcommerceType)
	assert.Equal(t, "demo.myshopify.com", sub.ShopDomain)

	sub.SetCredentials(WooCommerceCredentials{
		StoreURL:       "https://shop.example.com",
		ConsumerKey:    "ck_1",
		ConsumerSecret: "cs_1",
	})

	assert.Equal(t, EcommerceWooCommerce, sub.EcommerceType)
	assert.Equal(t, "https://shop.example.com", sub.StoreURL)

	// The shopify group must be gone.
	assert.Empty(t, sub.ShopDomain)
	assert.Empty(t, sub.ClientID)
	assert.Empty(t, sub.ClientSecret)
}

func TestSetCredentialsNilClearsEverything(t *testing.T) {
	var sub UserSubscription
	sub.SetCredentials(CustomCredentials{APIBaseURL: "https://api.example.com", APIKey: "k"})

	sub.SetCredentials(nil)

	assert.Empty(t, sub.EcommerceType)
	assert.Empty(t, sub.APIBaseURL)
	assert.Empty(t, sub.APIKey)

	_, ok := sub.Credentials()
	assert.False(t, ok)
}

func TestCredentialsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"custom", CustomCredentials{APIBaseURL: "https://api.example.com", APIKey: "key"}},
		{"shopify", ShopifyCredentials{ShopDomain: "d.myshopify.com", ClientID: "id", ClientSecret: "sec"}},
		{"woocommerce", WooCommerceCredentials{StoreURL: "https://s.example", ConsumerKey: "ck", ConsumerSecret: "cs"}},
		{"prestashop", PrestaShopCredentials{StoreURL: "https://p.example", APIKey: "key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sub UserSubscription
			sub.SetCredentials(tt.creds)

			got, ok := sub.Credentials()
			require.True(t, ok)
			assert.Equal(t, tt.creds, got)
		})
	}
}

func TestSettingsComplete(t *testing.T) {
	base := UserSubscription{
		WebshopURL: "https://shop.example.com",
		APIToken:   "tok",
	}

	t.Run("missing credentials", func(t *testing.T) {
		sub := base
		assert.False(t, sub.SettingsComplete())
	})

	t.Run("partial credential group", func(t *testing.T) {
		sub := base
		sub.SetCredentials(ShopifyCredentials{ShopDomain: "d.myshopify.com"})
		assert.False(t, sub.SettingsComplete())
	})

	t.Run("complete", func(t *testing.T) {
		sub := base
		sub.SetCredentials(PrestaShopCredentials{StoreURL: "https://p.example", APIKey: "key"})
		assert.True(t, sub.SettingsComplete())
	})

	t.Run("missing webshop url", func(t *testing.T) {
		sub := base
		sub.WebshopURL = ""
		sub.SetCredentials(PrestaShopCredentials{StoreURL: "https://p.example", APIKey: "key"})
		assert.False(t, sub.SettingsComplete())
	})

	t.Run("missing api token", func(t *testing.T) {
		sub := base
		sub.APIToken = ""
		sub.SetCredentials(PrestaShopCredentials{StoreURL: "https://p.example", APIKey: "key"})
		assert.False(t, sub.SettingsComplete())
	})
}
