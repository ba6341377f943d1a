package subscriptions

import (
	"encoding/json"
	"testing"

	domain "villma-portal/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCredentials(t *testing.T) {
	tests := []struct {
		name          string
		ecommerceType string
		payload       string
		want          domain.Credentials
		wantErr       bool
	}{
		{
			name:          "custom",
			ecommerceType: "custom",
			payload:       `{"apiBaseUrl": "https://api.example.com", "apiKey": "k"}`,
			want:          domain.CustomCredentials{APIBaseURL: "https://api.example.com", APIKey: "k"},
		},
		{
			name:          "shopify",
			ecommerceType: "shopify",
			payload:       `{"shopDomain": "d.myshopify.com", "clientId": "id", "clientSecret": "sec"}`,
			want:          domain.ShopifyCredentials{ShopDomain: "d.myshopify.com", ClientID: "id", ClientSecret: "sec"},
		},
		{
			name:          "woocommerce",
			ecommerceType: "woocommerce",
			payload:       `{"storeUrl": "https://s.example", "consumerKey": "ck", "consumerSecret": "cs"}`,
			want:          domain.WooCommerceCredentials{StoreURL: "https://s.example", ConsumerKey: "ck", ConsumerSecret: "cs"},
		},
		{
			name:          "prestashop",
			ecommerceType: "prestashop",
			payload:       `{"storeUrl": "https://p.example", "apiKey": "k"}`,
			want:          domain.PrestaShopCredentials{StoreURL: "https://p.example", APIKey: "k"},
		},
		{
			name:          "fields from another type rejected",
			ecommerceType: "shopify",
			payload:       `{"shopDomain": "d.myshopify.com", "consumerKey": "ck"}`,
			wantErr:       true,
		},
		{
			name:          "unknown type",
			ecommerceType: "magento",
			payload:       `{"apiKey": "k"}`,
			wantErr:       true,
		},
		{
			name:          "missing payload",
			ecommerceType: "custom",
			payload:       "",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCredentials(tt.ecommerceType, json.RawMessage(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
