package subscriptions

import (
	"bytes"
	"encoding/json"
	"errors"

	"villma-portal/internal/domain/subscriptions"
)

// decodeCredentials parses the credentials payload for the given shop
// type. Sending fields from another type's shape is rejected by the
// strict decoder, so a subscription can never hold a mixed set.
func decodeCredentials(ecommerceType string, raw json.RawMessage) (subscriptions.Credentials, error) {
	if len(raw) == 0 {
		return nil, errors.New("Missing credentials")
	}

	dec := func(v interface{}) error {
		d := json.NewDecoder(bytes.NewReader(raw))
		d.DisallowUnknownFields()
		return d.Decode(v)
	}

	switch ecommerceType {
	case subscriptions.EcommerceCustom:
		var in struct {
			APIBaseURL string `json:"apiBaseUrl"`
			APIKey     string `json:"apiKey"`
		}
		if err := dec(&in); err != nil {
			return nil, errors.New("Invalid credentials for custom shop")
		}
		return subscriptions.CustomCredentials{APIBaseURL: in.APIBaseURL, APIKey: in.APIKey}, nil

	case subscriptions.EcommerceShopify:
		var in struct {
			ShopDomain   string `json:"shopDomain"`
			ClientID     string `json:"clientId"`
			ClientSecret string `json:"clientSecret"`
		}
		if err := dec(&in); err != nil {
			return nil, errors.New("Invalid credentials for shopify shop")
		}
		return subscriptions.ShopifyCredentials{ShopDomain: in.ShopDomain, ClientID: in.ClientID, ClientSecret: in.ClientSecret}, nil

	case subscriptions.EcommerceWooCommerce:
		var in struct {
			StoreURL       string `json:"storeUrl"`
			ConsumerKey    string `json:"consumerKey"`
			ConsumerSecret string `json:"consumerSecret"`
		}
		if err := dec(&in); err != nil {
			return nil, errors.New("Invalid credentials for woocommerce shop")
		}
		return subscriptions.WooCommerceCredentials{StoreURL: in.StoreURL, ConsumerKey: in.ConsumerKey, ConsumerSecret: in.ConsumerSecret}, nil

	case subscriptions.EcommercePrestaShop:
		var in struct {
			StoreURL string `json:"storeUrl"`
			APIKey   string `json:"apiKey"`
		}
		if err := dec(&in); err != nil {
			return nil, errors.New("Invalid credentials for prestashop shop")
		}
		return subscriptions.PrestaShopCredentials{StoreURL: in.StoreURL, APIKey: in.APIKey}, nil
	}

	return nil, errors.New("Unknown ecommerce type")
}
