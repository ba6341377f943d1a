package subscriptions

// Ecommerce type discriminators.
const (
	EcommerceCustom      = "custom"
	EcommerceShopify     = "shopify"
	EcommerceWooCommerce = "woocommerce"
	EcommercePrestaShop  = "prestashop"
)

// Credentials is the tagged union of storefront credential shapes. The
// subscription row stores the fields flat; this type is how the rest of
// the code reads and writes them, so only one group can ever be set.
type Credentials interface {
	EcommerceType() string
	complete() bool
}

type CustomCredentials struct {
	APIBaseURL string `json:"apiBaseUrl"`
	APIKey     string `json:"apiKey"`
}

func (CustomCredentials) EcommerceType() string { return EcommerceCustom }
func (c CustomCredentials) complete() bool      { return c.APIBaseURL != "" && c.APIKey != "" }

type ShopifyCredentials struct {
	ShopDomain   string `json:"shopDomain"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

func (ShopifyCredentials) EcommerceType() string { return EcommerceShopify }
func (c ShopifyCredentials) complete() bool {
	return c.ShopDomain != "" && c.ClientID != "" && c.ClientSecret != ""
}

type WooCommerceCredentials struct {
	StoreURL       string `json:"storeUrl"`
	ConsumerKey    string `json:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret"`
}

func (WooCommerceCredentials) EcommerceType() string { return EcommerceWooCommerce }
func (c WooCommerceCredentials) complete() bool {
	return c.StoreURL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}

type PrestaShopCredentials struct {
	StoreURL string `json:"storeUrl"`
	APIKey   string `json:"apiKey"`
}

func (PrestaShopCredentials) EcommerceType() string { return EcommercePrestaShop }
func (c PrestaShopCredentials) complete() bool      { return c.StoreURL != "" && c.APIKey != "" }

// SetCredentials replaces the stored credential group. All groups are
// cleared first so switching ecommerce type cannot leave stale fields.
func (s *UserSubscription) SetCredentials(c Credentials) {
	s.APIBaseURL = ""
	s.APIKey = ""
	s.ShopDomain = ""
	s.ClientID = ""
	s.ClientSecret = ""
	s.StoreURL = ""
	s.ConsumerKey = ""
	s.ConsumerSecret = ""

	if c == nil {
		s.EcommerceType = ""
		return
	}
	s.EcommerceType = c.EcommerceType()

	switch v := c.(type) {
	case CustomCredentials:
		s.APIBaseURL = v.APIBaseURL
		s.APIKey = v.APIKey
	case ShopifyCredentials:
		s.ShopDomain = v.ShopDomain
		s.ClientID = v.ClientID
		s.ClientSecret = v.ClientSecret
	case WooCommerceCredentials:
		s.StoreURL = v.StoreURL
		s.ConsumerKey = v.ConsumerKey
		s.ConsumerSecret = v.ConsumerSecret
	case PrestaShopCredentials:
		s.StoreURL = v.StoreURL
		s.APIKey = v.APIKey
	}
}

// Credentials returns the populated group, if any.
func (s *UserSubscription) Credentials() (Credentials, bool) {
	switch s.EcommerceType {
	case EcommerceCustom:
		return CustomCredentials{APIBaseURL: s.APIBaseURL, APIKey: s.APIKey}, true
	case EcommerceShopify:
		return ShopifyCredentials{ShopDomain: s.ShopDomain, ClientID: s.ClientID, ClientSecret: s.ClientSecret}, true
	case EcommerceWooCommerce:
		return WooCommerceCredentials{StoreURL: s.StoreURL, ConsumerKey: s.ConsumerKey, ConsumerSecret: s.ConsumerSecret}, true
	case EcommercePrestaShop:
		return PrestaShopCredentials{StoreURL: s.StoreURL, APIKey: s.APIKey}, true
	}
	return nil, false
}

// SettingsComplete reports whether the integration can be used: an
// ecommerce type is chosen, its credential group is fully filled in, and
// the shared webshop URL + portal API token are present.
func (s *UserSubscription) SettingsComplete() bool {
	if s == nil || s.WebshopURL == "" || s.APIToken == "" {
		return false
	}
	creds, ok := s.Credentials()
	if !ok {
		return false
	}
	return creds.complete()
}
