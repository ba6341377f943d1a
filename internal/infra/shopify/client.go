package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// assumedTokenLifetime is used when the token endpoint omits expires_in.
const assumedTokenLifetime = 3600 * time.Second

// refreshBuffer forces a refresh when a cached token is about to expire.
const refreshBuffer = 60 * time.Second

type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

// Client talks to the commerce provider: client-credentials token grant
// plus a bounded GraphQL product search. Tokens are cached in-process per
// (store, client id); there is no eviction beyond lazy expiry, which is
// fine at this cardinality.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.Mutex
	cache map[string]cachedToken
}

func NewClient(httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		log:        logger,
		cache:      make(map[string]cachedToken),
	}
}

// NormalizeStoreDomain strips the scheme and any /admin/api/... suffix so
// pasted admin URLs work as store domains.
func NormalizeStoreDomain(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.Index(d, "/admin/api/"); i >= 0 {
		d = d[:i]
	}
	return strings.TrimSuffix(d, "/")
}

// AccessToken returns a cached token while its expiry is more than a
// minute away, otherwise requests a fresh one with the client-credentials
// grant and caches it.
func (c *Client) AccessToken(ctx context.Context, storeDomain, clientID, clientSecret string) (string, error) {
	domain := NormalizeStoreDomain(storeDomain)
	cacheKey := domain + "-" + clientID
	now := time.Now()

	c.mu.Lock()
	cached, ok := c.cache[cacheKey]
	c.mu.Unlock()
	if ok && cached.expiresAt.After(now.Add(refreshBuffer)) {
		return cached.accessToken, nil
	}

	tokenURL := fmt.Sprintf("https://%s/admin/oauth/access_token", domain)
	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("store", domain).Msg("token request failed")
		return "", fmt.Errorf("failed to fetch access token")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error().Int("status", resp.StatusCode).Str("store", domain).
			Str("body", string(body)).Msg("token endpoint returned non-2xx")
		return "", fmt.Errorf("failed to fetch access token")
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("no access token received")
	}

	lifetime := assumedTokenLifetime
	if tokenData.ExpiresIn > 0 {
		lifetime = time.Duration(tokenData.ExpiresIn) * time.Second
	}

	c.mu.Lock()
	c.cache[cacheKey] = cachedToken{
		accessToken: tokenData.AccessToken,
		expiresAt:   now.Add(lifetime),
	}
	c.mu.Unlock()

	return tokenData.AccessToken, nil
}

// sweepExpired drops tokens that are already past expiry.
func (c *Client) sweepExpired() {
	now := time.Now()
	c.mu.Lock()
	for key, tok := range c.cache {
		if !tok.expiresAt.After(now) {
			delete(c.cache, key)
		}
	}
	c.mu.Unlock()
}

type Product struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type graphqlProductsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID    string `json:"id"`
					Title string `json:"title"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
}

// graphqlEndpoint accepts either a full URL (stored by older settings
// panels) or a bare store domain.
func graphqlEndpoint(shopDomain string) string {
	if strings.HasPrefix(shopDomain, "http://") || strings.HasPrefix(shopDomain, "https://") {
		return shopDomain
	}
	return fmt.Sprintf("https://%s/admin/api/2024-01/graphql.json", NormalizeStoreDomain(shopDomain))
}

// SearchProducts issues a title-substring search, first 10 results. Any
// transport or non-2xx failure surfaces as one generic error; there are
// no retries.
func (c *Client) SearchProducts(ctx context.Context, shopDomain, accessToken, search string) ([]Product, error) {
	c.sweepExpired()

	query := fmt.Sprintf(`{
  products(first: 10, query: "title:*%s*") {
    edges {
      node {
        id
        title
      }
    }
  }
}`, search)

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphqlEndpoint(shopDomain), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create products request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("shop", shopDomain).Msg("product search failed")
		return nil, fmt.Errorf("failed to fetch products")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		c.log.Error().Int("status", resp.StatusCode).Str("shop", shopDomain).
			Str("body", string(errText)).Msg("product search returned non-2xx")
		return nil, fmt.Errorf("failed to fetch products")
	}

	var data graphqlProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	out := make([]Product, 0, len(data.Data.Products.Edges))
	for _, edge := range data.Data.Products.Edges {
		out = append(out, Product{ID: edge.Node.ID, Title: edge.Node.Title})
	}
	return out, nil
}
