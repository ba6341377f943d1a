package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonDecode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func TestNormalizeStoreDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"demo.myshopify.com", "demo.myshopify.com"},
		{"https://demo.myshopify.com", "demo.myshopify.com"},
		{"http://demo.myshopify.com/", "demo.myshopify.com"},
		{"https://demo.myshopify.com/admin/api/2024-01/graphql.json", "demo.myshopify.com"},
		{"  demo.myshopify.com  ", "demo.myshopify.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStoreDomain(tt.in), "input %q", tt.in)
	}
}

func newTokenServer(t *testing.T, expiresIn int64, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/oauth/access_token" {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		*calls++
		w.Header().Set("Content-Type", "application/json")
		if expiresIn > 0 {
			fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, *calls, expiresIn)
			return
		}
		fmt.Fprintf(w, `{"access_token":"tok-%d"}`, *calls)
	}))
}

func TestAccessTokenIsCached(t *testing.T) {
	calls := 0
	srv := newTokenServer(t, 3600, &calls)
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())
	domain := strings.TrimPrefix(srv.URL, "https://")

	tok1, err := client.AccessToken(context.Background(), domain, "cid", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok1)

	tok2, err := client.AccessToken(context.Background(), domain, "cid", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok2)
	assert.Equal(t, 1, calls, "second call should hit the cache")
}

func TestAccessTokenRefreshesNearExpiry(t *testing.T) {
	// 30s lifetime is inside the refresh buffer, so the cached token is
	// never considered fresh.
	calls := 0
	srv := newTokenServer(t, 30, &calls)
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())
	domain := strings.TrimPrefix(srv.URL, "https://")

	_, err := client.AccessToken(context.Background(), domain, "cid", "secret")
	require.NoError(t, err)

	tok2, err := client.AccessToken(context.Background(), domain, "cid", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok2)
	assert.Equal(t, 2, calls)
}

func TestAccessTokenCacheIsPerClientID(t *testing.T) {
	calls := 0
	srv := newTokenServer(t, 3600, &calls)
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())
	domain := strings.TrimPrefix(srv.URL, "https://")

	_, err := client.AccessToken(context.Background(), domain, "cid-a", "secret")
	require.NoError(t, err)
	_, err = client.AccessToken(context.Background(), domain, "cid-b", "secret")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestAccessTokenNon2xx(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())
	domain := strings.TrimPrefix(srv.URL, "https://")

	_, err := client.AccessToken(context.Background(), domain, "cid", "bad")
	require.Error(t, err)
	// The credentials must not leak into the error.
	assert.NotContains(t, err.Error(), "bad")
}

func TestSearchProducts(t *testing.T) {
	var gotToken string
	var gotQuery string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")

		var body struct {
			Query string `json:"query"`
		}
		require.NoError(t, jsonDecode(r, &body))
		gotQuery = body.Query

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"products":{"edges":[
			{"node":{"id":"gid://shopify/Product/1","title":"Red Chair"}},
			{"node":{"id":"gid://shopify/Product/2","title":"Red Table"}}
		]}}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())

	// Full endpoint URLs from older settings panels are passed through.
	products, err := client.SearchProducts(context.Background(), srv.URL, "tok", "Red")
	require.NoError(t, err)

	assert.Equal(t, "tok", gotToken)
	assert.Contains(t, gotQuery, `title:*Red*`)
	assert.Contains(t, gotQuery, "first: 10")

	require.Len(t, products, 2)
	assert.Equal(t, Product{ID: "gid://shopify/Product/1", Title: "Red Chair"}, products[0])
	assert.Equal(t, Product{ID: "gid://shopify/Product/2", Title: "Red Table"}, products[1])
}

func TestSearchProductsNon2xx(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())

	_, err := client.SearchProducts(context.Background(), srv.URL, "tok", "Red")
	require.Error(t, err)
}

func TestSearchProductsEmptyResult(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"products":{"edges":[]}}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), zerolog.Nop())

	products, err := client.SearchProducts(context.Background(), srv.URL, "tok", "nothing")
	require.NoError(t, err)
	assert.Empty(t, products)
}
