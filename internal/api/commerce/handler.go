package commerce

import (
	"net/http"

	"villma-portal/internal/infra/shopify"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler fronts the shop integrations. The Shopify client carries its
// own token cache, so one Handler is shared by all requests.
type Handler struct {
	Shopify *shopify.Client
	Log     zerolog.Logger
}

func NewHandler(shopifyClient *shopify.Client, logger zerolog.Logger) *Handler {
	return &Handler{Shopify: shopifyClient, Log: logger}
}

// POST /commerce/shopify/token
func (h *Handler) ShopifyToken(c *gin.Context) {
	var body struct {
		StoreDomain  string `json:"storeDomain" binding:"required"`
		ClientID     string `json:"clientId" binding:"required"`
		ClientSecret string `json:"clientSecret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	token, err := h.Shopify.AccessToken(c.Request.Context(), body.StoreDomain, body.ClientID, body.ClientSecret)
	if err != nil {
		h.Log.Error().Err(err).Str("store", shopify.NormalizeStoreDomain(body.StoreDomain)).Msg("shopify token exchange failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to obtain access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// POST /commerce/shopify/products
//
// Accepts either an access token from a previous call or the raw
// credentials, in which case the cached token is used when still valid.
func (h *Handler) ShopifyProducts(c *gin.Context) {
	var body struct {
		ShopDomain   string `json:"shopDomain" binding:"required"`
		AccessToken  string `json:"accessToken"`
		ClientID     string `json:"clientId"`
		ClientSecret string `json:"clientSecret"`
		Search       string `json:"search"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	token := body.AccessToken
	if token == "" {
		if body.ClientID == "" || body.ClientSecret == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide accessToken or clientId/clientSecret"})
			return
		}
		var err error
		token, err = h.Shopify.AccessToken(c.Request.Context(), body.ShopDomain, body.ClientID, body.ClientSecret)
		if err != nil {
			h.Log.Error().Err(err).Msg("shopify token exchange failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to obtain access token"})
			return
		}
	}

	products, err := h.Shopify.SearchProducts(c.Request.Context(), body.ShopDomain, token, body.Search)
	if err != nil {
		h.Log.Error().Err(err).Str("shop", body.ShopDomain).Msg("shopify product search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
