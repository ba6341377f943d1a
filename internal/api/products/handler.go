package products

import (
	"net/http"

	"villma-portal/database"
	"villma-portal/internal/domain/products"

	"github.com/gin-gonic/gin"
)

func ListForUser(c *gin.Context) {
	uid := c.Query("userId")
	if uid == "" {
		uid = c.GetString("uid")
	}
	if c.GetString("role") != "admin" && c.GetString("uid") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var list []products.UserProduct
	if err := database.DB.Where("user_uid = ?", uid).Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Add stores a product picked from the connected webshop so it can be
// annotated. The id is the shop's own product id.
func Add(c *gin.Context) {
	var body struct {
		ID                     string `json:"id" binding:"required"`
		Title                  string `json:"title" binding:"required"`
		UserSubscriptionPlanID string `json:"userSubscriptionPlanId"`
		Description            string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product := products.UserProduct{
		ID:                     body.ID,
		Title:                  body.Title,
		UserUID:                uid,
		UserSubscriptionPlanID: body.UserSubscriptionPlanID,
		Description:            body.Description,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Product already exists", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateDescription edits the annotation text. Title and ownership
// come from the shop and are not writable.
func UpdateDescription(c *gin.Context) {
	var product products.UserProduct
	if err := database.DB.Where("id = ?", c.Param("id")).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if c.GetString("role") != "admin" && c.GetString("uid") != product.UserUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var body struct {
		Description *string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing description"})
		return
	}

	if err := database.DB.Model(&product).Update("description", *body.Description).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	product.Description = *body.Description
	c.JSON(http.StatusOK, product)
}
