package users

import (
	"net/http"

	"villma-portal/database"
	"villma-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func buildUserDTO(user users.User) UserDTO {
	return UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     stringPtrIfNotEmpty(user.Phone),
		Company:   stringPtrIfNotEmpty(user.Company),
		VATNumber: stringPtrIfNotEmpty(user.VATNumber),
		Address: AddressDTO{
			Street:     user.Address.Street,
			City:       user.Address.City,
			PostalCode: user.Address.PostalCode,
			Country:    user.Address.Country,
		},
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		IsVerified:   user.IsVerified,
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func GetCurrentUser(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:            buildUserDTO(user),
		ProfileComplete: user.ProfileComplete(),
	})
}

// GetUserProfile returns a profile by uid. Non-admins can only read
// their own.
func GetUserProfile(c *gin.Context) {
	uid := c.Param("uid")

	if c.GetString("role") != "admin" && c.GetString("uid") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var user users.User
	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:            buildUserDTO(user),
		ProfileComplete: user.ProfileComplete(),
	})
}

// GetUserByEmail looks a user up by email. Used by the storefront
// integrations to map a shop customer back to a portal account.
func GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": user.UID, "email": user.Email})
}

func UpdateProfile(c *gin.Context) {
	uid := c.Param("uid")

	if c.GetString("role") != "admin" && c.GetString("uid") != uid {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var user users.User
	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		FirstName  *string `json:"firstName"`
		LastName   *string `json:"lastName"`
		Phone      *string `json:"phone"`
		Company    *string `json:"company"`
		VATNumber  *string `json:"vatNumber"`
		Street     *string `json:"street"`
		City       *string `json:"city"`
		PostalCode *string `json:"postalCode"`
		Country    *string `json:"country"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// Email, role and auth provider are not editable here.
	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Company != nil {
		updates["company"] = *input.Company
	}
	if input.VATNumber != nil {
		updates["vat_number"] = *input.VATNumber
	}
	if input.Street != nil {
		updates["address_street"] = *input.Street
	}
	if input.City != nil {
		updates["address_city"] = *input.City
	}
	if input.PostalCode != nil {
		updates["address_postal_code"] = *input.PostalCode
	}
	if input.Country != nil {
		updates["address_country"] = *input.Country
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:            buildUserDTO(user),
		ProfileComplete: user.ProfileComplete(),
	})
}
