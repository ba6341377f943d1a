package admin

import (
	"net/http"
	"time"

	"villma-portal/database"
	"villma-portal/internal/domain/subscriptions"
	"villma-portal/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	UID        string `json:"uid"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type AdminSubscription struct {
	ID               uint      `json:"id"`
	UserUID          string    `json:"userUid"`
	Email            string    `json:"email"`
	PlanName         string    `json:"planName"`
	BillingCycle     string    `json:"billingCycle"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	StripeSubID      *string   `json:"stripeSubscriptionId,omitempty"`
	StripeCustomerID *string   `json:"stripeCustomerId,omitempty"`
	SettingsComplete bool      `json:"settingsComplete"`
}

type AdminStats struct {
	TotalUsers          int            `json:"totalUsers"`
	ActiveSubscriptions int            `json:"activeSubscriptions"`
	MonthlyRevenue      float64        `json:"monthlyRevenue"`
	UsersPerPlan        map[string]int `json:"usersPerPlan"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	err := database.DB.Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range list {
		adminUsers = append(adminUsers, AdminUser{
			UID:        u.UID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Phone:      u.Phone,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllSubscriptions(c *gin.Context) {
	var subs []subscriptions.UserSubscription
	err := database.DB.Order("created_at DESC").Find(&subs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	// One email lookup per distinct user; the admin list is small.
	emails := map[string]string{}
	var result []AdminSubscription
	for _, s := range subs {
		email, ok := emails[s.UserUID]
		if !ok {
			var u users.User
			if err := database.DB.Where("uid = ?", s.UserUID).First(&u).Error; err == nil {
				email = u.Email
			}
			emails[s.UserUID] = email
		}

		result = append(result, AdminSubscription{
			ID:               s.ID,
			UserUID:          s.UserUID,
			Email:            email,
			PlanName:         s.PlanName,
			BillingCycle:     s.PlanBillingCycle,
			Status:           s.Status,
			StartDate:        s.StartDate,
			EndDate:          s.EndDate,
			StripeSubID:      s.StripeSubscriptionID,
			StripeCustomerID: s.StripeCustomerID,
			SettingsComplete: s.SettingsComplete(),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var activeSubs int64
	var monthlyRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&subscriptions.UserSubscription{}).
		Where("status = ?", subscriptions.StatusActive).
		Count(&activeSubs)

	// Yearly plans contribute a twelfth of their price per month.
	database.DB.Model(&subscriptions.UserSubscription{}).
		Where("status = ?", subscriptions.StatusActive).
		Select("COALESCE(SUM(CASE WHEN plan_billing_cycle = 'yearly' THEN plan_price / 12.0 ELSE plan_price END), 0)").
		Scan(&monthlyRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.ActiveSubscriptions = int(activeSubs)
	stats.MonthlyRevenue = monthlyRevenue

	type PlanCount struct {
		PlanName string
		Count    int
	}
	var counts []PlanCount

	database.DB.
		Table("user_subscriptions").
		Select("plan_name, COUNT(id) as count").
		Where("status = ?", subscriptions.StatusActive).
		Group("plan_name").
		Scan(&counts)

	stats.UsersPerPlan = map[string]int{}
	for _, pc := range counts {
		name := pc.PlanName
		if name == "" {
			name = "No Plan"
		}
		stats.UsersPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	uid := c.Param("uid")

	var user users.User
	if err := database.DB.Where("uid = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var subs []subscriptions.UserSubscription
	if err := database.DB.Where("user_uid = ?", uid).Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"subscriptions": subs,
	})
}
