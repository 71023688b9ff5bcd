package users

import (
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/inbox"
	"redacao-app/internal/domain/subscriptions"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// renewal warning shown this close to expiry
const expiryWarningWindow = 7 * 24 * time.Hour

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.
		Preload("Cohort").
		First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := config.Now()

	var cohortName *string
	if user.Cohort != nil {
		cohortName = &user.Cohort.Name
	}

	subDTO := SubscriptionDTO{Status: "none"}
	var sub subscriptions.Subscription
	err := database.DB.
		Preload("Plan").
		Where("user_id = ?", user.ID).
		Order("expiry_date DESC").
		First(&sub).Error
	if err == nil {
		subDTO.Status = string(subscriptions.Status(sub, now))
		subDTO.ExpiryDate = &sub.ExpiryDate
		subDTO.ExpiringSoon = subscriptions.ExpiringSoon(sub, now, expiryWarningWindow)
		if sub.Plan != nil {
			subDTO.PlanName = &sub.Plan.Name
		}
	}

	var unread int64
	database.DB.Model(&inbox.Recipient{}).
		Where("user_id = ? AND read_at IS NULL", user.ID).
		Count(&unread)

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Role:       user.Role,
			IsVerified: user.IsVerified,
			Cohort:     cohortName,
		},
		Identity:     user.Identity(),
		Subscription: subDTO,
		Credits:      user.Credits,
		UnreadInbox:  unread,
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, users.TokenTypeVerify).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}
