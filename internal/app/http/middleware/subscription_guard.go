package middleware

import (
	"net/http"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription gates actions that need a paid plan (essay
// submission, plan changes). The status is derived from the expiry date on
// every request; nothing is cached.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var sub subscriptions.Subscription
		err := database.DB.
			Where("user_id = ?", userID).
			Order("expiry_date DESC").
			First(&sub).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if !subscriptions.Active(sub, config.Now()) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
