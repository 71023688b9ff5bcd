package subscriptions

import (
	"fmt"
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/plans"
	"redacao-app/internal/domain/subscriptions"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type subscriptionView struct {
	subscriptions.Subscription
	Status string `json:"status"`
}

func withStatus(s subscriptions.Subscription, now time.Time) subscriptionView {
	return subscriptionView{s, string(subscriptions.Status(s, now))}
}

// appendChange records one audit row after the main write. The two writes
// are sequential, not atomic: a lost audit row never rolls back the edit.
func appendChange(subID uint, description, changedBy string) {
	database.DB.Create(&subscriptions.Change{
		SubscriptionID: subID,
		Description:    description,
		ChangedBy:      changedBy,
	})
}

// GET /subscription: the caller's own, newest first.
func GetMySubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sub subscriptions.Subscription
	err := database.DB.
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("expiry_date DESC").
		First(&sub).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription"})
		return
	}

	c.JSON(http.StatusOK, withStatus(sub, config.Now()))
}

// GET /admin/subscriptions
func ListSubscriptions(c *gin.Context) {
	q := database.DB.Preload("Plan").Preload("User")

	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var subs []subscriptions.Subscription
	if err := q.Order("expiry_date DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	now := config.Now()
	out := make([]subscriptionView, 0, len(subs))
	for _, s := range subs {
		out = append(out, withStatus(s, now))
	}
	c.JSON(http.StatusOK, out)
}

// POST /admin/subscriptions
func CreateSubscription(c *gin.Context) {
	var body struct {
		UserID    uint       `json:"user_id" binding:"required"`
		PlanID    uint       `json:"plan_id" binding:"required"`
		StartDate *time.Time `json:"start_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, body.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user"})
		return
	}

	var plan plans.Plan
	if err := database.DB.First(&plan, body.PlanID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	start := config.Now()
	if body.StartDate != nil {
		start = body.StartDate.In(config.Location)
	}

	sub := subscriptions.Subscription{
		UserID:     user.ID,
		PlanID:     plan.ID,
		StartDate:  start,
		ExpiryDate: start.AddDate(0, 0, plan.DurationDays),
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	appendChange(sub.ID,
		fmt.Sprintf("Subscription created: plan %s until %s", plan.Name, sub.ExpiryDate.Format("2006-01-02")),
		c.GetString("email"))

	c.JSON(http.StatusCreated, withStatus(sub, config.Now()))
}

// PUT /admin/subscriptions/:id
func UpdateSubscription(c *gin.Context) {
	id := c.Param("id")

	var sub subscriptions.Subscription
	if err := database.DB.Preload("Plan").First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	var body struct {
		PlanID     *uint      `json:"plan_id"`
		ExpiryDate *time.Time `json:"expiry_date"`
		Note       string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	description := "Subscription edited"

	if body.PlanID != nil {
		var plan plans.Plan
		if err := database.DB.First(&plan, *body.PlanID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
			return
		}
		updates["plan_id"] = plan.ID
		description += fmt.Sprintf("; plan -> %s", plan.Name)
	}
	if body.ExpiryDate != nil {
		updates["expiry_date"] = body.ExpiryDate.In(config.Location)
		description += fmt.Sprintf("; expiry -> %s", body.ExpiryDate.Format("2006-01-02"))
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if body.Note != "" {
		description += "; note: " + body.Note
	}

	if err := database.DB.Model(&sub).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}

	appendChange(sub.ID, description, c.GetString("email"))

	c.JSON(http.StatusOK, withStatus(sub, config.Now()))
}

// GET /admin/subscriptions/:id/history
func GetSubscriptionHistory(c *gin.Context) {
	id := c.Param("id")

	var sub subscriptions.Subscription
	if err := database.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	var history []subscriptions.Change
	if err := database.DB.
		Where("subscription_id = ?", sub.ID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
