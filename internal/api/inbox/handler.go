package inbox

import (
	"net/http"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/inbox"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// POST /admin/inbox: writes the message once and fans delivery out into
// one recipient row per addressed student.
func SendMessage(c *gin.Context) {
	senderID := c.GetUint("user_id")
	if senderID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Subject      string  `json:"subject" binding:"required"`
		Body         string  `json:"body" binding:"required"`
		TargetCohort *string `json:"target_cohort"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := database.DB.Model(&users.User{}).Where("role = ?", users.RoleStudent)
	if body.TargetCohort != nil {
		var cohort cohorts.Cohort
		if err := database.DB.Where("name = ?", *body.TargetCohort).First(&cohort).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cohort not found"})
			return
		}
		q = q.Where("cohort_id = ?", cohort.ID)
	}

	var studentIDs []uint
	if err := q.Pluck("id", &studentIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve recipients"})
		return
	}
	if len(studentIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No students to deliver to"})
		return
	}

	msg := inbox.Message{
		Subject:      body.Subject,
		Body:         body.Body,
		SenderID:     senderID,
		TargetCohort: body.TargetCohort,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	recipients := make([]inbox.Recipient, 0, len(studentIDs))
	for _, id := range studentIDs {
		recipients = append(recipients, inbox.Recipient{MessageID: msg.ID, UserID: id})
	}
	if err := database.DB.CreateInBatches(recipients, 200).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Message saved but delivery incomplete"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message_id": msg.ID, "delivered": len(recipients)})
}

// GET /admin/inbox: sent messages with delivery and read counts.
func ListSentMessages(c *gin.Context) {
	var msgs []inbox.Message
	if err := database.DB.Order("created_at DESC").Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	// one grouped pass over recipients instead of two counts per message
	type deliveryCount struct {
		MessageID uint
		Delivered int64
		ReadCount int64
	}
	var counts []deliveryCount
	if err := database.DB.Model(&inbox.Recipient{}).
		Select("message_id, COUNT(*) AS delivered, COUNT(read_at) AS read_count").
		Group("message_id").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load delivery counts"})
		return
	}
	byMessage := make(map[uint]deliveryCount, len(counts))
	for _, dc := range counts {
		byMessage[dc.MessageID] = dc
	}

	type sentView struct {
		inbox.Message
		Delivered int64 `json:"delivered"`
		ReadCount int64 `json:"read_count"`
	}
	out := make([]sentView, 0, len(msgs))
	for _, m := range msgs {
		dc := byMessage[m.ID]
		out = append(out, sentView{Message: m, Delivered: dc.Delivered, ReadCount: dc.ReadCount})
	}
	c.JSON(http.StatusOK, out)
}

// GET /inbox: the caller's messages, unread first, then newest.
func ListInbox(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []inbox.Recipient
	if err := database.DB.
		Preload("Message").
		Where("user_id = ?", userID).
		Order("read_at IS NOT NULL, id DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inbox"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /inbox/unread-count
func UnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var count int64
	database.DB.Model(&inbox.Recipient{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// POST /inbox/:id/read: idempotent; the first read timestamp wins.
func MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rec inbox.Recipient
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&rec).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if !rec.Read() {
		now := config.Now()
		if err := database.DB.Model(&rec).Update("read_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as read"})
			return
		}
		rec.ReadAt = &now
	}

	c.JSON(http.StatusOK, rec)
}
