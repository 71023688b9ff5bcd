package essays

import (
	"net/http"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/essays"
	"redacao-app/internal/domain/themes"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /essays: spends one credit and files the submission.
//
// The debit, the essay row and the audit entry are three sequential
// writes. The debit goes first so a zero balance rejects the whole
// request; a crash after it can cost a credit without an essay, which
// staff fix with a manual adjustment.
func SubmitEssay(c *gin.Context) {
	user, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ThemeID  uint   `json:"theme_id" binding:"required"`
		FilePath string `json:"file_path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var theme themes.Theme
	if err := database.DB.First(&theme, body.ThemeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown theme"})
		return
	}
	if !theme.Live(config.Now()) || !access.CanAccess(theme, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	var already int64
	if err := database.DB.Model(&essays.Essay{}).
		Where("theme_id = ? AND student_id = ?", theme.ID, user.ID).
		Count(&already).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check prior submissions"})
		return
	}
	if already > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already submitted an essay for this theme"})
		return
	}

	if user.Credits < 1 {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "No essay credits left"})
		return
	}

	res := database.DB.Model(&users.User{}).
		Where("id = ? AND credits >= 1", user.ID).
		Update("credits", gorm.Expr("credits - 1"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to spend credit"})
		return
	}
	if res.RowsAffected == 0 {
		// balance changed between the read and the debit
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "No essay credits left"})
		return
	}

	essay := essays.Essay{
		ThemeID:     theme.ID,
		StudentID:   user.ID,
		FilePath:    body.FilePath,
		Status:      essays.StatusSubmitted,
		SubmittedAt: config.Now(),
	}
	if err := database.DB.Create(&essay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save essay"})
		return
	}

	database.DB.Create(&credits.Entry{
		UserID:     user.ID,
		Delta:      -1,
		Reason:     credits.ReasonEssaySubmission,
		AdjustedBy: "system",
	})

	c.JSON(http.StatusCreated, essay)
}

// GET /essays: the caller's own submissions, newest first.
func ListMyEssays(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []essays.Essay
	if err := database.DB.
		Preload("Theme").
		Where("student_id = ?", userID).
		Order("submitted_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load essays"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /essays/:id: owner only; correctors and admins use their own routes.
func GetEssay(c *gin.Context) {
	userID := c.GetUint("user_id")

	var essay essays.Essay
	if err := database.DB.Preload("Theme").First(&essay, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Essay not found"})
		return
	}

	if essay.StudentID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Essay not found"})
		return
	}

	c.JSON(http.StatusOK, essay)
}
