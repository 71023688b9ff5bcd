package essays

import (
	"net/http"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/essays"

	"github.com/gin-gonic/gin"
)

// GET /corrector/essays: the review queue, oldest submissions first, plus
// everything the caller already has in review.
func ListPendingEssays(c *gin.Context) {
	correctorID := c.GetUint("user_id")

	var list []essays.Essay
	if err := database.DB.
		Preload("Theme").
		Where("status = ? OR (status = ? AND corrector_id = ?)",
			essays.StatusSubmitted, essays.StatusInReview, correctorID).
		Order("submitted_at ASC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load queue"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /corrector/essays/:id/claim: takes the essay off the open queue.
// The guarded update makes two correctors racing for the same essay
// resolve to exactly one winner.
func ClaimEssay(c *gin.Context) {
	correctorID := c.GetUint("user_id")

	var essay essays.Essay
	if err := database.DB.First(&essay, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Essay not found"})
		return
	}

	res := database.DB.Model(&essays.Essay{}).
		Where("id = ? AND status = ?", essay.ID, essays.StatusSubmitted).
		Updates(map[string]interface{}{
			"status":       essays.StatusInReview,
			"corrector_id": correctorID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim essay"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Essay already claimed"})
		return
	}

	database.DB.First(&essay, essay.ID)
	c.JSON(http.StatusOK, essay)
}

// POST /corrector/essays/:id/correction
func SubmitCorrection(c *gin.Context) {
	correctorID := c.GetUint("user_id")

	var essay essays.Essay
	if err := database.DB.First(&essay, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Essay not found"})
		return
	}

	if essay.Status == essays.StatusCorrected {
		c.JSON(http.StatusConflict, gin.H{"error": "Essay already corrected"})
		return
	}
	if essay.Status == essays.StatusInReview && essay.CorrectorID != nil && *essay.CorrectorID != correctorID {
		c.JSON(http.StatusConflict, gin.H{"error": "Essay is claimed by another corrector"})
		return
	}

	var body struct {
		Comp1    *int   `json:"comp1" binding:"required"`
		Comp2    *int   `json:"comp2" binding:"required"`
		Comp3    *int   `json:"comp3" binding:"required"`
		Comp4    *int   `json:"comp4" binding:"required"`
		Comp5    *int   `json:"comp5" binding:"required"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scores := []*int{body.Comp1, body.Comp2, body.Comp3, body.Comp4, body.Comp5}
	total := 0
	for _, s := range scores {
		if *s < 0 || *s > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Each competency score must be between 0 and 200"})
			return
		}
		total += *s
	}

	now := config.Now()
	updates := map[string]interface{}{
		"status":       essays.StatusCorrected,
		"corrector_id": correctorID,
		"comp1":        *body.Comp1,
		"comp2":        *body.Comp2,
		"comp3":        *body.Comp3,
		"comp4":        *body.Comp4,
		"comp5":        *body.Comp5,
		"total":        total,
		"feedback":     body.Feedback,
		"corrected_at": now,
	}
	if err := database.DB.Model(&essay).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save correction"})
		return
	}

	database.DB.First(&essay, essay.ID)
	c.JSON(http.StatusOK, essay)
}
