package admin

import (
	"net/http"

	"redacao-app/database"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type creditAdjustment struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// applyCreditDelta updates one student's balance and appends the audit
// entry, as two sequential writes. Callers decide what a failure means;
// there is deliberately no transaction here (see BulkAdjustCredits).
func applyCreditDelta(db *gorm.DB, userID uint, delta int, reason, adjustedBy string) error {
	err := db.Model(&users.User{}).
		Where("id = ?", userID).
		Update("credits", gorm.Expr("credits + ?", delta)).Error
	if err != nil {
		return err
	}

	return db.Create(&credits.Entry{
		UserID:     userID,
		Delta:      delta,
		Reason:     reason,
		AdjustedBy: adjustedBy,
	}).Error
}

// POST /admin/students/:id/credits
func AdjustCredits(c *gin.Context) {
	studentID := c.Param("id")

	var body creditAdjustment
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing delta or reason"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	adminEmail := c.GetString("email")
	if err := applyCreditDelta(database.DB, user.ID, body.Delta, body.Reason, adminEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust credits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Credits adjusted"})
}

type BulkCreditResult struct {
	StudentID uint   `json:"student_id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// POST /admin/cohorts/:name/credits
//
// Bulk adjustment over every student in a cohort. Writes are best-effort
// sequential: each student gets an update+audit pair, and a failure on one
// student leaves earlier students updated and later ones processed anyway.
// There is no wrapping transaction and no rollback; the response reports
// per-student results so staff can retry the failed ones.
func BulkAdjustCredits(c *gin.Context) {
	cohortName := c.Param("name")

	var body creditAdjustment
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing delta or reason"})
		return
	}

	var students []users.User
	err := database.DB.
		Joins("JOIN cohorts ON cohorts.id = users.cohort_id").
		Where("cohorts.name = ? AND users.role = ?", cohortName, users.RoleStudent).
		Order("users.id ASC").
		Find(&students).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cohort students"})
		return
	}
	if len(students) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No students in cohort"})
		return
	}

	adminEmail := c.GetString("email")
	results := make([]BulkCreditResult, 0, len(students))
	failed := 0

	for _, s := range students {
		res := BulkCreditResult{StudentID: s.ID, OK: true}
		if err := applyCreditDelta(database.DB, s.ID, body.Delta, body.Reason, adminEmail); err != nil {
			res.OK = false
			res.Error = err.Error()
			failed++
		}
		results = append(results, res)
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{
		"applied": len(students) - failed,
		"failed":  failed,
		"results": results,
	})
}
