package cohorts

import (
	"net/http"

	"redacao-app/database"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func ListCohorts(c *gin.Context) {
	var list []cohorts.Cohort
	if err := database.DB.Order("name ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cohorts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func CreateCohort(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
		Year int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cohort := cohorts.Cohort{Name: body.Name, Year: body.Year, Active: true}
	if err := database.DB.Create(&cohort).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cohort name may already exist"})
		return
	}

	c.JSON(http.StatusCreated, cohort)
}

func UpdateCohort(c *gin.Context) {
	id := c.Param("id")

	var cohort cohorts.Cohort
	if err := database.DB.First(&cohort, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cohort not found"})
		return
	}

	var body struct {
		Name   *string `json:"name"`
		Year   *int    `json:"year"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Year != nil {
		updates["year"] = *body.Year
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&cohort).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cohort"})
		return
	}

	c.JSON(http.StatusOK, cohort)
}

func DeleteCohort(c *gin.Context) {
	id := c.Param("id")

	var cohort cohorts.Cohort
	if err := database.DB.First(&cohort, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cohort not found"})
		return
	}

	// keep student rows intact; they fall back to visitor access
	var enrolled int64
	database.DB.Model(&users.User{}).Where("cohort_id = ?", cohort.ID).Count(&enrolled)
	if enrolled > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cohort still has enrolled students"})
		return
	}

	if err := database.DB.Delete(&cohort).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cohort"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cohort deleted"})
}
