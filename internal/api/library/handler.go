package library

import (
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/library"
	"redacao-app/internal/domain/media"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// GET /library: visible materials grouped flat, filterable by category.
func ListAvailableMaterials(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Preload("Category").Order("created_at DESC")
	if cat := c.Query("category_id"); cat != "" {
		q = q.Where("category_id = ?", cat)
	}

	var all []library.Material
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load materials"})
		return
	}

	type materialView struct {
		library.Material
		FileURL string `json:"file_url"`
	}

	now := config.Now()
	visible := make([]materialView, 0, len(all))
	for _, m := range all {
		if m.Live(now) && access.CanAccess(m, id) {
			visible = append(visible, materialView{Material: m, FileURL: media.PublicURL(m.FilePath)})
		}
	}

	c.JSON(http.StatusOK, visible)
}

// GET /library/categories
func ListCategories(c *gin.Context) {
	var list []library.Category
	if err := database.DB.Order("name ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /admin/library/categories
func CreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := library.Category{Name: body.Name}
	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category name may already exist"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// DELETE /admin/library/categories/:id: materials keep their rows and
// simply lose the grouping.
func DeleteCategory(c *gin.Context) {
	var cat library.Category
	if err := database.DB.First(&cat, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	database.DB.Model(&library.Material{}).
		Where("category_id = ?", cat.ID).
		Update("category_id", nil)

	if err := database.DB.Delete(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// GET /admin/library: drafts included.
func ListMaterials(c *gin.Context) {
	var all []library.Material
	if err := database.DB.Preload("Category").Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load materials"})
		return
	}
	c.JSON(http.StatusOK, all)
}

type materialPayload struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description"`
	CategoryID         *uint      `json:"category_id"`
	FilePath           string     `json:"file_path" binding:"required"`
	AuthorizedCohorts  []string   `json:"authorized_cohorts"`
	AllowVisitor       bool       `json:"allow_visitor"`
	Published          bool       `json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at" binding:"omitempty,futuredate"`
}

// POST /admin/library
func CreateMaterial(c *gin.Context) {
	var body materialPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := library.Material{
		Title:       body.Title,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		FilePath:    body.FilePath,
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if body.Published {
		m.Publish(config.Now())
	} else if body.ScheduledPublishAt != nil {
		if err := m.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Create(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create material"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /admin/library/:id
func UpdateMaterial(c *gin.Context) {
	var m library.Material
	if err := database.DB.First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}

	var body materialPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m.Title = body.Title
	m.Description = body.Description
	m.CategoryID = body.CategoryID
	m.FilePath = body.FilePath
	m.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	m.AllowVisitor = body.AllowVisitor
	if body.Published {
		m.Publish(config.Now())
		m.ScheduledPublishAt = nil
	} else if body.ScheduledPublishAt != nil {
		if err := m.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		m.Unpublish()
	}

	if err := database.DB.Save(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update material"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /admin/library/:id
func DeleteMaterial(c *gin.Context) {
	var m library.Material
	if err := database.DB.First(&m, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}

	if err := database.DB.Delete(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted"})
}
