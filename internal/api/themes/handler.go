package themes

import (
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/media"
	"redacao-app/internal/domain/publish"
	"redacao-app/internal/domain/themes"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type themeView struct {
	themes.Theme
	SheetURL string `json:"sheet_url,omitempty"`
}

func toThemeView(t themes.Theme) themeView {
	v := themeView{Theme: t}
	if t.SheetPath != nil {
		v.SheetURL = media.PublicURL(*t.SheetPath)
	}
	return v
}

// GET /themes: themes the caller may see, newest publication first.
func ListAvailableThemes(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var all []themes.Theme
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load themes"})
		return
	}

	now := config.Now()
	visible := make([]themeView, 0, len(all))
	for _, t := range all {
		if t.Live(now) && access.CanAccess(t, id) {
			visible = append(visible, toThemeView(t))
		}
	}

	c.JSON(http.StatusOK, visible)
}

// GET /themes/:id
func GetTheme(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	if !theme.Live(config.Now()) || !access.CanAccess(theme, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	c.JSON(http.StatusOK, toThemeView(theme))
}

// GET /admin/themes: everything, drafts included, with derived state.
func ListThemes(c *gin.Context) {
	var all []themes.Theme
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load themes"})
		return
	}

	now := config.Now()
	out := make([]adminThemeView, 0, len(all))
	for _, t := range all {
		out = append(out, adminThemeView{Theme: t, State: string(t.Eval(now))})
	}
	c.JSON(http.StatusOK, out)
}

type adminThemeView struct {
	themes.Theme
	State string `json:"state"`
}

type themePayload struct {
	Headline          string   `json:"headline" binding:"required"`
	Prompt            string   `json:"prompt"`
	SheetPath         *string  `json:"sheet_path"`
	AuthorizedCohorts []string `json:"authorized_cohorts"`
	AllowVisitor      bool     `json:"allow_visitor"`
}

// POST /admin/themes: always created as a draft.
func CreateTheme(c *gin.Context) {
	var body themePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme := themes.Theme{
		Headline:  body.Headline,
		Prompt:    body.Prompt,
		SheetPath: body.SheetPath,
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if err := database.DB.Create(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create theme"})
		return
	}

	c.JSON(http.StatusCreated, theme)
}

// PUT /admin/themes/:id: edits content and visibility, never publication.
func UpdateTheme(c *gin.Context) {
	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	var body themePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme.Headline = body.Headline
	theme.Prompt = body.Prompt
	theme.SheetPath = body.SheetPath
	theme.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	theme.AllowVisitor = body.AllowVisitor

	if err := database.DB.Save(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update theme"})
		return
	}

	c.JSON(http.StatusOK, theme)
}

// DELETE /admin/themes/:id
func DeleteTheme(c *gin.Context) {
	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	if err := database.DB.Delete(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete theme"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Theme deleted"})
}

// POST /admin/themes/:id/publish
func PublishTheme(c *gin.Context) {
	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	theme.Publish(config.Now())
	theme.ScheduledPublishAt = nil

	if err := database.DB.Save(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish theme"})
		return
	}

	c.JSON(http.StatusOK, theme)
}

// POST /admin/themes/:id/unpublish
func UnpublishTheme(c *gin.Context) {
	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	theme.Unpublish()

	if err := database.DB.Save(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish theme"})
		return
	}

	c.JSON(http.StatusOK, theme)
}

// POST /admin/themes/:id/schedule
func ScheduleTheme(c *gin.Context) {
	var theme themes.Theme
	if err := database.DB.First(&theme, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Theme not found"})
		return
	}

	var body struct {
		PublishAt time.Time `json:"publish_at" binding:"required,futuredate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publish_at must be a future timestamp"})
		return
	}

	if err := theme.Schedule(config.Now(), body.PublishAt.In(config.Location)); err != nil {
		if err == publish.ErrScheduleInPast {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule theme"})
		return
	}

	if err := database.DB.Save(&theme).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule theme"})
		return
	}

	c.JSON(http.StatusOK, theme)
}
