package exams

import (
	"net/http"
	"sort"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/exams"
	"redacao-app/internal/domain/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type examView struct {
	exams.Exam
	WindowStatus string `json:"window_status"`
}

// GET /exams: published exams the caller may see, ordered open first,
// then upcoming, then closed.
func ListAvailableExams(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var all []exams.Exam
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exams"})
		return
	}

	now := config.Now()
	visible := make([]exams.Exam, 0, len(all))
	for _, e := range all {
		if e.Live(now) && access.CanAccessExam(e, id) {
			visible = append(visible, e)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return schedule.Compare(visible[i].Window, visible[j].Window, now) < 0
	})

	out := make([]examView, 0, len(visible))
	for _, e := range visible {
		out = append(out, examView{Exam: e, WindowStatus: string(e.Window.Eval(now))})
	}
	c.JSON(http.StatusOK, out)
}

// GET /exams/:id: the booklet is only handed out while the window is open.
func GetExam(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var exam exams.Exam
	if err := database.DB.First(&exam, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}

	now := config.Now()
	if !exam.Live(now) || !access.CanAccessExam(exam, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}

	view := examView{Exam: exam, WindowStatus: string(exam.Window.Eval(now))}
	if !exam.Open(now) {
		view.FilePath = ""
	}
	c.JSON(http.StatusOK, view)
}

// GET /admin/exams
func ListExams(c *gin.Context) {
	var all []exams.Exam
	if err := database.DB.Order("start_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exams"})
		return
	}
	c.JSON(http.StatusOK, all)
}

type examPayload struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description"`
	FilePath           string     `json:"file_path"`
	DurationMinutes    int        `json:"duration_minutes"`
	StartAt            time.Time  `json:"start_at" binding:"required"`
	EndAt              time.Time  `json:"end_at" binding:"required"`
	AuthorizedCohorts  []string   `json:"authorized_cohorts"`
	AllowVisitor       bool       `json:"allow_visitor"`
	Published          bool       `json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at" binding:"omitempty,futuredate"`
}

func examFromPayload(body examPayload) (exams.Exam, error) {
	e := exams.Exam{
		Title:           body.Title,
		Description:     body.Description,
		FilePath:        body.FilePath,
		DurationMinutes: body.DurationMinutes,
		Window: schedule.Window{
			StartAt: body.StartAt.In(config.Location),
			EndAt:   body.EndAt.In(config.Location),
		},
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	return e, e.Validate()
}

// POST /admin/exams
func CreateExam(c *gin.Context) {
	var body examPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exam, err := examFromPayload(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Published {
		exam.Publish(config.Now())
	} else if body.ScheduledPublishAt != nil {
		if err := exam.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Create(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exam"})
		return
	}
	c.JSON(http.StatusCreated, exam)
}

// PUT /admin/exams/:id
func UpdateExam(c *gin.Context) {
	var exam exams.Exam
	if err := database.DB.First(&exam, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}

	var body examPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := examFromPayload(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exam.Title = next.Title
	exam.Description = next.Description
	exam.FilePath = next.FilePath
	exam.DurationMinutes = next.DurationMinutes
	exam.Window = next.Window
	exam.Visibility = next.Visibility
	if body.Published {
		exam.Publish(config.Now())
		exam.ScheduledPublishAt = nil
	} else if body.ScheduledPublishAt != nil {
		if err := exam.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		exam.Unpublish()
	}

	if err := database.DB.Save(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exam"})
		return
	}
	c.JSON(http.StatusOK, exam)
}

// DELETE /admin/exams/:id
func DeleteExam(c *gin.Context) {
	var exam exams.Exam
	if err := database.DB.First(&exam, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
		return
	}

	if err := database.DB.Delete(&exam).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exam"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam deleted"})
}
