package activities

import (
	"net/http"
	"sort"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/activities"
	"redacao-app/internal/domain/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type exerciseView struct {
	activities.Exercise
	WindowStatus string `json:"window_status"`
}

type boardSessionView struct {
	activities.BoardSession
	WindowStatus string `json:"window_status"`
}

// GET /exercises: published exercises only, open first, then upcoming,
// then recently closed.
func ListAvailableExercises(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var all []activities.Exercise
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercises"})
		return
	}

	now := config.Now()
	visible := make([]activities.Exercise, 0, len(all))
	for _, e := range all {
		if e.Live(now) && access.CanAccess(e, id) {
			visible = append(visible, e)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return schedule.Compare(visible[i].Window, visible[j].Window, now) < 0
	})

	out := make([]exerciseView, 0, len(visible))
	for _, e := range visible {
		out = append(out, exerciseView{Exercise: e, WindowStatus: string(e.Window.Eval(now))})
	}
	c.JSON(http.StatusOK, out)
}

// GET /board-sessions: the meeting link is only exposed while the window
// is open.
func ListAvailableBoardSessions(c *gin.Context) {
	_, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var all []activities.BoardSession
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board sessions"})
		return
	}

	now := config.Now()
	visible := make([]activities.BoardSession, 0, len(all))
	for _, s := range all {
		if access.CanAccess(s, id) {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return schedule.Compare(visible[i].Window, visible[j].Window, now) < 0
	})

	out := make([]boardSessionView, 0, len(visible))
	for _, s := range visible {
		if !s.Open(now) {
			s.MeetingURL = ""
		}
		out = append(out, boardSessionView{BoardSession: s, WindowStatus: string(s.Eval(now))})
	}
	c.JSON(http.StatusOK, out)
}

type exercisePayload struct {
	Title              string     `json:"title" binding:"required"`
	Instructions       string     `json:"instructions"`
	FilePath           string     `json:"file_path"`
	StartAt            time.Time  `json:"start_at" binding:"required"`
	EndAt              time.Time  `json:"end_at" binding:"required"`
	AuthorizedCohorts  []string   `json:"authorized_cohorts"`
	AllowVisitor       bool       `json:"allow_visitor"`
	Published          bool       `json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at" binding:"omitempty,futuredate"`
}

// GET /admin/exercises
func ListExercises(c *gin.Context) {
	var all []activities.Exercise
	if err := database.DB.Order("start_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exercises"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /admin/exercises
func CreateExercise(c *gin.Context) {
	var body exercisePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e := activities.Exercise{
		Title:        body.Title,
		Instructions: body.Instructions,
		FilePath:     body.FilePath,
		Window: schedule.Window{
			StartAt: body.StartAt.In(config.Location),
			EndAt:   body.EndAt.In(config.Location),
		},
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if err := e.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Published {
		e.Publish(config.Now())
	} else if body.ScheduledPublishAt != nil {
		if err := e.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Create(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /admin/exercises/:id
func UpdateExercise(c *gin.Context) {
	var e activities.Exercise
	if err := database.DB.First(&e, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}

	var body exercisePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e.Title = body.Title
	e.Instructions = body.Instructions
	e.FilePath = body.FilePath
	e.Window = schedule.Window{
		StartAt: body.StartAt.In(config.Location),
		EndAt:   body.EndAt.In(config.Location),
	}
	e.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	e.AllowVisitor = body.AllowVisitor
	if err := e.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Published {
		e.Publish(config.Now())
		e.ScheduledPublishAt = nil
	} else if body.ScheduledPublishAt != nil {
		if err := e.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		e.Unpublish()
	}

	if err := database.DB.Save(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exercise"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// DELETE /admin/exercises/:id
func DeleteExercise(c *gin.Context) {
	var e activities.Exercise
	if err := database.DB.First(&e, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return
	}

	if err := database.DB.Delete(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

type boardSessionPayload struct {
	Title             string    `json:"title" binding:"required"`
	MeetingURL        string    `json:"meeting_url" binding:"required"`
	StartAt           time.Time `json:"start_at" binding:"required"`
	EndAt             time.Time `json:"end_at" binding:"required"`
	AuthorizedCohorts []string  `json:"authorized_cohorts"`
	AllowVisitor      bool      `json:"allow_visitor"`
}

// GET /admin/board-sessions
func ListBoardSessions(c *gin.Context) {
	var all []activities.BoardSession
	if err := database.DB.Order("start_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board sessions"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /admin/board-sessions
func CreateBoardSession(c *gin.Context) {
	var body boardSessionPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := activities.BoardSession{
		Title:      body.Title,
		MeetingURL: body.MeetingURL,
		Window: schedule.Window{
			StartAt: body.StartAt.In(config.Location),
			EndAt:   body.EndAt.In(config.Location),
		},
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Create(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board session"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

// PUT /admin/board-sessions/:id
func UpdateBoardSession(c *gin.Context) {
	var s activities.BoardSession
	if err := database.DB.First(&s, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board session not found"})
		return
	}

	var body boardSessionPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.Title = body.Title
	s.MeetingURL = body.MeetingURL
	s.Window = schedule.Window{
		StartAt: body.StartAt.In(config.Location),
		EndAt:   body.EndAt.In(config.Location),
	}
	s.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	s.AllowVisitor = body.AllowVisitor
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board session"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /admin/board-sessions/:id
func DeleteBoardSession(c *gin.Context) {
	var s activities.BoardSession
	if err := database.DB.First(&s, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board session not found"})
		return
	}

	if err := database.DB.Delete(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board session deleted"})
}
