package catalog

import (
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type videoPayload struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description"`
	EmbedURL           string     `json:"embed_url" binding:"required"`
	Subject            string     `json:"subject"`
	AuthorizedCohorts  []string   `json:"authorized_cohorts"`
	AllowVisitor       bool       `json:"allow_visitor"`
	Published          bool       `json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at" binding:"omitempty,futuredate"`
}

// GET /admin/videos
func ListVideos(c *gin.Context) {
	var all []catalog.Video
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /admin/videos
func CreateVideo(c *gin.Context) {
	var body videoPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v := catalog.Video{
		Title:       body.Title,
		Description: body.Description,
		EmbedURL:    body.EmbedURL,
		Subject:     body.Subject,
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if body.Published {
		v.Publish(config.Now())
	} else if body.ScheduledPublishAt != nil {
		if err := v.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Create(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// PUT /admin/videos/:id
func UpdateVideo(c *gin.Context) {
	var v catalog.Video
	if err := database.DB.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	var body videoPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v.Title = body.Title
	v.Description = body.Description
	v.EmbedURL = body.EmbedURL
	v.Subject = body.Subject
	v.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	v.AllowVisitor = body.AllowVisitor
	if body.Published {
		v.Publish(config.Now())
		v.ScheduledPublishAt = nil
	} else if body.ScheduledPublishAt != nil {
		if err := v.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		v.Unpublish()
	}

	if err := database.DB.Save(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/videos/:id
func DeleteVideo(c *gin.Context) {
	var v catalog.Video
	if err := database.DB.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	if err := database.DB.Delete(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}
	database.DB.Where("content_kind = ? AND content_id = ?", catalog.KindVideo, v.ID).
		Delete(&catalog.WatchedFlag{})

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

type lessonPayload struct {
	Title              string     `json:"title" binding:"required"`
	Subject            string     `json:"subject"`
	VideoURL           string     `json:"video_url"`
	LessonDate         time.Time  `json:"lesson_date" binding:"required"`
	AuthorizedCohorts  []string   `json:"authorized_cohorts"`
	AllowVisitor       bool       `json:"allow_visitor"`
	Published          bool       `json:"published"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at" binding:"omitempty,futuredate"`
}

// GET /admin/lessons
func ListLessons(c *gin.Context) {
	var all []catalog.Lesson
	if err := database.DB.Order("lesson_date DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// POST /admin/lessons
func CreateLesson(c *gin.Context) {
	var body lessonPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l := catalog.Lesson{
		Title:      body.Title,
		Subject:    body.Subject,
		VideoURL:   body.VideoURL,
		LessonDate: body.LessonDate.In(config.Location),
		Visibility: access.Visibility{
			AuthorizedCohorts: datatypes.NewJSONSlice(body.AuthorizedCohorts),
			AllowVisitor:      body.AllowVisitor,
		},
	}
	if body.Published {
		l.Publish(config.Now())
	} else if body.ScheduledPublishAt != nil {
		if err := l.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Create(&l).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PUT /admin/lessons/:id
func UpdateLesson(c *gin.Context) {
	var l catalog.Lesson
	if err := database.DB.First(&l, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var body lessonPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l.Title = body.Title
	l.Subject = body.Subject
	l.VideoURL = body.VideoURL
	l.LessonDate = body.LessonDate.In(config.Location)
	l.AuthorizedCohorts = datatypes.NewJSONSlice(body.AuthorizedCohorts)
	l.AllowVisitor = body.AllowVisitor
	if body.Published {
		l.Publish(config.Now())
		l.ScheduledPublishAt = nil
	} else if body.ScheduledPublishAt != nil {
		if err := l.Schedule(config.Now(), body.ScheduledPublishAt.In(config.Location)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		l.Unpublish()
	}

	if err := database.DB.Save(&l).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// DELETE /admin/lessons/:id
func DeleteLesson(c *gin.Context) {
	var l catalog.Lesson
	if err := database.DB.First(&l, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := database.DB.Delete(&l).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}
	database.DB.Where("content_kind = ? AND content_id = ?", catalog.KindLesson, l.ID).
		Delete(&catalog.WatchedFlag{})

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}
