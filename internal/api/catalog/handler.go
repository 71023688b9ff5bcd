package catalog

import (
	"net/http"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/api/viewer"
	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
)

type videoView struct {
	catalog.Video
	Watched bool `json:"watched"`
}

type lessonView struct {
	catalog.Lesson
	Watched bool `json:"watched"`
}

func watchedSet(userID uint, kind string) map[uint]bool {
	var flags []catalog.WatchedFlag
	database.DB.Where("user_id = ? AND content_kind = ?", userID, kind).Find(&flags)

	set := make(map[uint]bool, len(flags))
	for _, f := range flags {
		set[f.ContentID] = true
	}
	return set
}

// GET /videos: visible videos with the caller's watched marks, optionally
// filtered by subject.
func ListAvailableVideos(c *gin.Context) {
	user, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Order("created_at DESC")
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}

	var all []catalog.Video
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load videos"})
		return
	}

	now := config.Now()
	watched := watchedSet(user.ID, catalog.KindVideo)
	out := make([]videoView, 0, len(all))
	for _, v := range all {
		if v.Live(now) && access.CanAccess(v, id) {
			out = append(out, videoView{Video: v, Watched: watched[v.ID]})
		}
	}

	c.JSON(http.StatusOK, out)
}

// GET /lessons: visible lessons ordered by class date, newest first.
func ListAvailableLessons(c *gin.Context) {
	user, id, err := viewer.Current(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.Order("lesson_date DESC")
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}

	var all []catalog.Lesson
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}

	now := config.Now()
	watched := watchedSet(user.ID, catalog.KindLesson)
	out := make([]lessonView, 0, len(all))
	for _, l := range all {
		if l.Live(now) && access.CanAccess(l, id) {
			out = append(out, lessonView{Lesson: l, Watched: watched[l.ID]})
		}
	}

	c.JSON(http.StatusOK, out)
}

// POST /watched: idempotent: marking twice keeps one row.
func MarkWatched(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ContentKind string `json:"content_kind" binding:"required,oneof=video lesson"`
		ContentID   uint   `json:"content_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch body.ContentKind {
	case catalog.KindVideo:
		var v catalog.Video
		if err := database.DB.First(&v, body.ContentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
	case catalog.KindLesson:
		var l catalog.Lesson
		if err := database.DB.First(&l, body.ContentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
	}

	var existing catalog.WatchedFlag
	err := database.DB.
		Where("user_id = ? AND content_kind = ? AND content_id = ?", userID, body.ContentKind, body.ContentID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	flag := catalog.WatchedFlag{
		UserID:      userID,
		ContentKind: body.ContentKind,
		ContentID:   body.ContentID,
		WatchedAt:   config.Now(),
	}
	if err := database.DB.Create(&flag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark as watched"})
		return
	}

	c.JSON(http.StatusCreated, flag)
}

// DELETE /watched: clears the mark so the item shows as unwatched again.
func UnmarkWatched(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ContentKind string `json:"content_kind" binding:"required,oneof=video lesson"`
		ContentID   uint   `json:"content_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	database.DB.
		Where("user_id = ? AND content_kind = ? AND content_id = ?", userID, body.ContentKind, body.ContentID).
		Delete(&catalog.WatchedFlag{})

	c.JSON(http.StatusOK, gin.H{"message": "Mark removed"})
}
