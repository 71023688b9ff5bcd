package activities

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/app/http/middleware"
	"redacao-app/internal/domain/activities"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActivitiesTest(t *testing.T) *gorm.DB {
	t.Helper()
	config.Location = time.UTC
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&cohorts.Cohort{}, &users.User{},
		&activities.Exercise{}, &activities.BoardSession{},
	))

	database.DB = db
	return db
}

func seedExercise(t *testing.T, db *gorm.DB, title string, mutate func(*activities.Exercise)) activities.Exercise {
	t.Helper()

	now := config.Now()
	e := activities.Exercise{Title: title}
	e.StartAt = now.Add(-time.Hour)
	e.EndAt = now.Add(time.Hour)
	e.AuthorizedCohorts = datatypes.NewJSONSlice([]string{"Turma A"})
	if mutate != nil {
		mutate(&e)
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func listExercisesAs(t *testing.T, userID uint) []map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/exercises", func(c *gin.Context) {
		c.Set("user_id", userID)
		ListAvailableExercises(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/exercises", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListAvailableExercises_DraftsHidden(t *testing.T) {
	db := setupActivitiesTest(t)

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)
	student := users.User{Email: "ana@example.com", Role: users.RoleStudent, CohortID: &cohort.ID}
	require.NoError(t, db.Create(&student).Error)

	now := config.Now()
	seedExercise(t, db, "rascunho", nil)
	seedExercise(t, db, "publicado", func(e *activities.Exercise) {
		e.Publish(now)
	})
	// scheduled time already elapsed: live without any status write
	seedExercise(t, db, "agendado-vencido", func(e *activities.Exercise) {
		at := now.Add(-time.Hour)
		e.ScheduledPublishAt = &at
	})

	out := listExercisesAs(t, student.ID)
	titles := make([]string, 0, len(out))
	for _, v := range out {
		titles = append(titles, v["title"].(string))
	}
	assert.ElementsMatch(t, []string{"publicado", "agendado-vencido"}, titles)
	for _, v := range out {
		assert.Equal(t, "open", v["window_status"])
	}
}

func TestCreateExercise_AcceptsFutureSchedule(t *testing.T) {
	db := setupActivitiesTest(t)
	middleware.RegisterValidators()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/exercises", CreateExercise)

	now := config.Now()
	body, _ := json.Marshal(map[string]interface{}{
		"title":                "Coesao textual",
		"start_at":             now.Add(24 * time.Hour),
		"end_at":               now.Add(48 * time.Hour),
		"authorized_cohorts":   []string{"Turma A"},
		"scheduled_publish_at": now.Add(12 * time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/exercises", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var e activities.Exercise
	require.NoError(t, db.First(&e, "title = ?", "Coesao textual").Error)
	require.NotNil(t, e.ScheduledPublishAt)
	assert.Equal(t, "draft", e.Status)
	assert.Nil(t, e.PublishedAt)
}

func TestCreateExercise_RejectsPastSchedule(t *testing.T) {
	db := setupActivitiesTest(t)
	middleware.RegisterValidators()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/exercises", CreateExercise)

	now := config.Now()
	body, _ := json.Marshal(map[string]interface{}{
		"title":                "Atrasado",
		"start_at":             now.Add(24 * time.Hour),
		"end_at":               now.Add(48 * time.Hour),
		"scheduled_publish_at": now.Add(-time.Minute),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/exercises", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&activities.Exercise{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
