package exams

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
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/exams"
	"redacao-app/internal/domain/schedule"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupExamsTest(t *testing.T) *gorm.DB {
	t.Helper()
	config.Location = time.UTC
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&cohorts.Cohort{}, &users.User{}, &exams.Exam{}))

	database.DB = db
	return db
}

func seedExam(t *testing.T, db *gorm.DB, title string, cohortNames []string, visitor bool, start, end time.Time) exams.Exam {
	t.Helper()
	e := exams.Exam{
		Title:  title,
		Window: schedule.Window{StartAt: start, EndAt: end},
	}
	e.AuthorizedCohorts = datatypes.NewJSONSlice(cohortNames)
	e.AllowVisitor = visitor
	e.Publish(config.Now())
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedUser(t *testing.T, db *gorm.DB, email string, cohortID *uint) users.User {
	t.Helper()
	u := users.User{Name: "Student", Email: email, Role: users.RoleStudent, CohortID: cohortID}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func listExamsAs(t *testing.T, userID uint) []examView {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/exams", func(c *gin.Context) {
		c.Set("user_id", userID)
		ListAvailableExams(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/exams", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []examView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// An exam with no cohort list and the visitor flag on shows up for
// visitors only. Cohort members keep that fallback everywhere else, but
// not on exams.
func TestListAvailableExams_VisitorOnlyFallback(t *testing.T) {
	db := setupExamsTest(t)

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)
	member := seedUser(t, db, "member@example.com", &cohort.ID)
	visitor := seedUser(t, db, "visitor@example.com", nil)

	now := config.Now()
	seedExam(t, db, "Simulado aberto", nil, true, now.Add(-time.Hour), now.Add(time.Hour))
	seedExam(t, db, "Simulado da turma", []string{"Turma A"}, false, now.Add(-time.Hour), now.Add(time.Hour))

	memberSees := listExamsAs(t, member.ID)
	require.Len(t, memberSees, 1)
	assert.Equal(t, "Simulado da turma", memberSees[0].Title)

	visitorSees := listExamsAs(t, visitor.ID)
	require.Len(t, visitorSees, 1)
	assert.Equal(t, "Simulado aberto", visitorSees[0].Title)
}

func TestListAvailableExams_Ordering(t *testing.T) {
	db := setupExamsTest(t)

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)
	member := seedUser(t, db, "member@example.com", &cohort.ID)

	now := config.Now()
	turma := []string{"Turma A"}
	seedExam(t, db, "closed-old", turma, false, now.Add(-72*time.Hour), now.Add(-48*time.Hour))
	seedExam(t, db, "upcoming-late", turma, false, now.Add(48*time.Hour), now.Add(72*time.Hour))
	seedExam(t, db, "open-now", turma, false, now.Add(-time.Hour), now.Add(time.Hour))
	seedExam(t, db, "closed-recent", turma, false, now.Add(-24*time.Hour), now.Add(-12*time.Hour))
	seedExam(t, db, "upcoming-soon", turma, false, now.Add(12*time.Hour), now.Add(24*time.Hour))

	got := listExamsAs(t, member.ID)
	titles := make([]string, 0, len(got))
	statuses := make([]string, 0, len(got))
	for _, e := range got {
		titles = append(titles, e.Title)
		statuses = append(statuses, e.WindowStatus)
	}

	assert.Equal(t, []string{"open-now", "upcoming-soon", "upcoming-late", "closed-recent", "closed-old"}, titles)
	assert.Equal(t, []string{"open", "upcoming", "upcoming", "closed", "closed"}, statuses)
}

func TestCreateExam_ScheduledStaysHiddenUntilPublishTime(t *testing.T) {
	db := setupExamsTest(t)
	middleware.RegisterValidators()

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)
	member := seedUser(t, db, "member@example.com", &cohort.ID)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/exams", CreateExam)

	now := config.Now()
	body, _ := json.Marshal(map[string]interface{}{
		"title":                "Simulado agendado",
		"start_at":             now.Add(24 * time.Hour),
		"end_at":               now.Add(30 * time.Hour),
		"authorized_cohorts":   []string{"Turma A"},
		"scheduled_publish_at": now.Add(6 * time.Hour),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/exams", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var e exams.Exam
	require.NoError(t, db.First(&e, "title = ?", "Simulado agendado").Error)
	require.NotNil(t, e.ScheduledPublishAt)
	assert.Equal(t, "draft", e.Status)

	// still scheduled, so the student listing does not show it yet
	assert.Empty(t, listExamsAs(t, member.ID))
}

func TestGetExam_BookletHeldBackOutsideWindow(t *testing.T) {
	db := setupExamsTest(t)

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)
	member := seedUser(t, db, "member@example.com", &cohort.ID)

	now := config.Now()
	upcoming := exams.Exam{
		Title:    "Simulado futuro",
		FilePath: "exams/booklet.pdf",
		Window:   schedule.Window{StartAt: now.Add(time.Hour), EndAt: now.Add(2 * time.Hour)},
	}
	upcoming.AuthorizedCohorts = datatypes.NewJSONSlice([]string{"Turma A"})
	upcoming.Publish(now)
	require.NoError(t, db.Create(&upcoming).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/exams/:id", func(c *gin.Context) {
		c.Set("user_id", member.ID)
		GetExam(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/exams/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got examView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "upcoming", got.WindowStatus)
	assert.Empty(t, got.FilePath)
}
