package essays

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/essays"
	"redacao-app/internal/domain/themes"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEssaysTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&cohorts.Cohort{}, &users.User{}, &credits.Entry{},
		&themes.Theme{}, &essays.Essay{},
	))

	database.DB = db
	return db
}

func seedStudentWithTheme(t *testing.T, db *gorm.DB, balance int) (users.User, themes.Theme) {
	t.Helper()

	cohort := cohorts.Cohort{Name: "Turma A"}
	require.NoError(t, db.Create(&cohort).Error)

	student := users.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Role:     users.RoleStudent,
		CohortID: &cohort.ID,
		Credits:  balance,
	}
	require.NoError(t, db.Create(&student).Error)

	theme := themes.Theme{Headline: "Mobilidade urbana"}
	theme.AuthorizedCohorts = datatypes.NewJSONSlice([]string{"Turma A"})
	theme.Publish(config.Now())
	require.NoError(t, db.Create(&theme).Error)

	return student, theme
}

func submitRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/essays", func(c *gin.Context) {
		c.Set("user_id", userID)
		SubmitEssay(c)
	})
	return r
}

func postEssay(t *testing.T, r *gin.Engine, themeID uint) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"theme_id":  themeID,
		"file_path": fmt.Sprintf("essays/%d/draft.pdf", themeID),
	})
	req := httptest.NewRequest(http.MethodPost, "/essays", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitEssay_SpendsOneCredit(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 3)

	w := postEssay(t, submitRouter(student.ID), theme.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	var u users.User
	require.NoError(t, db.First(&u, student.ID).Error)
	assert.Equal(t, 2, u.Credits)

	var essay essays.Essay
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&essay).Error)
	assert.Equal(t, essays.StatusSubmitted, essay.Status)
	assert.Equal(t, theme.ID, essay.ThemeID)

	var entry credits.Entry
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&entry).Error)
	assert.Equal(t, -1, entry.Delta)
	assert.Equal(t, credits.ReasonEssaySubmission, entry.Reason)
}

func TestSubmitEssay_SecondSubmissionForThemeRejected(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 3)
	r := submitRouter(student.ID)

	require.Equal(t, http.StatusCreated, postEssay(t, r, theme.ID).Code)
	assert.Equal(t, http.StatusConflict, postEssay(t, r, theme.ID).Code)

	// only the first attempt cost a credit
	var u users.User
	require.NoError(t, db.First(&u, student.ID).Error)
	assert.Equal(t, 2, u.Credits)
}

func TestSubmitEssay_DuplicateCheckFailureKeepsCredit(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 3)

	// break the submissions table so the prior-essay check errors
	require.NoError(t, db.Migrator().DropTable(&essays.Essay{}))

	w := postEssay(t, submitRouter(student.ID), theme.ID)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var u users.User
	require.NoError(t, db.First(&u, student.ID).Error)
	assert.Equal(t, 3, u.Credits)

	var entries int64
	db.Model(&credits.Entry{}).Count(&entries)
	assert.EqualValues(t, 0, entries)
}

func TestSubmitEssay_ZeroBalanceRejected(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 0)

	w := postEssay(t, submitRouter(student.ID), theme.ID)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var count int64
	db.Model(&essays.Essay{}).Count(&count)
	assert.EqualValues(t, 0, count)

	db.Model(&credits.Entry{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSubmitEssay_DraftThemeHidden(t *testing.T) {
	db := setupEssaysTest(t)
	student, _ := seedStudentWithTheme(t, db, 3)

	draft := themes.Theme{Headline: "Ainda em rascunho"}
	draft.AuthorizedCohorts = datatypes.NewJSONSlice([]string{"Turma A"})
	require.NoError(t, db.Create(&draft).Error)

	w := postEssay(t, submitRouter(student.ID), draft.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var u users.User
	require.NoError(t, db.First(&u, student.ID).Error)
	assert.Equal(t, 3, u.Credits)
}

func TestSubmitCorrection_TotalsScores(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 3)

	corrector := users.User{Name: "Carla", Email: "carla@example.com", Role: users.RoleCorrector}
	require.NoError(t, db.Create(&corrector).Error)

	essay := essays.Essay{
		ThemeID:     theme.ID,
		StudentID:   student.ID,
		FilePath:    "essays/1.pdf",
		Status:      essays.StatusSubmitted,
		SubmittedAt: config.Now(),
	}
	require.NoError(t, db.Create(&essay).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/corrector/essays/:id/correction", func(c *gin.Context) {
		c.Set("user_id", corrector.ID)
		SubmitCorrection(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"comp1": 160, "comp2": 120, "comp3": 200, "comp4": 80, "comp5": 40,
		"feedback": "Boa argumentacao, revisar coesao.",
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/corrector/essays/%d/correction", essay.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got essays.Essay
	require.NoError(t, db.First(&got, essay.ID).Error)
	assert.Equal(t, essays.StatusCorrected, got.Status)
	require.NotNil(t, got.Total)
	assert.Equal(t, 600, *got.Total)
	require.NotNil(t, got.CorrectorID)
	assert.Equal(t, corrector.ID, *got.CorrectorID)
	assert.NotNil(t, got.CorrectedAt)
}

func TestSubmitCorrection_ScoreOutOfRange(t *testing.T) {
	db := setupEssaysTest(t)
	student, theme := seedStudentWithTheme(t, db, 3)

	corrector := users.User{Name: "Carla", Email: "carla2@example.com", Role: users.RoleCorrector}
	require.NoError(t, db.Create(&corrector).Error)

	essay := essays.Essay{
		ThemeID:     theme.ID,
		StudentID:   student.ID,
		FilePath:    "essays/2.pdf",
		Status:      essays.StatusSubmitted,
		SubmittedAt: config.Now(),
	}
	require.NoError(t, db.Create(&essay).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/corrector/essays/:id/correction", func(c *gin.Context) {
		c.Set("user_id", corrector.ID)
		SubmitCorrection(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"comp1": 201, "comp2": 120, "comp3": 200, "comp4": 80, "comp5": 40,
	})
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/corrector/essays/%d/correction", essay.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got essays.Essay
	require.NoError(t, db.First(&got, essay.ID).Error)
	assert.Equal(t, essays.StatusSubmitted, got.Status)
}
