package inbox

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
	"redacao-app/internal/domain/inbox"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInboxTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&cohorts.Cohort{}, &users.User{}, &inbox.Message{}, &inbox.Recipient{},
	))

	database.DB = db
	return db
}

func seedInboxUsers(t *testing.T, db *gorm.DB) (admin users.User, turmaA, turmaB []users.User) {
	t.Helper()

	a := cohorts.Cohort{Name: "Turma A"}
	b := cohorts.Cohort{Name: "Turma B"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	admin = users.User{Name: "Admin", Email: "admin@example.com", Role: users.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	for i := 0; i < 2; i++ {
		u := users.User{
			Email:    fmt.Sprintf("a%d@example.com", i),
			Role:     users.RoleStudent,
			CohortID: &a.ID,
		}
		require.NoError(t, db.Create(&u).Error)
		turmaA = append(turmaA, u)
	}
	u := users.User{Email: "b0@example.com", Role: users.RoleStudent, CohortID: &b.ID}
	require.NoError(t, db.Create(&u).Error)
	turmaB = append(turmaB, u)

	return admin, turmaA, turmaB
}

func sendAs(t *testing.T, senderID uint, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/inbox", func(c *gin.Context) {
		c.Set("user_id", senderID)
		SendMessage(c)
	})

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/admin/inbox", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendMessage_FansOutToCohort(t *testing.T) {
	db := setupInboxTest(t)
	admin, turmaA, turmaB := seedInboxUsers(t, db)

	w := sendAs(t, admin.ID, map[string]interface{}{
		"subject":       "Aviso",
		"body":          "Simulado sabado.",
		"target_cohort": "Turma A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var recipients []inbox.Recipient
	require.NoError(t, db.Find(&recipients).Error)
	require.Len(t, recipients, len(turmaA))
	for _, r := range recipients {
		assert.Nil(t, r.ReadAt)
	}

	var misdelivered int64
	db.Model(&inbox.Recipient{}).Where("user_id = ?", turmaB[0].ID).Count(&misdelivered)
	assert.EqualValues(t, 0, misdelivered)
}

func TestSendMessage_NilCohortTargetsEveryStudent(t *testing.T) {
	db := setupInboxTest(t)
	admin, turmaA, turmaB := seedInboxUsers(t, db)

	w := sendAs(t, admin.ID, map[string]interface{}{
		"subject": "Aviso geral",
		"body":    "Plataforma em manutencao domingo.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&inbox.Recipient{}).Count(&count)
	assert.EqualValues(t, len(turmaA)+len(turmaB), count)

	// the admin never receives their own announcement
	var adminCopies int64
	db.Model(&inbox.Recipient{}).Where("user_id = ?", admin.ID).Count(&adminCopies)
	assert.EqualValues(t, 0, adminCopies)
}

func TestListSentMessages_CountsDeliveriesAndReads(t *testing.T) {
	db := setupInboxTest(t)
	admin, turmaA, _ := seedInboxUsers(t, db)

	require.Equal(t, http.StatusCreated, sendAs(t, admin.ID, map[string]interface{}{
		"subject":       "Aviso",
		"body":          "Simulado sabado.",
		"target_cohort": "Turma A",
	}).Code)

	var rec inbox.Recipient
	require.NoError(t, db.Where("user_id = ?", turmaA[0].ID).First(&rec).Error)
	require.NoError(t, db.Model(&rec).Update("read_at", config.Now()).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/inbox", ListSentMessages)

	req := httptest.NewRequest(http.MethodGet, "/admin/inbox", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		Subject   string `json:"subject"`
		Delivered int64  `json:"delivered"`
		ReadCount int64  `json:"read_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Aviso", out[0].Subject)
	assert.EqualValues(t, len(turmaA), out[0].Delivered)
	assert.EqualValues(t, 1, out[0].ReadCount)
}

func TestMarkRead_IsIdempotent(t *testing.T) {
	db := setupInboxTest(t)
	admin, turmaA, _ := seedInboxUsers(t, db)

	require.Equal(t, http.StatusCreated, sendAs(t, admin.ID, map[string]interface{}{
		"subject":       "Aviso",
		"body":          "Leiam o material novo.",
		"target_cohort": "Turma A",
	}).Code)

	student := turmaA[0]
	var rec inbox.Recipient
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&rec).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/inbox/:id/read", func(c *gin.Context) {
		c.Set("user_id", student.ID)
		MarkRead(c)
	})

	url := fmt.Sprintf("/inbox/%d/read", rec.ID)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var after inbox.Recipient
	require.NoError(t, db.First(&after, rec.ID).Error)
	require.NotNil(t, after.ReadAt)
	firstRead := *after.ReadAt

	req := httptest.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&after, rec.ID).Error)
	assert.True(t, after.ReadAt.Equal(firstRead))
}
