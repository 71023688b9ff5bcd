package admin

import (
	"net/http"
	"time"

	"redacao-app/config"
	"redacao-app/database"
	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/credits"
	"redacao-app/internal/domain/essays"
	"redacao-app/internal/domain/subscriptions"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminStudent struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Lastname   string  `json:"lastname"`
	Email      string  `json:"email"`
	IsVerified bool    `json:"is_verified"`
	Cohort     *string `json:"cohort,omitempty"`
	Credits    int     `json:"credits"`
}

type AdminStats struct {
	TotalStudents        int            `json:"total_students"`
	StudentsPerCohort    map[string]int `json:"students_per_cohort"`
	EssaysAwaitingReview int            `json:"essays_awaiting_review"`
	ActiveSubscriptions  int            `json:"active_subscriptions"`
	ExpiredSubscriptions int            `json:"expired_subscriptions"`
}

func AdminDashboard(c *gin.Context) {
	now := config.Now()
	var stats AdminStats

	var totalStudents int64
	database.DB.Model(&users.User{}).Where("role = ?", users.RoleStudent).Count(&totalStudents)
	stats.TotalStudents = int(totalStudents)

	type CohortCount struct {
		Name  *string
		Count int
	}
	var counts []CohortCount
	database.DB.
		Table("users").
		Select("cohorts.name, COUNT(users.id) as count").
		Joins("LEFT JOIN cohorts ON users.cohort_id = cohorts.id").
		Where("users.role = ?", users.RoleStudent).
		Group("cohorts.name").
		Scan(&counts)

	stats.StudentsPerCohort = map[string]int{}
	for _, cc := range counts {
		name := "No Cohort"
		if cc.Name != nil {
			name = *cc.Name
		}
		stats.StudentsPerCohort[name] = cc.Count
	}

	var pending int64
	database.DB.Model(&essays.Essay{}).
		Where("status IN ?", []string{essays.StatusSubmitted, essays.StatusInReview}).
		Count(&pending)
	stats.EssaysAwaitingReview = int(pending)

	var active, expired int64
	database.DB.Model(&subscriptions.Subscription{}).Where("expiry_date >= ?", now).Count(&active)
	database.DB.Model(&subscriptions.Subscription{}).Where("expiry_date < ?", now).Count(&expired)
	stats.ActiveSubscriptions = int(active)
	stats.ExpiredSubscriptions = int(expired)

	c.JSON(http.StatusOK, stats)
}

func ListStudents(c *gin.Context) {
	q := database.DB.Preload("Cohort").Where("role = ?", users.RoleStudent)

	if cohort := c.Query("cohort"); cohort != "" {
		q = q.Joins("JOIN cohorts ON cohorts.id = users.cohort_id").
			Where("cohorts.name = ?", cohort)
	}

	var list []users.User
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load students"})
		return
	}

	out := make([]AdminStudent, 0, len(list))
	for _, u := range list {
		var cohortName *string
		if u.Cohort != nil {
			cohortName = &u.Cohort.Name
		}
		out = append(out, AdminStudent{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			IsVerified: u.IsVerified,
			Cohort:     cohortName,
			Credits:    u.Credits,
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetStudentDetails(c *gin.Context) {
	studentID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Cohort").First(&user, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var subs []subscriptions.Subscription
	database.DB.Preload("Plan").Where("user_id = ?", user.ID).Order("expiry_date DESC").Find(&subs)

	now := config.Now()
	type subView struct {
		subscriptions.Subscription
		Status string `json:"status"`
	}
	subViews := make([]subView, 0, len(subs))
	for _, s := range subs {
		subViews = append(subViews, subView{s, string(subscriptions.Status(s, now))})
	}

	var creditLog []credits.Entry
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(50).Find(&creditLog)

	var recentEssays []essays.Essay
	database.DB.Where("student_id = ?", user.ID).Order("submitted_at DESC").Limit(20).Find(&recentEssays)

	c.JSON(http.StatusOK, gin.H{
		"student":       user,
		"subscriptions": subViews,
		"credit_log":    creditLog,
		"essays":        recentEssays,
	})
}

// PUT /admin/students/:id/cohort
func AssignCohort(c *gin.Context) {
	studentID := c.Param("id")

	var body struct {
		CohortID *uint `json:"cohort_id"` // null removes the student from any cohort
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if body.CohortID != nil {
		var cohort cohorts.Cohort
		if err := database.DB.First(&cohort, *body.CohortID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown cohort"})
			return
		}
	}

	if err := database.DB.Model(&user).Update("cohort_id", body.CohortID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cohort"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cohort updated"})
}

// RecentCreditActivity feeds the dashboard's activity panel.
func RecentCreditActivity(c *gin.Context) {
	since := config.Now().Add(-30 * 24 * time.Hour)

	var entries []credits.Entry
	if err := database.DB.
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(100).
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credit activity"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
