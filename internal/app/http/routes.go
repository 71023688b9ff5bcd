package routes

import (
	activitiesapi "redacao-app/internal/api/activities"
	adminapi "redacao-app/internal/api/admin"
	authapi "redacao-app/internal/api/auth"
	"redacao-app/internal/api/billing"
	catalogapi "redacao-app/internal/api/catalog"
	cohortsapi "redacao-app/internal/api/cohorts"
	essaysapi "redacao-app/internal/api/essays"
	examsapi "redacao-app/internal/api/exams"
	inboxapi "redacao-app/internal/api/inbox"
	libraryapi "redacao-app/internal/api/library"
	mediaapi "redacao-app/internal/api/media"
	"redacao-app/internal/api/plans"
	stripewebhooks "redacao-app/internal/api/stripewebhook"
	subscriptionsapi "redacao-app/internal/api/subscriptions"
	themesapi "redacao-app/internal/api/themes"
	usersapi "redacao-app/internal/api/users"
	"redacao-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	middleware.RegisterValidators()

	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/verify", usersapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated: any signed-in user, visitors included
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)
	auth.GET("/subscription", subscriptionsapi.GetMySubscription)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	auth.GET("/themes", themesapi.ListAvailableThemes)
	auth.GET("/themes/:id", themesapi.GetTheme)
	auth.GET("/library", libraryapi.ListAvailableMaterials)
	auth.GET("/library/categories", libraryapi.ListCategories)
	auth.GET("/videos", catalogapi.ListAvailableVideos)
	auth.GET("/lessons", catalogapi.ListAvailableLessons)
	auth.POST("/watched", catalogapi.MarkWatched)
	auth.DELETE("/watched", catalogapi.UnmarkWatched)
	auth.GET("/exams", examsapi.ListAvailableExams)
	auth.GET("/exams/:id", examsapi.GetExam)
	auth.GET("/exercises", activitiesapi.ListAvailableExercises)
	auth.GET("/board-sessions", activitiesapi.ListAvailableBoardSessions)

	auth.GET("/inbox", inboxapi.ListInbox)
	auth.GET("/inbox/unread-count", inboxapi.UnreadCount)
	auth.POST("/inbox/:id/read", inboxapi.MarkRead)

	auth.GET("/essays", essaysapi.ListMyEssays)
	auth.GET("/essays/:id", essaysapi.GetEssay)

	// Submitting an essay additionally requires an active subscription
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.POST("/essays", essaysapi.SubmitEssay)

	// Corrector portal
	corrector := r.Group("/corrector")
	corrector.Use(middleware.AuthMiddleware(), middleware.RequireRole("corrector"))
	corrector.GET("/essays", essaysapi.ListPendingEssays)
	corrector.POST("/essays/:id/claim", essaysapi.ClaimEssay)
	corrector.POST("/essays/:id/correction", essaysapi.SubmitCorrection)

	// Admin dashboard
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))

	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/students", adminapi.ListStudents)
	admin.GET("/students/:id", adminapi.GetStudentDetails)
	admin.PUT("/students/:id/cohort", adminapi.AssignCohort)
	admin.POST("/students/:id/credits", adminapi.AdjustCredits)
	admin.POST("/cohorts/:name/credits", adminapi.BulkAdjustCredits)
	admin.GET("/credit-activity", adminapi.RecentCreditActivity)

	admin.GET("/cohorts", cohortsapi.ListCohorts)
	admin.POST("/cohorts", cohortsapi.CreateCohort)
	admin.PUT("/cohorts/:id", cohortsapi.UpdateCohort)
	admin.DELETE("/cohorts/:id", cohortsapi.DeleteCohort)

	admin.GET("/subscriptions", subscriptionsapi.ListSubscriptions)
	admin.POST("/subscriptions", subscriptionsapi.CreateSubscription)
	admin.PUT("/subscriptions/:id", subscriptionsapi.UpdateSubscription)
	admin.GET("/subscriptions/:id/history", subscriptionsapi.GetSubscriptionHistory)
	admin.POST("/plans/sync", plans.SyncPlansFromStripe)

	admin.GET("/themes", themesapi.ListThemes)
	admin.POST("/themes", themesapi.CreateTheme)
	admin.PUT("/themes/:id", themesapi.UpdateTheme)
	admin.DELETE("/themes/:id", themesapi.DeleteTheme)
	admin.POST("/themes/:id/publish", themesapi.PublishTheme)
	admin.POST("/themes/:id/unpublish", themesapi.UnpublishTheme)
	admin.POST("/themes/:id/schedule", themesapi.ScheduleTheme)

	admin.GET("/library", libraryapi.ListMaterials)
	admin.POST("/library", libraryapi.CreateMaterial)
	admin.PUT("/library/:id", libraryapi.UpdateMaterial)
	admin.DELETE("/library/:id", libraryapi.DeleteMaterial)
	admin.POST("/library/categories", libraryapi.CreateCategory)
	admin.DELETE("/library/categories/:id", libraryapi.DeleteCategory)

	admin.GET("/videos", catalogapi.ListVideos)
	admin.POST("/videos", catalogapi.CreateVideo)
	admin.PUT("/videos/:id", catalogapi.UpdateVideo)
	admin.DELETE("/videos/:id", catalogapi.DeleteVideo)

	admin.GET("/lessons", catalogapi.ListLessons)
	admin.POST("/lessons", catalogapi.CreateLesson)
	admin.PUT("/lessons/:id", catalogapi.UpdateLesson)
	admin.DELETE("/lessons/:id", catalogapi.DeleteLesson)

	admin.GET("/exams", examsapi.ListExams)
	admin.POST("/exams", examsapi.CreateExam)
	admin.PUT("/exams/:id", examsapi.UpdateExam)
	admin.DELETE("/exams/:id", examsapi.DeleteExam)

	admin.GET("/exercises", activitiesapi.ListExercises)
	admin.POST("/exercises", activitiesapi.CreateExercise)
	admin.PUT("/exercises/:id", activitiesapi.UpdateExercise)
	admin.DELETE("/exercises/:id", activitiesapi.DeleteExercise)

	admin.GET("/board-sessions", activitiesapi.ListBoardSessions)
	admin.POST("/board-sessions", activitiesapi.CreateBoardSession)
	admin.PUT("/board-sessions/:id", activitiesapi.UpdateBoardSession)
	admin.DELETE("/board-sessions/:id", activitiesapi.DeleteBoardSession)

	admin.POST("/files", mediaapi.RegisterFile)
	admin.GET("/files", mediaapi.ListFiles)
	admin.DELETE("/files/:id", mediaapi.DeleteFile)

	admin.POST("/inbox", inboxapi.SendMessage)
	admin.GET("/inbox", inboxapi.ListSentMessages)
}
