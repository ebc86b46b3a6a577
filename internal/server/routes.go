// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Init swagger doc
	_ "github.com/Monesha-B/nexus-job-platform/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/admin"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/application"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/jobpost"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/match"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/resume"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/user"
	"github.com/Monesha-B/nexus-job-platform/internal/middleware"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

// maxResumeUpload bounds resume upload bodies.
const maxResumeUpload = 10 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.Logger), middleware.SafeHeader())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	var blacklist auth.JwtBlacklistStore = auth.NewInMemoryBlacklistStore()
	if s.Redis != nil {
		blacklist = auth.NewRedisBlacklistStore(s.Redis)
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, auth.GoogleOauthConfig(s.Config.Auth), auth.GoogleUserInfoEndpoint)
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(blacklist)

	jobs := jobpost.NewJobPostController(s.DB)
	apps := application.NewApplicationController(s.DB, s.Advisor)
	resumes := resume.NewResumeController(s.DB, s.Storage, s.Advisor)
	matches := match.NewMatchController(s.DB, s.Advisor)
	users := user.NewUserController(s.DB)
	reports := admin.NewAdminController(s.DB)

	r.GET("/health", s.healthHandler)

	limit := middleware.RateLimiterMiddleware(s.Config.Server.RateLimitPerSecond, s.Redis)

	api := r.Group("/api")
	{
		authRoute := api.Group("/auth", limit)
		{
			authRoute.POST("register", lAuth.LocalRegisterHandler)
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)
		}

		// Job search and detail are public.
		api.GET("/jobs", limit, jobs.SearchJobsHandler)
		api.GET("/jobs/:id", limit, jobs.GetJobHandler)

		needAuth := api.Group("")
		needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(blacklist), limit)
		{
			needAuth.GET("/auth/me", lAuth.MeHandler)
			needAuth.PUT("/auth/me", lAuth.UpdateMeHandler)
			needAuth.PATCH("/auth/me", lAuth.UpdateMeHandler)
			needAuth.POST("/auth/logout", logout.LogoutHandler)

			resumeRoute := needAuth.Group("/resumes")
			{
				resumeRoute.POST("", middleware.SizeLimit(maxResumeUpload), resumes.UploadHandler)
				resumeRoute.GET("", resumes.ListHandler)
				resumeRoute.GET("primary", resumes.PrimaryHandler)
				resumeRoute.GET(":id", resumes.GetHandler)
				resumeRoute.GET(":id/file", resumes.FileHandler)
				resumeRoute.PUT(":id/primary", resumes.SetPrimaryHandler)
				resumeRoute.POST(":id/parse", resumes.ParseHandler)
				resumeRoute.DELETE(":id", resumes.DeleteHandler)
			}

			aiRoute := needAuth.Group("/ai")
			{
				aiRoute.POST("match", matches.MatchHandler)
				aiRoute.POST("cover-letter", matches.CoverLetterHandler)
				aiRoute.POST("interview-questions", matches.InterviewQuestionsHandler)
				aiRoute.POST("skills-gap", matches.SkillsGapHandler)
				aiRoute.POST("chat", matches.ChatHandler)
				aiRoute.GET("matches", matches.ListMatchesHandler)
				aiRoute.GET("matches/:id", matches.GetMatchHandler)
				aiRoute.PUT("matches/:id/save", matches.ToggleSaveHandler)
			}

			appRoute := needAuth.Group("/applications")
			{
				appRoute.POST("", apps.SubmitHandler)
				appRoute.GET("me", apps.MyApplicationsHandler)
				appRoute.GET(":id", apps.GetHandler)
				appRoute.DELETE(":id", apps.WithdrawHandler)
			}

			needAdmin := needAuth.Group("")
			needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
			{
				jobRoute := needAdmin.Group("/jobs")
				{
					jobRoute.GET("my-jobs", jobs.MyJobsHandler)
					jobRoute.GET("stats", jobs.StatsHandler)
					jobRoute.POST("", jobs.CreateJobHandler)
					jobRoute.PUT(":id", jobs.UpdateJobHandler)
					jobRoute.DELETE(":id", jobs.DeleteJobHandler)
					jobRoute.PATCH(":id/toggle-status", jobs.ToggleActiveHandler)
				}

				adminApps := needAdmin.Group("/applications")
				{
					adminApps.GET("", apps.ListHandler)
					adminApps.GET("stats", apps.StatsHandler)
					adminApps.PATCH(":id/status", apps.UpdateStatusHandler)
					adminApps.POST(":id/notes", apps.AddNoteHandler)
					adminApps.PUT(":id/interview", apps.ScheduleInterviewHandler)
					adminApps.POST(":id/analyze", apps.AnalyzeHandler)
				}

				userRoute := needAdmin.Group("/users")
				{
					userRoute.GET("", users.ListUsersHandler)
					userRoute.GET(":id", users.GetUserHandler)
					userRoute.PATCH(":id/role", users.ChangeRoleHandler)
					userRoute.PATCH(":id/toggle-status", users.ToggleActiveHandler)
				}

				adminRoute := needAdmin.Group("/admin")
				{
					adminRoute.GET("stats", reports.StatsHandler)
					adminRoute.GET("recent-users", reports.RecentUsersHandler)
					adminRoute.GET("recent-applications", reports.RecentApplicationsHandler)
					adminRoute.GET("popular-jobs", reports.PopularJobsHandler)
				}
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
