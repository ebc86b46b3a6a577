// Package admin provides read-only reporting endpoints for admins.
package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

const defaultReportLimit = 10

// AdminController handles reporting endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// UserCounts summarises accounts.
type UserCounts struct {
	Total      int64 `json:"total"`
	Jobseekers int64 `json:"jobseekers"`
	Admins     int64 `json:"admins"`
	Active     int64 `json:"active"`
}

// JobCounts summarises the catalog.
type JobCounts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	Views  int64 `json:"views"`
}

// StatusCount is the number of applications in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ApplicationCounts summarises the ledger.
type ApplicationCounts struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"by_status"`
}

// PlatformStats is the dashboard summary.
type PlatformStats struct {
	Users        UserCounts        `json:"users"`
	Jobs         JobCounts         `json:"jobs"`
	Applications ApplicationCounts `json:"applications"`
	Resumes      int64             `json:"resumes"`
	Matches      int64             `json:"matches"`
}

func reportLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultReportLimit)))
	if err != nil || limit < 1 {
		return defaultReportLimit
	}
	return min(limit, utilities.MaxPageSize)
}

// StatsHandler summarises the whole platform.
// @Summary Platform statistics
// @Description Only admins have access to this endpoint. Deleted jobs are excluded.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} PlatformStats
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/stats [get]
func (ac *AdminController) StatsHandler(c *gin.Context) {
	stats := PlatformStats{Applications: ApplicationCounts{ByStatus: []StatusCount{}}}
	users := func(db *gorm.DB) *gorm.DB { return db.Model(&model.User{}) }
	jobs := func(db *gorm.DB) *gorm.DB { return db.Model(&model.Job{}) }

	err := ac.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		counts := []struct {
			dst   *int64
			query *gorm.DB
		}{
			{&stats.Users.Total, tx.Scopes(users)},
			{&stats.Users.Jobseekers, tx.Scopes(users).Where("role = ?", model.RoleJobseeker)},
			{&stats.Users.Admins, tx.Scopes(users).Where("role = ?", model.RoleAdmin)},
			{&stats.Users.Active, tx.Scopes(users).Where("is_active = ?", true)},
			{&stats.Jobs.Total, tx.Scopes(jobs)},
			{&stats.Jobs.Active, tx.Scopes(jobs).Where("is_active = ?", true)},
			{&stats.Applications.Total, tx.Model(&model.Application{})},
			{&stats.Resumes, tx.Model(&model.Resume{}).Where("is_active = ?", true)},
			{&stats.Matches, tx.Model(&model.Match{})},
		}
		for _, q := range counts {
			if err := q.query.Count(q.dst).Error; err != nil {
				return err
			}
		}
		if err := tx.Scopes(jobs).Select("COALESCE(SUM(views_count), 0)").Scan(&stats.Jobs.Views).Error; err != nil {
			return err
		}
		return tx.Model(&model.Application{}).
			Select("status, COUNT(*) AS count").
			Group("status").
			Order("status").
			Scan(&stats.Applications.ByStatus).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to compute statistics", err))
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RecentUsersHandler lists the newest accounts.
// @Summary Recently registered users
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param limit query int false "Number of users" default(10)
// @Success 200 {array} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/recent-users [get]
func (ac *AdminController) RecentUsersHandler(c *gin.Context) {
	users := []model.User{}
	if err := ac.DB.Order("created_at DESC").Limit(reportLimit(c)).Find(&users).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to list users", err))
		return
	}
	c.JSON(http.StatusOK, users)
}

// RecentApplicationsHandler lists the newest applications with their job
// and applicant.
// @Summary Recent applications
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param limit query int false "Number of applications" default(10)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/recent-applications [get]
func (ac *AdminController) RecentApplicationsHandler(c *gin.Context) {
	apps := []model.Application{}
	err := ac.DB.
		Preload("Job", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "title", "company", "is_active", "deleted_at")
		}).
		Preload("Applicant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email", "first_name", "last_name")
		}).
		Order("created_at DESC").
		Limit(reportLimit(c)).
		Find(&apps).Error
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to list applications", err))
		return
	}
	c.JSON(http.StatusOK, apps)
}

// PopularJobsHandler ranks live jobs by applications, then views.
// @Summary Most popular jobs
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param limit query int false "Number of jobs" default(10)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/popular-jobs [get]
func (ac *AdminController) PopularJobsHandler(c *gin.Context) {
	jobs := []model.Job{}
	err := ac.DB.
		Order("applications_count DESC").
		Order("views_count DESC").
		Order("posted_at DESC").
		Limit(reportLimit(c)).
		Find(&jobs).Error
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to list jobs", err))
		return
	}
	c.JSON(http.StatusOK, jobs)
}
