package jobpost

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// sortOrders whitelists the sort query parameter. A leading "-" means descending.
var sortOrders = map[string]string{
	"-posted_at":    "jobs.posted_at DESC",
	"posted_at":     "jobs.posted_at ASC",
	"-created_at":   "jobs.created_at DESC",
	"created_at":    "jobs.created_at ASC",
	"-salary":       "jobs.salary_max DESC NULLS LAST",
	"salary":        "jobs.salary_min ASC NULLS LAST",
	"-views":        "jobs.views_count DESC",
	"-applications": "jobs.applications_count DESC",
	"title":         "jobs.title ASC",
}

const defaultSort = "-posted_at"

// SearchFilters are the query parameters of a catalog search.
type SearchFilters struct {
	Search          string
	Location        string
	Type            string
	ExperienceLevel string
	LocationType    string
	Skills          []string
	MinSalary       *int
	MaxSalary       *int
	// IsActive is "true" (visible jobs only), "false" (inactive only) or "all".
	IsActive string
	Sort     string
}

func filtersFromQuery(c *gin.Context) (SearchFilters, error) {
	f := SearchFilters{
		Search:          strings.TrimSpace(c.Query("search")),
		Location:        strings.TrimSpace(c.Query("location")),
		Type:            c.Query("type"),
		ExperienceLevel: c.Query("experience_level"),
		LocationType:    c.Query("location_type"),
		IsActive:        strings.ToLower(c.DefaultQuery("is_active", "true")),
		Sort:            c.DefaultQuery("sort", defaultSort),
	}
	if raw := c.Query("skills"); raw != "" {
		f.Skills = utilities.FlexibleList{Items: []string{raw}}.Skills()
	}
	for key, dst := range map[string]**int{"min_salary": &f.MinSalary, "max_salary": &f.MaxSalary} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return SearchFilters{}, apperror.Validation("Invalid " + key)
		}
		*dst = &n
	}
	switch f.IsActive {
	case "true", "false", "all":
	default:
		return SearchFilters{}, apperror.Validation("is_active must be true, false or all")
	}
	if _, ok := sortOrders[f.Sort]; !ok {
		return SearchFilters{}, apperror.Validation("Unsupported sort: " + f.Sort)
	}
	return f, nil
}

// scope turns the filters into a query scope over jobs.
func (f SearchFilters) scope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch f.IsActive {
		case "true":
			db = db.Scopes(model.VisibleJobs(now))
		case "false":
			db = db.Where("jobs.is_active = ?", false)
		}

		if f.Search != "" {
			like := "%" + f.Search + "%"
			db = db.Where("jobs.title ILIKE ? OR jobs.company ILIKE ? OR jobs.description ILIKE ? OR ? = ANY(jobs.skills)",
				like, like, like, strings.ToLower(f.Search))
		}
		if f.Location != "" {
			db = db.Where("jobs.location ILIKE ?", "%"+f.Location+"%")
		}
		if f.Type != "" {
			db = db.Where("jobs.type = ?", f.Type)
		}
		if f.ExperienceLevel != "" {
			db = db.Where("jobs.experience_level = ?", f.ExperienceLevel)
		}
		if f.LocationType != "" {
			db = db.Where("jobs.location_type = ?", f.LocationType)
		}
		if len(f.Skills) > 0 {
			db = db.Where("jobs.skills && ?", pq.StringArray(f.Skills))
		}
		if f.MinSalary != nil {
			db = db.Where("jobs.salary_min >= ?", *f.MinSalary)
		}
		if f.MaxSalary != nil {
			db = db.Where("jobs.salary_max <= ?", *f.MaxSalary)
		}
		return db
	}
}

// SearchJobsHandler lists jobs matching the filters.
// @Summary Search jobs
// @Description Public. By default only active, unexpired jobs are returned; pass is_active=all to include every job.
// @Tags Jobs
// @Produce json
// @Param search query string false "Substring of title, company or description, or an exact skill"
// @Param location query string false "Location substring, case insensitive"
// @Param type query string false "Employment type"
// @Param experience_level query string false "Experience level"
// @Param location_type query string false "onsite, remote or hybrid"
// @Param skills query string false "Comma separated skills, any of"
// @Param min_salary query int false "Minimum of salary.min"
// @Param max_salary query int false "Maximum of salary.max"
// @Param is_active query string false "true (default), false or all"
// @Param sort query string false "-posted_at (default), posted_at, -created_at, created_at, -salary, salary, -views, -applications, title"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} JobListResponse "Jobs and pagination"
// @Failure 400 {object} utilities.ErrorResponse "Invalid filter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobPostController) SearchJobsHandler(c *gin.Context) {
	filters, err := filtersFromQuery(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	page, limit := utilities.PageParams(c, 10)

	res, err := jc.Search(filters, page, limit)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Search runs a catalog search and returns one page of results.
func (jc *JobPostController) Search(filters SearchFilters, page, limit int) (JobListResponse, error) {
	scope := filters.scope(time.Now())

	var total int64
	if err := jc.DB.Model(&model.Job{}).Scopes(scope).Count(&total).Error; err != nil {
		return JobListResponse{}, apperror.Internal("Failed to count jobs", err)
	}

	jobs := []model.Job{}
	err := jc.DB.
		Scopes(scope, utilities.Paginate(page, limit)).
		Preload("Recruiter", recruiterColumns).
		Order(sortOrders[filters.Sort]).
		Order("jobs.id").
		Find(&jobs).Error
	if err != nil {
		return JobListResponse{}, apperror.Internal("Failed to fetch jobs", err)
	}

	return JobListResponse{Jobs: jobs, Pagination: utilities.NewPagination(page, limit, total)}, nil
}

// MyJobsHandler lists the jobs posted by the calling admin.
// @Summary List my job postings
// @Description Only admins have access to this endpoint. Newest first.
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param is_active query boolean false "Filter by active flag"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} JobListResponse "Jobs and pagination"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/my-jobs [get]
func (jc *JobPostController) MyJobsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	page, limit := utilities.PageParams(c, 10)

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("recruiter_id = ?", user.ID)
		if raw := c.Query("is_active"); raw != "" {
			db = db.Where("is_active = ?", strings.EqualFold(raw, "true"))
		}
		return db
	}

	var total int64
	if err := jc.DB.Model(&model.Job{}).Scopes(scope).Count(&total).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to count jobs", err))
		return
	}
	jobs := []model.Job{}
	if err := jc.DB.Scopes(scope, utilities.Paginate(page, limit)).Order("created_at DESC").Find(&jobs).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to fetch jobs", err))
		return
	}

	c.JSON(http.StatusOK, JobListResponse{Jobs: jobs, Pagination: utilities.NewPagination(page, limit, total)})
}

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// JobStats summarises an admin's postings.
type JobStats struct {
	TotalJobs         int64        `json:"total_jobs"`
	ActiveJobs        int64        `json:"active_jobs"`
	InactiveJobs      int64        `json:"inactive_jobs"`
	TotalApplications int64        `json:"total_applications"`
	JobsByType        []GroupCount `json:"jobs_by_type"`
	JobsByExperience  []GroupCount `json:"jobs_by_experience"`
}

// StatsHandler summarises the calling admin's postings.
// @Summary Job statistics for the calling admin
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} JobStats "Statistics"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/stats [get]
func (jc *JobPostController) StatsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	mine := func(db *gorm.DB) *gorm.DB {
		return db.Model(&model.Job{}).Where("recruiter_id = ?", user.ID)
	}

	stats := JobStats{JobsByType: []GroupCount{}, JobsByExperience: []GroupCount{}}
	err = jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(mine).Count(&stats.TotalJobs).Error; err != nil {
			return err
		}
		if err := tx.Scopes(mine).Where("is_active = ?", true).Count(&stats.ActiveJobs).Error; err != nil {
			return err
		}
		if err := tx.Scopes(mine).Select("COALESCE(SUM(applications_count), 0)").Scan(&stats.TotalApplications).Error; err != nil {
			return err
		}
		if err := tx.Scopes(mine).Select("type AS key, COUNT(*) AS count").Group("type").Order("type").Scan(&stats.JobsByType).Error; err != nil {
			return err
		}
		return tx.Scopes(mine).Select("experience_level AS key, COUNT(*) AS count").
			Group("experience_level").Order("experience_level").Scan(&stats.JobsByExperience).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to compute job statistics", err))
		return
	}
	stats.InactiveJobs = stats.TotalJobs - stats.ActiveJobs

	c.JSON(http.StatusOK, stats)
}
