// Package jobpost provides HTTP handlers for the job catalog.
package jobpost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// ViewCounter records job detail views. Implementations may apply the
// increment asynchronously.
type ViewCounter interface {
	IncrementViews(jobID uuid.UUID)
}

// DBViewCounter bumps views_count with an atomic UPDATE in the background.
type DBViewCounter struct {
	DB      *database.DBinstanceStruct
	Timeout time.Duration
}

// IncrementViews implements ViewCounter. Failures are logged and dropped.
func (v *DBViewCounter) IncrementViews(jobID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), v.Timeout)
		defer cancel()
		err := v.DB.WithContext(ctx).
			Model(&model.Job{}).
			Where("id = ?", jobID).
			UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
		if err != nil {
			slog.Warn("failed to increment job views", slog.String("job_id", jobID.String()), slog.Any("error", err))
		}
	}()
}

// JobPostController handles job catalog endpoints
type JobPostController struct {
	DB    *database.DBinstanceStruct
	Views ViewCounter
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(db *database.DBinstanceStruct) *JobPostController {
	return &JobPostController{
		DB:    db,
		Views: &DBViewCounter{DB: db, Timeout: 5 * time.Second},
	}
}

// JobListResponse is one page of jobs.
type JobListResponse struct {
	Jobs       []model.Job          `json:"jobs"`
	Pagination utilities.Pagination `json:"pagination"`
}

// CreateJobHandler creates a job posting owned by the calling admin.
// @Summary Create job posting
// @Description Only admins have access to this endpoint. List fields accept an array or a delimited string (comma for skills, newline for the rest).
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param Job body JobRequest true "Job information"
// @Success 201 {object} model.Job "Job created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body, missing fields or invalid salary range"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobPostController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	now := time.Now()
	job := newJob()
	if err := req.apply(&job, now); err != nil {
		utilities.RespondError(c, err)
		return
	}
	job.RecruiterID = user.ID
	job.PostedAt = now

	if err := jc.DB.Create(&job).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to create job", err))
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobHandler returns one job and records a view.
// @Summary Get job by ID
// @Description Public. Inactive and expired jobs are still returned by id.
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job "Job"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobPostController) GetJobHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Job not found")
	if !ok {
		return
	}

	var job model.Job
	err := jc.DB.
		Preload("Recruiter", recruiterColumns).
		Where("id = ?", id).
		First(&job).Error
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found", Kind: string(apperror.KindNotFound)})
		default:
			utilities.RespondError(c, apperror.Internal("Failed to retrieve job", err))
		}
		return
	}

	jc.Views.IncrementViews(job.ID)
	job.ViewsCount++

	c.JSON(http.StatusOK, job)
}

// UpdateJobHandler edits a job in place. Any admin may edit any job.
// @Summary Update job
// @Description Only admins have access to this endpoint. Omitted fields are left unchanged.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Job ID"
// @Param Job body JobRequest true "Fields to change"
// @Success 200 {object} model.Job "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or invalid salary range"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobPostController) UpdateJobHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Job not found")
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var job model.Job
	err := jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&job).Error; err != nil {
			return apperror.FromDB(err, "Job not found")
		}
		if err := req.apply(&job, time.Now()); err != nil {
			return err
		}
		// Counters are only ever changed by atomic updates.
		return tx.Omit("applications_count", "views_count", "Recruiter").Save(&job).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "Job not found"))
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJobHandler removes a job from the catalog. The row is soft deleted:
// it is closed, hidden from every read, and applications keep a valid reference.
// @Summary Delete job
// @Description Only admins have access to this endpoint.
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Job ID"
// @Success 200 {object} utilities.MessageResponse "Job deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobPostController) DeleteJobHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Job not found")
	if !ok {
		return
	}

	err := jc.DB.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		if err := tx.Model(&job).UpdateColumns(map[string]any{
			"is_active":  false,
			"closed_at":  time.Now(),
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
	if err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "Job not found"))
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted successfully"})
}

// ToggleActiveHandler flips a job between active and inactive. Any admin may
// toggle any job.
// @Summary Toggle job active status
// @Description Deactivating sets closed_at, activating clears it.
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job "Job after toggle"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/toggle-status [patch]
func (jc *JobPostController) ToggleActiveHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "Job not found")
	if !ok {
		return
	}

	job, err := jc.ToggleActive(id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ToggleActive flips is_active under a row lock and returns the updated job.
func (jc *JobPostController) ToggleActive(id uuid.UUID) (model.Job, error) {
	var job model.Job
	err := jc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		now := time.Now()
		setActive(&job, !job.IsActive, now)
		return tx.Model(&job).UpdateColumns(map[string]any{
			"is_active":  job.IsActive,
			"closed_at":  job.ClosedAt,
			"updated_at": now,
		}).Error
	})
	if err != nil {
		return model.Job{}, apperror.FromDB(err, "Job not found")
	}
	return job, nil
}

func recruiterColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email")
}
