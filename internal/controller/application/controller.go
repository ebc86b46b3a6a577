// Package application provides the application ledger: submitting,
// reviewing and withdrawing job applications.
package application

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

// MaxCoverLetterLength is the longest accepted cover letter, in characters.
const MaxCoverLetterLength = 5000

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Advisor matcher.Advisor
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct, advisor matcher.Advisor) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Advisor: advisor,
	}
}

// Submit creates a pending application of applicantID for jobID, attaching
// the applicant's most recently uploaded resume, and increments the job's
// applications_count in the same transaction. Uniqueness of (job, applicant)
// is enforced by the database index, so of two concurrent submissions exactly
// one succeeds.
func (ac *ApplicationController) Submit(ctx context.Context, applicantID, jobID uuid.UUID, coverLetter string) (model.Application, error) {
	if utf8.RuneCountInString(coverLetter) > MaxCoverLetterLength {
		return model.Application{}, apperror.Validation("Cover letter cannot exceed 5000 characters")
	}

	var app model.Application
	err := ac.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Select("id").Where("id = ?", jobID).First(&job).Error; err != nil {
			return apperror.FromDB(err, "Job not found")
		}

		var existing int64
		if err := tx.Model(&model.Application{}).
			Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
			Count(&existing).Error; err != nil {
			return apperror.Internal("Failed to check existing application", err)
		}
		if existing > 0 {
			return apperror.New(apperror.KindDuplicateApplication, "You have already applied to this job")
		}

		var resume model.Resume
		err := tx.Select("id").
			Where("user_id = ? AND is_active = ?", applicantID, true).
			Order("created_at DESC").
			First(&resume).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return apperror.New(apperror.KindResumeRequired, "Please upload a resume before applying")
		case err != nil:
			return apperror.Internal("Failed to find resume", err)
		}

		now := time.Now()
		app = model.Application{
			JobID:       jobID,
			ApplicantID: applicantID,
			ResumeID:    &resume.ID,
			CoverLetter: coverLetter,
			Status:      model.ApplicationStatusPending,
		}
		if err := tx.Omit(clause.Associations).Create(&app).Error; err != nil {
			if apperror.IsUniqueViolation(err, model.ApplicationJobApplicantIndex) {
				return apperror.Wrap(apperror.KindDuplicateApplication, "You have already applied to this job", err)
			}
			return apperror.FromDB(err, "Job not found")
		}

		change := model.StatusChange{
			ApplicationID: app.ID,
			Status:        model.ApplicationStatusPending,
			ChangedBy:     &applicantID,
			Note:          "Application submitted",
			ChangedAt:     now,
		}
		if err := tx.Create(&change).Error; err != nil {
			return apperror.Internal("Failed to record status history", err)
		}
		app.StatusHistory = []model.StatusChange{change}

		res := tx.Model(&model.Job{}).
			Where("id = ?", jobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1))
		if res.Error != nil {
			return apperror.Internal("Failed to update application count", res.Error)
		}
		if res.RowsAffected != 1 {
			return apperror.NotFound("Job not found")
		}
		return nil
	})
	if err != nil {
		return model.Application{}, apperror.FromDB(err, "Job not found")
	}
	return app, nil
}

// TransitionStatus moves an application to status and appends a history
// entry. Any recognized status may follow any other, and repeating the
// current status still appends an entry.
func (ac *ApplicationController) TransitionStatus(
	ctx context.Context,
	applicationID uuid.UUID,
	status string,
	actorID uuid.UUID,
	note string,
	rejectionReason string,
) (model.Application, error) {
	if !model.IsValidApplicationStatus(status) {
		return model.Application{}, apperror.New(apperror.KindInvalidStatus, "Invalid status: "+status)
	}

	var app model.Application
	err := ac.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", applicationID).
			First(&app).Error; err != nil {
			return err
		}

		now := time.Now()
		change, err := app.ApplyStatus(status, actorID, note, now)
		if err != nil {
			return apperror.Wrap(apperror.KindInvalidStatus, "Invalid status: "+status, err)
		}
		if status == model.ApplicationStatusRejected && rejectionReason != "" {
			app.RejectionReason = rejectionReason
		}

		if err := tx.Model(&app).UpdateColumns(map[string]any{
			"status":           app.Status,
			"reviewed_at":      app.ReviewedAt,
			"rejection_reason": app.RejectionReason,
			"updated_at":       now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&change).Error
	})
	if err != nil {
		return model.Application{}, apperror.FromDB(err, "Application not found")
	}

	return ac.load(ctx, applicationID)
}

// Withdraw deletes an application on behalf of its applicant or an admin
// and decrements the job's applications_count exactly once.
func (ac *ApplicationController) Withdraw(ctx context.Context, applicationID uuid.UUID, actor model.User, reason string) error {
	var app model.Application
	err := ac.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", applicationID).
			First(&app).Error; err != nil {
			return err
		}
		if app.ApplicantID != actor.ID && !actor.IsAdmin() {
			return apperror.New(apperror.KindNotAuthorized, "Not authorized to withdraw this application")
		}

		res := tx.Delete(&app)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return gorm.ErrRecordNotFound
		}

		// The job may have been soft deleted since; its counter stays exact.
		return tx.Unscoped().Model(&model.Job{}).
			Where("id = ?", app.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count - ?", 1)).Error
	})
	if err != nil {
		return apperror.FromDB(err, "Application not found")
	}

	slog.Info("application withdrawn",
		slog.String("application_id", app.ID.String()),
		slog.String("job_id", app.JobID.String()),
		slog.String("applicant_id", app.ApplicantID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.String("reason", reason))
	return nil
}

// load returns an application with its history, notes and references.
func (ac *ApplicationController) load(ctx context.Context, id uuid.UUID) (model.Application, error) {
	var app model.Application
	err := ac.DB.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at, id") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("added_at, id") }).
		Preload("Job", jobSummary).
		Preload("Applicant", applicantSummary).
		Preload("Resume", resumeSummary).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return model.Application{}, apperror.FromDB(err, "Application not found")
	}
	return app, nil
}

// jobSummary includes soft deleted jobs so applications keep showing them.
func jobSummary(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Select(
		"id", "title", "company", "location", "location_type", "type", "is_active",
		"salary_min", "salary_max", "salary_currency", "salary_period", "salary_is_visible",
		"description", "posted_at", "closed_at", "deleted_at",
	)
}

func applicantSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "email", "first_name", "last_name", "phone")
}

func resumeSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "user_id", "file_name", "original_name", "file_type", "raw_text")
}
