package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	// ApplicationStatusPending indicates that the application is waiting for review
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates that an admin has looked at the application
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusShortlisted indicates that the applicant made the shortlist
	ApplicationStatusShortlisted = "shortlisted"
	// ApplicationStatusInterview indicates that an interview is planned or running
	ApplicationStatusInterview = "interview"
	// ApplicationStatusOffered indicates that an offer was made
	ApplicationStatusOffered = "offered"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusWithdrawn indicates that the applicant pulled out
	ApplicationStatusWithdrawn = "withdrawn"
	// ApplicationStatusHired indicates that the applicant was hired
	ApplicationStatusHired = "hired"
)

// ApplicationStatuses lists every recognized status.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusInterview,
	ApplicationStatusOffered,
	ApplicationStatusRejected,
	ApplicationStatusWithdrawn,
	ApplicationStatusHired,
}

// IsValidApplicationStatus reports whether s is a recognized status.
func IsValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminalApplicationStatus reports whether no further business transition follows s.
func IsTerminalApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusOffered, ApplicationStatusRejected, ApplicationStatusWithdrawn, ApplicationStatusHired:
		return true
	}
	return false
}

// ApplicationJobApplicantIndex is the unique index over (job, applicant).
const ApplicationJobApplicantIndex = "idx_applications_job_applicant"

// Application is a ledger entry linking an applicant, a job and the resume
// used to apply. Only one application may exist per (job, applicant).
type Application struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	JobID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant,priority:1" json:"job_id"`
	Job         *Job       `gorm:"foreignKey:JobID;constraint:OnDelete:RESTRICT" json:"job,omitempty"`
	ApplicantID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_applicant,priority:2" json:"applicant_id"`
	Applicant   *User      `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`
	ResumeID    *uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Resume      *Resume    `gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL" json:"resume,omitempty"`

	CoverLetter string `gorm:"type:varchar(5000)" json:"cover_letter"`
	Status      string `gorm:"type:text;not null;index" json:"status"`

	MatchScore        *int                                   `json:"match_score"`
	AIAnalysis        datatypes.JSONType[*MatchResult]       `json:"ai_analysis"`
	InterviewSchedule datatypes.JSONType[*InterviewSchedule] `json:"interview_schedule"`
	RejectionReason   string                                 `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedAt        *time.Time                             `json:"reviewed_at,omitempty"`

	StatusHistory []StatusChange    `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
	Notes         []ApplicationNote `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusChange is one append-only entry of an application's status history.
type StatusChange struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"application_id"`
	Status        string     `gorm:"type:text;not null" json:"status"`
	ChangedBy     *uuid.UUID `gorm:"type:uuid" json:"changed_by"`
	Note          string     `gorm:"type:text" json:"note,omitempty"`
	ChangedAt     time.Time  `gorm:"not null" json:"changed_at"`
}

// ApplicationNote is a reviewer note attached to an application.
type ApplicationNote struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`
	Content       string    `gorm:"type:varchar(2000);not null" json:"content"`
	AddedBy       uuid.UUID `gorm:"type:uuid;not null" json:"added_by"`
	AddedAt       time.Time `gorm:"not null" json:"added_at"`
}

// InterviewSchedule describes a planned interview.
type InterviewSchedule struct {
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Interviewers []string  `json:"interviewers"`
	Notes        string    `json:"notes"`
}

// Interview types
var (
	InterviewPhone  = "phone"
	InterviewVideo  = "video"
	InterviewOnsite = "onsite"
)

// ApplyStatus validates status and moves the application to it, returning
// the history entry to append. Any recognized status may follow any other.
func (a *Application) ApplyStatus(status string, actor uuid.UUID, note string, at time.Time) (StatusChange, error) {
	if !IsValidApplicationStatus(status) {
		return StatusChange{}, fmt.Errorf("invalid status: %s", status)
	}

	a.Status = status
	if status != ApplicationStatusPending {
		a.ReviewedAt = &at
	}

	return StatusChange{
		ApplicationID: a.ID,
		Status:        status,
		ChangedBy:     &actor,
		Note:          note,
		ChangedAt:     at,
	}, nil
}
