package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Employment types
var (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeTemporary  = "temporary"
)

// Location types
var (
	LocationOnsite = "onsite"
	LocationRemote = "remote"
	LocationHybrid = "hybrid"
)

// Experience levels
var (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceLead      = "lead"
	ExperienceExecutive = "executive"
)

// Salary periods
var (
	SalaryHourly  = "hourly"
	SalaryMonthly = "monthly"
	SalaryYearly  = "yearly"
)

// Salary is a salary range. Min must not exceed Max when both are set.
type Salary struct {
	Min       *int   `gorm:"column:salary_min" json:"min,omitempty"`
	Max       *int   `gorm:"column:salary_max;check:chk_jobs_salary_range,salary_min IS NULL OR salary_max IS NULL OR salary_min <= salary_max" json:"max,omitempty"`
	Currency  string `gorm:"column:salary_currency;type:varchar(3)" json:"currency"`
	Period    string `gorm:"column:salary_period;type:text" json:"period"`
	IsVisible bool   `gorm:"column:salary_is_visible;not null" json:"is_visible"`
}

// ValidRange reports whether the range is well formed.
func (s Salary) ValidRange() bool {
	return s.Min == nil || s.Max == nil || *s.Min <= *s.Max
}

// Display renders the salary for listings.
func (s Salary) Display() string {
	if !s.IsVisible || (s.Min == nil && s.Max == nil) {
		return "Not disclosed"
	}
	period := ""
	if s.Period != "" {
		period = " /" + s.Period
	}
	switch {
	case s.Min != nil && s.Max != nil:
		return fmt.Sprintf("%s %d - %d%s", s.Currency, *s.Min, *s.Max, period)
	case s.Min != nil:
		return fmt.Sprintf("%s %d+%s", s.Currency, *s.Min, period)
	default:
		return fmt.Sprintf("Up to %s %d%s", s.Currency, *s.Max, period)
	}
}

// EditableJobInfo is the part of a job posting that admins edit.
type EditableJobInfo struct {
	Title            string         `gorm:"type:varchar(100);not null" json:"title"`
	Company          string         `gorm:"type:varchar(100);not null" json:"company"`
	Location         string         `gorm:"type:text;not null" json:"location"`
	LocationType     string         `gorm:"type:text;not null;index" json:"location_type"`
	Type             string         `gorm:"type:text;not null;index" json:"type"`
	ExperienceLevel  string         `gorm:"type:text;not null;index" json:"experience_level"`
	Salary           Salary         `gorm:"embedded" json:"salary"`
	Description      string         `gorm:"type:varchar(10000);not null" json:"description"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Skills           pq.StringArray `gorm:"type:text[]" json:"skills"`
	Benefits         pq.StringArray `gorm:"type:text[]" json:"benefits"`
	Category         string         `gorm:"type:text" json:"category"`
	Department       string         `gorm:"type:text" json:"department"`
	ApplicationURL   string         `gorm:"type:text" json:"application_url"`
	ApplicationEmail string         `gorm:"type:text" json:"application_email"`
	IsFeatured       bool           `gorm:"not null" json:"is_featured"`
	ExpiresAt        *time.Time     `json:"expires_at,omitempty"`
}

// Job is a posting owned by an admin. ApplicationsCount always equals the
// number of live applications and is only changed with atomic updates.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"recruiter_id"`
	Recruiter   *User     `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	EditableJobInfo
	IsActive          bool           `gorm:"not null;index" json:"is_active"`
	ApplicationsCount int64          `gorm:"not null;default:0" json:"applications_count"`
	ViewsCount        int64          `gorm:"not null;default:0" json:"views_count"`
	PostedAt          time.Time      `gorm:"not null;index" json:"posted_at"`
	ClosedAt          *time.Time     `json:"closed_at,omitempty"`
	SalaryDisplay     string         `gorm:"-" json:"salary_display"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// AfterFind fills derived fields.
func (j *Job) AfterFind(_ *gorm.DB) error {
	j.SalaryDisplay = j.Salary.Display()
	return nil
}

// AfterSave fills derived fields.
func (j *Job) AfterSave(_ *gorm.DB) error {
	j.SalaryDisplay = j.Salary.Display()
	return nil
}

// VisibleAt reports whether the job appears in default search at t.
func (j Job) VisibleAt(t time.Time) bool {
	return j.IsActive && (j.ExpiresAt == nil || j.ExpiresAt.After(t))
}

// VisibleJobs is a query scope selecting active, unexpired jobs.
func VisibleJobs(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("jobs.is_active = ?", true).
			Where("jobs.expires_at IS NULL OR jobs.expires_at > ?", now)
	}
}
