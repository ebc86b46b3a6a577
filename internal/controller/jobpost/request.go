package jobpost

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// SalaryRequest is the salary part of a job request.
type SalaryRequest struct {
	Min       *int    `json:"min"`
	Max       *int    `json:"max"`
	Currency  *string `json:"currency"`
	Period    *string `json:"period"`
	IsVisible *bool   `json:"is_visible"`
}

// JobRequest is the body of job create and update requests. Every field is
// optional on update. List fields take an array or one delimited string:
// commas for skills, newlines for the others.
type JobRequest struct {
	Title            *string                `json:"title"`
	Company          *string                `json:"company"`
	Location         *string                `json:"location"`
	LocationType     *string                `json:"location_type"`
	Type             *string                `json:"type"`
	ExperienceLevel  *string                `json:"experience_level"`
	Salary           *SalaryRequest         `json:"salary"`
	Description      *string                `json:"description"`
	Requirements     utilities.FlexibleList `json:"requirements" swaggertype:"array,string"`
	Responsibilities utilities.FlexibleList `json:"responsibilities" swaggertype:"array,string"`
	Skills           utilities.FlexibleList `json:"skills" swaggertype:"array,string"`
	Benefits         utilities.FlexibleList `json:"benefits" swaggertype:"array,string"`
	Category         *string                `json:"category"`
	Department       *string                `json:"department"`
	ApplicationURL   *string                `json:"application_url"`
	ApplicationEmail *string                `json:"application_email"`
	IsFeatured       *bool                  `json:"is_featured"`
	IsActive         *bool                  `json:"is_active"`
	ExpiresAt        *time.Time             `json:"expires_at"`
}

// newJob returns a job carrying the catalog defaults.
func newJob() model.Job {
	return model.Job{
		EditableJobInfo: model.EditableJobInfo{
			LocationType:    model.LocationOnsite,
			Type:            model.JobTypeFullTime,
			ExperienceLevel: model.ExperienceMid,
			Salary: model.Salary{
				Currency:  "USD",
				Period:    model.SalaryYearly,
				IsVisible: true,
			},
		},
		IsActive: true,
	}
}

// apply copies the fields present in r onto job and validates the result.
// Nothing is applied to the stored row until validation passes, so a bad
// field rejects the whole request.
func (r JobRequest) apply(job *model.Job, now time.Time) error {
	info := &job.EditableJobInfo

	setTrimmed(&info.Title, r.Title)
	setTrimmed(&info.Company, r.Company)
	setTrimmed(&info.Location, r.Location)
	setTrimmed(&info.LocationType, r.LocationType)
	setTrimmed(&info.Type, r.Type)
	setTrimmed(&info.ExperienceLevel, r.ExperienceLevel)
	setTrimmed(&info.Description, r.Description)
	setTrimmed(&info.Category, r.Category)
	setTrimmed(&info.Department, r.Department)
	setTrimmed(&info.ApplicationURL, r.ApplicationURL)
	setTrimmed(&info.ApplicationEmail, r.ApplicationEmail)

	if s := r.Salary; s != nil {
		if s.Min != nil {
			info.Salary.Min = s.Min
		}
		if s.Max != nil {
			info.Salary.Max = s.Max
		}
		if s.Currency != nil {
			info.Salary.Currency = strings.ToUpper(strings.TrimSpace(*s.Currency))
		}
		setTrimmed(&info.Salary.Period, s.Period)
		if s.IsVisible != nil {
			info.Salary.IsVisible = *s.IsVisible
		}
	}

	if r.Requirements.Set {
		info.Requirements = pq.StringArray(r.Requirements.Lines())
	}
	if r.Responsibilities.Set {
		info.Responsibilities = pq.StringArray(r.Responsibilities.Lines())
	}
	if r.Skills.Set {
		info.Skills = pq.StringArray(r.Skills.Skills())
	}
	if r.Benefits.Set {
		info.Benefits = pq.StringArray(r.Benefits.Lines())
	}

	if r.IsFeatured != nil {
		info.IsFeatured = *r.IsFeatured
	}
	if r.ExpiresAt != nil {
		info.ExpiresAt = r.ExpiresAt
	}
	if r.IsActive != nil && *r.IsActive != job.IsActive {
		setActive(job, *r.IsActive, now)
	}

	return validate(job)
}

func validate(job *model.Job) error {
	info := job.EditableJobInfo
	switch {
	case info.Title == "":
		return apperror.Validation("Job title is required")
	case info.Company == "":
		return apperror.Validation("Company name is required")
	case info.Location == "":
		return apperror.Validation("Location is required")
	case info.Description == "":
		return apperror.Validation("Job description is required")
	case utf8.RuneCountInString(info.Title) > 100:
		return apperror.Validation("Job title cannot exceed 100 characters")
	case utf8.RuneCountInString(info.Company) > 100:
		return apperror.Validation("Company name cannot exceed 100 characters")
	case utf8.RuneCountInString(info.Description) > 10000:
		return apperror.Validation("Description cannot exceed 10000 characters")
	}

	if !utilities.Contains([]string{model.LocationOnsite, model.LocationRemote, model.LocationHybrid}, info.LocationType) {
		return apperror.Validation("Invalid location type")
	}
	if !utilities.Contains([]string{model.JobTypeFullTime, model.JobTypePartTime, model.JobTypeContract,
		model.JobTypeInternship, model.JobTypeTemporary}, info.Type) {
		return apperror.Validation("Invalid job type")
	}
	if !utilities.Contains([]string{model.ExperienceEntry, model.ExperienceMid, model.ExperienceSenior,
		model.ExperienceLead, model.ExperienceExecutive}, info.ExperienceLevel) {
		return apperror.Validation("Invalid experience level")
	}
	if !utilities.Contains([]string{model.SalaryHourly, model.SalaryMonthly, model.SalaryYearly}, info.Salary.Period) {
		return apperror.Validation("Invalid salary period")
	}

	if (info.Salary.Min != nil && *info.Salary.Min < 0) || (info.Salary.Max != nil && *info.Salary.Max < 0) {
		return apperror.New(apperror.KindInvalidSalaryRange, "Salary cannot be negative")
	}
	if !info.Salary.ValidRange() {
		return apperror.New(apperror.KindInvalidSalaryRange, "Minimum salary cannot exceed maximum salary")
	}
	return nil
}

// setActive flips the active flag, stamping or clearing closed_at.
func setActive(job *model.Job, active bool, now time.Time) {
	job.IsActive = active
	if active {
		job.ClosedAt = nil
	} else {
		job.ClosedAt = &now
	}
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
