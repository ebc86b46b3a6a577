package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Overall fit bands
var (
	FitExcellent = "excellent"
	FitGood      = "good"
	FitModerate  = "moderate"
	FitLow       = "low"
)

// FitForScore maps a 0-100 score onto its band.
func FitForScore(score int) string {
	switch {
	case score >= 85:
		return FitExcellent
	case score >= 70:
		return FitGood
	case score >= 50:
		return FitModerate
	default:
		return FitLow
	}
}

// IsValidFit reports whether fit is a known band.
func IsValidFit(fit string) bool {
	switch fit {
	case FitExcellent, FitGood, FitModerate, FitLow:
		return true
	}
	return false
}

// MatchResult is the structured output of the match advisory.
type MatchResult struct {
	MatchScore         int                 `json:"match_score"`
	OverallFit         string              `json:"overall_fit"`
	Summary            string              `json:"summary"`
	Strengths          []string            `json:"strengths"`
	Gaps               []string            `json:"gaps"`
	SkillsMatch        []SkillMatch        `json:"skills_match"`
	ExperienceMatch    *ExperienceMatch    `json:"experience_match,omitempty"`
	EducationMatch     *EducationMatch     `json:"education_match,omitempty"`
	Recommendations    []string            `json:"recommendations"`
	InterviewQuestions []InterviewQuestion `json:"interview_questions,omitempty"`
	CoverLetter        string              `json:"cover_letter,omitempty"`
}

// SkillMatch statuses and importance
var (
	SkillStatusMatch   = "match"
	SkillStatusPartial = "partial"
	SkillStatusMissing = "missing"

	SkillRequired   = "required"
	SkillPreferred  = "preferred"
	SkillNiceToHave = "nice-to-have"
)

// SkillMatch rates a single skill.
type SkillMatch struct {
	Skill      string `json:"skill"`
	Status     string `json:"status"`
	Importance string `json:"importance"`
}

// ExperienceMatch compares required and actual experience.
type ExperienceMatch struct {
	YearsRequired float64 `json:"years_required"`
	YearsActual   float64 `json:"years_actual"`
	Assessment    string  `json:"assessment"`
}

// EducationMatch compares required and actual education.
type EducationMatch struct {
	Required   string `json:"required"`
	Actual     string `json:"actual"`
	Assessment string `json:"assessment"`
}

// InterviewQuestion is a likely question with coaching.
type InterviewQuestion struct {
	Question        string `json:"question"`
	Category        string `json:"category"`
	SuggestedAnswer string `json:"suggested_answer"`
	Tip             string `json:"tip"`
}

// Match is a persisted advisory result owned by a user.
type Match struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ResumeID *uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Resume   *Resume    `gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL" json:"-"`
	JobID    *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`

	ResumeText     string `gorm:"type:text" json:"-"`
	JobDescription string `gorm:"type:text" json:"job_description"`
	JobTitle       string `gorm:"type:text" json:"job_title"`
	Company        string `gorm:"type:text" json:"company"`

	Result           datatypes.JSONType[MatchResult] `json:"result"`
	ModelUsed        string                          `gorm:"type:text" json:"model_used"`
	ProcessingTimeMs int64                           `json:"processing_time_ms"`
	Degraded         bool                            `gorm:"not null" json:"degraded"`
	IsSaved          bool                            `gorm:"not null;index" json:"is_saved"`
	CreatedAt        time.Time                       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at"`
}
