package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxActiveResumes is how many active resumes a user may keep at once.
const MaxActiveResumes = 5

// Resume file types
var (
	ResumeTypePDF  = "pdf"
	ResumeTypeDOCX = "docx"
	ResumeTypeDOC  = "doc"
)

// ResumeTypeFromExtension maps a lowercase file extension to a resume type.
// The second value is false for unsupported extensions.
func ResumeTypeFromExtension(ext string) (string, bool) {
	switch ext {
	case ".pdf":
		return ResumeTypePDF, true
	case ".docx":
		return ResumeTypeDOCX, true
	case ".doc":
		return ResumeTypeDOC, true
	}
	return "", false
}

// Resume is an uploaded CV. At most one resume per user has IsPrimary set,
// enforced by a partial unique index.
type Resume struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_resumes_primary_per_user,where:is_primary = true" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	FileName     string `gorm:"type:text;not null" json:"file_name"`
	OriginalName string `gorm:"type:text" json:"original_name"`
	FileType     string `gorm:"type:text;not null" json:"file_type"`
	FileSize     int64  `json:"file_size"`

	// Exactly one of StorageObjectName and Content holds the file.
	StorageObjectName *string `gorm:"type:text" json:"-"`
	Content           []byte  `json:"-"`

	RawText    string                            `gorm:"type:text" json:"raw_text,omitempty"`
	ParsedData datatypes.JSONType[*ParsedResume] `json:"parsed_data"`
	IsParsed   bool                              `json:"is_parsed"`
	ParseError string                            `gorm:"type:text" json:"parse_error,omitempty"`

	IsPrimary bool      `gorm:"not null;default:false" json:"is_primary"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParsedResume is the structured view of a resume produced by the advisor.
type ParsedResume struct {
	Summary              string            `json:"summary"`
	ContactInfo          ResumeContact     `json:"contact_info"`
	Skills               []string          `json:"skills"`
	Experience           []ResumeJob       `json:"experience"`
	Education            []ResumeEducation `json:"education"`
	Certifications       []string          `json:"certifications"`
	Projects             []string          `json:"projects"`
	Languages            []string          `json:"languages"`
	TotalExperienceYears float64           `json:"total_experience_years"`
}

// ResumeContact is contact information found in a resume.
type ResumeContact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// ResumeJob is one experience entry.
type ResumeJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// ResumeEducation is one education entry.
type ResumeEducation struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}
