// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Roles
var (
	RoleJobseeker = "jobseeker"
	RoleAdmin     = "admin"
)

// EditableProfile is the part of a user that the user may change about themselves.
type EditableProfile struct {
	FirstName string         `gorm:"type:text;not null" json:"first_name"`
	LastName  string         `gorm:"type:text" json:"last_name"`
	Phone     string         `gorm:"type:text" json:"phone"`
	Country   string         `gorm:"type:text" json:"country"`
	State     string         `gorm:"type:text" json:"state"`
	City      string         `gorm:"type:text" json:"city"`
	LinkedIn  string         `gorm:"type:text" json:"linkedin"`
	Github    string         `gorm:"type:text" json:"github"`
	Portfolio string         `gorm:"type:text" json:"portfolio"`
	Bio       string         `gorm:"type:varchar(500)" json:"bio"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
}

// User is a job seeker or an admin.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	GoogleID *string   `gorm:"type:text;uniqueIndex" json:"-"`
	Role     string    `gorm:"type:text;not null;index" json:"role"`
	EditableProfile
	Avatar    string     `gorm:"type:text" json:"avatar"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GoogleUserInfo is the subset of the Google userinfo payload used for login.
type GoogleUserInfo struct {
	GID        string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// LoginResponse is returned by every login or registration endpoint.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
