// Package auth contains handlers for signing in, registering and signing out.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalRegisterHandler creates a job seeker account.
// @Summary Register a job seeker with email and password
// @Description Email must be unused and password at least 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Account details"
// @Success 201 {object} model.LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) LocalRegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password and first name must be provided",
		})
		return
	}

	info.Email = normaliseEmail(info.Email)
	if _, err := mail.ParseAddress(info.Email); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Email is invalid"})
		return
	}

	if len(info.Password) < MinPasswordLength {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Password should longer or equal to %d characters", MinPasswordLength),
		})
		return
	}

	var existing model.User
	err := lh.DB.Where("email = ?", info.Email).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email already registered",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	now := time.Now()
	user := model.User{
		Email:     info.Email,
		Password:  hashedPassword,
		Role:      model.RoleJobseeker,
		IsActive:  true,
		LastLogin: &now,
		EditableProfile: model.EditableProfile{
			FirstName: strings.TrimSpace(info.FirstName),
			LastName:  strings.TrimSpace(info.LastName),
		},
	}
	if err := lh.DB.Create(&user).Error; err != nil {
		if apperror.IsUniqueViolation(err, "") {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt(slog.LevelInfo, "Local", AuthSuccess, user.Email, "registered")
	c.JSON(http.StatusCreated, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// LocalLoginHandler signs a user in with email and password.
// @Summary Handles local login by receiving email and password
// @Description Email must exist, password must match and the account must be active
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account deactivated"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}
	info.Email = normaliseEmail(info.Email)

	var user model.User
	err := lh.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt(slog.LevelWarn, "Local", AuthFail, info.Email, "unknown email")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		LogAuthAttempt(slog.LevelWarn, "Local", AuthFail, info.Email, "wrong password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if !user.IsActive {
		LogAuthAttempt(slog.LevelWarn, "Local", AuthFail, info.Email, "deactivated")
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is deactivated",
		})
		return
	}

	now := time.Now()
	if err := lh.DB.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		slog.Warn("failed to record last login", slog.Any("error", err))
	}
	user.LastLogin = &now

	accessToken, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt(slog.LevelInfo, "Local", AuthSuccess, user.Email, "")
	c.JSON(http.StatusOK, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// MeHandler returns the signed in user.
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse
// @Router /auth/me [get]
func (lh *LocalAuthHandler) MeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdate struct {
	FirstName *string                `json:"first_name"`
	LastName  *string                `json:"last_name"`
	Phone     *string                `json:"phone"`
	Country   *string                `json:"country"`
	State     *string                `json:"state"`
	City      *string                `json:"city"`
	LinkedIn  *string                `json:"linkedin"`
	Github    *string                `json:"github"`
	Portfolio *string                `json:"portfolio"`
	Bio       *string                `json:"bio"`
	Avatar    *string                `json:"avatar"`
	Skills    utilities.FlexibleList `json:"skills"`
}

// UpdateMeHandler edits the signed in user's profile. Only provided fields change.
// @Summary Update current user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param profile body profileUpdate true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse
// @Failure 401 {object} utilities.ErrorResponse
// @Failure 500 {object} utilities.ErrorResponse
// @Router /auth/me [put]
func (lh *LocalAuthHandler) UpdateMeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var body profileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	p := &user.EditableProfile
	for dst, src := range map[*string]*string{
		&p.FirstName: body.FirstName, &p.LastName: body.LastName, &p.Phone: body.Phone,
		&p.Country: body.Country, &p.State: body.State, &p.City: body.City,
		&p.LinkedIn: body.LinkedIn, &p.Github: body.Github, &p.Portfolio: body.Portfolio,
		&p.Bio: body.Bio, &user.Avatar: body.Avatar,
	} {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	if body.Skills.Set {
		p.Skills = body.Skills.Skills()
	}

	if p.FirstName == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "First name cannot be empty"})
		return
	}
	if len(p.Bio) > 500 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Bio cannot exceed 500 characters"})
		return
	}

	if err := lh.DB.Model(&user).Select("*").Omit("id", "email", "password", "google_id", "role", "is_active", "last_login", "created_at").Updates(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}
