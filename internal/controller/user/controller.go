// Package user provides the admin endpoints for managing accounts.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
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

// UserController handles account management endpoints
type UserController struct {
	DB *database.DBinstanceStruct
}

// NewUserController creates a new instance of UserController
func NewUserController(db *database.DBinstanceStruct) *UserController {
	return &UserController{
		DB: db,
	}
}

// UserListResponse is one page of users.
type UserListResponse struct {
	Users      []model.User         `json:"users"`
	Pagination utilities.Pagination `json:"pagination"`
}

// RoleRequest is the body of a role change.
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole sets the role of userID. Admins cannot change their own role.
func (uc *UserController) ChangeRole(ctx context.Context, actorID, userID uuid.UUID, role string) (model.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !slices.Contains([]string{model.RoleJobseeker, model.RoleAdmin}, role) {
		return model.User{}, apperror.Validation(fmt.Sprintf("Invalid role: %s", role))
	}
	if actorID == userID {
		return model.User{}, apperror.Validation("Cannot change your own role")
	}

	var u model.User
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&u).Error; err != nil {
			return apperror.FromDB(err, "User not found")
		}
		u.Role = role
		u.UpdatedAt = time.Now()
		return tx.Model(&u).UpdateColumns(map[string]any{"role": u.Role, "updated_at": u.UpdatedAt}).Error
	})
	if err != nil {
		return model.User{}, err
	}
	slog.Info("user role changed", slog.String("user_id", userID.String()), slog.String("role", role), slog.String("by", actorID.String()))
	return u, nil
}

// ToggleActive flips is_active of userID. Admins cannot deactivate
// themselves.
func (uc *UserController) ToggleActive(ctx context.Context, actorID, userID uuid.UUID) (model.User, error) {
	if actorID == userID {
		return model.User{}, apperror.Validation("Cannot deactivate your own account")
	}

	var u model.User
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&u).Error; err != nil {
			return apperror.FromDB(err, "User not found")
		}
		u.IsActive = !u.IsActive
		u.UpdatedAt = time.Now()
		return tx.Model(&u).UpdateColumns(map[string]any{"is_active": u.IsActive, "updated_at": u.UpdatedAt}).Error
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ListUsersHandler lists accounts filtered by role and a search term.
// @Summary List users
// @Description Only admins have access to this endpoint. search matches first name, last name and email case insensitively.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param role query string false "jobseeker or admin"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} UserListResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users [get]
func (uc *UserController) ListUsersHandler(c *gin.Context) {
	page, limit := utilities.PageParams(c, 20)

	filter := func(db *gorm.DB) *gorm.DB {
		return db
	}
	if role := strings.ToLower(c.Query("role")); role != "" {
		if role != model.RoleJobseeker && role != model.RoleAdmin {
			utilities.RespondError(c, apperror.Validation(fmt.Sprintf("Invalid role: %s", role)))
			return
		}
		prev := filter
		filter = func(db *gorm.DB) *gorm.DB { return prev(db).Where("role = ?", role) }
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		prev := filter
		filter = func(db *gorm.DB) *gorm.DB {
			return prev(db).Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR email LIKE ?)", pattern, pattern, pattern)
		}
	}

	var total int64
	if err := uc.DB.Model(&model.User{}).Scopes(filter).Count(&total).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to list users", err))
		return
	}
	users := []model.User{}
	if err := uc.DB.Scopes(filter, utilities.Paginate(page, limit)).Order("created_at DESC").Find(&users).Error; err != nil {
		utilities.RespondError(c, apperror.Internal("Failed to list users", err))
		return
	}

	c.JSON(http.StatusOK, UserListResponse{Users: users, Pagination: utilities.NewPagination(page, limit, total)})
}

// GetUserHandler returns one account.
// @Summary Get user
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := utilities.ParseUUIDParam(c, "id", "User not found")
	if !ok {
		return
	}
	var u model.User
	if err := uc.DB.Where("id = ?", id).First(&u).Error; err != nil {
		utilities.RespondError(c, apperror.FromDB(err, "User not found"))
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangeRoleHandler changes the role of a user.
// @Summary Change user role
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "User ID"
// @Param role body RoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Invalid role, or own account"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id}/role [patch]
func (uc *UserController) ChangeRoleHandler(c *gin.Context) {
	actor, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "User not found")
	if !ok {
		return
	}

	var body RoleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	u, err := uc.ChangeRole(c.Request.Context(), actor.ID, id, body.Role)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ToggleActiveHandler activates or deactivates a user.
// @Summary Toggle user active status
// @Description Inactive users can neither log in nor use an issued token.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <Add access token here>)
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} utilities.ErrorResponse "Own account"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Router /users/{id}/toggle-status [patch]
func (uc *UserController) ToggleActiveHandler(c *gin.Context) {
	actor, err := utilities.ExtractUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id, ok := utilities.ParseUUIDParam(c, "id", "User not found")
	if !ok {
		return
	}

	u, err := uc.ToggleActive(c.Request.Context(), actor.ID, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
