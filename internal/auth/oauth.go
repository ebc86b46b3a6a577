package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// GoogleUserInfoEndpoint is where the profile of a Google account is fetched.
const GoogleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// OauthLoginHandler struct holds the database connection and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

// GoogleOauthConfig builds the Google OAuth client configuration.
func GoogleOauthConfig(cfg config.AuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: cfg.GoogleRedirectURL,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {
	var body code
	var uInfo model.GoogleUserInfo

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No authorization code provided: %v", err.Error()),
		})
		return uInfo, err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, err := h.OauthConfig.Exchange(ctx, body.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to receive token: %v", err.Error()),
		})
		return uInfo, err
	}

	client := h.OauthConfig.Client(ctx, token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: %v", err.Error()),
		})
		return uInfo, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		})
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return uInfo, err
	}
	if uInfo.GID == "" || uInfo.Email == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Google account did not provide an id and email",
		})
		return uInfo, errors.New("incomplete google user info")
	}
	return uInfo, nil
}

// GoogleLoginHandler exchanges a Google authorization code, signs the user in
// and creates a job seeker account on first login. An existing local account
// with the same email is linked to the Google id.
// @Summary Sign in with Google
// @Description Exchange an authorization code, creating the account on first login
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 403 {object} utilities.ErrorResponse "Account deactivated"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google [post]
func (h *OauthLoginHandler) GoogleLoginHandler(c *gin.Context) {
	uInfo, err := h.getUserInfo(c)
	if err != nil {
		LogAuthAttempt(slog.LevelWarn, "Google", AuthFail, "", err.Error())
		return
	}

	var user model.User
	respStatus := http.StatusOK
	now := time.Now()

	err = h.DB.Where("google_id = ?", uInfo.GID).
		Or("email = ?", normaliseEmail(uInfo.Email)).
		First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		gid := uInfo.GID
		user = model.User{
			Email:     normaliseEmail(uInfo.Email),
			GoogleID:  &gid,
			Role:      model.RoleJobseeker,
			Avatar:    uInfo.Picture,
			IsActive:  true,
			LastLogin: &now,
			EditableProfile: model.EditableProfile{
				FirstName: uInfo.GivenName,
				LastName:  uInfo.FamilyName,
			},
		}
		if err := h.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create user: %v", err.Error()),
			})
			return
		}
		respStatus = http.StatusCreated

	case err == nil:
		if !user.IsActive {
			LogAuthAttempt(slog.LevelWarn, "Google", AuthFail, user.Email, "deactivated")
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: "Account is deactivated"})
			return
		}

		updates := map[string]interface{}{"last_login": now}
		if user.GoogleID == nil {
			updates["google_id"] = uInfo.GID
		}
		if user.Avatar == "" && uInfo.Picture != "" {
			updates["avatar"] = uInfo.Picture
		}
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update user: %v", err.Error()),
			})
			return
		}

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %v", err.Error()),
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

	LogAuthAttempt(slog.LevelInfo, "Google", AuthSuccess, user.Email, "")
	c.JSON(respStatus, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// Callback echoes the "code" query parameter so a browser redirect can hand it to the client.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	c.JSON(http.StatusOK, code{
		Code: c.Query("code"),
	})
}
