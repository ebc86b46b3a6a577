package user

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/middleware"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Configure("user-test-secret", time.Hour)

	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	uc := NewUserController(testDB)
	r := gin.New()
	r.GET("/me", middleware.RequireAuth(testDB), func(c *gin.Context) { c.Status(http.StatusOK) })
	g := r.Group("/users", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	g.GET("", uc.ListUsersHandler)
	g.GET("/:id", uc.GetUserHandler)
	g.PATCH("/:id/role", uc.ChangeRoleHandler)
	g.PATCH("/:id/toggle-status", uc.ToggleActiveHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return tok
}

func newUser(t *testing.T, firstName string) (model.User, string) {
	t.Helper()
	u := model.User{
		Email:           uuid.NewString() + "@example.com",
		Role:            model.RoleJobseeker,
		EditableProfile: model.EditableProfile{FirstName: firstName},
		IsActive:        true,
	}
	require.NoError(t, testDB.Create(&u).Error)
	tok, err := auth.GenerateStandardToken(u.ID)
	require.NoError(t, err)
	return u, tok
}

func TestListUsers_filters(t *testing.T) {
	r := setupRouter()
	tok := adminToken(t)
	newUser(t, "Zebulon")

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/users?role=admin", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, u := range resp["users"].([]interface{}) {
		assert.Equal(t, model.RoleAdmin, u.(map[string]interface{})["role"])
	}

	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/users?search=zebu", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	users := resp["users"].([]interface{})
	require.NotEmpty(t, users)
	assert.Equal(t, "Zebulon", users[0].(map[string]interface{})["first_name"])

	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/users?limit=2", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["users"], 2)
	assert.EqualValues(t, 2, resp["pagination"].(map[string]interface{})["limit"])

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/users?role=owner", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers_adminOnly(t *testing.T) {
	r := setupRouter()
	_, tok := newUser(t, "Nosy")
	rec, _ := testutil.MakeJSONRequest(nil, tok, r, "/users", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUser(t *testing.T) {
	r := setupRouter()
	tok := adminToken(t)
	u, _ := newUser(t, "Gina")

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/users/"+u.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.Email, resp["email"])
	assert.NotContains(t, resp, "password")

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/users/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeRole(t *testing.T) {
	r := setupRouter()
	tok := adminToken(t)
	u, _ := newUser(t, "Promoted")

	rec, resp := testutil.MakeJSONRequest(gin.H{"role": "Admin"}, tok, r, "/users/"+u.ID.String()+"/role", http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.RoleAdmin, resp["role"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"role": "superuser"}, tok, r, "/users/"+u.ID.String()+"/role", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"role": "jobseeker"}, tok, r, "/users/"+database.TestAdminUser.ID.String()+"/role", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot change your own role", resp["error"])
}

func TestToggleActive(t *testing.T) {
	r := setupRouter()
	tok := adminToken(t)
	u, userTok := newUser(t, "Paused")

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/users/"+u.ID.String()+"/toggle-status", http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["is_active"])

	rec, _ = testutil.MakeJSONRequest(nil, userTok, r, "/me", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/users/"+u.ID.String()+"/toggle-status", http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["is_active"])

	rec, _ = testutil.MakeJSONRequest(nil, userTok, r, "/me", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/users/"+database.TestAdminUser.ID.String()+"/toggle-status", http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
