package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Configure("server-test-secret", time.Hour)

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

func newRouter(rps uint) *gin.Engine {
	s := &MyServer{
		DB: testDB,
		Config: &config.Config{
			Server: config.ServerConfig{AllowOrigins: []string{"http://localhost:3000"}, RateLimitPerSecond: rps},
		},
		Logger:  slog.Default(),
		Advisor: matcher.NewKeywordAdvisor(),
	}
	return s.RegisterRoutes().(*gin.Engine)
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rec, resp := testutil.MakeJSONRequest(gin.H{"email": email, "password": database.TestSeedPassword}, "", r, "/api/auth/login", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok, ok := resp["access_token"].(string)
	require.True(t, ok)
	return tok
}

func TestHealthAndSwagger(t *testing.T) {
	r := newRouter(1000)

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/health", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up", resp["status"])

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/applications/{id}/status")
}

func TestApplicationFlow(t *testing.T) {
	r := newRouter(1000)
	seeker := login(t, r, database.TestJobseeker2.Email)
	admin := login(t, r, database.TestAdminUser.Email)

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/api/jobs/"+database.TestJobActive.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	before := resp["applications_count"].(float64)

	rec, resp = testutil.MakeJSONRequest(gin.H{"job_id": database.TestJobActive.ID.String()}, seeker, r, "/api/applications", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	appID := resp["id"].(string)

	rec, _ = testutil.MakeJSONRequest(gin.H{"job_id": database.TestJobActive.ID.String()}, seeker, r, "/api/applications", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Job seekers cannot move their own application.
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "hired"}, seeker, r, "/api/applications/"+appID+"/status", http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"status": "reviewed"}, admin, r, "/api/applications/"+appID+"/status", http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "reviewed", resp["status"])

	rec, resp = testutil.MakeJSONRequest(nil, "", r, "/api/jobs/"+database.TestJobActive.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+1, resp["applications_count"])

	rec, _ = testutil.MakeJSONRequest(nil, seeker, r, "/api/applications/"+appID, http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = testutil.MakeJSONRequest(nil, "", r, "/api/jobs/"+database.TestJobActive.ID.String(), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before, resp["applications_count"])
}

func TestLogoutRevokesToken(t *testing.T) {
	r := newRouter(1000)
	tok := login(t, r, database.TestJobseeker1.Email)

	rec, _ := testutil.MakeJSONRequest(nil, tok, r, "/api/auth/me", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/api/auth/logout", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, tok, r, "/api/auth/me", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(2)
	codes := []int{}
	for i := 0; i < 4; i++ {
		rec, _ := testutil.MakeJSONRequest(nil, "", r, "/api/jobs", http.MethodGet)
		codes = append(codes, rec.Code)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.Equal(t, http.StatusOK, codes[0])
}
