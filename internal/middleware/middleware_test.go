package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Configure("middleware-test-secret", time.Hour)

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

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB), checkUserHandler)
	return r
}

func checkUserHandler(c *gin.Context) {
	u, exist := c.Get("user")
	if !exist {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func doGet(engine *gin.Engine, path string, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	body := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequireAuth_Success(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestJobseeker1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["ok"])
}

func TestRequireAuth_NoHeader(t *testing.T) {
	rec, body := doGet(protectedEngine(), "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "Invalid authorization header")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token, _, err := auth.GenerateTokenWithDuration(database.TestJobseeker1.ID, -1*time.Minute, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", body["error"])
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	validToken, _, err := auth.GenerateTokenWithDuration(database.TestJobseeker1.ID, time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", validToken+"x")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "Failed to validate token")
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	token, _, err := auth.GenerateTokenWithDuration(uuid.New(), time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "User not exist")
}

func TestRequireAuth_InvalidIssuer(t *testing.T) {
	token, _, err := auth.GenerateTokenWithDuration(database.TestJobseeker1.ID, time.Hour, "invalid-issuer")
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.Contains(t, body["error"], "Invalid token issuer")
}

func TestRequireAuth_DeactivatedUser(t *testing.T) {
	user := model.User{
		Email:           "deactivated-mw@example.com",
		Role:            model.RoleJobseeker,
		IsActive:        false,
		EditableProfile: model.EditableProfile{FirstName: "Dee"},
	}
	require.NoError(t, testDB.Create(&user).Error)

	token, _, err := auth.GenerateTokenWithDuration(user.ID, time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, body := doGet(protectedEngine(), "/protected", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account is deactivated", body["error"])
}

func TestCheckRole_NoRequireAuthBefore(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", CheckRole(model.RoleAdmin), okHandler)

	rec, body := doGet(engine, "/need-role", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, body["error"], "User information not provided")
}

func TestCheckRole_WrongRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", RequireAuth(testDB), CheckRole(model.RoleAdmin), okHandler)
	token, err := auth.GetAccessToken(t, testDB, database.TestJobseeker1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	rec, body := doGet(engine, "/need-role", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User doesn't have permission to access", body["error"])
}

func TestCheckRole_MultipleRoles(t *testing.T) {
	engine := gin.New()
	engine.GET("/need-role", RequireAuth(testDB), CheckRole(model.RoleJobseeker, model.RoleAdmin), okHandler)

	for _, email := range []string{database.TestJobseeker1.Email, database.TestAdminUser.Email} {
		token, err := auth.GetAccessToken(t, testDB, email, database.TestSeedPassword)
		require.NoError(t, err)

		rec, _ := doGet(engine, "/need-role", token)
		assert.Equal(t, http.StatusOK, rec.Code, email)
	}
}

func TestJwtBlacklistCheck(t *testing.T) {
	store := auth.NewInMemoryBlacklistStore()
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), JwtBlacklistCheck(store), okHandler)

	token, claims, err := auth.GenerateTokenWithDuration(database.TestJobseeker2.ID, time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, _ := doGet(engine, "/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.AddToBlacklist(claims.ID, claims.ExpiresAt.Time))

	rec, body := doGet(engine, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", body["error"])
}

type failingBlacklist struct{}

func (failingBlacklist) IsBlacklisted(string) (bool, error)      { return false, errors.New("store down") }
func (failingBlacklist) AddToBlacklist(string, time.Time) error { return nil }

func TestJwtBlacklistCheck_StoreError(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), JwtBlacklistCheck(failingBlacklist{}), okHandler)

	token, _, err := auth.GenerateTokenWithDuration(database.TestJobseeker2.ID, time.Hour, auth.JwtIssuer)
	require.NoError(t, err)

	rec, _ := doGet(engine, "/protected", token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	engine := gin.New()
	engine.GET("/limited", RateLimiterMiddleware(2, nil), okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec, _ := doGet(engine, "/limited", "")
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_perUserAfterAuth(t *testing.T) {
	engine := gin.New()
	engine.GET("/limited", RequireAuth(testDB), RateLimiterMiddleware(2, nil), okHandler)

	alice, err := auth.GetAccessToken(t, testDB, database.TestJobseeker1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	bob, err := auth.GetAccessToken(t, testDB, database.TestJobseeker2.Email, database.TestSeedPassword)
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec, _ := doGet(engine, "/limited", alice)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Same client IP, different user: a separate budget.
	rec, _ := doGet(engine, "/limited", bob)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func readFileHandler(c *gin.Context) {
	rawFile, err := c.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Entity too large"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot open file"})
		return
	}
	defer func() { _ = f.Close() }()
	if _, err := io.ReadAll(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot read file"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func sendFile(engine *gin.Engine, size int) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, _ := w.CreateFormFile("file", "resume.pdf")
	_, _ = part.Write(bytes.Repeat([]byte("a"), size))
	_ = w.Close()

	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestSizeLimit(t *testing.T) {
	engine := gin.New()
	engine.MaxMultipartMemory = 1 << 10
	engine.POST("/upload", SizeLimit(64<<10), readFileHandler)

	assert.Equal(t, http.StatusOK, sendFile(engine, 32<<10).Code)
	assert.Equal(t, http.StatusOK, sendFile(engine, 64<<10).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, sendFile(engine, 128<<10).Code)
}

func TestSafeHeader(t *testing.T) {
	engine := gin.New()
	engine.Use(SafeHeader())
	engine.GET("/api", okHandler)
	engine.GET("/swagger/index.html", okHandler)

	rec, _ := doGet(engine, "/api", "")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec, _ = doGet(engine, "/swagger/index.html", "")
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	doGet(engine, "/missing", "")

	line := buf.String()
	assert.True(t, strings.Contains(line, `"level":"WARN"`), line)
	assert.Contains(t, line, `"status":404`)
	assert.Contains(t, line, `"path":"/missing"`)
}
