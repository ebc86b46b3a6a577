package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/Monesha-B/nexus-job-platform/internal/apperror"
	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/middleware"
	"github.com/Monesha-B/nexus-job-platform/internal/model"
	"github.com/Monesha-B/nexus-job-platform/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.Configure("resume-test-secret", time.Hour)

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

func setupRouter(storage StorageClient) (*gin.Engine, *ResumeController) {
	rc := NewResumeController(testDB, storage, matcher.NewKeywordAdvisor())
	r := gin.New()
	g := r.Group("/resumes", middleware.RequireAuth(testDB))
	g.POST("", middleware.SizeLimit(10<<20), rc.UploadHandler)
	g.GET("", rc.ListHandler)
	g.GET("/primary", rc.PrimaryHandler)
	g.GET("/:id", rc.GetHandler)
	g.GET("/:id/file", rc.FileHandler)
	g.PUT("/:id/primary", rc.SetPrimaryHandler)
	g.DELETE("/:id", rc.DeleteHandler)
	g.POST("/:id/parse", rc.ParseHandler)
	return r, rc
}

func newUser(t *testing.T) (model.User, string) {
	t.Helper()
	u := model.User{
		Email:           uuid.NewString() + "@example.com",
		Role:            model.RoleJobseeker,
		EditableProfile: model.EditableProfile{FirstName: "Resume"},
		IsActive:        true,
	}
	require.NoError(t, testDB.Create(&u).Error)
	tok, err := auth.GenerateStandardToken(u.ID)
	require.NoError(t, err)
	return u, tok
}

func upload(t *testing.T, r *gin.Engine, tok, name string, data []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/resumes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func primaries(t *testing.T, userID uuid.UUID) []model.Resume {
	t.Helper()
	var rs []model.Resume
	require.NoError(t, testDB.Omit("content").
		Where("user_id = ? AND is_primary = ? AND is_active = ?", userID, true, true).
		Find(&rs).Error)
	return rs
}

func seedResumes(t *testing.T, rc *ResumeController, userID uuid.UUID, n int) []model.Resume {
	t.Helper()
	out := make([]model.Resume, 0, n)
	for i := 0; i < n; i++ {
		res, err := rc.Upload(context.Background(), userID, fmt.Sprintf("cv%d.doc", i), []byte("doc"))
		require.NoError(t, err)
		out = append(out, res)
		// created_at ordering must be strict for promotion.
		time.Sleep(5 * time.Millisecond)
	}
	return out
}

func TestUpload_firstBecomesPrimary(t *testing.T) {
	r, _ := setupRouter(nil)
	user, tok := newUser(t)

	rec, resp := upload(t, r, tok, "First.DOCX", docxFile(t, "Go developer", "Skills: go"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["is_primary"])
	assert.Equal(t, model.ResumeTypeDOCX, resp["file_type"])
	assert.Equal(t, "Go developer\nSkills: go", resp["raw_text"])

	rec, resp = upload(t, r, tok, "second.pdf", []byte("%PDF-broken"))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, false, resp["is_primary"])
	assert.NotEmpty(t, resp["parse_error"])

	assert.Len(t, primaries(t, user.ID), 1)
}

func TestUpload_rejectsSixth(t *testing.T) {
	r, rc := setupRouter(nil)
	user, tok := newUser(t)
	seedResumes(t, rc, user.ID, model.MaxActiveResumes)

	rec, resp := upload(t, r, tok, "sixth.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apperror.KindTooManyResumes), resp["kind"])

	var count int64
	require.NoError(t, testDB.Model(&model.Resume{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, model.MaxActiveResumes, count)
}

func TestUpload_concurrentStaysWithinLimit(t *testing.T) {
	_, rc := setupRouter(nil)
	user, _ := newUser(t)

	var wg sync.WaitGroup
	for i := 0; i < model.MaxActiveResumes+3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = rc.Upload(context.Background(), user.ID, fmt.Sprintf("cv%d.doc", i), []byte("doc"))
		}(i)
	}
	wg.Wait()

	var count int64
	require.NoError(t, testDB.Model(&model.Resume{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, model.MaxActiveResumes, count)
	assert.Len(t, primaries(t, user.ID), 1)
}

func TestUpload_unsupportedType(t *testing.T) {
	r, _ := setupRouter(nil)
	_, tok := newUser(t)

	rec, resp := upload(t, r, tok, "photo.png", []byte("png"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported file extension: .png", resp["error"])
}

func TestUpload_cloudStorage(t *testing.T) {
	storage := newMockStorageClient()
	r, rc := setupRouter(storage)
	user, tok := newUser(t)

	rec, resp := upload(t, r, tok, "cv.docx", docxFile(t, "Stored remotely"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	names, err := storage.ListObjects(ObjectPrefix + "/" + user.ID.String())
	require.NoError(t, err)
	require.Len(t, names, 1)

	id := resp["id"].(string)
	req, _ := http.NewRequest(http.MethodGet, "/resumes/"+id+"/file", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	fileRec := httptest.NewRecorder()
	r.ServeHTTP(fileRec, req)
	require.Equal(t, http.StatusOK, fileRec.Code)
	assert.Equal(t, storage.uploaded[names[0]], fileRec.Body.Bytes())

	require.NoError(t, rc.Delete(context.Background(), user.ID, uuid.MustParse(id)))
	assert.Equal(t, []string{names[0]}, storage.deleted)
}

func TestSetPrimary_exclusive(t *testing.T) {
	r, rc := setupRouter(nil)
	user, tok := newUser(t)
	resumes := seedResumes(t, rc, user.ID, 3)

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/resumes/"+resumes[2].ID.String()+"/primary", http.MethodPut)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["is_primary"])

	got := primaries(t, user.ID)
	require.Len(t, got, 1)
	assert.Equal(t, resumes[2].ID, got[0].ID)

	// Setting the current primary again is a no-op.
	_, err := rc.SetPrimary(context.Background(), user.ID, resumes[2].ID)
	require.NoError(t, err)
	assert.Len(t, primaries(t, user.ID), 1)

	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/resumes", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	list := resp["resumes"].([]interface{})
	require.Len(t, list, 3)
	assert.Equal(t, resumes[2].ID.String(), list[0].(map[string]interface{})["id"])
	assert.Equal(t, resumes[1].ID.String(), list[1].(map[string]interface{})["id"])
}

func TestSetPrimary_concurrent(t *testing.T) {
	_, rc := setupRouter(nil)
	user, _ := newUser(t)
	resumes := seedResumes(t, rc, user.ID, 4)

	var wg sync.WaitGroup
	for round := 0; round < 3; round++ {
		for _, res := range resumes {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				_, err := rc.SetPrimary(context.Background(), user.ID, id)
				assert.NoError(t, err)
			}(res.ID)
		}
	}
	wg.Wait()

	assert.Len(t, primaries(t, user.ID), 1)
}

func TestSetPrimary_notOwnedIsNotFound(t *testing.T) {
	r, rc := setupRouter(nil)
	owner, _ := newUser(t)
	_, otherTok := newUser(t)
	resumes := seedResumes(t, rc, owner.ID, 1)

	for _, endpoint := range []string{"/resumes/" + resumes[0].ID.String(), "/resumes/" + uuid.NewString()} {
		rec, resp := testutil.MakeJSONRequest(nil, otherTok, r, endpoint+"/primary", http.MethodPut)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Resume not found", resp["error"])

		rec, _ = testutil.MakeJSONRequest(nil, otherTok, r, endpoint, http.MethodGet)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec, _ = testutil.MakeJSONRequest(nil, otherTok, r, endpoint, http.MethodDelete)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Len(t, primaries(t, owner.ID), 1)
}

func TestDelete_promotesNewest(t *testing.T) {
	r, rc := setupRouter(nil)
	user, tok := newUser(t)
	resumes := seedResumes(t, rc, user.ID, 3)
	require.True(t, resumes[0].IsPrimary)

	rec, _ := testutil.MakeJSONRequest(nil, tok, r, "/resumes/"+resumes[0].ID.String(), http.MethodDelete)
	require.Equal(t, http.StatusOK, rec.Code)

	got := primaries(t, user.ID)
	require.Len(t, got, 1)
	assert.Equal(t, resumes[2].ID, got[0].ID)

	// Deleting a non-primary leaves the primary alone.
	require.NoError(t, rc.Delete(context.Background(), user.ID, resumes[1].ID))
	got = primaries(t, user.ID)
	require.Len(t, got, 1)
	assert.Equal(t, resumes[2].ID, got[0].ID)

	require.NoError(t, rc.Delete(context.Background(), user.ID, resumes[2].ID))
	assert.Empty(t, primaries(t, user.ID))

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/resumes/primary", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No primary resume found", resp["error"])

	// The next upload becomes primary again.
	res, err := rc.Upload(context.Background(), user.ID, "again.doc", []byte("doc"))
	require.NoError(t, err)
	assert.True(t, res.IsPrimary)
}

func TestDelete_keepsApplicationsWithNullResume(t *testing.T) {
	_, rc := setupRouter(nil)
	user, _ := newUser(t)
	resumes := seedResumes(t, rc, user.ID, 1)

	app := model.Application{
		JobID:       database.TestJobActive.ID,
		ApplicantID: user.ID,
		ResumeID:    &resumes[0].ID,
		Status:      model.ApplicationStatusPending,
	}
	require.NoError(t, testDB.Create(&app).Error)

	require.NoError(t, rc.Delete(context.Background(), user.ID, resumes[0].ID))

	var stored model.Application
	require.NoError(t, testDB.Where("id = ?", app.ID).First(&stored).Error)
	assert.Nil(t, stored.ResumeID)
}

func TestParse(t *testing.T) {
	r, rc := setupRouter(nil)
	user, tok := newUser(t)

	res, err := rc.Upload(context.Background(), user.ID, "cv.docx",
		docxFile(t, "Backend engineer", "Skills: go, postgresql", "7 years of experience"))
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, tok, r, "/resumes/"+res.ID.String()+"/parse", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["is_parsed"])
	parsed := resp["parsed_data"].(map[string]interface{})
	assert.Contains(t, parsed["skills"], "go")
	assert.EqualValues(t, 7, parsed["total_experience_years"])

	doc, err := rc.Upload(context.Background(), user.ID, "old.doc", []byte("legacy"))
	require.NoError(t, err)
	rec, resp = testutil.MakeJSONRequest(nil, tok, r, "/resumes/"+doc.ID.String()+"/parse", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["is_parsed"])
	assert.Equal(t, ErrUnsupportedExtraction.Error(), resp["parse_error"])
}
