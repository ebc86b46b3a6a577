package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Monesha-B/nexus-job-platform/internal/model"
)

type mockStorageClient struct {
	mu              sync.Mutex
	uploaded        map[string][]byte
	downloadPayload map[string][]byte
	deleted         []string
	uploadErr       error
	downloadErr     error
}

func newMockStorageClient() *mockStorageClient {
	return &mockStorageClient{
		uploaded:        make(map[string][]byte),
		downloadPayload: make(map[string][]byte),
	}
}

func (m *mockStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	buf, err := io.ReadAll(fileData)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded[objectName] = buf
	m.downloadPayload[objectName] = buf
	return nil
}

func (m *mockStorageClient) DownloadFile(objectName string) (io.ReadCloser, int64, error) {
	if m.downloadErr != nil {
		return nil, 0, m.downloadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.downloadPayload[objectName]
	if !ok {
		return nil, 0, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (m *mockStorageClient) DeleteFile(objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, objectName)
	delete(m.uploaded, objectName)
	return nil
}

func (m *mockStorageClient) ListObjects(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := []string{}
	for name := range m.uploaded {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// docxFile builds a minimal docx with one paragraph per line.
func docxFile(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, l := range lines {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, l)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_docx(t *testing.T) {
	text, err := ExtractText(model.ResumeTypeDOCX, docxFile(t, "Jane Doe", "Skills: go, sql", "6 years of experience"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: go, sql\n6 years of experience", text)
}

func TestExtractText_invalidInputs(t *testing.T) {
	_, err := ExtractText(model.ResumeTypePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText(model.ResumeTypeDOCX, []byte("not a zip"))
	assert.Error(t, err)

	_, err = ExtractText(model.ResumeTypeDOC, []byte("legacy word"))
	assert.ErrorIs(t, err, ErrUnsupportedExtraction)
}

func TestPersistFileData_UsesCloudStorage(t *testing.T) {
	mockStorage := newMockStorageClient()
	ctrl := NewResumeController(nil, mockStorage, nil)
	resume := &model.Resume{UserID: uuid.New(), FileName: "abc.pdf"}
	data := []byte("hello world")

	require.NoError(t, ctrl.persistFileData(resume, data))

	require.NotNil(t, resume.StorageObjectName)
	assert.True(t, strings.HasPrefix(*resume.StorageObjectName, ObjectPrefix+"/"+resume.UserID.String()+"/"))
	assert.Nil(t, resume.Content)
	assert.Equal(t, data, mockStorage.uploaded[*resume.StorageObjectName])
}

func TestPersistFileData_FallsBackToDatabase(t *testing.T) {
	ctrl := NewResumeController(nil, nil, nil)
	resume := &model.Resume{FileName: "abc.pdf"}

	require.NoError(t, ctrl.persistFileData(resume, []byte("local")))
	assert.Nil(t, resume.StorageObjectName)
	assert.Equal(t, []byte("local"), resume.Content)
}

func TestPersistFileData_UploadError(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.uploadErr = errors.New("boom")
	ctrl := NewResumeController(nil, mockStorage, nil)

	err := ctrl.persistFileData(&model.Resume{FileName: "x.pdf"}, []byte("fail"))
	require.EqualError(t, err, "boom")
}

func TestWriteFileResponse_CloudStorage(t *testing.T) {
	mockStorage := newMockStorageClient()
	mockStorage.downloadPayload["resumes/u/foo.pdf"] = []byte("downloaded")
	ctrl := NewResumeController(nil, mockStorage, nil)
	objectName := "resumes/u/foo.pdf"
	resume := &model.Resume{OriginalName: "cv.pdf", StorageObjectName: &objectName}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ctrl.writeFileResponse(c, resume)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "downloaded", w.Body.String())
	assert.Equal(t, `attachment; filename="cv.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, fmt.Sprint(len("downloaded")), w.Header().Get("Content-Length"))
}

func TestWriteFileResponse_DatabaseContent(t *testing.T) {
	ctrl := NewResumeController(nil, nil, nil)
	resume := &model.Resume{FileName: "abc.docx", Content: []byte("inline")}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ctrl.writeFileResponse(c, resume)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("inline"), w.Body.Bytes())
}

func TestWriteFileResponse_RemoteButStorageDisabled(t *testing.T) {
	ctrl := NewResumeController(nil, nil, nil)
	objectName := "resumes/u/foo.pdf"

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ctrl.writeFileResponse(c, &model.Resume{StorageObjectName: &objectName})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Cloud storage is disabled")
}
