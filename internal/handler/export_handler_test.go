package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/service"
	"github.com/legacylearning/intake-api/pkg/export"
)

func newExportFixture() (*ExportHandler, *fakeSubmissionStore) {
	gin.SetMode(gin.TestMode)
	store := newFakeSubmissionStore()
	submissions := service.NewSubmissionService(store, nil)
	exports := service.NewExportService(submissions, export.Branding{Name: "Legacy Learning Consulting"}, nil)
	return NewExportHandler(exports, service.NewMetricsService()), store
}

func TestRenderStoredDocx(t *testing.T) {
	handler, store := newExportFixture()
	store.records["known"] = &models.SubmissionRecord{ID: "known", Client: "Acme Corp"}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export?id=known", nil)

	handler.RenderStored(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "wordprocessingml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "acme-corp-learning-strategy.docx")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestRenderStoredRequiresID(t *testing.T) {
	handler, _ := newExportFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export", nil)

	handler.RenderStored(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderStoredUnknownID(t *testing.T) {
	handler, _ := newExportFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export?id=ghost", nil)

	handler.RenderStored(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderPayloadPDF(t *testing.T) {
	handler, _ := newExportFixture()

	body := bytes.NewBufferString(`{"client":"Globex","outcomes":["Lead well"]}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/export?format=pdf", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.RenderPayload(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "globex-learning-strategy.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestRenderPayloadUnsupportedFormat(t *testing.T) {
	handler, _ := newExportFixture()

	body := bytes.NewBufferString(`{"client":"Globex"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/export?format=xlsx", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.RenderPayload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportListingCSV(t *testing.T) {
	handler, store := newExportFixture()
	store.records["a"] = &models.SubmissionRecord{ID: "a", Client: "Acme", Status: models.StatusNew}
	store.records["b"] = &models.SubmissionRecord{ID: "b", Client: "Globex", Status: models.StatusDone}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/submissions/export.csv", nil)

	handler.ExportListingCSV(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "submissions.csv")
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}
