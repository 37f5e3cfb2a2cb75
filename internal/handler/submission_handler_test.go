package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/repository"
	"github.com/legacylearning/intake-api/internal/service"
	"github.com/legacylearning/intake-api/pkg/storage"
)

type fakeSubmissionStore struct {
	records map[string]*models.SubmissionRecord
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{records: map[string]*models.SubmissionRecord{}}
}

func (f *fakeSubmissionStore) Put(_ context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error) {
	if rec.ID == "" {
		rec.ID = "1700000000000-fake"
	}
	rec.Key = repository.SubmissionsPrefix + rec.ID + ".json"
	copied := *rec
	f.records[rec.ID] = &copied
	return storage.ObjectInfo{Key: rec.Key, URL: "mem://" + rec.Key}, nil
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id string) (*models.SubmissionRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrSubmissionNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeSubmissionStore) List(_ context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error) {
	items := make([]models.SubmissionRecord, 0, len(f.records))
	for _, rec := range f.records {
		items = append(items, *rec)
	}
	return &models.SubmissionList{Total: len(items), Items: items}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newSubmissionFixture() (*SubmissionHandler, *fakeSubmissionStore) {
	gin.SetMode(gin.TestMode)
	store := newFakeSubmissionStore()
	return NewSubmissionHandler(service.NewSubmissionService(store, nil)), store
}

func TestSubmitCreatesRecord(t *testing.T) {
	handler, store := newSubmissionFixture()

	body := bytes.NewBufferString(`{"client":"Acme","scope":"Leadership","modules":["Foundations"]}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/submissions", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	var resp struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.ID)

	stored := store.records[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusSubmitted, stored.Status)
	assert.Equal(t, "Foundations", stored.Modules[0].Title)
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	handler, _ := newSubmissionFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/submissions", bytes.NewBufferString("{nope"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestListReturnsPaginationEnvelope(t *testing.T) {
	handler, store := newSubmissionFixture()
	store.records["a"] = &models.SubmissionRecord{ID: "a", Client: "Acme", Status: models.StatusNew}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/submissions?page=1&pageSize=10", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.PageSize)
	assert.Equal(t, 1, env.Pagination.Total)
}

func TestListCapsPageSize(t *testing.T) {
	handler, _ := newSubmissionFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/submissions?pageSize=900", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 100, env.Pagination.PageSize)
}

func TestGetRequiresIDParam(t *testing.T) {
	handler, _ := newSubmissionFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/submission", nil)

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "MISSING_ID", env.Error.Code)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	handler, _ := newSubmissionFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/submission?id=ghost", nil)

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkStatusFlow(t *testing.T) {
	handler, store := newSubmissionFixture()
	store.records["target"] = &models.SubmissionRecord{ID: "target", Client: "Acme", Status: models.StatusSubmitted}

	body := bytes.NewBufferString(`{"id":"target","status":"in_progress"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/submissions/mark", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.MarkStatus(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusInProgress, store.records["target"].Status)
}

func TestMarkStatusRejectsUnknownStatus(t *testing.T) {
	handler, _ := newSubmissionFixture()

	body := bytes.NewBufferString(`{"id":"target","status":"archived"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/submissions/mark", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.MarkStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_STATUS", env.Error.Code)
}
