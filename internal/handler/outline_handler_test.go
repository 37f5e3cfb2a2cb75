package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacylearning/intake-api/internal/service"
	"github.com/legacylearning/intake-api/pkg/llm"
)

type fakeDrafter struct {
	suggestion *llm.OutlineSuggestion
	err        error
	got        llm.OutlineInput
}

func (f *fakeDrafter) Draft(_ context.Context, input llm.OutlineInput) (*llm.OutlineSuggestion, error) {
	f.got = input
	return f.suggestion, f.err
}

func newOutlineFixture(drafter *fakeDrafter) *OutlineHandler {
	gin.SetMode(gin.TestMode)
	outlines := service.NewOutlineService(drafter, nil, nil)
	return NewOutlineHandler(outlines, service.NewMetricsService())
}

func TestDraftReturnsSuggestion(t *testing.T) {
	drafter := &fakeDrafter{
		suggestion: &llm.OutlineSuggestion{
			Outcomes: []string{"Coach effectively"},
			Modules:  []string{"Coaching Foundations"},
			Notes:    "Focus on practice",
		},
	}
	handler := newOutlineFixture(drafter)

	payload := map[string]interface{}{
		"client": "Acme",
		"scope":  "Leadership",
		"text":   strings.Repeat("Detailed notes about the coaching program. ", 3),
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/outline/draft", bytes.NewBuffer(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Draft(c)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	var resp struct {
		Outcomes []string `json:"outcomes"`
		Modules  []string `json:"modules"`
		Notes    string   `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, []string{"Coach effectively"}, resp.Outcomes)
	assert.Equal(t, []string{"Coaching Foundations"}, resp.Modules)
	assert.Equal(t, 8, drafter.got.MaxOutcomes)
	assert.Equal(t, 6, drafter.got.TargetModules)
}

func TestDraftRejectsShortText(t *testing.T) {
	handler := newOutlineFixture(&fakeDrafter{})

	body := bytes.NewBufferString(`{"text":"too short"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/outline/draft", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Draft(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "Provide at least ~50 characters of text.", env.Error.Message)
}

func TestDraftSurfacesUpstreamFailure(t *testing.T) {
	handler := newOutlineFixture(&fakeDrafter{
		err: &llm.UpstreamError{StatusCode: 503, Body: "overloaded"},
	})

	body := bytes.NewBufferString(`{"text":"` + strings.Repeat("material ", 10) + `"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/outline/draft", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Draft(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "UPSTREAM_FAILURE", env.Error.Code)
}
