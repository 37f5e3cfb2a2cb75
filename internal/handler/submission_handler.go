package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legacylearning/intake-api/internal/dto"
	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/service"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
)

// SubmissionHandler exposes the intake and triage endpoints.
type SubmissionHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(submissions *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// Submit godoc
// @Summary Submit a client brief
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubmissionRequest true "Brief payload"
// @Success 201 {object} response.Envelope
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.submissions.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// List godoc
// @Summary List submissions for triage
// @Tags Admin
// @Produce json
// @Param q query string false "Case-insensitive text filter"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope
// @Security AdminToken
// @Router /admin/submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	filter := parseSubmissionFilter(c)

	list, err := h.submissions.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, Total: list.Total}
	response.JSON(c, http.StatusOK, list.Items, pagination)
}

// Get godoc
// @Summary Fetch one submission
// @Tags Admin
// @Produce json
// @Param id query string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Security AdminToken
// @Router /admin/submission [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	rec, err := h.submissions.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, nil)
}

// MarkStatus godoc
// @Summary Move a submission through triage
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.MarkStatusRequest true "Status change"
// @Success 200 {object} response.Envelope
// @Security AdminToken
// @Router /admin/submissions/mark [post]
func (h *SubmissionHandler) MarkStatus(c *gin.Context) {
	var req dto.MarkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.submissions.MarkStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

func parseSubmissionFilter(c *gin.Context) models.SubmissionFilter {
	filter := models.SubmissionFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Status: models.SubmissionStatus(c.Query("status")),
		Page:   1,
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	filter.PageSize = 20
	if size, err := strconv.Atoi(c.DefaultQuery("pageSize", "20")); err == nil && size > 0 {
		filter.PageSize = size
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return filter
}
