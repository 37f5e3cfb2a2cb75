package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/service"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
)

// ExportHandler exposes the document rendering endpoints.
type ExportHandler struct {
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, metrics *service.MetricsService) *ExportHandler {
	return &ExportHandler{exports: exports, metrics: metrics}
}

// RenderStored godoc
// @Summary Render a stored submission as a document
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param id query string true "Submission ID"
// @Param format query string false "docx or pdf (default docx)"
// @Success 200 {file} binary
// @Security AdminToken
// @Router /export [get]
func (h *ExportHandler) RenderStored(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, appErrors.ErrMissingID)
		return
	}
	doc, err := h.exports.RenderByID(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDocumentRender(formatOrDefault(c.Query("format")))
	writeDocument(c, doc)
}

// RenderPayload godoc
// @Summary Render a posted record as a document
// @Tags Export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param payload body models.SubmissionRecord true "Record to render"
// @Param format query string false "docx or pdf (default docx)"
// @Success 200 {file} binary
// @Router /export [post]
func (h *ExportHandler) RenderPayload(c *gin.Context) {
	var rec models.SubmissionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	doc, err := h.exports.RenderRecord(rec, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordDocumentRender(formatOrDefault(c.Query("format")))
	writeDocument(c, doc)
}

// ExportListingCSV godoc
// @Summary Export the filtered submission listing as CSV
// @Tags Admin
// @Produce text/csv
// @Param q query string false "Case-insensitive text filter"
// @Param status query string false "Filter by status"
// @Success 200 {file} binary
// @Security AdminToken
// @Router /admin/submissions/export.csv [get]
func (h *ExportHandler) ExportListingCSV(c *gin.Context) {
	filter := parseSubmissionFilter(c)

	doc, err := h.exports.RenderListingCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeDocument(c, doc)
}

func writeDocument(c *gin.Context, doc *service.ExportDocument) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func formatOrDefault(format string) string {
	if format == "" {
		return "docx"
	}
	return format
}
