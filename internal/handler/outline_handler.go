package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legacylearning/intake-api/internal/dto"
	"github.com/legacylearning/intake-api/internal/service"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
)

// OutlineHandler exposes the LLM-assisted drafting endpoint.
type OutlineHandler struct {
	outlines *service.OutlineService
	metrics  *service.MetricsService
}

// NewOutlineHandler constructs OutlineHandler.
func NewOutlineHandler(outlines *service.OutlineService, metrics *service.MetricsService) *OutlineHandler {
	return &OutlineHandler{outlines: outlines, metrics: metrics}
}

// Draft godoc
// @Summary Draft outcomes and module titles from source text
// @Tags Outline
// @Accept json
// @Produce json
// @Param payload body dto.OutlineDraftRequest true "Source material"
// @Success 200 {object} response.Envelope
// @Router /outline/draft [post]
func (h *OutlineHandler) Draft(c *gin.Context) {
	var req dto.OutlineDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	h.metrics.RecordOutlineDraft()
	resp, err := h.outlines.Draft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
