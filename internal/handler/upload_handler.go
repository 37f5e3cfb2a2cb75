package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legacylearning/intake-api/internal/dto"
	"github.com/legacylearning/intake-api/internal/service"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
)

// UploadHandler exposes the upload destination endpoint.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// CreateURL godoc
// @Summary Issue a pre-authorized upload URL for source material
// @Tags Uploads
// @Accept json
// @Produce json
// @Param payload body dto.UploadURLRequest true "File details"
// @Success 200 {object} response.Envelope
// @Router /uploads/url [post]
func (h *UploadHandler) CreateURL(c *gin.Context) {
	var req dto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "filename required"))
		return
	}
	resp, err := h.uploads.CreateUploadURL(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
