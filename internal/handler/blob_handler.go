package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
	"github.com/legacylearning/intake-api/pkg/storage"
)

const maxBlobUploadBytes = 32 << 20

// BlobHandler serves uploads and downloads for the filesystem blob
// driver. Every request carries a signed token naming the operation
// and key it authorizes.
type BlobHandler struct {
	store *storage.FilesystemStore
}

// NewBlobHandler constructs BlobHandler.
func NewBlobHandler(store *storage.FilesystemStore) *BlobHandler {
	return &BlobHandler{store: store}
}

// Upload godoc
// @Summary Accept a blob upload against a signed token
// @Tags Blob
// @Param token query string true "Signed upload token"
// @Success 200 {object} response.Envelope
// @Router /blob/object [put]
func (h *BlobHandler) Upload(c *gin.Context) {
	op, key, err := h.store.ResolveToken(c.Query("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid upload token"))
		return
	}
	if op != storage.OpUpload {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "token does not authorize uploads"))
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBlobUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusRequestEntityTooLarge, "upload exceeds the size limit"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read upload body"))
		return
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	obj, err := h.store.Put(c.Request.Context(), key, data, contentType)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store blob"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": obj.URL, "pathname": obj.Key, "size": obj.Size}, nil)
}

// Download godoc
// @Summary Serve a blob against a signed token
// @Tags Blob
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /blob/object [get]
func (h *BlobHandler) Download(c *gin.Context) {
	op, key, err := h.store.ResolveToken(c.Query("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token"))
		return
	}
	if op != storage.OpDownload {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "token does not authorize downloads"))
		return
	}

	data, err := h.store.Fetch(c.Request.Context(), storage.ObjectInfo{Key: key})
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "object not found"))
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}
