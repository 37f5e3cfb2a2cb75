package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/legacylearning/intake-api/internal/dto"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/storage"
)

// MaterialsPrefix is where uploaded source-material files live.
const MaterialsPrefix = "materials/"

const defaultUploadContentType = "application/octet-stream"

var (
	filenameUnsafe = regexp.MustCompile(`[^a-z0-9.\-_]+`)
	dashRun        = regexp.MustCompile(`-+`)
)

type uploadURLIssuer interface {
	CreateUploadURL(ctx context.Context, key, contentType string) (storage.UploadTarget, error)
}

// UploadService issues pre-authorized upload destinations for client
// source materials.
type UploadService struct {
	store  uploadURLIssuer
	logger *zap.Logger
	now    func() time.Time
}

// NewUploadService constructs an UploadService instance.
func NewUploadService(store uploadURLIssuer, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, logger: logger, now: time.Now}
}

// CreateUploadURL mints a materials key for the file and asks the blob
// store for a matching upload destination.
func (s *UploadService) CreateUploadURL(ctx context.Context, req dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	if req.Filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filename required")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	key := fmt.Sprintf("%s%d-%s", MaterialsPrefix, s.now().UnixMilli(), sanitizeFilename(req.Filename))
	target, err := s.store.CreateUploadURL(ctx, key, contentType)
	if err != nil {
		return nil, appErrors.Upstream(err, "blob generate-upload-url failed")
	}

	s.logger.Info("upload url issued", zap.String("key", key))
	return &dto.UploadURLResponse{
		UploadURL:   target.UploadURL,
		Key:         key,
		ContentType: contentType,
	}, nil
}

func sanitizeFilename(name string) string {
	safe := filenameUnsafe.ReplaceAllString(strings.ToLower(name), "-")
	return dashRun.ReplaceAllString(safe, "-")
}
