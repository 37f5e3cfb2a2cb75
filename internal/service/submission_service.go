package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/legacylearning/intake-api/internal/dto"
	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/repository"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/storage"
)

type submissionStore interface {
	Put(ctx context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error)
	GetByID(ctx context.Context, id string) (*models.SubmissionRecord, error)
	List(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error)
}

// SubmissionService covers the intake and triage use cases.
type SubmissionService struct {
	store  submissionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(store submissionStore, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{store: store, logger: logger, now: time.Now}
}

// Submit stores a new client brief. Missing fields are accepted as-is;
// the brief always enters the pipeline in the submitted state.
func (s *SubmissionService) Submit(ctx context.Context, req dto.CreateSubmissionRequest) (*dto.CreateSubmissionResponse, error) {
	rec := &models.SubmissionRecord{
		Client:   req.Client,
		Scope:    req.Scope,
		Overview: req.Overview,
		Approach: req.Approach,
		Format:   req.Format,
		Outcomes: req.Outcomes,
		Modules:  req.Modules,
		Notes:    req.Notes,
		FileURLs: req.FileURLs,
		Status:   models.StatusSubmitted,
	}

	obj, err := s.store.Put(ctx, rec)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to store submission")
	}

	s.logger.Info("submission received",
		zap.String("id", rec.ID),
		zap.String("client", rec.Client))
	return &dto.CreateSubmissionResponse{ID: rec.ID, Key: rec.Key, URL: obj.URL}, nil
}

// Get fetches one submission by id.
func (s *SubmissionService) Get(ctx context.Context, id string) (*models.SubmissionRecord, error) {
	if id == "" {
		return nil, appErrors.ErrMissingID
	}
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, appErrors.Upstream(err, "failed to fetch submission")
	}
	return rec, nil
}

// List returns a filtered, newest-first page of submissions.
func (s *SubmissionService) List(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error) {
	list, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to list submissions")
	}
	return list, nil
}

// MarkStatus moves a submission to one of the triage states. The whole
// record is rewritten, so a concurrent mark on the same id resolves to
// whichever write lands last.
func (s *SubmissionService) MarkStatus(ctx context.Context, req dto.MarkStatusRequest) (*dto.MarkStatusResponse, error) {
	if req.ID == "" {
		return nil, appErrors.ErrMissingID
	}
	status := models.SubmissionStatus(req.Status)
	if !models.IsAllowedMark(status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "status must be one of: "+allowedMarkList())
	}

	rec, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	rec.Status = status
	rec.UpdatedAt = s.nextUpdatedAt(rec.UpdatedAt)
	if _, err := s.store.Put(ctx, rec); err != nil {
		return nil, appErrors.Upstream(err, "failed to update submission")
	}

	s.logger.Info("submission marked",
		zap.String("id", rec.ID),
		zap.String("status", string(status)))
	return &dto.MarkStatusResponse{ID: rec.ID, Status: status}, nil
}

// nextUpdatedAt keeps updated_at strictly increasing even when two marks
// land within the same second. The clock is truncated to seconds before
// the comparison so it matches the RFC3339 precision prev was stored at.
func (s *SubmissionService) nextUpdatedAt(prev string) string {
	now := s.now().UTC().Truncate(time.Second)
	if prev != "" {
		if prevTime, err := time.Parse(time.RFC3339, prev); err == nil && !now.After(prevTime) {
			now = prevTime.Add(time.Second)
		}
	}
	return now.Format(time.RFC3339)
}

func allowedMarkList() string {
	parts := make([]string, len(models.AllowedMarkStatuses))
	for i, s := range models.AllowedMarkStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
