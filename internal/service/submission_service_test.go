package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legacylearning/intake-api/internal/dto"
	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/internal/repository"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/storage"
)

type submissionStoreStub struct {
	putFn  func(ctx context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error)
	getFn  func(ctx context.Context, id string) (*models.SubmissionRecord, error)
	listFn func(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error)
}

func (s *submissionStoreStub) Put(ctx context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error) {
	return s.putFn(ctx, rec)
}

func (s *submissionStoreStub) GetByID(ctx context.Context, id string) (*models.SubmissionRecord, error) {
	return s.getFn(ctx, id)
}

func (s *submissionStoreStub) List(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error) {
	return s.listFn(ctx, filter)
}

func TestSubmitStoresWithSubmittedStatus(t *testing.T) {
	var stored *models.SubmissionRecord
	stub := &submissionStoreStub{
		putFn: func(_ context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error) {
			rec.ID = "1700000000000-acme"
			rec.Key = repository.SubmissionsPrefix + rec.ID + ".json"
			stored = rec
			return storage.ObjectInfo{Key: rec.Key, URL: "mem://" + rec.Key}, nil
		},
	}
	svc := NewSubmissionService(stub, nil)

	resp, err := svc.Submit(context.Background(), dto.CreateSubmissionRequest{
		Client:   "Acme",
		Outcomes: []string{"A"},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusSubmitted, stored.Status)
	assert.Equal(t, "1700000000000-acme", resp.ID)
	assert.Equal(t, repository.SubmissionsPrefix+"1700000000000-acme.json", resp.Key)
	assert.NotEmpty(t, resp.URL)
}

func TestSubmitStoreFailure(t *testing.T) {
	stub := &submissionStoreStub{
		putFn: func(context.Context, *models.SubmissionRecord) (storage.ObjectInfo, error) {
			return storage.ObjectInfo{}, errors.New("blob upload failed with status 500")
		},
	}
	svc := NewSubmissionService(stub, nil)

	_, err := svc.Submit(context.Background(), dto.CreateSubmissionRequest{Client: "Acme"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestGetRequiresID(t *testing.T) {
	svc := NewSubmissionService(&submissionStoreStub{}, nil)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingID.Code, appErrors.FromError(err).Code)
}

func TestGetNotFoundMapsToNotFound(t *testing.T) {
	stub := &submissionStoreStub{
		getFn: func(context.Context, string) (*models.SubmissionRecord, error) {
			return nil, repository.ErrSubmissionNotFound
		},
	}
	svc := NewSubmissionService(stub, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListPropagatesFilter(t *testing.T) {
	var got models.SubmissionFilter
	stub := &submissionStoreStub{
		listFn: func(_ context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error) {
			got = filter
			return &models.SubmissionList{Total: 0, Items: []models.SubmissionRecord{}}, nil
		},
	}
	svc := NewSubmissionService(stub, nil)

	_, err := svc.List(context.Background(), models.SubmissionFilter{Query: "acme", Status: models.StatusNew, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Query)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Equal(t, 2, got.Page)
}

func TestMarkStatusValidation(t *testing.T) {
	svc := NewSubmissionService(&submissionStoreStub{}, nil)

	_, err := svc.MarkStatus(context.Background(), dto.MarkStatusRequest{Status: "done"})
	assert.Equal(t, appErrors.ErrMissingID.Code, appErrors.FromError(err).Code)

	_, err = svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "x", Status: "archived"})
	assert.Equal(t, appErrors.ErrInvalidStatus.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "status must be one of: new, in_progress, done", appErrors.FromError(err).Message)

	// submitted is the intake state, not a triage target.
	_, err = svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "x", Status: "submitted"})
	assert.Equal(t, appErrors.ErrInvalidStatus.Code, appErrors.FromError(err).Code)
}

func TestMarkStatusRewritesRecord(t *testing.T) {
	rec := &models.SubmissionRecord{
		ID:        "target",
		Client:    "Acme",
		Status:    models.StatusSubmitted,
		CreatedAt: "2024-01-01T00:00:00Z",
	}
	var written *models.SubmissionRecord
	stub := &submissionStoreStub{
		getFn: func(context.Context, string) (*models.SubmissionRecord, error) {
			copied := *rec
			return &copied, nil
		},
		putFn: func(_ context.Context, r *models.SubmissionRecord) (storage.ObjectInfo, error) {
			written = r
			return storage.ObjectInfo{Key: r.Key}, nil
		},
	}
	svc := NewSubmissionService(stub, nil)

	resp, err := svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "target", Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, resp.Status)
	require.NotNil(t, written)
	assert.Equal(t, models.StatusInProgress, written.Status)
	assert.NotEmpty(t, written.UpdatedAt)
	assert.Equal(t, "2024-01-01T00:00:00Z", written.CreatedAt)
}

func TestMarkStatusUpdatedAtStrictlyIncreases(t *testing.T) {
	// Sub-second component matters: the formatted timestamp drops it, so
	// a naive comparison against the stored value would see a tie here.
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 456_000_000, time.UTC)
	current := &models.SubmissionRecord{ID: "target", Status: models.StatusNew, CreatedAt: "2024-01-01T00:00:00Z"}
	stub := &submissionStoreStub{
		getFn: func(context.Context, string) (*models.SubmissionRecord, error) {
			copied := *current
			return &copied, nil
		},
		putFn: func(_ context.Context, r *models.SubmissionRecord) (storage.ObjectInfo, error) {
			current = r
			return storage.ObjectInfo{}, nil
		},
	}
	svc := NewSubmissionService(stub, nil)
	svc.now = func() time.Time { return frozen }

	_, err := svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "target", Status: "in_progress"})
	require.NoError(t, err)
	first := current.UpdatedAt

	_, err = svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "target", Status: "done"})
	require.NoError(t, err)
	second := current.UpdatedAt

	assert.Equal(t, "2024-06-01T12:00:00Z", first)
	assert.Equal(t, "2024-06-01T12:00:01Z", second)
	assert.True(t, second > first)
}

func TestMarkStatusMissingRecord(t *testing.T) {
	stub := &submissionStoreStub{
		getFn: func(context.Context, string) (*models.SubmissionRecord, error) {
			return nil, repository.ErrSubmissionNotFound
		},
	}
	svc := NewSubmissionService(stub, nil)

	_, err := svc.MarkStatus(context.Background(), dto.MarkStatusRequest{ID: "missing", Status: "done"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
