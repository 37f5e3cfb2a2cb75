package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legacylearning/intake-api/internal/models"
	"github.com/legacylearning/intake-api/pkg/storage"
)

// SubmissionsPrefix scopes every submission object in the store.
const SubmissionsPrefix = "submissions/"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrSubmissionNotFound reports that no object exists for the ID.
var ErrSubmissionNotFound = errors.New("submission not found")

// BlobObserver records the latency and outcome of store round-trips.
type BlobObserver interface {
	ObserveBlobOperation(op string, duration time.Duration, err error)
}

// SubmissionRepository is the durable mapping from submission ID to
// record, built on a store that only supports write-whole-object,
// fetch-by-listing and list-by-prefix. All query behavior (filter,
// search, sort, paginate) happens in memory over the full prefix.
type SubmissionRepository struct {
	store    storage.BlobStore
	observer BlobObserver
	logger   *zap.Logger
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(store storage.BlobStore, observer BlobObserver, logger *zap.Logger) *SubmissionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionRepository{store: store, observer: observer, logger: logger}
}

// Put serializes the record as pretty-printed JSON and overwrites the
// object at submissions/<id>.json. Storage-assigned fields (ID, Key,
// CreatedAt) are filled in when absent. A failed put leaves the previous
// object version intact; there is no partial-write state.
func (r *SubmissionRepository) Put(ctx context.Context, rec *models.SubmissionRecord) (storage.ObjectInfo, error) {
	if rec.ID == "" {
		rec.ID = mintID(rec.Client)
	}
	rec.Key = SubmissionsPrefix + rec.ID + ".json"
	if rec.CreatedAt == "" && rec.LegacyCreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("serialize submission: %w", err)
	}

	start := time.Now()
	obj, err := r.store.Put(ctx, rec.Key, data, "application/json")
	r.observe("put", start, err)
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("store submission %s: %w", rec.ID, err)
	}
	r.logger.Debug("submission stored", zap.String("key", obj.Key), zap.Int64("size", obj.Size))
	return obj, nil
}

// GetByID resolves one record. The backing store has no direct keyed
// read, so the lookup enumerates the prefix and matches the exact key.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.SubmissionRecord, error) {
	start := time.Now()
	objects, err := r.store.List(ctx, SubmissionsPrefix)
	r.observe("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	key := SubmissionsPrefix + id + ".json"
	for _, obj := range objects {
		if obj.Key != key {
			continue
		}
		rec, err := r.fetchRecord(ctx, obj)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, ErrSubmissionNotFound
}

// List pulls every record under the prefix, sorts newest first, applies
// the query and status filters, then slices out the requested page.
// Total reflects the filtered count before pagination.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) (*models.SubmissionList, error) {
	start := time.Now()
	objects, err := r.store.List(ctx, SubmissionsPrefix)
	r.observe("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	records := make([]models.SubmissionRecord, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		rec, err := r.fetchRecord(ctx, obj)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedTime().After(records[j].CreatedTime())
	})

	filtered := records[:0:0]
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, rec := range records {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if query != "" && !matchesQuery(rec, query) {
			continue
		}
		filtered = append(filtered, rec)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	startIdx := (page - 1) * pageSize
	endIdx := startIdx + pageSize
	items := []models.SubmissionRecord{}
	if startIdx < len(filtered) {
		if endIdx > len(filtered) {
			endIdx = len(filtered)
		}
		items = filtered[startIdx:endIdx]
	}

	return &models.SubmissionList{Total: len(filtered), Items: items}, nil
}

func (r *SubmissionRepository) fetchRecord(ctx context.Context, obj storage.ObjectInfo) (*models.SubmissionRecord, error) {
	start := time.Now()
	data, err := r.store.Fetch(ctx, obj)
	r.observe("fetch", start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch submission %s: %w", obj.Key, err)
	}
	var rec models.SubmissionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode submission %s: %w", obj.Key, err)
	}
	if rec.ID == "" {
		rec.ID = idFromKey(obj.Key)
	}
	if rec.Key == "" {
		rec.Key = obj.Key
	}
	return &rec, nil
}

func (r *SubmissionRepository) observe(op string, start time.Time, err error) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveBlobOperation(op, time.Since(start), err)
}

// matchesQuery does a case-insensitive substring match against the full
// serialized record.
func matchesQuery(rec models.SubmissionRecord, query string) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), query)
}

// mintID derives a new ID from the current timestamp and the slugified
// client name. Collisions are only theoretically possible at this scale;
// nothing actively prevents them.
func mintID(client string) string {
	slug := models.Slugify(client)
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), slug)
}

func idFromKey(key string) string {
	return strings.TrimSuffix(strings.TrimPrefix(key, SubmissionsPrefix), ".json")
}
