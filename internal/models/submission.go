package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// SubmissionStatus marks where a record sits in the intake lifecycle.
type SubmissionStatus string

const (
	StatusSubmitted  SubmissionStatus = "submitted"
	StatusNew        SubmissionStatus = "new"
	StatusInProgress SubmissionStatus = "in_progress"
	StatusDone       SubmissionStatus = "done"
)

// AllowedMarkStatuses are the values an admin may assign. A record enters
// the system as "submitted" and can never be marked back to it.
var AllowedMarkStatuses = []SubmissionStatus{StatusNew, StatusInProgress, StatusDone}

// IsAllowedMark reports whether s is a valid admin-assigned status.
func IsAllowedMark(s SubmissionStatus) bool {
	for _, allowed := range AllowedMarkStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Module is one program module. Briefs may supply either a bare title
// string or a structured entry; both shapes survive a round trip through
// storage unchanged.
type Module struct {
	Title      string   `json:"title"`
	Objective  string   `json:"objective,omitempty"`
	Activities []string `json:"activities,omitempty"`
}

// UnmarshalJSON accepts either a JSON string or a structured object.
func (m *Module) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*m = Module{Title: title}
		return nil
	}
	type alias Module
	var structured alias
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*m = Module(structured)
	return nil
}

// MarshalJSON emits the bare-string form when only a title is present, so
// string-shaped input is stored back exactly as it arrived.
func (m Module) MarshalJSON() ([]byte, error) {
	if m.Objective == "" && len(m.Activities) == 0 {
		return json.Marshal(m.Title)
	}
	type alias Module
	return json.Marshal(alias(m))
}

// SubmissionRecord is the sole persistent entity: one learning-program
// brief stored as one JSON object at submissions/<id>.json.
type SubmissionRecord struct {
	ID       string           `json:"id,omitempty"`
	Key      string           `json:"key,omitempty"`
	Client   string           `json:"client"`
	Scope    string           `json:"scope"`
	Overview string           `json:"overview"`
	Approach string           `json:"approach"`
	Format   string           `json:"format"`
	Outcomes []string         `json:"outcomes"`
	Modules  []Module         `json:"modules"`
	Notes    string           `json:"notes"`
	FileURLs []string         `json:"fileUrls"`
	Status   SubmissionStatus `json:"status"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	// Legacy camel-cased timestamp kept for records written before the
	// snake_case convention settled.
	LegacyCreatedAt string `json:"createdAt,omitempty"`
}

// CreatedTime resolves the record's creation timestamp, falling back to
// the legacy casing and finally the zero time.
func (r SubmissionRecord) CreatedTime() time.Time {
	for _, raw := range []string{r.CreatedAt, r.LegacyCreatedAt} {
		if raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Pagination describes offset/limit paging metadata.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// SubmissionFilter narrows and pages a listing.
type SubmissionFilter struct {
	Query    string
	Status   SubmissionStatus
	Page     int
	PageSize int
}

// SubmissionList is a filtered, sorted, paginated listing. Total counts
// the filtered records before pagination.
type SubmissionList struct {
	Total int                `json:"total"`
	Items []SubmissionRecord `json:"items"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen, trimming leading and trailing hyphens.
func Slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
