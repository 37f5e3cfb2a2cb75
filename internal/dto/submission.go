package dto

import (
	"github.com/legacylearning/intake-api/internal/models"
)

// CreateSubmissionRequest is the public intake payload. Every field is
// optional; unparseable shapes fail binding, absent values default.
type CreateSubmissionRequest struct {
	Client   string          `json:"client"`
	Scope    string          `json:"scope"`
	Overview string          `json:"overview"`
	Approach string          `json:"approach"`
	Format   string          `json:"format"`
	Outcomes []string        `json:"outcomes"`
	Modules  []models.Module `json:"modules"`
	Notes    string          `json:"notes"`
	FileURLs []string        `json:"fileUrls"`
}

// CreateSubmissionResponse acknowledges a stored brief.
type CreateSubmissionResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

// MarkStatusRequest updates one submission's lifecycle status.
type MarkStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// MarkStatusResponse acknowledges a status change.
type MarkStatusResponse struct {
	ID     string                  `json:"id"`
	Status models.SubmissionStatus `json:"status"`
}
