package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for the admin
// metrics endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	BlobOperations           uint64    `json:"blob_operations"`
	BlobErrors               uint64    `json:"blob_errors"`
	AverageBlobOperationMs   float64   `json:"average_blob_operation_ms"`
	OutlineDrafts            uint64    `json:"outline_drafts"`
	DocumentsRendered        uint64    `json:"documents_rendered"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
