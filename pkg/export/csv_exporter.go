package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/legacylearning/intake-api/internal/models"
)

// CSVExporter renders the admin submission listing as CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

var listingHeaders = []string{"id", "client", "scope", "status", "created_at", "updated_at", "outcomes", "modules"}

// RenderListing produces one CSV row per submission, listing order preserved.
func (e *CSVExporter) RenderListing(items []models.SubmissionRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(listingHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, rec := range items {
		row := []string{
			rec.ID,
			rec.Client,
			rec.Scope,
			string(rec.Status),
			rec.CreatedAt,
			rec.UpdatedAt,
			strconv.Itoa(len(rec.Outcomes)),
			strconv.Itoa(len(rec.Modules)),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
