package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/legacylearning/intake-api/internal/models"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/export"
)

// DocumentExporter renders one submission into a downloadable document.
type DocumentExporter interface {
	ContentType() string
	Extension() string
	Render(rec models.SubmissionRecord) ([]byte, error)
}

// ExportDocument is a fully rendered download.
type ExportDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService turns submissions into client-facing documents.
type ExportService struct {
	submissions *SubmissionService
	exporters   map[string]DocumentExporter
	csv         *export.CSVExporter
	logger      *zap.Logger
}

// NewExportService constructs an ExportService with the docx and pdf
// renderers registered. docx is the default format.
func NewExportService(submissions *SubmissionService, branding export.Branding, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		submissions: submissions,
		exporters: map[string]DocumentExporter{
			"docx": export.NewDocxExporter(branding),
			"pdf":  export.NewPDFExporter(branding),
		},
		csv:    export.NewCSVExporter(),
		logger: logger,
	}
}

// RenderRecord renders the given record in the requested format. An
// empty format means docx.
func (s *ExportService) RenderRecord(rec models.SubmissionRecord, format string) (*ExportDocument, error) {
	if format == "" {
		format = "docx"
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	data, err := exporter.Render(rec)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render document")
	}

	s.logger.Info("document rendered",
		zap.String("id", rec.ID),
		zap.String("format", format),
		zap.Int("bytes", len(data)))
	return &ExportDocument{
		Filename:    export.Filename(rec.Client, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

// RenderByID loads the stored submission and renders it.
func (s *ExportService) RenderByID(ctx context.Context, id, format string) (*ExportDocument, error) {
	rec, err := s.submissions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.RenderRecord(*rec, format)
}

// RenderListingCSV renders the current filtered listing as a CSV report.
func (s *ExportService) RenderListingCSV(ctx context.Context, filter models.SubmissionFilter) (*ExportDocument, error) {
	filter.Page = 1
	filter.PageSize = 100
	items := make([]models.SubmissionRecord, 0)
	for {
		list, err := s.submissions.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		items = append(items, list.Items...)
		if len(items) >= list.Total || len(list.Items) == 0 {
			break
		}
		filter.Page++
	}

	data, err := s.csv.RenderListing(items)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return &ExportDocument{
		Filename:    "submissions.csv",
		ContentType: "text/csv",
		Data:        data,
	}, nil
}
