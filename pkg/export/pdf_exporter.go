package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/legacylearning/intake-api/internal/models"
)

// PDFExporter renders the strategy document as a PDF with the same
// section layout as the docx rendering.
type PDFExporter struct {
	branding Branding
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter(branding Branding) *PDFExporter {
	return &PDFExporter{branding: branding}
}

// ContentType returns the MIME type of the rendered document.
func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

// Extension returns the file extension of the rendered document.
func (e *PDFExporter) Extension() string {
	return "pdf"
}

// Render produces the document bytes for the record.
func (e *PDFExporter) Render(rec models.SubmissionRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if e.branding.Name != "" {
		pdf.SetHeaderFunc(func() {
			pdf.SetFont("Arial", "B", 9)
			header := e.branding.Name
			if e.branding.Tagline != "" {
				header += " - " + e.branding.Tagline
			}
			pdf.CellFormat(0, 6, header, "", 1, "R", false, 0, "")
			pdf.Ln(2)
		})
	}
	if e.branding.Domain != "" {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-15)
			pdf.SetFont("Arial", "", 8)
			footer := fmt.Sprintf("(c) %d %s - %s", time.Now().Year(), e.branding.Name, e.branding.Domain)
			pdf.CellFormat(0, 6, footer, "", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, Title(), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, DateLine(time.Now()), "", 1, "", false, 0, "")
	pdf.Ln(2)

	for _, section := range BuildSections(rec) {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, tr(section.Title), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, line := range section.Lines {
			switch line.Kind {
			case LineBullet:
				pdf.SetX(20)
				pdf.MultiCell(0, 5.5, tr("- "+line.Text), "", "", false)
			case LineNumbered:
				pdf.MultiCell(0, 5.5, tr(fmt.Sprintf("%d. %s", line.Number, line.Text)), "", "", false)
			case LineIndented:
				pdf.SetX(24)
				pdf.MultiCell(0, 5.5, tr(line.Text), "", "", false)
			default:
				pdf.MultiCell(0, 5.5, tr(line.Text), "", "", false)
			}
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
