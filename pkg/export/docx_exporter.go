package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fumiama/go-docx"

	"github.com/legacylearning/intake-api/internal/models"
)

// DocxExporter renders the strategy document as a .docx file, the primary
// deliverable format.
type DocxExporter struct {
	branding Branding
}

// NewDocxExporter constructs a docx exporter.
func NewDocxExporter(branding Branding) *DocxExporter {
	return &DocxExporter{branding: branding}
}

// ContentType returns the MIME type of the rendered document.
func (e *DocxExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Extension returns the file extension of the rendered document.
func (e *DocxExporter) Extension() string {
	return "docx"
}

// Render produces the document bytes for the record.
func (e *DocxExporter) Render(rec models.SubmissionRecord) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	if e.branding.Name != "" {
		brand := w.AddParagraph()
		brand.Justification("right")
		brand.AddText(e.branding.Name).Bold()
		if e.branding.Tagline != "" {
			brand.AddText(" — " + e.branding.Tagline)
		}
	}

	title := w.AddParagraph()
	title.AddText(Title()).Size("40").Bold()
	w.AddParagraph().AddText(DateLine(time.Now()))

	for _, section := range BuildSections(rec) {
		heading := w.AddParagraph()
		heading.AddText(section.Title).Size("28").Bold()
		for _, line := range section.Lines {
			para := w.AddParagraph()
			switch line.Kind {
			case LineBullet:
				para.AddText("• " + line.Text)
			case LineNumbered:
				para.AddText(fmt.Sprintf("%d. %s", line.Number, line.Text))
			case LineIndented:
				para.AddText("    " + line.Text)
			default:
				para.AddText(line.Text)
			}
		}
	}

	if e.branding.Domain != "" {
		footer := w.AddParagraph()
		footer.Justification("center")
		footer.AddText(fmt.Sprintf("© %d %s • %s", time.Now().Year(), e.branding.Name, e.branding.Domain))
	}

	buf := &bytes.Buffer{}
	if _, err := w.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}
