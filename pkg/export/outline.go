package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/legacylearning/intake-api/internal/models"
)

// Branding configures the document header and footer lines.
type Branding struct {
	Name    string
	Tagline string
	Domain  string
}

const (
	documentTitle  = "Learning Strategy"
	placeholder    = "(Not provided)"
	outcomesLeadIn = "At the end of this learning program, learners will be able to:"
)

// LineKind distinguishes how a rendered line is formatted.
type LineKind int

const (
	LineText LineKind = iota
	LineBullet
	LineNumbered
	LineIndented
)

// Line is one renderable line of a section body.
type Line struct {
	Kind   LineKind
	Text   string
	Number int
}

// Section is one titled block of the strategy document.
type Section struct {
	Title string
	Lines []Line
}

// BuildSections lays out the six fixed sections in their fixed order.
// Every absent field renders as a placeholder rather than failing.
func BuildSections(rec models.SubmissionRecord) []Section {
	scope := placeholder
	if strings.TrimSpace(rec.Scope) != "" {
		scope = strings.TrimSpace(rec.Scope)
	}
	clientSection := Section{
		Title: "Client Name",
		Lines: []Line{
			{Kind: LineText, Text: notProvided(rec.Client)},
			{Kind: LineText, Text: "Scope: " + scope},
		},
	}

	sections := []Section{
		clientSection,
		textSection("Overview", rec.Overview),
		textSection("Our Learning Approach & Philosophies", rec.Approach),
		textSection("Recommended Format", rec.Format),
		outcomesSection(rec.Outcomes),
		modulesSection(rec.Modules),
	}
	return sections
}

// Title returns the document title line.
func Title() string {
	return documentTitle
}

// DateLine renders the generation date in the document's fixed format.
func DateLine(now time.Time) string {
	return "Date: " + now.UTC().Format("2006-01-02")
}

// Filename derives the attachment filename from the client name.
func Filename(client, ext string) string {
	base := models.Slugify(client)
	if base == "" {
		base = "strategy"
	}
	return fmt.Sprintf("%s-learning-strategy.%s", base, ext)
}

func textSection(title, body string) Section {
	section := Section{Title: title}
	body = strings.TrimSpace(body)
	if body == "" {
		section.Lines = []Line{{Kind: LineText, Text: placeholder}}
		return section
	}
	for _, para := range strings.Split(body, "\n") {
		section.Lines = append(section.Lines, Line{Kind: LineText, Text: para})
	}
	return section
}

func outcomesSection(outcomes []string) Section {
	section := Section{
		Title: "Program Outcomes",
		Lines: []Line{{Kind: LineText, Text: outcomesLeadIn}},
	}
	count := 0
	for _, o := range outcomes {
		text := strings.TrimSpace(o)
		if text == "" {
			continue
		}
		section.Lines = append(section.Lines, Line{Kind: LineBullet, Text: text})
		count++
	}
	if count == 0 {
		section.Lines = append(section.Lines, Line{Kind: LineText, Text: placeholder})
	}
	return section
}

func modulesSection(modules []models.Module) Section {
	section := Section{Title: "Program Modules"}
	num := 0
	for _, m := range modules {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			continue
		}
		num++
		section.Lines = append(section.Lines, Line{Kind: LineNumbered, Text: title, Number: num})
		if objective := strings.TrimSpace(m.Objective); objective != "" {
			section.Lines = append(section.Lines, Line{Kind: LineIndented, Text: "Objective: " + objective})
		}
		for _, activity := range m.Activities {
			if activity = strings.TrimSpace(activity); activity != "" {
				section.Lines = append(section.Lines, Line{Kind: LineIndented, Text: "– " + activity})
			}
		}
	}
	if num == 0 {
		section.Lines = []Line{{Kind: LineText, Text: placeholder}}
	}
	return section
}

func notProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return strings.TrimSpace(s)
}
