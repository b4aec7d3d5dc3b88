package export

import (
	"fmt"

	"github.com/gomutex/godocx"
)

// Document writes a Word (.docx) report with a title, a results table and
// a total line.
type Document struct{}

func (Document) Name() string         { return "DocumentExporter" }
func (Document) Extensions() []string { return []string{"docx", "doc"} }

// documentTableStyle is a table style shipped with the default template.
const documentTableStyle = "LightList-Accent4"

var documentHeaders = []string{"Material", "Kind", "Area (m²)", "Reserve", "Units", "Total cost"}

func (Document) Write(path string, report Report) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := doc.AddHeading(report.Title, 0); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}
	doc.AddParagraph("Generated: " + report.GeneratedAt.Format("2006-01-02 15:04"))

	table := doc.AddTable()
	table.Style(documentTableStyle)
	header := table.AddRow()
	for _, h := range documentHeaders {
		header.AddCell().AddParagraph(h)
	}
	for _, cells := range documentRows(report) {
		row := table.AddRow()
		for _, c := range cells {
			row.AddCell().AddParagraph(c)
		}
	}

	doc.AddParagraph("").AddText(fmt.Sprintf("Total: %.2f %s", report.TotalCost(), report.Currency)).Bold(true)

	return doc.SaveTo(path)
}

// documentRows formats one table row per result.
func documentRows(report Report) [][]string {
	rows := make([][]string, 0, len(report.Results))
	for _, r := range report.Results {
		s := r.Summary()
		rows = append(rows, []string{
			s.Material,
			s.Kind.String(),
			fmt.Sprintf("%.2f", s.Area),
			fmt.Sprintf("%d%%", s.ReservePercent),
			fmt.Sprintf("%d %s", s.UnitsNeeded, s.UnitType),
			fmt.Sprintf("%.2f %s", s.TotalCost, report.Currency),
		})
	}
	return rows
}
