package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// kindColor represents an RGB color used for a material kind.
type kindColor struct {
	R, G, B int
}

var kindColors = map[model.Kind]kindColor{
	model.KindWallpaper: {R: 156, G: 39, B: 176}, // purple
	model.KindTile:      {R: 33, G: 150, B: 243}, // blue
	model.KindLaminate:  {R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 7.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDF writes a report with a results table, a summary and one QR-coded
// label per result.
type PDF struct{}

func (PDF) Name() string         { return "PDFExporter" }
func (PDF) Extensions() []string { return []string{"pdf"} }

func (PDF) Write(path string, report Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderResultsPage(pdf, tr, report)

	if err := renderLabels(pdf, tr, report); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// renderResultsPage draws the title, the results table and the total.
func renderResultsPage(pdf *fpdf.Fpdf, tr func(string) string, report Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, headerHeight, tr(report.Title), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight, pageWidth-marginRight, marginTop+headerHeight)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight+2)
	generated := fmt.Sprintf("Generated %s | %d results | currency %s",
		report.GeneratedAt.Format("2006-01-02 15:04"), len(report.Results), report.Currency)
	pdf.CellFormat(contentWidth, 5, tr(generated), "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 12

	colWidths := []float64{8, 52, 22, 20, 18, 30, 30}
	headers := []string{"#", "Material", "Kind", "Area m2", "Reserve", "Units", "Total cost"}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += rowHeight
	}
	drawHeader()

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range report.Results {
		if y+rowHeight > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
			drawHeader()
			pdf.SetFont("Helvetica", "", 9)
		}
		s := r.Summary()
		row := []string{
			fmt.Sprintf("%d", i+1),
			s.Material,
			s.Kind.String(),
			fmt.Sprintf("%.2f", s.Area),
			fmt.Sprintf("%d%%", s.ReservePercent),
			fmt.Sprintf("%d %s", s.UnitsNeeded, s.UnitType),
			fmt.Sprintf("%.2f", s.TotalCost),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			align := "C"
			if j == 1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], rowHeight, tr(cell), "1", 0, align, true, 0, "")
			x += colWidths[j]
		}

		// Kind swatch
		if col, ok := kindColors[s.Kind]; ok {
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.Rect(marginLeft+colWidths[0]+colWidths[1]+1, y+2, 2, rowHeight-4, "F")
		}
		y += rowHeight
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	total := fmt.Sprintf("Total cost: %.2f %s", report.TotalCost(), report.Currency)
	pdf.CellFormat(contentWidth, 7, tr(total), "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by RenoCalc - Renovation Material Calculator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
