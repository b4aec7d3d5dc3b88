package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Calculations"
	summarySheet = "Summary"
)

var resultHeaders = []string{
	"#", "Material", "Kind", "Unit", "Price per unit", "Coverage per unit (m²)",
	"Area (m²)", "Reserve (%)", "Units needed", "Total cost",
}

// Spreadsheet writes an Excel workbook with one row per result and a
// summary sheet.
type Spreadsheet struct{}

func (Spreadsheet) Name() string         { return "SpreadsheetExporter" }
func (Spreadsheet) Extensions() []string { return []string{"xlsx", "xls"} }

func (Spreadsheet) Write(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for col, header := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(resultsSheet, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(resultHeaders), 1)
	f.SetCellStyle(resultsSheet, "A1", lastHeader, bold)

	for i, r := range report.Results {
		s := r.Summary()
		row := []any{
			i + 1, s.Material, s.Kind.String(), s.UnitType, s.PricePerUnit, s.UnitCoverage,
			s.Area, s.ReservePercent, s.UnitsNeeded, s.TotalCost,
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(resultsSheet, cell, value)
		}
	}

	totalRow := len(report.Results) + 2
	labelCell, _ := excelize.CoordinatesToCellName(len(resultHeaders)-1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(len(resultHeaders), totalRow)
	f.SetCellValue(resultsSheet, labelCell, "Total")
	f.SetCellValue(resultsSheet, totalCell, report.TotalCost())
	f.SetCellStyle(resultsSheet, labelCell, totalCell, bold)
	f.SetColWidth(resultsSheet, "B", "B", 28)
	f.SetColWidth(resultsSheet, "C", "J", 16)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][2]any{
		{"Report", report.Title},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04")},
		{"Results", len(report.Results)},
		{"Currency", report.Currency},
		{"Total cost", report.TotalCost()},
	}
	for i, kv := range summary {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), kv[1])
	}
	f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold)
	f.SetColWidth(summarySheet, "A", "B", 24)
	f.SetActiveSheet(0)

	// SaveAs only accepts OOXML extensions; writing through a file keeps
	// .xls names usable.
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
