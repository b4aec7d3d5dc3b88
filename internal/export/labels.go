package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// Label layout constants: 2 columns x 5 rows on A4.
const (
	labelMarginTop  = 15.0
	labelMarginLeft = 15.0
	labelWidth      = 90.0
	labelHeight     = 50.0
	labelCols       = 2
	labelRows       = 5
	labelsPerPage   = labelCols * labelRows
	qrSize          = 36.0
	labelPadding    = 3.0
)

// CollectLabels returns the QR payload of every result in report order.
func CollectLabels(results []model.CalculationResult) []model.ResultSummary {
	labels := make([]model.ResultSummary, 0, len(results))
	for _, r := range results {
		labels = append(labels, r.Summary())
	}
	return labels
}

// renderLabels appends label pages to pdf, one label per result. Each
// label carries a QR code encoding the result summary as JSON.
func renderLabels(pdf *fpdf.Fpdf, tr func(string) string, report Report) error {
	for i, info := range CollectLabels(report.Results) {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, info, report.Currency); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", info.Material, err)
		}
	}
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, index int, info model.ResultSummary, currency string) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_result_%d", index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	name := tr(info.Material)
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 5, name, "", 1, "L", false, 0, "")

	lines := []string{
		info.Kind.String(),
		fmt.Sprintf("%d x %s", info.UnitsNeeded, info.UnitType),
		fmt.Sprintf("%.2f m2 +%d%%", info.Area, info.ReservePercent),
		fmt.Sprintf("%.2f %s", info.TotalCost, currency),
	}
	pdf.SetFont("Helvetica", "", 8)
	for i, line := range lines {
		pdf.SetXY(textX, y+labelPadding+7+float64(i)*5)
		pdf.CellFormat(textW, 4, tr(line), "", 1, "L", false, 0, "")
	}
	return nil
}
