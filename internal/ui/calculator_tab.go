package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RenoCalc/internal/engine"
	"github.com/piwi3910/RenoCalc/internal/model"
)

// ─── Calculator Panel ──────────────────────────────────────

func (a *App) buildCalculatorPanel() fyne.CanvasObject {
	materialSelect := a.newMaterialPicker()

	areaEntry := widget.NewEntry()
	areaEntry.SetPlaceHolder("Area in m²")

	resultLabel := widget.NewLabel("Pick a material and enter an area.")
	resultLabel.Wrapping = fyne.TextWrapWord
	whatIf := container.NewVBox()

	calculate := func() (model.Material, float64, bool) {
		material, err := a.selectedMaterial(materialSelect)
		if err != nil {
			dialog.ShowError(err, a.window)
			return nil, 0, false
		}
		area, err := engine.ValidatePositiveNumber(areaEntry.Text, "area")
		if err != nil {
			dialog.ShowError(err, a.window)
			return nil, 0, false
		}
		return material, area, true
	}

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), func() {
		material, area, ok := calculate()
		if !ok {
			return
		}
		result, err := a.calc.Calculate(material, area)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		s := a.calc.Settings()
		resultLabel.SetText(fmt.Sprintf("%s\n\n%d %s for %.2f m² with %d%% reserve: %s",
			material, result.UnitsNeeded(), material.UnitType(), area,
			result.ReservePercent(), s.FormatMoney(result.TotalCost())))
		a.refreshHistory()
	})

	whatIfBtn := newButtonWithTooltip("Reserve What-If", theme.ViewRefreshIcon(),
		"Compare the current reserve with no reserve, a larger one and double", func() {
			material, area, ok := calculate()
			if !ok {
				return
			}
			s := a.calc.Settings()
			comparisons, err := engine.CompareReserves(material, area, engine.BuildReserveScenarios(s.ReservePercent), s)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			whatIf.RemoveAll()
			whatIf.Add(widget.NewCard("Reserve Scenarios", material.Name(), grid(reserveHeader, reserveRows(comparisons, s))))
		})

	form := widget.NewCard("Material Calculation", "", container.NewGridWithColumns(2,
		widget.NewLabel("Material"), materialSelect,
		widget.NewLabel("Area (m²)"), areaEntry,
	))

	return container.NewVScroll(container.NewVBox(
		form,
		container.NewHBox(layout.NewSpacer(), whatIfBtn, calcBtn),
		widget.NewCard("Result", "", resultLabel),
		whatIf,
	))
}

// ─── Compare Panel ─────────────────────────────────────────

var kindFilters = []string{"All", model.KindWallpaper.String(), model.KindTile.String(), model.KindLaminate.String()}

func (a *App) buildComparePanel() fyne.CanvasObject {
	areaEntry := widget.NewEntry()
	areaEntry.SetPlaceHolder("Area in m²")

	kindSelect := widget.NewSelect(kindFilters, nil)
	kindSelect.SetSelected("All")

	results := container.NewVBox(widget.NewLabel("Compare every catalog material at one area, cheapest first."))

	compareBtn := widget.NewButtonWithIcon("Compare", theme.ListIcon(), func() {
		area, err := engine.ValidatePositiveNumber(areaEntry.Text, "area")
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		catalog := a.catalog
		if kindSelect.Selected != "All" {
			kind, err := model.ParseKind(kindSelect.Selected)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			catalog = model.Catalog{Presets: a.catalog.ByKind(kind)}
		}
		materials, buildErrs := catalog.Materials()
		for _, err := range buildErrs {
			a.logger.Warn(err.Error())
		}
		compared, err := a.calc.CompareMaterials(materials, area)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		s := a.calc.Settings()
		results.RemoveAll()
		results.Add(grid(resultHeader, resultRows(compared, s)))
		if len(compared) > 0 {
			best := compared[0]
			results.Add(widget.NewSeparator())
			results.Add(boldLabel(fmt.Sprintf("Cheapest: %s at %s", best.Material().Name(), s.FormatMoney(best.TotalCost()))))
		}
		a.refreshHistory()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabel("Area (m²)"), container.NewGridWrap(fyne.NewSize(120, areaEntry.MinSize().Height), areaEntry),
			widget.NewLabel("Type"), kindSelect,
			layout.NewSpacer(),
			compareBtn,
		),
		nil, nil, nil,
		container.NewVScroll(results),
	)
}
