package ui

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/RenoCalc/internal/engine"
	"github.com/piwi3910/RenoCalc/internal/importer"
	"github.com/piwi3910/RenoCalc/internal/model"
	"github.com/piwi3910/RenoCalc/internal/project"
)

var kindOptions = []string{string(model.KindWallpaper), string(model.KindTile), string(model.KindLaminate)}

// ─── Material Catalog Dialog ───────────────────────────────

func (a *App) showCatalogDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.catalog.Presets) == 0 {
			presetList.Add(widget.NewLabel("No materials in the catalog."))
			return
		}

		header := container.NewGridWithColumns(6,
			boldLabel("Name"),
			boldLabel("Type"),
			boldLabel("Price"),
			boldLabel("Unit"),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		presetList.Add(header)
		presetList.Add(widget.NewSeparator())

		s := a.calc.Settings()
		for i := range a.catalog.Presets {
			idx := i
			p := a.catalog.Presets[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(p.Kind.String()),
				widget.NewLabel(s.FormatMoney(p.Price)),
				widget.NewLabel(presetUnit(p)),
				newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit material", func() {
					a.showPresetDialog(idx, refreshList)
				}),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Delete material", func() {
					next := model.Catalog{Presets: slices.Clone(a.catalog.Presets)}
					next.Remove(p.ID)
					a.setCatalog(next, "Delete Material")
					refreshList()
				}),
			)
			presetList.Add(row)
		}
	}
	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Material", theme.ContentAddIcon(), func() {
		a.showPresetDialog(-1, refreshList)
	})
	undoBtn := newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", func() {
		a.undoCatalog()
		refreshList()
	})
	redoBtn := newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", func() {
		a.redoCatalog()
		refreshList()
	})
	resetBtn := newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Restore the default catalog", func() {
		dialog.ShowConfirm("Reset Catalog", "Replace the catalog with the default materials?", func(ok bool) {
			if !ok {
				return
			}
			a.setCatalog(model.DefaultCatalog(), "Reset Catalog")
			refreshList()
		}, a.window)
	})
	saveAsBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save the catalog to a JSON file", func() {
		a.exportCatalog()
	})

	content := container.NewBorder(
		container.NewHBox(undoBtn, redoBtn, resetBtn, saveAsBtn, layout.NewSpacer(), addBtn),
		nil, nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("Material Catalog", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

// presetUnit describes the purchasable unit of a preset.
func presetUnit(p model.MaterialPreset) string {
	p = p.WithDefaults()
	switch p.Kind {
	case model.KindWallpaper:
		return fmt.Sprintf("roll %.2f×%.2f m", p.Width, p.Length)
	case model.KindTile:
		return fmt.Sprintf("box of %d, %.2f×%.2f m", p.Count, p.Width, p.Length)
	case model.KindLaminate:
		return fmt.Sprintf("pack of %d, %.3f×%.3f m", p.Count, p.Width, p.Length)
	}
	return p.Kind.UnitType()
}

// showPresetDialog edits the preset at idx, or adds a new one when idx < 0.
func (a *App) showPresetDialog(idx int, onDone func()) {
	var p model.MaterialPreset
	title := "Add Material"
	if idx >= 0 {
		p = a.catalog.Presets[idx]
		title = "Edit Material"
	} else {
		p.Kind = model.KindTile
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)
	kindSelect := widget.NewSelect(kindOptions, nil)
	kindSelect.SetSelected(string(p.Kind))
	priceEntry := widget.NewEntry()
	countEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	lengthEntry := widget.NewEntry()
	if idx >= 0 {
		priceEntry.SetText(fmt.Sprintf("%g", p.Price))
		if p.Count > 0 {
			countEntry.SetText(fmt.Sprintf("%d", p.Count))
		}
		if p.Width > 0 {
			widthEntry.SetText(fmt.Sprintf("%g", p.Width))
		}
		if p.Length > 0 {
			lengthEntry.SetText(fmt.Sprintf("%g", p.Length))
		}
	}
	countEntry.SetPlaceHolder("tiles or planks per unit")
	widthEntry.SetPlaceHolder("m, blank for default")
	lengthEntry.SetPlaceHolder("m, blank for default")

	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Type", kindSelect),
			widget.NewFormItem("Price per Unit", priceEntry),
			widget.NewFormItem("Pieces per Unit", countEntry),
			widget.NewFormItem("Width (m)", widthEntry),
			widget.NewFormItem("Length (m)", lengthEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset, err := presetFromForm(p, nameEntry.Text, kindSelect.Selected,
				priceEntry.Text, countEntry.Text, widthEntry.Text, lengthEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			next := model.Catalog{Presets: slices.Clone(a.catalog.Presets)}
			if idx >= 0 {
				next.Presets[idx] = preset
			} else {
				next.Presets = append(next.Presets, preset)
			}
			a.setCatalog(next, title)
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 380))
	form.Show()
}

// presetFromForm validates the entry texts and applies them to base,
// keeping its ID. A new ID is generated when base has none.
func presetFromForm(base model.MaterialPreset, name, kind, price, count, width, length string) (model.MaterialPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return base, model.EmptyErrorf("material name must not be empty")
	}
	k, err := model.ParseKind(kind)
	if err != nil {
		return base, err
	}
	pr, err := engine.ValidatePositiveNumber(price, "price")
	if err != nil {
		return base, err
	}
	n, err := parseOptionalCount(count, "pieces per unit")
	if err != nil {
		return base, err
	}
	w, err := parseOptionalNonNegative(width, "width")
	if err != nil {
		return base, err
	}
	l, err := parseOptionalNonNegative(length, "length")
	if err != nil {
		return base, err
	}
	preset := model.NewMaterialPreset(name, k, pr, n, w, l)
	if base.ID != "" {
		preset.ID = base.ID
	}
	if _, err := preset.Build(); err != nil {
		return base, err
	}
	return preset, nil
}

// ─── Catalog Import / Export ───────────────────────────────

func (a *App) importCatalog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			merged, added, err := project.ImportCatalog(path, model.Catalog{Presets: slices.Clone(a.catalog.Presets)})
			if err != nil {
				dialog.ShowError(fmt.Errorf("failed to import catalog: %w", err), a.window)
				return
			}
			a.setCatalog(merged, "Import Catalog")
			dialog.ShowInformation("Import Complete", fmt.Sprintf("Added %d materials.", added), a.window)
		case ".xlsx", ".xls", ".xlsm":
			a.handleImportResult(importer.ImportCatalogExcel(path))
		default:
			a.handleImportResult(importer.ImportCatalogCSV(path))
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".txt", ".xlsx", ".xls", ".xlsm", ".json"}))
	d.Show()
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		a.logger.Warn("catalog import", zap.String("warning", w))
	}

	if len(result.Presets) > 0 {
		next := model.Catalog{Presets: slices.Clone(a.catalog.Presets)}
		added := next.Merge(result.Presets)
		a.setCatalog(next, "Import Catalog")
		a.logger.Info("catalog imported", zap.Int("added", added))

		msg := fmt.Sprintf("Successfully imported %d materials.", added)
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) exportCatalog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := project.SaveCatalog(path, a.catalog); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Catalog saved to %s", path), a.window)
	}, a.window)
	d.SetFileName("renocalc-catalog.json")
	d.Show()
}
