package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RenoCalc/internal/model"
	"github.com/piwi3910/RenoCalc/internal/project"
)

var themeOptions = []string{"system", "light", "dark"}

// settingsForm holds the entries of the settings dialog.
type settingsForm struct {
	reserve, minArea, maxArea *widget.Entry
	precision, currency       *widget.Entry
	autoSave, debug           *widget.Check
	exportDir, dxfUnits       *widget.Entry
	exportFormat, theme       *widget.Select
}

func newSettingsForm(cfg model.AppConfig) *settingsForm {
	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}
	f := &settingsForm{
		reserve:      entry(strconv.Itoa(cfg.Calculator.ReservePercent)),
		minArea:      entry(fmt.Sprintf("%g", cfg.Calculator.MinArea)),
		maxArea:      entry(fmt.Sprintf("%g", cfg.Calculator.MaxArea)),
		precision:    entry(strconv.Itoa(cfg.Calculator.Precision)),
		currency:     entry(cfg.Calculator.Currency),
		autoSave:     widget.NewCheck("", nil),
		debug:        widget.NewCheck("", nil),
		exportDir:    entry(cfg.ExportDir),
		dxfUnits:     entry(fmt.Sprintf("%g", cfg.DXFUnitsPerMeter)),
		exportFormat: widget.NewSelect(exportFormats, nil),
		theme:        widget.NewSelect(themeOptions, nil),
	}
	f.autoSave.SetChecked(cfg.Calculator.AutoSave)
	f.debug.SetChecked(cfg.Debug)
	f.exportDir.SetPlaceHolder("working directory")
	f.exportFormat.SetSelected(cfg.DefaultExportFormat)
	f.theme.SetSelected(cfg.Theme)
	return f
}

// apply parses the entries over base and validates the result.
func (f *settingsForm) apply(base model.AppConfig) (model.AppConfig, error) {
	cfg := base
	var err error
	if cfg.Calculator.ReservePercent, err = strconv.Atoi(strings.TrimSpace(f.reserve.Text)); err != nil {
		return base, model.FormatErrorf("reserve must be a whole number, got %q", f.reserve.Text)
	}
	if cfg.Calculator.MinArea, err = strconv.ParseFloat(normalizeNumber(f.minArea.Text), 64); err != nil {
		return base, model.FormatErrorf("minimum area must be a number, got %q", f.minArea.Text)
	}
	if cfg.Calculator.MaxArea, err = strconv.ParseFloat(normalizeNumber(f.maxArea.Text), 64); err != nil {
		return base, model.FormatErrorf("maximum area must be a number, got %q", f.maxArea.Text)
	}
	if cfg.Calculator.Precision, err = strconv.Atoi(strings.TrimSpace(f.precision.Text)); err != nil {
		return base, model.FormatErrorf("precision must be a whole number, got %q", f.precision.Text)
	}
	if cfg.DXFUnitsPerMeter, err = strconv.ParseFloat(normalizeNumber(f.dxfUnits.Text), 64); err != nil {
		return base, model.FormatErrorf("DXF units per metre must be a number, got %q", f.dxfUnits.Text)
	}
	cfg.Calculator.Currency = strings.TrimSpace(f.currency.Text)
	cfg.Calculator.AutoSave = f.autoSave.Checked
	cfg.Debug = f.debug.Checked
	cfg.ExportDir = strings.TrimSpace(f.exportDir.Text)
	cfg.DefaultExportFormat = f.exportFormat.Selected
	cfg.Theme = f.theme.Selected
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	f := newSettingsForm(a.config)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Reserve (%)", f.reserve),
		widget.NewFormItem("Minimum Area (m²)", f.minArea),
		widget.NewFormItem("Maximum Area (m²)", f.maxArea),
		widget.NewFormItem("Cost Precision", f.precision),
		widget.NewFormItem("Currency", f.currency),
		widget.NewFormItem("Keep History", f.autoSave),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Export Directory", f.exportDir),
		widget.NewFormItem("Default Export Format", f.exportFormat),
		widget.NewFormItem("DXF Units per Metre", f.dxfUnits),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Theme", f.theme),
		widget.NewFormItem("Debug Logging (restart)", f.debug),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			cfg, err := f.apply(a.config)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.applyConfig(cfg); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// applyConfig reconfigures the calculator and theme from cfg. Nothing
// changes when the calculator rejects the settings.
func (a *App) applyConfig(cfg model.AppConfig) error {
	if err := a.calc.Reconfigure(cfg.Calculator); err != nil {
		return err
	}
	a.config = cfg
	a.theme.SetVariantName(cfg.Theme)
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(a.theme)
	}
	if a.exportFormat != nil {
		a.exportFormat.SetSelected(cfg.DefaultExportFormat)
	}
	a.refreshHistory()
	return nil
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.catalog, a.rooms); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("renocalc-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings, material catalog and saved rooms.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.restoreBackup(backup)
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, the material catalog and saved rooms to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(backup project.BackupData) {
	if err := a.applyConfig(backup.Config); err != nil {
		dialog.ShowError(fmt.Errorf("failed to apply imported settings: %w", err), a.window)
		return
	}
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
	}
	a.setCatalog(backup.Catalog, "Restore Backup")
	a.rooms = backup.Rooms
	a.saveRooms()
	if a.savedRoomSelect != nil {
		a.savedRoomSelect.ClearSelected()
		a.savedRoomSelect.Options = a.rooms.Names()
		a.savedRoomSelect.Refresh()
	}
}
