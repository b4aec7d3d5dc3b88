package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RenoCalc/internal/export"
	"github.com/piwi3910/RenoCalc/internal/model"
)

var exportFormats = []string{model.ExportFormatSpreadsheet, model.ExportFormatDocument, model.ExportFormatPDF}

// ─── History Panel ─────────────────────────────────────────

func (a *App) buildHistoryPanel() fyne.CanvasObject {
	a.historyContainer = container.NewVBox()
	a.historyTotal = boldLabel("")

	a.exportFormat = widget.NewSelect(exportFormats, nil)
	a.exportFormat.SetSelected(a.config.DefaultExportFormat)

	exportBtn := newButtonWithTooltip("Export", theme.DocumentSaveIcon(),
		"Write the history to the export directory with a generated file name", func() {
			a.quickExport(a.exportFormat.Selected)
		})
	clearBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Clear the calculation history", func() {
		a.clearHistory()
	})

	a.refreshHistory()

	return container.NewBorder(
		container.NewHBox(
			boldLabel("Calculation History"),
			layout.NewSpacer(),
			a.exportFormat,
			exportBtn,
			clearBtn,
		),
		a.historyTotal, nil, nil,
		container.NewVScroll(a.historyContainer),
	)
}

func (a *App) refreshHistory() {
	if a.historyContainer == nil {
		return
	}
	a.historyContainer.RemoveAll()

	history := a.calc.History()
	s := a.calc.Settings()
	if len(history) == 0 {
		msg := "No calculations yet."
		if !s.AutoSave {
			msg = "History recording is off. Enable auto-save in Settings."
		}
		a.historyContainer.Add(widget.NewLabel(msg))
		a.historyTotal.SetText("")
		return
	}

	header := append([]string{"#"}, resultHeader...)
	rows := resultRows(history, s)
	for i := range rows {
		rows[i] = append([]string{fmt.Sprintf("%d", i+1)}, rows[i]...)
	}
	a.historyContainer.Add(grid(header, rows))
	a.historyTotal.SetText(fmt.Sprintf("%d calculations, total %s", a.calc.HistoryCount(), s.FormatMoney(a.calc.TotalCostSum())))
}

func (a *App) clearHistory() {
	if a.calc.IsEmpty() {
		return
	}
	dialog.ShowConfirm("Clear History", "Remove all calculations from the history?", func(ok bool) {
		if !ok {
			return
		}
		a.calc.ClearHistory()
		a.refreshHistory()
	}, a.window)
}

// ─── Export ────────────────────────────────────────────────

func (a *App) exporterOptions() []export.Option {
	return []export.Option{
		export.WithDir(a.config.ExportDir),
		export.WithCurrency(a.calc.Currency()),
		export.WithLogger(a.logger),
	}
}

// quickExport writes the history with a generated file name.
func (a *App) quickExport(format string) {
	exp, err := export.ForFormat(format, "", a.exporterOptions()...)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.runExport(exp)
}

// exportAs asks for a file name and writes the history in format.
func (a *App) exportAs(format string) {
	if a.calc.IsEmpty() {
		dialog.ShowInformation("Nothing to export", "Calculate something first. Results are kept in the history while auto-save is on.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		exp, err := export.ForFormat(format, path,
			export.WithCurrency(a.calc.Currency()),
			export.WithLogger(a.logger))
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.runExport(exp)
	}, a.window)
	d.SetFileName("calculation_report." + format)
	d.SetFilter(storage.NewExtensionFileFilter([]string{"." + format}))
	d.Show()
}

func (a *App) runExport(exp *export.Exporter) {
	var path string
	err := exp.Session(func(e *export.Exporter) error {
		var err error
		path, err = e.Export(a.calc.History()...)
		return err
	})
	if errors.Is(err, model.ErrEmpty) {
		dialog.ShowInformation("Nothing to export", "The calculation history is empty.", a.window)
		return
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.config.AddRecentExport(path)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
	}
	dialog.ShowInformation("Export Complete", fmt.Sprintf("Report saved to %s", path), a.window)
}
