package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/RenoCalc/internal/engine"
	"github.com/piwi3910/RenoCalc/internal/model"
	"github.com/piwi3910/RenoCalc/internal/project"
)

// Stores is the persisted state the application starts from.
type Stores struct {
	Config      model.AppConfig
	ConfigPath  string
	Catalog     model.Catalog
	CatalogPath string
	Rooms       project.RoomStore
	RoomsPath   string
}

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	logger *zap.Logger
	theme  *RenoCalcTheme

	config      model.AppConfig
	configPath  string
	catalog     model.Catalog
	catalogPath string
	rooms       project.RoomStore
	roomsPath   string
	undo        *History

	calc     *engine.MaterialCalculator
	roomCalc *engine.RoomCalculator
	plans    []model.RoomPlan

	tabs *container.AppTabs

	// UI references for dynamic updates
	materialPickers  []*widget.Select
	savedRoomSelect  *widget.Select
	planSelect       *widget.Select
	historyContainer *fyne.Container
	historyTotal     *widget.Label
	exportFormat     *widget.Select
}

// NewApp creates the application around the loaded stores. The calculator
// starts from the configured defaults.
func NewApp(window fyne.Window, stores Stores, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	calc, err := engine.New(stores.Config.Calculator, engine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("invalid calculator defaults: %w", err)
	}
	return &App{
		window:      window,
		logger:      logger,
		theme:       NewRenoCalcThemeFor(stores.Config.Theme),
		config:      stores.Config,
		configPath:  stores.ConfigPath,
		catalog:     stores.Catalog,
		catalogPath: stores.CatalogPath,
		rooms:       stores.Rooms,
		roomsPath:   stores.RoomsPath,
		undo:        NewHistory(),
		calc:        calc,
		roomCalc:    engine.NewRoomCalculatorFor(calc),
	}, nil
}

// Theme returns the application theme so the caller can install it.
func (a *App) Theme() fyne.Theme { return a.theme }

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Catalog (CSV/Excel/JSON)...", func() {
			a.importCatalog()
		}),
		fyne.NewMenuItem("Import Room Plan (DXF)...", func() {
			a.importRoomPlan()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Spreadsheet...", func() {
			a.exportAs(model.ExportFormatSpreadsheet)
		}),
		fyne.NewMenuItem("Export Document...", func() {
			a.exportAs(model.ExportFormatDocument)
		}),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportAs(model.ExportFormatPDF)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Catalog Change", func() {
			a.undoCatalog()
		}),
		fyne.NewMenuItem("Redo Catalog Change", func() {
			a.redoCatalog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Material Catalog...", func() {
			a.showCatalogDialog()
		}),
		fyne.NewMenuItem("Clear History", func() {
			a.clearHistory()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About RenoCalc",
		"RenoCalc - Renovation Material Calculator\n\n"+
			"Estimates wallpaper rolls, tile boxes and laminate packs\n"+
			"for a room, compares materials and exports reports.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Calculator", theme.ComputerIcon(), a.buildCalculatorPanel()),
		container.NewTabItemWithIcon("Room", theme.HomeIcon(), a.buildRoomPanel()),
		container.NewTabItemWithIcon("Compare", theme.ListIcon(), a.buildComparePanel()),
		container.NewTabItemWithIcon("History", theme.HistoryIcon(), a.buildHistoryPanel()),
		container.NewTabItemWithIcon("Tools", theme.SettingsIcon(), a.buildToolsPanel()),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)
	return a.tabs
}

// ─── Materials ─────────────────────────────────────────────

// newMaterialPicker returns a select over the catalog that is kept in sync
// with catalog edits.
func (a *App) newMaterialPicker() *widget.Select {
	sel := widget.NewSelect(a.catalog.Labels(), nil)
	sel.PlaceHolder = "Select a material..."
	a.materialPickers = append(a.materialPickers, sel)
	return sel
}

func (a *App) refreshMaterialPickers() {
	labels := a.catalog.Labels()
	for _, sel := range a.materialPickers {
		sel.ClearSelected()
		sel.Options = labels
		sel.Refresh()
	}
}

// selectedMaterial builds the material chosen in a picker.
func (a *App) selectedMaterial(sel *widget.Select) (model.Material, error) {
	i := sel.SelectedIndex()
	if i < 0 || i >= len(a.catalog.Presets) {
		return nil, model.EmptyErrorf("select a material first")
	}
	return a.catalog.Presets[i].Build()
}

// ─── Persistence ───────────────────────────────────────────

func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}

func (a *App) saveCatalog() {
	if err := project.SaveCatalog(a.catalogPath, a.catalog); err != nil {
		a.logger.Error("failed to save catalog", zap.String("path", a.catalogPath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
	}
}

func (a *App) saveRooms() {
	if err := project.SaveRooms(a.roomsPath, a.rooms); err != nil {
		a.logger.Error("failed to save rooms", zap.String("path", a.roomsPath), zap.Error(err))
		dialog.ShowError(fmt.Errorf("failed to save rooms: %w", err), a.window)
	}
}

// setCatalog replaces the catalog, recording the previous one for undo.
func (a *App) setCatalog(catalog model.Catalog, label string) {
	a.undo.Push(MakeSnapshot(a.catalog, label))
	a.catalog = catalog
	a.saveCatalog()
	a.refreshMaterialPickers()
}

func (a *App) undoCatalog() {
	snap, ok := a.undo.Undo(MakeSnapshot(a.catalog, "current"))
	if !ok {
		dialog.ShowInformation("Undo", "Nothing to undo.", a.window)
		return
	}
	a.catalog = snap.Catalog()
	a.saveCatalog()
	a.refreshMaterialPickers()
}

func (a *App) redoCatalog() {
	snap, ok := a.undo.Redo(MakeSnapshot(a.catalog, "current"))
	if !ok {
		dialog.ShowInformation("Redo", "Nothing to redo.", a.window)
		return
	}
	a.catalog = snap.Catalog()
	a.saveCatalog()
	a.refreshMaterialPickers()
}

// ─── Helpers ───────────────────────────────────────────────

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// grid renders a header row and data rows as aligned labels.
func grid(header []string, rows [][]string) fyne.CanvasObject {
	g := container.NewGridWithColumns(len(header))
	for _, h := range header {
		g.Add(boldLabel(h))
	}
	for _, row := range rows {
		for _, cell := range row {
			g.Add(widget.NewLabel(cell))
		}
	}
	return g
}
