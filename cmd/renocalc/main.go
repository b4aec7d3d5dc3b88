// RenoCalc - Renovation Material Calculator
//
// A cross-platform desktop application that estimates how many rolls of
// wallpaper, boxes of tiles or packs of laminate a room needs, compares
// materials and exports spreadsheet, document and PDF reports.
//
// Build:
//   go build -o renocalc ./cmd/renocalc
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o renocalc.exe ./cmd/renocalc
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64
//
// Settings are read from ~/.renocalc/config.json and may be overridden with
// RENOCALC_* environment variables, e.g. RENOCALC_CALC_RESERVE_PERCENT=15.

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/RenoCalc/internal/logging"
	"github.com/piwi3910/RenoCalc/internal/model"
	"github.com/piwi3910/RenoCalc/internal/project"
	"github.com/piwi3910/RenoCalc/internal/ui"
)

func main() {
	configPath := project.DefaultConfigPath()
	config, err := project.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renocalc: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Must(config.Debug)
	defer logger.Sync()

	stores, err := loadStores(config, configPath, logger)
	if err != nil {
		logger.Fatal("failed to load application data", zap.Error(err))
	}

	application := app.NewWithID("com.piwi3910.renocalc")
	window := application.NewWindow("RenoCalc - Renovation Material Calculator")

	appUI, err := ui.NewApp(window, stores, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	application.Settings().SetTheme(appUI.Theme())
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1100, 760))
	window.CenterOnScreen()

	logger.Info("starting",
		zap.String("config", configPath),
		zap.Int("materials", len(stores.Catalog.Presets)),
		zap.Int("rooms", len(stores.Rooms.Rooms)),
	)
	window.ShowAndRun()
}

// loadStores reads the catalog and saved rooms, creating defaults on first run.
func loadStores(config model.AppConfig, configPath string, logger *zap.Logger) (ui.Stores, error) {
	catalog, catalogPath, err := project.LoadOrCreateCatalog()
	if err != nil {
		return ui.Stores{}, fmt.Errorf("catalog: %w", err)
	}
	roomsPath := project.DefaultRoomsPath()
	rooms, err := project.LoadRooms(roomsPath)
	if err != nil {
		logger.Warn("ignoring unreadable saved rooms", zap.String("path", roomsPath), zap.Error(err))
		rooms = project.RoomStore{Rooms: []project.SavedRoom{}}
	}
	return ui.Stores{
		Config:      config,
		ConfigPath:  configPath,
		Catalog:     catalog,
		CatalogPath: catalogPath,
		Rooms:       rooms,
		RoomsPath:   roomsPath,
	}, nil
}
