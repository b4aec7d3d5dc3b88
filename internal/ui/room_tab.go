package ui

import (
	"fmt"
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
	"github.com/piwi3910/RenoCalc/internal/ui/widgets"
)

var surfaceOptions = []string{"Floor", "Wall"}

// roomForm groups the dimension entries of the Room panel.
type roomForm struct {
	length, width, height *widget.Entry
	door, window          *widget.Entry
}

func newRoomForm() *roomForm {
	f := &roomForm{
		length: widget.NewEntry(),
		width:  widget.NewEntry(),
		height: widget.NewEntry(),
		door:   widget.NewEntry(),
		window: widget.NewEntry(),
	}
	f.length.SetPlaceHolder("m")
	f.width.SetPlaceHolder("m")
	f.height.SetPlaceHolder("m, walls only")
	f.door.SetPlaceHolder("m², optional")
	f.window.SetPlaceHolder("m², optional")
	return f
}

func (f *roomForm) fill(r engine.Room) {
	format := func(v float64) string {
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%g", v)
	}
	f.length.SetText(format(r.Length))
	f.width.SetText(format(r.Width))
	f.height.SetText(format(r.Height))
	f.door.SetText(format(r.DoorArea))
	f.window.SetText(format(r.WindowArea))
}

// room reads the entries. Height is only required for walls.
func (f *roomForm) room(surface engine.Surface) (engine.Room, error) {
	var r engine.Room
	var err error
	if r.Length, err = engine.ValidatePositiveNumber(f.length.Text, "length"); err != nil {
		return r, err
	}
	if r.Width, err = engine.ValidatePositiveNumber(f.width.Text, "width"); err != nil {
		return r, err
	}
	if surface == engine.SurfaceWall || strings.TrimSpace(f.height.Text) != "" {
		if r.Height, err = engine.ValidatePositiveNumber(f.height.Text, "height"); err != nil {
			return r, err
		}
	}
	if r.DoorArea, err = parseOptionalNonNegative(f.door.Text, "door area"); err != nil {
		return r, err
	}
	if r.WindowArea, err = parseOptionalNonNegative(f.window.Text, "window area"); err != nil {
		return r, err
	}
	return r, nil
}

// ─── Room Panel ────────────────────────────────────────────

func (a *App) buildRoomPanel() fyne.CanvasObject {
	form := newRoomForm()
	materialSelect := a.newMaterialPicker()

	surfaceRadio := widget.NewRadioGroup(surfaceOptions, nil)
	surfaceRadio.Horizontal = true
	surfaceRadio.SetSelected("Floor")
	surface := func() engine.Surface {
		s, err := engine.ParseSurface(surfaceRadio.Selected)
		if err != nil {
			return engine.SurfaceFloor
		}
		return s
	}

	resultLabel := widget.NewLabel("Enter room dimensions and pick a material.")
	resultLabel.Wrapping = fyne.TextWrapWord

	showResult := func(result model.CalculationResult) {
		s := a.calc.Settings()
		m := result.Material()
		resultLabel.SetText(fmt.Sprintf("%s: %.2f m² needs %d %s (%d%% reserve), %s",
			m.Name(), result.Area(), result.UnitsNeeded(), m.UnitType(),
			result.ReservePercent(), s.FormatMoney(result.TotalCost())))
		a.refreshHistory()
	}

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), func() {
		material, err := a.selectedMaterial(materialSelect)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		room, err := form.room(surface())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		result, err := a.roomCalc.CalculateForRoom(material, room, surface())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		showResult(result)
	})

	// Saved rooms
	a.savedRoomSelect = widget.NewSelect(a.rooms.Names(), func(name string) {
		if saved, ok := a.rooms.Find(name); ok {
			form.fill(saved.Room())
		}
	})
	a.savedRoomSelect.PlaceHolder = "Saved rooms..."

	saveRoomBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save these dimensions as a named room", func() {
		room, err := form.room(surface())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.showSaveRoomDialog(room)
	})

	// Imported plans
	preview := widgets.NewPlanCanvas(model.RoomPlan{}, 420, 280)
	a.planSelect = widget.NewSelect(nil, func(string) {
		if i := a.planSelect.SelectedIndex(); i >= 0 && i < len(a.plans) {
			preview.SetPlan(a.plans[i])
		}
	})
	a.planSelect.PlaceHolder = "Import a DXF plan first"

	planBtn := widget.NewButtonWithIcon("Calculate for Plan", theme.ConfirmIcon(), func() {
		i := a.planSelect.SelectedIndex()
		if i < 0 || i >= len(a.plans) {
			dialog.ShowError(model.EmptyErrorf("select an imported plan first"), a.window)
			return
		}
		material, err := a.selectedMaterial(materialSelect)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		var height float64
		if surface() == engine.SurfaceWall {
			if height, err = engine.ValidatePositiveNumber(form.height.Text, "height"); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
		}
		result, err := a.roomCalc.CalculateForPlan(material, a.plans[i], height, surface())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		showResult(result)
	})
	importBtn := newIconButtonWithTooltip(theme.FolderOpenIcon(), "Import room outlines from a DXF drawing", func() {
		a.importRoomPlan()
	})

	dimensions := widget.NewCard("Room", "", container.NewVBox(
		container.NewHBox(a.savedRoomSelect, saveRoomBtn),
		container.NewGridWithColumns(2,
			widget.NewLabel("Surface"), surfaceRadio,
			widget.NewLabel("Length (m)"), form.length,
			widget.NewLabel("Width (m)"), form.width,
			widget.NewLabel("Height (m)"), form.height,
			widget.NewLabel("Door Area (m²)"), form.door,
			widget.NewLabel("Window Area (m²)"), form.window,
			widget.NewLabel("Material"), materialSelect,
		),
		container.NewHBox(layout.NewSpacer(), calcBtn),
	))

	plans := widget.NewCard("Room Plan", "Outlines from DXF drawings", container.NewVBox(
		container.NewHBox(a.planSelect, importBtn, layout.NewSpacer(), planBtn),
		preview,
	))

	return container.NewVScroll(container.NewVBox(
		dimensions,
		widget.NewCard("Result", "", resultLabel),
		plans,
	))
}

func (a *App) showSaveRoomDialog(room engine.Room) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Bedroom")
	if a.savedRoomSelect.Selected != "" {
		nameEntry.SetText(a.savedRoomSelect.Selected)
	}
	dialog.ShowForm("Save Room", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(model.EmptyErrorf("room name must not be empty"), a.window)
				return
			}
			a.rooms.Put(project.NewSavedRoom(name, room))
			a.saveRooms()
			a.savedRoomSelect.Options = a.rooms.Names()
			a.savedRoomSelect.SetSelected(name)
		},
		a.window,
	)
}

func (a *App) importRoomPlan() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := importer.ImportRoomPlan(path, a.config.DXFUnitsPerMeter)
		for _, w := range result.Warnings {
			a.logger.Warn("room plan import", zap.String("path", path), zap.String("warning", w))
		}
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")), a.window)
		}
		if len(result.Plans) == 0 {
			return
		}
		a.plans = result.Plans
		labels := make([]string, len(a.plans))
		for i, p := range a.plans {
			labels[i] = fmt.Sprintf("%s (%.2f m²)", p.Label, p.FloorArea())
		}
		a.planSelect.Options = labels
		a.planSelect.SetSelectedIndex(0)
		a.logger.Info("imported room plans", zap.String("path", path), zap.Int("count", len(a.plans)))
		a.tabs.SelectIndex(1)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	d.Show()
}
