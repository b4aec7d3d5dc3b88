package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RenoCalc/internal/demo"
	"github.com/piwi3910/RenoCalc/internal/model"
)

// notePreviewCount is how many generated notes are listed verbatim.
const notePreviewCount = 20

// ─── Tools Panel ───────────────────────────────────────────

func (a *App) buildToolsPanel() fyne.CanvasObject {
	return container.NewVScroll(container.NewVBox(
		a.buildNotesCard(),
		a.buildMultiplesCard(),
		a.buildEmailCard(),
	))
}

func (a *App) buildNotesCard() fyne.CanvasObject {
	countEntry := widget.NewEntry()
	countEntry.SetText(strconv.Itoa(demo.DefaultNoteCount))

	output := widget.NewLabel("")
	output.TextStyle = fyne.TextStyle{Monospace: true}

	generate := widget.NewButtonWithIcon("Generate", theme.MediaMusicIcon(), func() {
		count, err := strconv.Atoi(strings.TrimSpace(countEntry.Text))
		if err != nil || count <= 0 {
			dialog.ShowError(model.RangeErrorf("note count must be a positive whole number"), a.window)
			return
		}
		gen := demo.NewNoteGenerator()
		preview := demo.Take(gen.Generate(count), notePreviewCount)
		lines := []string{strings.Join(preview, " ")}
		if count > notePreviewCount {
			lines[0] += " ..."
		}
		lines = append(lines, noteTally(gen.Generate(count))...)
		output.SetText(strings.Join(lines, "\n"))
	})

	return widget.NewCard("Random Notes", "Lazily generated solfège notes", container.NewVBox(
		container.NewGridWithColumns(3, widget.NewLabel("Count"), countEntry, generate),
		output,
	))
}

func (a *App) buildMultiplesCard() fyne.CanvasObject {
	startEntry := widget.NewEntry()
	startEntry.SetText("1")
	takeEntry := widget.NewEntry()
	takeEntry.SetText("10")

	output := widget.NewLabel("")
	output.Wrapping = fyne.TextWrapWord

	show := widget.NewButtonWithIcon("Show", theme.ViewRefreshIcon(), func() {
		start, err := strconv.Atoi(strings.TrimSpace(startEntry.Text))
		if err != nil {
			dialog.ShowError(model.FormatErrorf("start must be a whole number"), a.window)
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(takeEntry.Text))
		if err != nil || n <= 0 || n > 10_000 {
			dialog.ShowError(model.RangeErrorf("count must be between 1 and 10000"), a.window)
			return
		}
		output.SetText(joinInts(demo.Take(demo.MultiplesOfThree(start), n)))
	})

	return widget.NewCard("Multiples of Three", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Start"), startEntry,
			widget.NewLabel("How many"), takeEntry,
		),
		show,
		output,
	))
}

func (a *App) buildEmailCard() fyne.CanvasObject {
	input := widget.NewMultiLineEntry()
	input.SetPlaceHolder("Paste addresses separated by spaces or new lines")
	input.Wrapping = fyne.TextWrapWord
	input.SetMinRowsVisible(4)

	output := widget.NewLabel("")

	var validator demo.EmailValidator
	filter := widget.NewButtonWithIcon("Filter Valid", theme.MailSendIcon(), func() {
		valid := validator.FilterValid(input.Text)
		if len(valid) == 0 {
			output.SetText("No valid addresses found.")
			return
		}
		output.SetText(strings.Join(valid, "\n"))
	})

	return widget.NewCard("Email Filter", "", container.NewVBox(input, filter, output))
}
