// Package widgets holds custom Fyne widgets for RenoCalc.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RenoCalc/internal/model"
)

var (
	floorColor = color.NRGBA{R: 210, G: 180, B: 140, A: 255} // parquet
	wallColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	textColor  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// planMargin keeps the outline clear of the widget edge, in pixels.
const planMargin = 8

// PlanCanvas renders the outline of an imported room plan.
type PlanCanvas struct {
	widget.BaseWidget
	plan      model.RoomPlan
	maxWidth  float32
	maxHeight float32
}

// NewPlanCanvas creates a preview that fits plan within maxW × maxH pixels.
func NewPlanCanvas(plan model.RoomPlan, maxW, maxH float32) *PlanCanvas {
	pc := &PlanCanvas{
		plan:      plan,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPlan replaces the displayed plan.
func (pc *PlanCanvas) SetPlan(plan model.RoomPlan) {
	pc.plan = plan
	pc.Refresh()
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPlanCanvasRenderer(pc)
}

// FitScale returns the pixels-per-metre scale that fits a w × h metre
// extent into maxW × maxH pixels after margins. Degenerate input gives 0.
func FitScale(w, h float64, maxW, maxH float32) float32 {
	availW := maxW - 2*planMargin
	availH := maxH - 2*planMargin
	if w <= 0 || h <= 0 || availW <= 0 || availH <= 0 {
		return 0
	}
	return min(availW/float32(w), availH/float32(h))
}

// ToScreen maps outline points to widget coordinates. Drawing Y grows
// upward, screen Y downward, so Y is flipped within the bounding box.
func ToScreen(outline model.Outline, scale float32) []fyne.Position {
	lo, hi := outline.BoundingBox()
	pts := make([]fyne.Position, len(outline))
	for i, p := range outline {
		pts[i] = fyne.NewPos(
			planMargin+float32(p.X-lo.X)*scale,
			planMargin+float32(hi.Y-p.Y)*scale,
		)
	}
	return pts
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	objects []fyne.CanvasObject
}

func newPlanCanvasRenderer(pc *PlanCanvas) *planCanvasRenderer {
	r := &planCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *planCanvasRenderer) extent() (w, h float64) {
	lo, hi := r.pc.plan.Outline.BoundingBox()
	return hi.X - lo.X, hi.Y - lo.Y
}

func (r *planCanvasRenderer) rebuild() {
	r.objects = nil

	outline := r.pc.plan.Outline
	if len(outline) < 3 {
		r.objects = append(r.objects, canvas.NewText("No outline", textColor))
		return
	}
	w, h := r.extent()
	scale := FitScale(w, h, r.pc.maxWidth, r.pc.maxHeight)
	if scale == 0 {
		return
	}

	bg := canvas.NewRectangle(floorColor)
	bg.Resize(fyne.NewSize(float32(w)*scale, float32(h)*scale))
	bg.Move(fyne.NewPos(planMargin, planMargin))
	r.objects = append(r.objects, bg)

	pts := ToScreen(outline, scale)
	for i := range pts {
		line := canvas.NewLine(wallColor)
		line.StrokeWidth = 2
		line.Position1 = pts[i]
		line.Position2 = pts[(i+1)%len(pts)]
		r.objects = append(r.objects, line)
	}

	label := canvas.NewText(fmt.Sprintf("%s: %.2f m², %.2f m", r.pc.plan.Label,
		r.pc.plan.FloorArea(), r.pc.plan.Perimeter()), textColor)
	label.TextSize = 10
	label.Move(fyne.NewPos(planMargin+3, planMargin+2))
	r.objects = append(r.objects, label)
}

func (r *planCanvasRenderer) Layout(size fyne.Size)        {}
func (r *planCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *planCanvasRenderer) Destroy()                     {}
func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) MinSize() fyne.Size {
	w, h := r.extent()
	scale := FitScale(w, h, r.pc.maxWidth, r.pc.maxHeight)
	return fyne.NewSize(float32(w)*scale+2*planMargin, float32(h)*scale+2*planMargin)
}
