package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// Surface selects which part of a room is covered.
type Surface string

const (
	SurfaceFloor Surface = "floor"
	SurfaceWall  Surface = "wall"
)

// ParseSurface converts user text into a Surface.
func ParseSurface(s string) (Surface, error) {
	switch Surface(strings.ToLower(strings.TrimSpace(s))) {
	case SurfaceFloor:
		return SurfaceFloor, nil
	case SurfaceWall:
		return SurfaceWall, nil
	}
	return "", model.RangeErrorf("surface must be 'floor' or 'wall', got %q", s)
}

// Room describes a rectangular room in metres. Height is only needed for
// walls; door and window areas (m²) are deducted from the wall area.
type Room struct {
	Length     float64
	Width      float64
	Height     float64
	DoorArea   float64
	WindowArea float64
}

// Perimeter returns 2 × (length + width).
func (r Room) Perimeter() float64 { return 2 * (r.Length + r.Width) }

// RoomCalculator derives floor and wall areas and delegates the material
// calculation to an internal MaterialCalculator.
type RoomCalculator struct {
	calc *MaterialCalculator
}

// NewRoomCalculator creates a room calculator applying reservePercent.
func NewRoomCalculator(reservePercent int, opts ...Option) (*RoomCalculator, error) {
	settings := model.DefaultCalculatorSettings()
	settings.ReservePercent = reservePercent
	calc, err := New(settings, opts...)
	if err != nil {
		return nil, err
	}
	return &RoomCalculator{calc: calc}, nil
}

// NewRoomCalculatorFor wraps an existing calculator, sharing its settings
// and history.
func NewRoomCalculatorFor(calc *MaterialCalculator) *RoomCalculator {
	return &RoomCalculator{calc: calc}
}

// Calculator returns the calculator results are delegated to.
func (rc *RoomCalculator) Calculator() *MaterialCalculator { return rc.calc }

func (rc *RoomCalculator) ReservePercent() int { return rc.calc.ReservePercent() }

func (rc *RoomCalculator) SetReservePercent(percent int) error {
	return rc.calc.SetReservePercent(percent)
}

// FloorArea returns length × width.
func (rc *RoomCalculator) FloorArea(length, width float64) (float64, error) {
	if !(length > 0) || !(width > 0) {
		return 0, model.RangeErrorf("room dimensions must be positive, got %g x %g", length, width)
	}
	return length * width, nil
}

// WallArea returns perimeter × height minus door and window openings.
func (rc *RoomCalculator) WallArea(perimeter, height, doorArea, windowArea float64) (float64, error) {
	if !(perimeter > 0) || !(height > 0) {
		return 0, model.RangeErrorf("perimeter and height must be positive, got %g and %g", perimeter, height)
	}
	if doorArea < 0 || windowArea < 0 {
		return 0, model.RangeErrorf("door and window areas cannot be negative, got %g and %g", doorArea, windowArea)
	}
	area := perimeter*height - doorArea - windowArea
	if !(area > 0) {
		return 0, model.RangeErrorf("deduction too large: wall area must be positive, got %g", area)
	}
	return area, nil
}

// SurfaceArea returns the floor or wall area of room.
func (rc *RoomCalculator) SurfaceArea(room Room, surface Surface) (float64, error) {
	switch surface {
	case SurfaceFloor:
		return rc.FloorArea(room.Length, room.Width)
	case SurfaceWall:
		if room.Height == 0 {
			return 0, model.RangeErrorf("height required for wall calculation")
		}
		if !(room.Length > 0) || !(room.Width > 0) {
			return 0, model.RangeErrorf("room dimensions must be positive, got %g x %g", room.Length, room.Width)
		}
		return rc.WallArea(room.Perimeter(), room.Height, room.DoorArea, room.WindowArea)
	default:
		return 0, model.RangeErrorf("surface must be 'floor' or 'wall', got %q", string(surface))
	}
}

// CalculateForRoom computes material for the floor or walls of room.
func (rc *RoomCalculator) CalculateForRoom(material model.Material, room Room, surface Surface) (model.CalculationResult, error) {
	area, err := rc.SurfaceArea(room, surface)
	if err != nil {
		return model.CalculationResult{}, err
	}
	return rc.calc.Calculate(material, area)
}

// CalculateForPlan computes material for a room drawn as a floor outline.
// Walls use the outline perimeter and height; openings are not deducted.
func (rc *RoomCalculator) CalculateForPlan(material model.Material, plan model.RoomPlan, height float64, surface Surface) (model.CalculationResult, error) {
	var area float64
	var err error
	switch surface {
	case SurfaceFloor:
		area = plan.FloorArea()
		if !(area > 0) {
			err = model.RangeErrorf("plan %q has no floor area", plan.Label)
		}
	case SurfaceWall:
		if height == 0 {
			return model.CalculationResult{}, model.RangeErrorf("height required for wall calculation")
		}
		area, err = rc.WallArea(plan.Perimeter(), height, 0, 0)
	default:
		err = model.RangeErrorf("surface must be 'floor' or 'wall', got %q", string(surface))
	}
	if err != nil {
		return model.CalculationResult{}, err
	}
	return rc.calc.Calculate(material, area)
}

func (rc *RoomCalculator) String() string {
	return fmt.Sprintf("RoomCalculator(reserve %d%%)", rc.calc.ReservePercent())
}
