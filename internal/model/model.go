package model

import (
	"fmt"
	"math"
)

// Calculator setting bounds.
const (
	MaxReservePercent = 100
	MaxPrecision      = 10
)

// CalculatorSettings holds the configuration of a material calculator.
type CalculatorSettings struct {
	ReservePercent int     `json:"reserve_percent" env:"RESERVE_PERCENT"` // Extra material for waste and cuts, 0..100
	MinArea        float64 `json:"min_area" env:"MIN_AREA"`               // Smallest accepted area in m²
	MaxArea        float64 `json:"max_area" env:"MAX_AREA"`               // Largest accepted area in m²
	Precision      int     `json:"precision" env:"PRECISION"`             // Decimal places of total cost, 0..10
	Currency       string  `json:"currency" env:"CURRENCY"`               // Display currency symbol
	AutoSave       bool    `json:"auto_save" env:"AUTO_SAVE"`             // Record results in history
}

// DefaultCalculatorSettings returns the settings a new calculator starts with.
func DefaultCalculatorSettings() CalculatorSettings {
	return CalculatorSettings{
		ReservePercent: DefaultReservePercent,
		MinArea:        0.1,
		MaxArea:        10000,
		Precision:      2,
		Currency:       "₽",
		AutoSave:       true,
	}
}

// Validate checks every invariant of the settings.
func (s CalculatorSettings) Validate() error {
	if s.ReservePercent < 0 || s.ReservePercent > MaxReservePercent {
		return RangeErrorf("reserve percent must be between 0 and %d, got %d", MaxReservePercent, s.ReservePercent)
	}
	if math.IsNaN(s.MinArea) || s.MinArea < 0 {
		return RangeErrorf("min area cannot be negative, got %g", s.MinArea)
	}
	if math.IsNaN(s.MaxArea) || s.MaxArea < 0 {
		return RangeErrorf("max area cannot be negative, got %g", s.MaxArea)
	}
	if s.MinArea > s.MaxArea {
		return RangeErrorf("min area (%g) cannot be greater than max area (%g)", s.MinArea, s.MaxArea)
	}
	if s.Precision < 0 || s.Precision > MaxPrecision {
		return RangeErrorf("precision must be between 0 and %d, got %d", MaxPrecision, s.Precision)
	}
	return nil
}

// FormatMoney renders an amount with the configured precision and currency.
func (s CalculatorSettings) FormatMoney(amount float64) string {
	return fmt.Sprintf("%.*f %s", s.Precision, amount, s.Currency)
}

// Point2D represents a 2D coordinate.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = o[0], o[0]
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Area returns the enclosed area using the shoelace formula.
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(area) / 2
}

// Perimeter returns the length of the closed outline.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := range o {
		j := (i + 1) % len(o)
		total += math.Hypot(o[j].X-o[i].X, o[j].Y-o[i].Y)
	}
	return total
}

// Scale multiplies every coordinate by f.
func (o Outline) Scale(f float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X * f, Y: p.Y * f}
	}
	return result
}

// RoomPlan is a room floor outline in metres, usually imported from a drawing.
type RoomPlan struct {
	Label   string  `json:"label"`
	Outline Outline `json:"outline"`
}

// FloorArea returns the floor area in m².
func (p RoomPlan) FloorArea() float64 { return p.Outline.Area() }

// Perimeter returns the wall length in m.
func (p RoomPlan) Perimeter() float64 { return p.Outline.Perimeter() }
