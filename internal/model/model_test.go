package model

import (
	"math"
	"testing"
)

func TestDefaultCalculatorSettings(t *testing.T) {
	s := DefaultCalculatorSettings()
	if s.ReservePercent != 10 {
		t.Errorf("expected reserve 10, got %d", s.ReservePercent)
	}
	if s.MinArea != 0.1 || s.MaxArea != 10000 {
		t.Errorf("expected area bounds [0.1, 10000], got [%g, %g]", s.MinArea, s.MaxArea)
	}
	if s.Precision != 2 {
		t.Errorf("expected precision 2, got %d", s.Precision)
	}
	if s.Currency != "₽" {
		t.Errorf("expected currency ₽, got %s", s.Currency)
	}
	if !s.AutoSave {
		t.Error("expected auto save enabled by default")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
}

func TestCalculatorSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CalculatorSettings)
		valid  bool
	}{
		{"reserve zero", func(s *CalculatorSettings) { s.ReservePercent = 0 }, true},
		{"reserve hundred", func(s *CalculatorSettings) { s.ReservePercent = 100 }, true},
		{"reserve negative", func(s *CalculatorSettings) { s.ReservePercent = -1 }, false},
		{"reserve over hundred", func(s *CalculatorSettings) { s.ReservePercent = 101 }, false},
		{"min area zero", func(s *CalculatorSettings) { s.MinArea = 0 }, true},
		{"min area negative", func(s *CalculatorSettings) { s.MinArea = -1 }, false},
		{"min equals max", func(s *CalculatorSettings) { s.MinArea, s.MaxArea = 5, 5 }, true},
		{"min above max", func(s *CalculatorSettings) { s.MinArea, s.MaxArea = 6, 5 }, false},
		{"min area NaN", func(s *CalculatorSettings) { s.MinArea = math.NaN() }, false},
		{"precision ten", func(s *CalculatorSettings) { s.Precision = 10 }, true},
		{"precision eleven", func(s *CalculatorSettings) { s.Precision = 11 }, false},
		{"precision negative", func(s *CalculatorSettings) { s.Precision = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultCalculatorSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid settings, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	s := DefaultCalculatorSettings()
	s.Currency = "$"
	if got := s.FormatMoney(7200); got != "7200.00 $" {
		t.Errorf("expected '7200.00 $', got %q", got)
	}
	s.Precision = 0
	if got := s.FormatMoney(7200.4); got != "7200 $" {
		t.Errorf("expected '7200 $', got %q", got)
	}
}

func TestOutlineAreaAndPerimeter(t *testing.T) {
	// 5 x 4 rectangle
	rect := Outline{{0, 0}, {5, 0}, {5, 4}, {0, 4}}
	if math.Abs(rect.Area()-20) > 1e-9 {
		t.Errorf("expected area 20, got %f", rect.Area())
	}
	if math.Abs(rect.Perimeter()-18) > 1e-9 {
		t.Errorf("expected perimeter 18, got %f", rect.Perimeter())
	}

	// L-shaped room: 6x4 minus a 2x2 corner
	l := Outline{{0, 0}, {6, 0}, {6, 4}, {2, 4}, {2, 2}, {0, 2}}
	if math.Abs(l.Area()-20) > 1e-9 {
		t.Errorf("expected L-shape area 20, got %f", l.Area())
	}
	if math.Abs(l.Perimeter()-20) > 1e-9 {
		t.Errorf("expected L-shape perimeter 20, got %f", l.Perimeter())
	}

	if (Outline{{0, 0}, {1, 1}}).Area() != 0 {
		t.Error("degenerate outline should have zero area")
	}
}

func TestOutlineScaleAndBoundingBox(t *testing.T) {
	mm := Outline{{1000, 500}, {6000, 500}, {6000, 4500}, {1000, 4500}}
	m := mm.Scale(0.001)

	min, max := m.BoundingBox()
	if math.Abs(min.X-1) > 1e-9 || math.Abs(min.Y-0.5) > 1e-9 {
		t.Errorf("unexpected min corner %+v", min)
	}
	if math.Abs(max.X-6) > 1e-9 || math.Abs(max.Y-4.5) > 1e-9 {
		t.Errorf("unexpected max corner %+v", max)
	}

	plan := RoomPlan{Label: "Bedroom", Outline: m}
	if math.Abs(plan.FloorArea()-20) > 1e-9 {
		t.Errorf("expected floor area 20, got %f", plan.FloorArea())
	}
	if math.Abs(plan.Perimeter()-18) > 1e-9 {
		t.Errorf("expected perimeter 18, got %f", plan.Perimeter())
	}
}
