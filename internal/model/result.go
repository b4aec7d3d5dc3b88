package model

import "fmt"

// CalculationResult is the outcome of one material calculation. It is
// immutable once built. The material is shared with the caller, not copied.
type CalculationResult struct {
	material       Material
	area           float64
	unitsNeeded    int
	totalCost      float64
	reservePercent int
}

// DefaultReservePercent is the waste allowance applied when none is configured.
const DefaultReservePercent = 10

// NewCalculationResult validates and builds a result.
func NewCalculationResult(material Material, area float64, unitsNeeded int, totalCost float64, reservePercent int) (CalculationResult, error) {
	if err := Validate(material); err != nil {
		return CalculationResult{}, err
	}
	if !(area > 0) {
		return CalculationResult{}, RangeErrorf("area must be positive, got %g", area)
	}
	if unitsNeeded < 1 {
		return CalculationResult{}, RangeErrorf("units needed must be at least 1, got %d", unitsNeeded)
	}
	if totalCost < 0 {
		return CalculationResult{}, RangeErrorf("total cost cannot be negative, got %g", totalCost)
	}
	if reservePercent < 0 || reservePercent > 100 {
		return CalculationResult{}, RangeErrorf("reserve percent must be between 0 and 100, got %d", reservePercent)
	}
	return CalculationResult{
		material:       material,
		area:           area,
		unitsNeeded:    unitsNeeded,
		totalCost:      totalCost,
		reservePercent: reservePercent,
	}, nil
}

func (r CalculationResult) Material() Material  { return r.material }
func (r CalculationResult) Area() float64       { return r.area }
func (r CalculationResult) UnitsNeeded() int    { return r.unitsNeeded }
func (r CalculationResult) TotalCost() float64  { return r.totalCost }
func (r CalculationResult) ReservePercent() int { return r.reservePercent }

// Equal reports whether both results describe the same calculation of an
// equal material.
func (r CalculationResult) Equal(other CalculationResult) bool {
	return Equal(r.material, other.material) &&
		r.area == other.area &&
		r.unitsNeeded == other.unitsNeeded &&
		r.totalCost == other.totalCost &&
		r.reservePercent == other.reservePercent
}

func (r CalculationResult) String() string {
	if IsNil(r.material) {
		return "Calculation result: <empty>"
	}
	return fmt.Sprintf("Calculation result: %s, %.1f m² (+%d%%) -> %d %s, total %.2f",
		r.material.Name(), r.area, r.reservePercent, r.unitsNeeded, r.material.UnitType(), r.totalCost)
}

// GoString renders the result for %#v.
func (r CalculationResult) GoString() string {
	name := ""
	if !IsNil(r.material) {
		name = r.material.Name()
	}
	return fmt.Sprintf("CalculationResult(material=%q, area=%g, units_needed=%d, total_cost=%g, reserve_percent=%d)",
		name, r.area, r.unitsNeeded, r.totalCost, r.reservePercent)
}

// ResultSummary is a flat, serializable view of a CalculationResult.
type ResultSummary struct {
	Kind           Kind    `json:"kind"`
	Material       string  `json:"material"`
	UnitType       string  `json:"unit_type"`
	PricePerUnit   float64 `json:"price_per_unit"`
	UnitCoverage   float64 `json:"unit_coverage"`
	Area           float64 `json:"area"`
	ReservePercent int     `json:"reserve_percent"`
	UnitsNeeded    int     `json:"units_needed"`
	TotalCost      float64 `json:"total_cost"`
}

// Summary flattens the result for exporters.
func (r CalculationResult) Summary() ResultSummary {
	s := ResultSummary{
		Area:           r.area,
		ReservePercent: r.reservePercent,
		UnitsNeeded:    r.unitsNeeded,
		TotalCost:      r.totalCost,
	}
	if !IsNil(r.material) {
		s.Kind = r.material.Kind()
		s.Material = r.material.Name()
		s.UnitType = r.material.UnitType()
		s.PricePerUnit = r.material.PricePerUnit()
		s.UnitCoverage = r.material.UnitCoverage()
	}
	return s
}

// SumTotalCost adds up the total cost of results.
func SumTotalCost(results []CalculationResult) float64 {
	var total float64
	for _, r := range results {
		total += r.totalCost
	}
	return total
}
