// Package engine computes material quantities and costs.
package engine

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// MaterialCalculator computes how many units of a material cover an area,
// what they cost, and keeps an ordered history of its results.
// A calculator is meant for a single owner; it does no locking.
type MaterialCalculator struct {
	settings model.CalculatorSettings
	history  []model.CalculationResult
	logger   *zap.Logger
}

// Option configures a calculator.
type Option func(*MaterialCalculator)

// WithLogger sets the logger used for calculation and configuration events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *MaterialCalculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a calculator with validated settings.
func New(settings model.CalculatorSettings, opts ...Option) (*MaterialCalculator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	c := &MaterialCalculator{
		settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewDefault creates a calculator with DefaultCalculatorSettings.
func NewDefault(opts ...Option) *MaterialCalculator {
	c, _ := New(model.DefaultCalculatorSettings(), opts...)
	return c
}

// ─── Configuration ─────────────────────────────────────────

// Settings returns a copy of the current configuration.
func (c *MaterialCalculator) Settings() model.CalculatorSettings { return c.settings }

func (c *MaterialCalculator) ReservePercent() int { return c.settings.ReservePercent }
func (c *MaterialCalculator) MinArea() float64    { return c.settings.MinArea }
func (c *MaterialCalculator) MaxArea() float64    { return c.settings.MaxArea }
func (c *MaterialCalculator) Precision() int      { return c.settings.Precision }
func (c *MaterialCalculator) Currency() string    { return c.settings.Currency }
func (c *MaterialCalculator) AutoSave() bool      { return c.settings.AutoSave }

// Reconfigure replaces the whole configuration. Nothing changes if any
// invariant is violated.
func (c *MaterialCalculator) Reconfigure(settings model.CalculatorSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	c.settings = settings
	c.logger.Debug("calculator reconfigured",
		zap.Int("reserve_percent", settings.ReservePercent),
		zap.Float64("min_area", settings.MinArea),
		zap.Float64("max_area", settings.MaxArea),
		zap.Int("precision", settings.Precision),
		zap.String("currency", settings.Currency),
		zap.Bool("auto_save", settings.AutoSave),
	)
	return nil
}

func (c *MaterialCalculator) SetReservePercent(percent int) error {
	s := c.settings
	s.ReservePercent = percent
	return c.Reconfigure(s)
}

func (c *MaterialCalculator) SetMinArea(area float64) error {
	s := c.settings
	if area >= 0 && area > s.MaxArea {
		return model.RangeErrorf("min area cannot be greater than max area (%g), got %g", s.MaxArea, area)
	}
	s.MinArea = area
	return c.Reconfigure(s)
}

func (c *MaterialCalculator) SetMaxArea(area float64) error {
	s := c.settings
	if area >= 0 && area < s.MinArea {
		return model.RangeErrorf("max area cannot be less than min area (%g), got %g", s.MinArea, area)
	}
	s.MaxArea = area
	return c.Reconfigure(s)
}

func (c *MaterialCalculator) SetPrecision(precision int) error {
	s := c.settings
	s.Precision = precision
	return c.Reconfigure(s)
}

func (c *MaterialCalculator) SetCurrency(currency string) error {
	s := c.settings
	s.Currency = currency
	return c.Reconfigure(s)
}

func (c *MaterialCalculator) SetAutoSave(enabled bool) error {
	s := c.settings
	s.AutoSave = enabled
	return c.Reconfigure(s)
}

// ─── Calculation ───────────────────────────────────────────

// Calculate returns how many units of material cover area (plus the
// reserve) and their cost. The result is recorded in the history when
// auto save is enabled; a failed calculation records nothing.
func (c *MaterialCalculator) Calculate(material model.Material, area float64) (model.CalculationResult, error) {
	r, err := c.compute(material, area)
	if err != nil {
		return model.CalculationResult{}, err
	}
	c.record(r)
	return r, nil
}

func (c *MaterialCalculator) compute(material model.Material, area float64) (model.CalculationResult, error) {
	if err := model.Validate(material); err != nil {
		return model.CalculationResult{}, err
	}
	if err := c.checkArea(area); err != nil {
		return model.CalculationResult{}, err
	}

	units, err := UnitsNeeded(area, c.settings.ReservePercent, material.UnitCoverage())
	if err != nil {
		return model.CalculationResult{}, err
	}
	cost := RoundCost(float64(units), material.PricePerUnit(), c.settings.Precision)

	r, err := model.NewCalculationResult(material, area, units, cost, c.settings.ReservePercent)
	if err != nil {
		return model.CalculationResult{}, err
	}
	c.logger.Debug("material calculated",
		zap.String("material", material.Name()),
		zap.Float64("area", area),
		zap.Int("units", units),
		zap.Float64("cost", cost),
	)
	return r, nil
}

func (c *MaterialCalculator) checkArea(area float64) error {
	switch {
	case math.IsNaN(area):
		return model.RangeErrorf("area must be a number")
	case area < c.settings.MinArea:
		return model.RangeErrorf("area too small: must be at least %g m², got %g", c.settings.MinArea, area)
	case area > c.settings.MaxArea:
		return model.RangeErrorf("area too large: must not exceed %g m², got %g", c.settings.MaxArea, area)
	case !(area > 0):
		return model.RangeErrorf("area must be positive, got %g", area)
	}
	return nil
}

func (c *MaterialCalculator) record(results ...model.CalculationResult) {
	if !c.settings.AutoSave {
		return
	}
	c.history = append(c.history, results...)
}

// UnitsNeeded returns ceil(area × (1 + reserve/100) / coverage), at least 1.
// It fails when the count does not fit in an int.
func UnitsNeeded(area float64, reservePercent int, coverage float64) (int, error) {
	withReserve := area * (1 + float64(reservePercent)/100)
	q := math.Ceil(withReserve / coverage)
	if math.IsNaN(q) || q >= float64(math.MaxInt) {
		return 0, model.RangeErrorf("units needed for %g m² at %g m² per unit is too large to count", withReserve, coverage)
	}
	return max(int(q), 1), nil
}

// RoundCost multiplies units by price and rounds half away from zero to
// precision decimal places.
func RoundCost(units, price float64, precision int) float64 {
	return decimal.NewFromFloat(units).
		Mul(decimal.NewFromFloat(price)).
		Round(int32(precision)).
		InexactFloat64()
}

// CompareMaterials calculates every material for the same area and returns
// the results ordered by total cost, cheapest first. Ties keep input order.
// Either every result is recorded in the history or none is.
func (c *MaterialCalculator) CompareMaterials(materials []model.Material, area float64) ([]model.CalculationResult, error) {
	if len(materials) == 0 {
		return nil, model.EmptyErrorf("materials list must not be empty")
	}

	results := make([]model.CalculationResult, 0, len(materials))
	for i, m := range materials {
		r, err := c.compute(m, area)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i+1, err)
		}
		results = append(results, r)
	}
	c.record(results...)

	slices.SortStableFunc(results, func(a, b model.CalculationResult) int {
		return cmp.Compare(a.TotalCost(), b.TotalCost())
	})
	return results, nil
}

// ─── History ───────────────────────────────────────────────

// History returns a copy of the recorded results in calculation order.
func (c *MaterialCalculator) History() []model.CalculationResult {
	return slices.Clone(c.history)
}

// ClearHistory removes every recorded result.
func (c *MaterialCalculator) ClearHistory() {
	c.history = nil
}

// HistoryCount returns the number of recorded results.
func (c *MaterialCalculator) HistoryCount() int { return len(c.history) }

// TotalCostSum returns the sum of total costs over the history.
func (c *MaterialCalculator) TotalCostSum() float64 {
	return model.SumTotalCost(c.history)
}

// Len is an alias of HistoryCount.
func (c *MaterialCalculator) Len() int { return len(c.history) }

// IsEmpty reports whether no result has been recorded.
func (c *MaterialCalculator) IsEmpty() bool { return len(c.history) == 0 }

// At returns the i-th recorded result. Negative indexes count from the end.
func (c *MaterialCalculator) At(i int) (model.CalculationResult, error) {
	n := len(c.history)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return model.CalculationResult{}, model.RangeErrorf("history index out of range: %d (size %d)", i, n)
	}
	return c.history[i], nil
}

// Slice returns a copy of history[i:j].
func (c *MaterialCalculator) Slice(i, j int) ([]model.CalculationResult, error) {
	if i < 0 || j < i || j > len(c.history) {
		return nil, model.RangeErrorf("history slice [%d:%d] out of range (size %d)", i, j, len(c.history))
	}
	return slices.Clone(c.history[i:j]), nil
}

// Contains reports whether an equal result has been recorded.
func (c *MaterialCalculator) Contains(r model.CalculationResult) bool {
	return slices.ContainsFunc(c.history, r.Equal)
}

// All iterates over the history in recorded order.
func (c *MaterialCalculator) All() iter.Seq2[int, model.CalculationResult] {
	history := c.History()
	return func(yield func(int, model.CalculationResult) bool) {
		for i, r := range history {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Equal reports whether both calculators share reserve and area bounds.
// History and display settings are not compared.
func (c *MaterialCalculator) Equal(other *MaterialCalculator) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.settings.ReservePercent == other.settings.ReservePercent &&
		c.settings.MinArea == other.settings.MinArea &&
		c.settings.MaxArea == other.settings.MaxArea
}

func (c *MaterialCalculator) String() string {
	return fmt.Sprintf("MaterialCalculator(reserve %d%%, area %g-%g m², %d results)",
		c.settings.ReservePercent, c.settings.MinArea, c.settings.MaxArea, len(c.history))
}

// GoString renders the configuration for %#v.
func (c *MaterialCalculator) GoString() string {
	s := c.settings
	return fmt.Sprintf("MaterialCalculator(reserve_percent=%d, min_area=%g, max_area=%g, precision=%d, currency=%q, auto_save=%t)",
		s.ReservePercent, s.MinArea, s.MaxArea, s.Precision, s.Currency, s.AutoSave)
}
