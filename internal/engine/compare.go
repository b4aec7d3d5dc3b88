package engine

import (
	"fmt"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// ReserveScenario is a named reserve percentage to compare.
type ReserveScenario struct {
	Name           string
	ReservePercent int
}

// ReserveComparison holds the result of one scenario along with the
// difference to the first scenario.
type ReserveComparison struct {
	Scenario   ReserveScenario
	Result     model.CalculationResult
	ExtraUnits int
	ExtraCost  float64
}

// BuildReserveScenarios generates what-if alternatives around the current
// reserve: no reserve, five points more and double, capped at 100%.
// Duplicate percentages are dropped.
func BuildReserveScenarios(current int) []ReserveScenario {
	scenarios := []ReserveScenario{{Name: "Current Reserve", ReservePercent: current}}
	seen := map[int]bool{current: true}

	add := func(name string, percent int) {
		percent = min(max(percent, 0), model.MaxReservePercent)
		if seen[percent] {
			return
		}
		seen[percent] = true
		scenarios = append(scenarios, ReserveScenario{Name: name, ReservePercent: percent})
	}

	add("No Reserve", 0)
	add(fmt.Sprintf("Reserve %d%%", current+5), current+5)
	add(fmt.Sprintf("Reserve %d%% (double)", current*2), current*2)

	return scenarios
}

// CompareReserves calculates material over area once per scenario, using
// base for everything but the reserve. Results are returned in scenario
// order and are not recorded in any history.
func CompareReserves(material model.Material, area float64, scenarios []ReserveScenario, base model.CalculatorSettings) ([]ReserveComparison, error) {
	if len(scenarios) == 0 {
		return nil, model.EmptyErrorf("scenario list must not be empty")
	}

	comparisons := make([]ReserveComparison, 0, len(scenarios))
	for _, scenario := range scenarios {
		settings := base
		settings.ReservePercent = scenario.ReservePercent
		settings.AutoSave = false

		calc, err := New(settings)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		r, err := calc.Calculate(material, area)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		comparisons = append(comparisons, ReserveComparison{Scenario: scenario, Result: r})
	}

	first := comparisons[0].Result
	for i := range comparisons {
		comparisons[i].ExtraUnits = comparisons[i].Result.UnitsNeeded() - first.UnitsNeeded()
		comparisons[i].ExtraCost = comparisons[i].Result.TotalCost() - first.TotalCost()
	}
	return comparisons, nil
}
