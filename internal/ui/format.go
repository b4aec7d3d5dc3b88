package ui

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/piwi3910/RenoCalc/internal/demo"
	"github.com/piwi3910/RenoCalc/internal/engine"
	"github.com/piwi3910/RenoCalc/internal/model"
)

var resultHeader = []string{"Material", "Type", "Area (m²)", "Reserve", "Units", "Total"}

// resultCells formats one result for the result grids.
func resultCells(r model.CalculationResult, s model.CalculatorSettings) []string {
	info := r.Summary()
	return []string{
		info.Material,
		info.Kind.String(),
		fmt.Sprintf("%.2f", info.Area),
		fmt.Sprintf("%d%%", info.ReservePercent),
		fmt.Sprintf("%d %s", info.UnitsNeeded, info.UnitType),
		s.FormatMoney(info.TotalCost),
	}
}

func resultRows(results []model.CalculationResult, s model.CalculatorSettings) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = resultCells(r, s)
	}
	return rows
}

var reserveHeader = []string{"Scenario", "Reserve", "Units", "Total", "Difference"}

func reserveRows(comparisons []engine.ReserveComparison, s model.CalculatorSettings) [][]string {
	rows := make([][]string, len(comparisons))
	for i, c := range comparisons {
		diff := "-"
		if i > 0 {
			diff = fmt.Sprintf("%+d units, %s", c.ExtraUnits, signedMoney(c.ExtraCost, s))
		}
		rows[i] = []string{
			c.Scenario.Name,
			fmt.Sprintf("%d%%", c.Scenario.ReservePercent),
			strconv.Itoa(c.Result.UnitsNeeded()),
			s.FormatMoney(c.Result.TotalCost()),
			diff,
		}
	}
	return rows
}

func signedMoney(amount float64, s model.CalculatorSettings) string {
	if amount >= 0 {
		return "+" + s.FormatMoney(amount)
	}
	return "-" + s.FormatMoney(-amount)
}

// normalizeNumber accepts a decimal comma as typed in many locales.
func normalizeNumber(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
}

// parseOptionalNonNegative reads an entry that may be left blank.
func parseOptionalNonNegative(text, label string) (float64, error) {
	text = normalizeNumber(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, model.FormatErrorf("%s must be a number, got %q", label, text)
	}
	if v < 0 {
		return 0, model.RangeErrorf("%s must not be negative, got %g", label, v)
	}
	return v, nil
}

// parseOptionalCount reads a non-negative integer entry that may be left blank.
func parseOptionalCount(text, label string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, model.FormatErrorf("%s must be a whole number, got %q", label, text)
	}
	if n < 0 {
		return 0, model.RangeErrorf("%s must not be negative, got %d", label, n)
	}
	return n, nil
}

// noteTally counts how often each note occurs, in scale order.
func noteTally(notes iter.Seq[string]) []string {
	counts := make(map[string]int, len(demo.Notes))
	total := 0
	for n := range notes {
		counts[n]++
		total++
	}
	lines := make([]string, 0, len(demo.Notes)+1)
	for _, n := range demo.Notes {
		lines = append(lines, fmt.Sprintf("%-4s %d", n, counts[n]))
	}
	lines = append(lines, fmt.Sprintf("total %d", total))
	return lines
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
