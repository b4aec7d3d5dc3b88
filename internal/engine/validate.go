package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/RenoCalc/internal/model"
)

// ValidatePositiveNumber coerces value (any integer or float type, or a
// numeric string) to float64 and checks it is positive. label names the
// value in error messages.
func ValidatePositiveNumber(value any, label string) (float64, error) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, model.RangeErrorf("%s must be positive", label)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", ".")), 64)
		if err != nil {
			return 0, model.FormatErrorf("%s must be a number, got %q", label, v)
		}
		f = parsed
	default:
		return 0, model.FormatErrorf("%s must be a number, got %T", label, value)
	}
	if math.IsInf(f, 0) {
		return 0, model.RangeErrorf("%s must be finite", label)
	}
	if !(f > 0) {
		return 0, model.RangeErrorf("%s must be positive, got %g", label, f)
	}
	return f, nil
}
