package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RenoCalc/internal/model"
)

func TestValidatePositiveNumber_Accepts(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"uint8", uint8(3), 3},
		{"float32", float32(2.5), 2.5},
		{"float64", 0.53, 0.53},
		{"string", " 12.5 ", 12.5},
		{"decimal comma", "10,05", 10.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePositiveNumber(tt.value, "width")
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidatePositiveNumber_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  error
	}{
		{"nil", nil, model.ErrRange},
		{"zero", 0, model.ErrRange},
		{"negative", -3.5, model.ErrRange},
		{"infinite", math.Inf(1), model.ErrRange},
		{"nan", math.NaN(), model.ErrRange},
		{"text", "abc", model.ErrFormat},
		{"bool", true, model.ErrFormat},
		{"slice", []int{1}, model.ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidatePositiveNumber(tt.value, "width")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), "width")
		})
	}
}
