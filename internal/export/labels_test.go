package export

import (
	"encoding/json"
	"testing"

	"github.com/piwi3910/RenoCalc/internal/model"
)

func TestCollectLabels(t *testing.T) {
	results := sampleResults(t)
	labels := CollectLabels(results)

	if len(labels) != len(results) {
		t.Fatalf("expected %d labels, got %d", len(results), len(labels))
	}
	if labels[0].Material != "Vinyl Premium" {
		t.Errorf("expected first label for Vinyl Premium, got %q", labels[0].Material)
	}
	if labels[1].Kind != model.KindTile {
		t.Errorf("expected tile kind, got %q", labels[1].Kind)
	}
	if labels[2].UnitsNeeded != 11 {
		t.Errorf("expected 11 units, got %d", labels[2].UnitsNeeded)
	}
}

func TestCollectLabels_Empty(t *testing.T) {
	if labels := CollectLabels(nil); len(labels) != 0 {
		t.Errorf("expected no labels, got %d", len(labels))
	}
}

func TestLabelPayload_JSONRoundTrip(t *testing.T) {
	info := CollectLabels(sampleResults(t))[0]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal label info: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal label info: %v", err)
	}
	for _, key := range []string{"kind", "material", "unit_type", "units_needed", "total_cost"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("QR payload is missing %q", key)
		}
	}
	if decoded["kind"] != "wallpaper" {
		t.Errorf("expected kind wallpaper, got %v", decoded["kind"])
	}
}

func TestLabelLayout(t *testing.T) {
	if labelsPerPage != 10 {
		t.Errorf("expected 10 labels per page, got %d", labelsPerPage)
	}
	if labelMarginLeft+labelCols*labelWidth > pageWidth {
		t.Error("labels do not fit the page width")
	}
	if labelMarginTop+labelRows*labelHeight > pageHeight {
		t.Error("labels do not fit the page height")
	}
}
