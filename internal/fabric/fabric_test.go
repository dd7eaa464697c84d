package fabric

import (
	"errors"
	"math"
	"testing"

	"rc-building-model/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// DEAP 4.2.0 example A.
func exampleEnvelope() model.Envelope {
	return model.Envelope{
		RoofArea:     []float64{63},
		RoofUValue:   []float64{0.11},
		WallArea:     []float64{85.7},
		WallUValue:   []float64{0.13},
		FloorArea:    []float64{63},
		FloorUValue:  []float64{0.14},
		WindowArea:   []float64{29.6},
		WindowUValue: []float64{0.87},
		DoorArea:     []float64{1.85},
		DoorUValue:   []float64{1.5},
	}
}

func TestHeatLossCoefficient_ExampleA(t *testing.T) {
	got, err := HeatLossCoefficient(exampleEnvelope(), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if math.Round(got[0]) != 68 {
		t.Errorf("expected fabric HLC ≈ 68, got %.4f", got[0])
	}
	// 55.418 W/K conduction + 0.05 × 243.15 m² bridging
	if math.Abs(got[0]-67.5755) > 1e-9 {
		t.Errorf("expected 67.5755, got %.6f", got[0])
	}
}

func TestHeatLossCoefficient_NoBridging(t *testing.T) {
	env := model.Envelope{
		RoofArea: []float64{10, 0}, RoofUValue: []float64{1, 1},
		WallArea: []float64{0, 20}, WallUValue: []float64{1, 0.5},
		FloorArea: []float64{0, 0}, FloorUValue: []float64{0, 0},
		WindowArea: []float64{0, 0}, WindowUValue: []float64{0, 0},
		DoorArea: []float64{0, 0}, DoorUValue: []float64{0, 0},
	}
	got, err := HeatLossCoefficient(env, Params{ThermalBridgingFactor: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]float64{10, 10}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("HLC mismatch (-want +got):\n%s", diff)
	}
}

func TestHeatLossCoefficient_MisalignedColumns(t *testing.T) {
	env := exampleEnvelope()
	env.DoorUValue = []float64{1.5, 1.5}
	_, err := HeatLossCoefficient(env, DefaultParams())
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHeatLossCoefficient_NegativeBridgingFactor(t *testing.T) {
	if _, err := HeatLossCoefficient(exampleEnvelope(), Params{ThermalBridgingFactor: -0.1}); err == nil {
		t.Fatal("expected error for negative thermal bridging factor")
	}
}

func TestComponentHeatLossCoefficient(t *testing.T) {
	got, err := ComponentHeatLossCoefficient([]float64{63, 85.7}, []float64{0.11, 0.13}, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{63*0.11 + 63*0.05, 85.7*0.13 + 85.7*0.05}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("component HLC mismatch (-want +got):\n%s", diff)
	}
}

func TestHeatLossParameter(t *testing.T) {
	got, err := HeatLossParameter([]float64{0.5}, []float64{0.5}, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1.0 {
		t.Errorf("expected 1.0, got %v", got[0])
	}
}

func TestHeatLossParameter_ZeroOrMissingFloorArea(t *testing.T) {
	tests := []struct {
		name  string
		areas []float64
		rows  []int
	}{
		{"zero", []float64{0}, []int{0}},
		{"missing", []float64{math.NaN()}, []int{0}},
		{"mixed batch", []float64{100, 0, 80, math.NaN()}, []int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.areas)
			nan := make([]float64, n)
			for i := range nan {
				nan[i] = math.NaN()
			}
			_, err := HeatLossParameter(nan, nan, tt.areas)
			if !errors.Is(err, model.ErrDivisionByZero) {
				t.Fatalf("expected division by zero error, got %v", err)
			}
			var ce *model.ColumnError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *model.ColumnError, got %T", err)
			}
			if ce.Column != "total_floor_area" {
				t.Errorf("expected column total_floor_area, got %q", ce.Column)
			}
			if diff := cmp.Diff(tt.rows, ce.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
