package survey

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rc-building-model/internal/model"

	"github.com/google/go-cmp/cmp"
)

func ptr(v float64) *float64 { return &v }

func TestBuildingVolume_ExampleA(t *testing.T) {
	d := Dimensions{
		GroundFloorArea:   ptr(63),
		GroundFloorHeight: ptr(2.4),
		FirstFloorArea:    ptr(63),
		FirstFloorHeight:  ptr(2.7),
		SecondFloorArea:   ptr(math.NaN()),
		SecondFloorHeight: ptr(math.NaN()),
	}
	v, ok := BuildingVolume(d, 0, 0)
	if !ok {
		t.Fatal("expected a volume")
	}
	if math.Round(v) != 321 {
		t.Errorf("expected ≈ 321, got %v", v)
	}
}

func TestBuildingVolume_FromStoreys(t *testing.T) {
	v, ok := BuildingVolume(Dimensions{AssumedFloorHeight: ptr(2.5)}, 63, 2)
	if !ok || v != 315 {
		t.Errorf("expected 315, got %v (%v)", v, ok)
	}
	if _, ok := BuildingVolume(Dimensions{}, 63, 2); ok {
		t.Error("expected no volume without dimensions")
	}
	if _, ok := BuildingVolume(Dimensions{GroundFloorArea: ptr(63)}, 0, 0); ok {
		t.Error("ground floor area without height should not produce a volume")
	}
}

func TestResolve_MissingVolume(t *testing.T) {
	records := []Record{
		{Building: model.Building{BuildingVolume: ptr(200)}},
		{Building: model.Building{FloorArea: 50, NoStoreys: 2}},
		{Building: model.Building{FloorArea: 50, NoStoreys: 2}, Dimensions: Dimensions{AssumedFloorHeight: ptr(2.5)}},
		{},
	}
	_, err := Resolve(records)
	if !errors.Is(err, model.ErrMissingValue) {
		t.Fatalf("expected missing value, got %v", err)
	}
	var ce *model.ColumnError
	if !errors.As(err, &ce) || !cmp.Equal(ce.Rows, []int{1, 3}) {
		t.Errorf("expected rows [1 3], got %v", err)
	}
}

func TestResolve_KeepsRecordedZeroVolume(t *testing.T) {
	records := []Record{
		{
			Building:   model.Building{BuildingVolume: ptr(0), FloorArea: 50, NoStoreys: 2},
			Dimensions: Dimensions{AssumedFloorHeight: ptr(2.5)},
		},
		{Building: model.Building{BuildingVolume: ptr(0)}},
		{
			Building:   model.Building{BuildingVolume: ptr(math.NaN()), FloorArea: 50, NoStoreys: 2},
			Dimensions: Dimensions{AssumedFloorHeight: ptr(2.5)},
		},
	}
	rows, err := Resolve(records)
	if err != nil {
		t.Fatalf("a recorded zero volume is not missing: %v", err)
	}
	b := model.Columns(rows)
	if diff := cmp.Diff([]float64{0, 0, 250}, b.Ventilation.BuildingVolume); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_ZeroVolume(t *testing.T) {
	b, err := DecodeJSON(strings.NewReader(`{"buildings": [
		{"building_volume": 0, "floor_area": 50, "no_of_storeys": 2, "assumed_floor_height": 2.5}
	]}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if b.Ventilation.BuildingVolume[0] != 0 {
		t.Errorf("explicit zero volume should not be replaced, got %v", b.Ventilation.BuildingVolume[0])
	}
}

const surveyJSON = `{
  "buildings": [
    {
      "id": "example-a",
      "roof_area": 63, "roof_uvalue": 0.11,
      "wall_area": 85.7, "wall_uvalue": 0.13,
      "floor_area": 63, "floor_uvalue": 0.14,
      "window_area": 29.6, "window_uvalue": 0.87,
      "door_area": 1.85, "door_uvalue": 1.5,
      "total_floor_area": 126,
      "ground_floor_area": 63, "ground_floor_height": 2.4,
      "first_floor_area": 63, "first_floor_height": 2.7,
      "no_of_fans": 1,
      "permeability_test_result": 0.15,
      "no_of_storeys": 2,
      "percentage_draught_stripped": 100,
      "floor_suspension": "none",
      "structure_type": "masonry",
      "no_sides_sheltered": 2,
      "ventilation_method": "natural_ventilation"
    },
    {
      "id": "untested",
      "building_volume": 250,
      "permeability_test_result": null,
      "no_of_storeys": 1,
      "ventilation_method": "mechanical_ventilation_heat_recovery",
      "heat_exchanger_efficiency": 70
    }
  ]
}`

func TestDecodeJSON(t *testing.T) {
	b, err := DecodeJSON(strings.NewReader(surveyJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 buildings, got %d", b.Len())
	}
	if math.Abs(b.Ventilation.BuildingVolume[0]-321.3) > 1e-9 || b.Ventilation.BuildingVolume[1] != 250 {
		t.Errorf("unexpected volumes %v", b.Ventilation.BuildingVolume)
	}
	if !b.Ventilation.PermeabilityTestResult[0].IsMeasured() || b.Ventilation.PermeabilityTestResult[1].IsMeasured() {
		t.Errorf("unexpected permeability %v", b.Ventilation.PermeabilityTestResult)
	}
	if b.TotalFloorArea[0] != 126 || !math.IsNaN(b.TotalFloorArea[1]) {
		t.Errorf("unexpected floor areas %v", b.TotalFloorArea)
	}
	if diff := cmp.Diff([]string{"example-a", "untested"}, b.ID); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if b.Ventilation.VentilationMethod[1] != model.MechanicalVentilationHeatRecovery {
		t.Errorf("unexpected method %s", b.Ventilation.VentilationMethod[1])
	}
	// absent from JSON reads the same as an empty CSV cell
	if !math.IsNaN(b.Ventilation.PercentageDraughtStripped[1]) || !math.IsNaN(b.Ventilation.HeatExchangerEfficiency[0]) {
		t.Errorf("absent measurements should be NaN, got %v and %v",
			b.Ventilation.PercentageDraughtStripped, b.Ventilation.HeatExchangerEfficiency)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	if _, err := DecodeJSON(strings.NewReader(`{"buildings": [{"permeability_test_result": "high"}]}`)); err == nil {
		t.Error("expected error for a non-numeric permeability")
	}
}

const surveyCSV = `id,wall_area,wall_uvalue,total_floor_area,building_volume,floor_area,no_of_storeys,assumed_floor_height,no_of_fans,is_draught_lobby,permeability_test_result,percentage_draught_stripped,structure_type,floor_suspension,ventilation_method,notes
a,85.7,0.13,126,321,63,2,,1,false,0.15,100,masonry,none,natural_ventilation,semi-d
b,40,0.5,,,50,2.0,2.5,0,TRUE,,,timber_or_steel,unsealed,positive_input_ventilation_from_loft,
`

func TestDecodeCSV(t *testing.T) {
	b, err := DecodeCSV(strings.NewReader(surveyCSV))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 buildings, got %d", b.Len())
	}
	if diff := cmp.Diff([]float64{321, 250}, b.Ventilation.BuildingVolume); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2}, b.Ventilation.NoStoreys); diff != "" {
		t.Errorf("storeys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true}, b.Ventilation.IsDraughtLobby); diff != "" {
		t.Errorf("draught lobby mismatch (-want +got):\n%s", diff)
	}
	if b.Ventilation.PermeabilityTestResult[1].IsMeasured() {
		t.Error("empty permeability cell should be unmeasured")
	}
	if !math.IsNaN(b.Ventilation.PercentageDraughtStripped[1]) {
		t.Errorf("empty percentage should be NaN, got %v", b.Ventilation.PercentageDraughtStripped[1])
	}
	if !math.IsNaN(b.TotalFloorArea[1]) {
		t.Errorf("empty floor area should be missing, got %v", b.TotalFloorArea[1])
	}
	if b.Ventilation.StructureType[1] != model.StructureTimberOrSteel {
		t.Errorf("unexpected structure %s", b.Ventilation.StructureType[1])
	}
}

func TestDecodeCSV_BadCell(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("id,no_of_fans\na,two\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2, column no_of_fans") {
		t.Errorf("expected error naming line and column, got %v", err)
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "survey.json")
	csvPath := filepath.Join(dir, "survey.csv")
	if err := os.WriteFile(jsonPath, []byte(surveyJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, []byte(surveyCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{jsonPath, csvPath} {
		b, err := Load(p)
		if err != nil {
			t.Errorf("%s: %v", filepath.Base(p), err)
			continue
		}
		if b.Len() != 2 {
			t.Errorf("%s: expected 2 buildings, got %d", filepath.Base(p), b.Len())
		}
	}
	if _, err := Load(filepath.Join(dir, "survey.xlsx")); err == nil {
		t.Error("expected error for an unsupported extension")
	}
}
