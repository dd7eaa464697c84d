package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCategoriesAreExhaustive(t *testing.T) {
	for _, s := range AllStructureTypes() {
		if !s.Valid() {
			t.Errorf("structure type %q should be valid", s)
		}
	}
	for _, f := range AllFloorSuspensions() {
		if !f.Valid() {
			t.Errorf("floor suspension %q should be valid", f)
		}
	}
	for _, m := range AllVentilationMethods() {
		if !m.Valid() {
			t.Errorf("ventilation method %q should be valid", m)
		}
	}
	for _, bad := range []string{"", "Masonry", "brick", " masonry"} {
		if StructureType(bad).Valid() {
			t.Errorf("structure type %q should be invalid", bad)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	values := []FloorSuspension{FloorNone, "suspended", FloorSealed, ""}
	err := ValidateCategory("floor_suspension", values, AllFloorSuspensions())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ce *ColumnError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ColumnError, got %T", err)
	}
	if diff := cmp.Diff([]int{1, 3}, ce.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"none", "sealed", "unsealed"}, ce.Allowed); diff != "" {
		t.Errorf("allowed mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), `"floor_suspension"`) {
		t.Errorf("message should name the column: %s", err)
	}

	if err := ValidateCategory("floor_suspension", AllFloorSuspensions(), AllFloorSuspensions()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestColumnError_TruncatesRows(t *testing.T) {
	rows := make([]int, 25)
	for i := range rows {
		rows[i] = i
	}
	err := &ColumnError{Kind: ErrDivisionByZero, Column: "building_volume", Rows: rows}
	msg := err.Error()
	if !strings.Contains(msg, "and 15 more") {
		t.Errorf("expected truncated row list, got %s", msg)
	}
	if !strings.HasPrefix(msg, "division by zero") {
		t.Errorf("expected message to start with the kind, got %s", msg)
	}
}

func TestErrors_AggregateMatchesEveryKind(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Fatal("empty Errors should be nil")
	}
	errs.Add(nil)
	errs.Add(&ColumnError{Kind: ErrDivisionByZero, Column: "building_volume", Rows: []int{0}})
	if _, ok := errs.Err().(*ColumnError); !ok {
		t.Errorf("a single error should be returned unwrapped, got %T", errs.Err())
	}
	errs.Add(InvalidValues("structure_type", []int{2}, Names(AllStructureTypes())))
	errs.Add(&ColumnError{Kind: ErrMissingValue, Column: "floor_suspension", Rows: []int{3}})

	err := errs.Err()
	for _, kind := range []error{ErrDivisionByZero, ErrValidation, ErrMissingValue} {
		if !errors.Is(err, kind) {
			t.Errorf("aggregate should match %v", kind)
		}
	}
	if !strings.HasPrefix(err.Error(), "3 invalid columns") {
		t.Errorf("unexpected aggregate message: %s", err)
	}

	var cols []string
	for _, ce := range ColumnErrors(err) {
		cols = append(cols, ce.Column)
	}
	if diff := cmp.Diff([]string{"building_volume", "structure_type", "floor_suspension"}, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestPermeability_JSON(t *testing.T) {
	var rows []struct {
		P Permeability `json:"p"`
	}
	if err := json.Unmarshal([]byte(`[{"p": 0.15}, {"p": null}, {}]`), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := rows[0].P.Value(); !ok || v != 0.15 {
		t.Errorf("expected measured 0.15, got %v", rows[0].P)
	}
	if rows[1].P.IsMeasured() || rows[2].P.IsMeasured() {
		t.Error("null and absent results should be unmeasured")
	}

	out, err := json.Marshal([]Permeability{Measured(0.4), Unmeasured()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "[0.4,null]" {
		t.Errorf("unexpected encoding %s", out)
	}

	var p Permeability
	if err := json.Unmarshal([]byte(`"high"`), &p); err == nil {
		t.Error("expected error for a non-numeric result")
	}
}

func TestPermeabilityFromPointer(t *testing.T) {
	v, nan := 0.2, math.NaN()
	if PermeabilityFromPointer(nil).IsMeasured() || PermeabilityFromPointer(&nan).IsMeasured() {
		t.Error("nil and NaN should be unmeasured")
	}
	if got, _ := PermeabilityFromPointer(&v).Value(); got != 0.2 {
		t.Errorf("expected 0.2, got %v", got)
	}
}

func TestColumns(t *testing.T) {
	area := 90.0
	rows := []Building{
		{ID: "a", WallArea: 100, WallUValue: 0.5, TotalFloorArea: &area, BuildingVolume: Float(321),
			PermeabilityTestResult: Measured(0.15), VentilationMethod: NaturalVentilation},
		{ID: "b", RoofArea: 50, BuildingVolume: Float(200), NoFans: 2,
			PermeabilityTestResult: Unmeasured(), StructureType: StructureMasonry},
	}
	b := Columns(rows)
	if b.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", b.Len())
	}
	if err := b.CheckAligned(); err != nil {
		t.Fatalf("pivoted batch should be aligned: %v", err)
	}
	if diff := cmp.Diff([]float64{100, 0}, b.Envelope.WallArea); diff != "" {
		t.Errorf("wall area mismatch (-want +got):\n%s", diff)
	}
	if b.TotalFloorArea[0] != 90 || !math.IsNaN(b.TotalFloorArea[1]) {
		t.Errorf("unexpected total floor area %v", b.TotalFloorArea)
	}
	if diff := cmp.Diff([]int{0, 2}, b.Ventilation.NoFans); diff != "" {
		t.Errorf("fans mismatch (-want +got):\n%s", diff)
	}
	if !b.Ventilation.PermeabilityTestResult[0].IsMeasured() || b.Ventilation.PermeabilityTestResult[1].IsMeasured() {
		t.Error("permeability not carried through")
	}
	if b.Label(1) != "b" {
		t.Errorf("expected label b, got %s", b.Label(1))
	}
}

func TestColumns_OptionalMeasurements(t *testing.T) {
	rows := []Building{
		{BuildingVolume: Float(0), PercentageDraughtStripped: Float(0), HeatExchangerEfficiency: Float(0)},
		{},
	}
	v := Columns(rows).Ventilation
	for _, c := range []struct {
		name   string
		values []float64
	}{
		{"building_volume", v.BuildingVolume},
		{"percentage_draught_stripped", v.PercentageDraughtStripped},
		{"heat_exchanger_efficiency", v.HeatExchangerEfficiency},
	} {
		if c.values[0] != 0 {
			t.Errorf("%s: explicit zero should be kept, got %v", c.name, c.values[0])
		}
		if !math.IsNaN(c.values[1]) {
			t.Errorf("%s: absent value should be NaN, got %v", c.name, c.values[1])
		}
	}
}

func TestShiftRows(t *testing.T) {
	var errs Errors
	errs.Add(&ColumnError{Kind: ErrMissingValue, Column: "heat_loss_coefficient", Rows: []int{0, 1}})
	errs.Add(&ColumnError{Kind: ErrValidation, Column: "wall_area", Rows: []int{1}})
	err := fmt.Errorf("chunk: %w", errs.Err())

	ShiftRows(err, 4096)

	got := map[string][]int{}
	for _, ce := range ColumnErrors(err) {
		got[ce.Column] = ce.Rows
	}
	want := map[string][]int{
		"heat_loss_coefficient": {4096, 4097},
		"wall_area":             {4097},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shifted rows (-want +got):\n%s", diff)
	}
}

func TestBuildings_SliceAndLabel(t *testing.T) {
	rows := make([]Building, 5)
	for i := range rows {
		rows[i].BuildingVolume = Float(float64(100 * (i + 1)))
	}
	b := Columns(rows)
	b.ID = nil

	s := b.Slice(1, 3)
	if s.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Len())
	}
	if diff := cmp.Diff([]float64{200, 300}, s.Ventilation.BuildingVolume); diff != "" {
		t.Errorf("volume mismatch (-want +got):\n%s", diff)
	}
	if err := s.CheckAligned(); err != nil {
		t.Errorf("slice should stay aligned: %v", err)
	}
	if b.Label(4) != "4" {
		t.Errorf("expected positional label, got %s", b.Label(4))
	}
}

func TestCheckAligned_ReportsShortColumn(t *testing.T) {
	b := Columns(make([]Building, 3))
	b.Envelope.DoorUValue = b.Envelope.DoorUValue[:2]
	b.Ventilation.NoFans = b.Ventilation.NoFans[:1]

	err := b.CheckAligned()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var cols []string
	for _, ce := range ColumnErrors(err) {
		cols = append(cols, ce.Column)
	}
	if diff := cmp.Diff([]string{"door_uvalue", "no_of_fans"}, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroOrMissingRows(t *testing.T) {
	got := ZeroOrMissingRows([]float64{1, 0, math.NaN(), -2})
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}
