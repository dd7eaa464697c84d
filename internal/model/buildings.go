package model

import (
	"fmt"
	"math"
)

// Envelope holds the plane elements of each building, one entry per building.
// Units:
// - areas: m²
// - U-values: W/m²K
type Envelope struct {
	RoofArea     []float64
	RoofUValue   []float64
	WallArea     []float64
	WallUValue   []float64
	FloorArea    []float64
	FloorUValue  []float64
	WindowArea   []float64
	WindowUValue []float64
	DoorArea     []float64
	DoorUValue   []float64
}

// Columns returns every envelope column keyed by its canonical name, in a fixed order.
func (e Envelope) Columns() []NamedColumn {
	return []NamedColumn{
		{"roof_area", e.RoofArea},
		{"roof_uvalue", e.RoofUValue},
		{"wall_area", e.WallArea},
		{"wall_uvalue", e.WallUValue},
		{"floor_area", e.FloorArea},
		{"floor_uvalue", e.FloorUValue},
		{"window_area", e.WindowArea},
		{"window_uvalue", e.WindowUValue},
		{"door_area", e.DoorArea},
		{"door_uvalue", e.DoorUValue},
	}
}

func (e Envelope) Slice(lo, hi int) Envelope {
	return Envelope{
		RoofArea:     e.RoofArea[lo:hi],
		RoofUValue:   e.RoofUValue[lo:hi],
		WallArea:     e.WallArea[lo:hi],
		WallUValue:   e.WallUValue[lo:hi],
		FloorArea:    e.FloorArea[lo:hi],
		FloorUValue:  e.FloorUValue[lo:hi],
		WindowArea:   e.WindowArea[lo:hi],
		WindowUValue: e.WindowUValue[lo:hi],
		DoorArea:     e.DoorArea[lo:hi],
		DoorUValue:   e.DoorUValue[lo:hi],
	}
}

// VentilationInputs holds the airtightness and ventilation survey of each building.
type VentilationInputs struct {
	BuildingVolume            []float64 // m³, never zero
	NoChimneys                []int
	NoOpenFlues               []int
	NoFans                    []int
	NoRoomHeaters             []int
	IsDraughtLobby            []bool
	PermeabilityTestResult    []Permeability
	NoStoreys                 []int
	PercentageDraughtStripped []float64 // 0..100
	FloorSuspension           []FloorSuspension
	StructureType             []StructureType
	NoSidesSheltered          []int
	VentilationMethod         []VentilationMethod
	HeatExchangerEfficiency   []float64 // 0..100
}

// Lengths reports the row count of each column keyed by its canonical name.
func (v VentilationInputs) Lengths() []ColumnLength {
	return []ColumnLength{
		{"building_volume", len(v.BuildingVolume)},
		{"no_of_chimneys", len(v.NoChimneys)},
		{"no_of_open_flues", len(v.NoOpenFlues)},
		{"no_of_fans", len(v.NoFans)},
		{"no_of_room_heaters", len(v.NoRoomHeaters)},
		{"is_draught_lobby", len(v.IsDraughtLobby)},
		{"permeability_test_result", len(v.PermeabilityTestResult)},
		{"no_of_storeys", len(v.NoStoreys)},
		{"percentage_draught_stripped", len(v.PercentageDraughtStripped)},
		{"floor_suspension", len(v.FloorSuspension)},
		{"structure_type", len(v.StructureType)},
		{"no_sides_sheltered", len(v.NoSidesSheltered)},
		{"ventilation_method", len(v.VentilationMethod)},
		{"heat_exchanger_efficiency", len(v.HeatExchangerEfficiency)},
	}
}

func (v VentilationInputs) Slice(lo, hi int) VentilationInputs {
	return VentilationInputs{
		BuildingVolume:            v.BuildingVolume[lo:hi],
		NoChimneys:                v.NoChimneys[lo:hi],
		NoOpenFlues:               v.NoOpenFlues[lo:hi],
		NoFans:                    v.NoFans[lo:hi],
		NoRoomHeaters:             v.NoRoomHeaters[lo:hi],
		IsDraughtLobby:            v.IsDraughtLobby[lo:hi],
		PermeabilityTestResult:    v.PermeabilityTestResult[lo:hi],
		NoStoreys:                 v.NoStoreys[lo:hi],
		PercentageDraughtStripped: v.PercentageDraughtStripped[lo:hi],
		FloorSuspension:           v.FloorSuspension[lo:hi],
		StructureType:             v.StructureType[lo:hi],
		NoSidesSheltered:          v.NoSidesSheltered[lo:hi],
		VentilationMethod:         v.VentilationMethod[lo:hi],
		HeatExchangerEfficiency:   v.HeatExchangerEfficiency[lo:hi],
	}
}

// Buildings is a columnar batch. A building only exists as the values sharing a row index.
type Buildings struct {
	// ID is optional; when empty, rows are identified by position.
	ID             []string
	Envelope       Envelope
	Ventilation    VentilationInputs
	TotalFloorArea []float64 // m², NaN when missing
}

// Len is the row count, taken from the building volume column.
func (b Buildings) Len() int {
	return len(b.Ventilation.BuildingVolume)
}

// Slice returns rows [lo, hi). The returned batch shares storage with b.
func (b Buildings) Slice(lo, hi int) Buildings {
	out := Buildings{
		Envelope:       b.Envelope.Slice(lo, hi),
		Ventilation:    b.Ventilation.Slice(lo, hi),
		TotalFloorArea: b.TotalFloorArea[lo:hi],
	}
	if len(b.ID) > 0 {
		out.ID = b.ID[lo:hi]
	}
	return out
}

// Label returns the identity of row i.
func (b Buildings) Label(i int) string {
	if i < len(b.ID) && b.ID[i] != "" {
		return b.ID[i]
	}
	return fmt.Sprint(i)
}

// CheckAligned verifies every column has the same number of rows.
func (b Buildings) CheckAligned() error {
	lengths := make([]ColumnLength, 0, 26)
	for _, c := range b.Envelope.Columns() {
		lengths = append(lengths, ColumnLength{c.Name, len(c.Values)})
	}
	lengths = append(lengths, b.Ventilation.Lengths()...)
	lengths = append(lengths, ColumnLength{"total_floor_area", len(b.TotalFloorArea)})
	if len(b.ID) > 0 {
		lengths = append(lengths, ColumnLength{"id", len(b.ID)})
	}
	return CheckLengths(lengths...)
}

// NamedColumn pairs a float column with its canonical name.
type NamedColumn struct {
	Name   string
	Values []float64
}

// ColumnLength pairs a column name with its row count.
type ColumnLength struct {
	Name string
	Len  int
}

// CheckLengths fails when any column's row count differs from the first one's.
func CheckLengths(cols ...ColumnLength) error {
	if len(cols) == 0 {
		return nil
	}
	want := cols[0].Len
	var errs Errors
	for _, c := range cols[1:] {
		if c.Len != want {
			errs.Add(&ColumnError{
				Kind:    ErrValidation,
				Column:  c.Name,
				Message: fmt.Sprintf("has %d rows, %s has %d", c.Len, cols[0].Name, want),
			})
		}
	}
	return errs.Err()
}

// ZeroOrMissingRows returns the indices where values are zero or NaN.
func ZeroOrMissingRows(values []float64) []int {
	var rows []int
	for i, v := range values {
		if v == 0 || math.IsNaN(v) {
			rows = append(rows, i)
		}
	}
	return rows
}
