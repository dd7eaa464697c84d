package model

import "math"

// Building is the row form of one dwelling, the shape surveys and API requests arrive in.
// Columns pivots a slice of rows into the columnar batch the calculators work on.
type Building struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	RoofArea     float64 `json:"roof_area" yaml:"roof_area"`
	RoofUValue   float64 `json:"roof_uvalue" yaml:"roof_uvalue"`
	WallArea     float64 `json:"wall_area" yaml:"wall_area"`
	WallUValue   float64 `json:"wall_uvalue" yaml:"wall_uvalue"`
	FloorArea    float64 `json:"floor_area" yaml:"floor_area"`
	FloorUValue  float64 `json:"floor_uvalue" yaml:"floor_uvalue"`
	WindowArea   float64 `json:"window_area" yaml:"window_area"`
	WindowUValue float64 `json:"window_uvalue" yaml:"window_uvalue"`
	DoorArea     float64 `json:"door_area" yaml:"door_area"`
	DoorUValue   float64 `json:"door_uvalue" yaml:"door_uvalue"`

	TotalFloorArea *float64 `json:"total_floor_area" yaml:"total_floor_area"`
	BuildingVolume *float64 `json:"building_volume" yaml:"building_volume"`

	NoChimneys                int               `json:"no_of_chimneys" yaml:"no_of_chimneys"`
	NoOpenFlues               int               `json:"no_of_open_flues" yaml:"no_of_open_flues"`
	NoFans                    int               `json:"no_of_fans" yaml:"no_of_fans"`
	NoRoomHeaters             int               `json:"no_of_room_heaters" yaml:"no_of_room_heaters"`
	IsDraughtLobby            bool              `json:"is_draught_lobby" yaml:"is_draught_lobby"`
	PermeabilityTestResult    Permeability      `json:"permeability_test_result" yaml:"-"`
	NoStoreys                 int               `json:"no_of_storeys" yaml:"no_of_storeys"`
	PercentageDraughtStripped *float64          `json:"percentage_draught_stripped" yaml:"percentage_draught_stripped"`
	FloorSuspension           FloorSuspension   `json:"floor_suspension" yaml:"floor_suspension"`
	StructureType             StructureType     `json:"structure_type" yaml:"structure_type"`
	NoSidesSheltered          int               `json:"no_sides_sheltered" yaml:"no_sides_sheltered"`
	VentilationMethod         VentilationMethod `json:"ventilation_method" yaml:"ventilation_method"`
	HeatExchangerEfficiency   *float64          `json:"heat_exchanger_efficiency" yaml:"heat_exchanger_efficiency"`
}

// Columns pivots rows into a columnar batch. Row i of every column is rows[i].
// Optional measurements left nil become NaN so the calculators can reject them
// where a formula needs them.
func Columns(rows []Building) Buildings {
	n := len(rows)
	b := Buildings{
		ID: make([]string, n),
		Envelope: Envelope{
			RoofArea:     make([]float64, n),
			RoofUValue:   make([]float64, n),
			WallArea:     make([]float64, n),
			WallUValue:   make([]float64, n),
			FloorArea:    make([]float64, n),
			FloorUValue:  make([]float64, n),
			WindowArea:   make([]float64, n),
			WindowUValue: make([]float64, n),
			DoorArea:     make([]float64, n),
			DoorUValue:   make([]float64, n),
		},
		Ventilation: VentilationInputs{
			BuildingVolume:            make([]float64, n),
			NoChimneys:                make([]int, n),
			NoOpenFlues:               make([]int, n),
			NoFans:                    make([]int, n),
			NoRoomHeaters:             make([]int, n),
			IsDraughtLobby:            make([]bool, n),
			PermeabilityTestResult:    make([]Permeability, n),
			NoStoreys:                 make([]int, n),
			PercentageDraughtStripped: make([]float64, n),
			FloorSuspension:           make([]FloorSuspension, n),
			StructureType:             make([]StructureType, n),
			NoSidesSheltered:          make([]int, n),
			VentilationMethod:         make([]VentilationMethod, n),
			HeatExchangerEfficiency:   make([]float64, n),
		},
		TotalFloorArea: make([]float64, n),
	}

	env, vent := &b.Envelope, &b.Ventilation
	for i, r := range rows {
		b.ID[i] = r.ID

		env.RoofArea[i], env.RoofUValue[i] = r.RoofArea, r.RoofUValue
		env.WallArea[i], env.WallUValue[i] = r.WallArea, r.WallUValue
		env.FloorArea[i], env.FloorUValue[i] = r.FloorArea, r.FloorUValue
		env.WindowArea[i], env.WindowUValue[i] = r.WindowArea, r.WindowUValue
		env.DoorArea[i], env.DoorUValue[i] = r.DoorArea, r.DoorUValue

		b.TotalFloorArea[i] = orNaN(r.TotalFloorArea)

		vent.BuildingVolume[i] = orNaN(r.BuildingVolume)
		vent.NoChimneys[i] = r.NoChimneys
		vent.NoOpenFlues[i] = r.NoOpenFlues
		vent.NoFans[i] = r.NoFans
		vent.NoRoomHeaters[i] = r.NoRoomHeaters
		vent.IsDraughtLobby[i] = r.IsDraughtLobby
		vent.PermeabilityTestResult[i] = r.PermeabilityTestResult
		vent.NoStoreys[i] = r.NoStoreys
		vent.PercentageDraughtStripped[i] = orNaN(r.PercentageDraughtStripped)
		vent.FloorSuspension[i] = r.FloorSuspension
		vent.StructureType[i] = r.StructureType
		vent.NoSidesSheltered[i] = r.NoSidesSheltered
		vent.VentilationMethod[i] = r.VentilationMethod
		vent.HeatExchangerEfficiency[i] = orNaN(r.HeatExchangerEfficiency)
	}
	return b
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Float returns a pointer to v, for filling optional measurements.
func Float(v float64) *float64 { return &v }
