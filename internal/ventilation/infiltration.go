package ventilation

import (
	"rc-building-model/internal/model"
)

// Openings are the survey columns feeding infiltration due to openings.
type Openings struct {
	BuildingVolume []float64
	NoChimneys     []int
	NoOpenFlues    []int
	NoFans         []int
	NoRoomHeaters  []int
	IsDraughtLobby []bool
}

func (o Openings) lengths() []model.ColumnLength {
	return []model.ColumnLength{
		{Name: "building_volume", Len: len(o.BuildingVolume)},
		{Name: "no_of_chimneys", Len: len(o.NoChimneys)},
		{Name: "no_of_open_flues", Len: len(o.NoOpenFlues)},
		{Name: "no_of_fans", Len: len(o.NoFans)},
		{Name: "no_of_room_heaters", Len: len(o.NoRoomHeaters)},
		{Name: "is_draught_lobby", Len: len(o.IsDraughtLobby)},
	}
}

// Structure are the survey columns feeding infiltration due to structure.
type Structure struct {
	PermeabilityTestResult    []model.Permeability
	NoStoreys                 []int
	PercentageDraughtStripped []float64
	FloorSuspension           []model.FloorSuspension
	StructureType             []model.StructureType
}

func (s Structure) lengths() []model.ColumnLength {
	return []model.ColumnLength{
		{Name: "permeability_test_result", Len: len(s.PermeabilityTestResult)},
		{Name: "no_of_storeys", Len: len(s.NoStoreys)},
		{Name: "percentage_draught_stripped", Len: len(s.PercentageDraughtStripped)},
		{Name: "floor_suspension", Len: len(s.FloorSuspension)},
		{Name: "structure_type", Len: len(s.StructureType)},
	}
}

// OpeningsOf selects the opening columns of a survey.
func OpeningsOf(v model.VentilationInputs) Openings {
	return Openings{
		BuildingVolume: v.BuildingVolume,
		NoChimneys:     v.NoChimneys,
		NoOpenFlues:    v.NoOpenFlues,
		NoFans:         v.NoFans,
		NoRoomHeaters:  v.NoRoomHeaters,
		IsDraughtLobby: v.IsDraughtLobby,
	}
}

// StructureOf selects the structural columns of a survey.
func StructureOf(v model.VentilationInputs) Structure {
	return Structure{
		PermeabilityTestResult:    v.PermeabilityTestResult,
		NoStoreys:                 v.NoStoreys,
		PercentageDraughtStripped: v.PercentageDraughtStripped,
		FloorSuspension:           v.FloorSuspension,
		StructureType:             v.StructureType,
	}
}

// InfiltrationDueToOpenings returns, in ach:
//
//	(chimneys·40 + open flues·20 + fans·10 + room heaters·40) / volume + 0.05 without a draught lobby
//
// A zero building volume anywhere in the batch fails before anything is divided.
func InfiltrationDueToOpenings(o Openings, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckLengths(o.lengths()...); err != nil {
		return nil, err
	}
	var errs model.Errors
	errs.Add(checkVolume(o.BuildingVolume))
	errs.Add(checkCounts("no_of_chimneys", o.NoChimneys))
	errs.Add(checkCounts("no_of_open_flues", o.NoOpenFlues))
	errs.Add(checkCounts("no_of_fans", o.NoFans))
	errs.Add(checkCounts("no_of_room_heaters", o.NoRoomHeaters))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	out := make([]float64, len(o.BuildingVolume))
	for i, volume := range o.BuildingVolume {
		out[i] = float64(o.NoChimneys[i])*p.ChimneyRate/volume +
			float64(o.NoOpenFlues[i])*p.OpenFlueRate/volume +
			float64(o.NoFans[i])*p.FanRate/volume +
			float64(o.NoRoomHeaters[i])*p.RoomHeaterRate/volume
		if !o.IsDraughtLobby[i] {
			out[i] += p.NoDraughtLobbyRate
		}
	}
	return out, nil
}

// InfiltrationDueToStructure uses a building's permeability test result when it has one,
// otherwise the theoretical estimate:
//
//	(storeys-1)·0.1 + structure rate + floor rate + (0.25 - 0.2·draught stripped/100)
//
// The choice is made per row.
func InfiltrationDueToStructure(s Structure, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckLengths(s.lengths()...); err != nil {
		return nil, err
	}
	if err := checkStructureInputs(s.PermeabilityTestResult, s.NoStoreys, s.PercentageDraughtStripped, s.FloorSuspension, s.StructureType, p); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.PermeabilityTestResult))
	for i, perm := range s.PermeabilityTestResult {
		if measured, ok := perm.Value(); ok {
			out[i] = measured
			continue
		}
		out[i] = theoreticalInfiltration(p,
			s.NoStoreys[i],
			s.StructureType[i],
			s.FloorSuspension[i],
			s.PercentageDraughtStripped[i],
		)
	}
	return out, nil
}

func theoreticalInfiltration(p Params, storeys int, structure model.StructureType, floor model.FloorSuspension, pctDraughtStripped float64) float64 {
	height := float64(storeys-1) * p.StoreyRate
	draught := p.DraughtBaseRate - p.DraughtStrippedRate*(pctDraughtStripped/100)
	return height + p.structureRate(structure) + p.floorRate(floor) + draught
}

// ShelterAdjusted applies the sheltering factor 1 - sides·0.075 to an infiltration rate.
func ShelterAdjusted(infiltration []float64, noSidesSheltered []int, p Params) ([]float64, error) {
	if err := model.CheckLengths(
		model.ColumnLength{Name: "infiltration_rate", Len: len(infiltration)},
		model.ColumnLength{Name: "no_sides_sheltered", Len: len(noSidesSheltered)},
	); err != nil {
		return nil, err
	}
	if err := checkCounts("no_sides_sheltered", noSidesSheltered); err != nil {
		return nil, err
	}
	out := make([]float64, len(infiltration))
	for i, rate := range infiltration {
		out[i] = rate * (1 - float64(noSidesSheltered[i])*p.ShelterFactorPerSide)
	}
	return out, nil
}

// Infiltration is the breakdown of a batch's infiltration rate, in ach.
type Infiltration struct {
	DueToOpenings  []float64
	DueToStructure []float64
	// Rate is (openings + structure) adjusted for shelter.
	Rate []float64
}

// InfiltrationRate combines openings and structure and adjusts the sum for shelter.
func InfiltrationRate(v model.VentilationInputs, p Params) (*Infiltration, error) {
	if err := model.CheckLengths(v.Lengths()...); err != nil {
		return nil, err
	}
	openings, err := InfiltrationDueToOpenings(OpeningsOf(v), p)
	if err != nil {
		return nil, err
	}
	structure, err := InfiltrationDueToStructure(StructureOf(v), p)
	if err != nil {
		return nil, err
	}
	combined := make([]float64, len(openings))
	for i := range combined {
		combined[i] = openings[i] + structure[i]
	}
	rate, err := ShelterAdjusted(combined, v.NoSidesSheltered, p)
	if err != nil {
		return nil, err
	}
	return &Infiltration{DueToOpenings: openings, DueToStructure: structure, Rate: rate}, nil
}
