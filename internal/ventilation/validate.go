package ventilation

import (
	"math"
	"sort"

	"rc-building-model/internal/model"
)

// Validate checks the full ventilation survey before any formula runs: row alignment,
// categorical domains, non-zero volumes, counts and percentages. Every problem found is
// reported, not just the first.
func Validate(v model.VentilationInputs, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := model.CheckLengths(v.Lengths()...); err != nil {
		return err
	}
	var errs model.Errors
	errs.Add(checkVolume(v.BuildingVolume))
	errs.Add(checkCounts("no_of_chimneys", v.NoChimneys))
	errs.Add(checkCounts("no_of_open_flues", v.NoOpenFlues))
	errs.Add(checkCounts("no_of_fans", v.NoFans))
	errs.Add(checkCounts("no_of_room_heaters", v.NoRoomHeaters))
	errs.Add(checkCounts("no_sides_sheltered", v.NoSidesSheltered))
	errs.Add(checkStructureInputs(v.PermeabilityTestResult, v.NoStoreys, v.PercentageDraughtStripped, v.FloorSuspension, v.StructureType, p))
	errs.Add(checkPercentages("heat_exchanger_efficiency", heatRecoveryRows(v.VentilationMethod, v.HeatExchangerEfficiency)))
	errs.Add(model.ValidateCategory("ventilation_method", v.VentilationMethod, model.AllVentilationMethods()))
	return errs.Err()
}

func checkVolume(volume []float64) error {
	var errs model.Errors
	if rows := model.ZeroOrMissingRows(volume); len(rows) > 0 {
		errs.Add(&model.ColumnError{
			Kind:    model.ErrDivisionByZero,
			Column:  "building_volume",
			Rows:    rows,
			Message: "building volume is zero or missing, exclude these buildings before calculating",
		})
	}
	var bad []int
	for i, v := range volume {
		if v < 0 || math.IsInf(v, 0) {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: "building_volume", Rows: bad, Message: "must be finite and > 0"})
	}
	return errs.Err()
}

func checkCounts(column string, counts []int) error {
	var bad []int
	for i, c := range counts {
		if c < 0 {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		return &model.ColumnError{Kind: model.ErrValidation, Column: column, Rows: bad, Message: "counts must be >= 0"}
	}
	return nil
}

// heatRecoveryRows selects the efficiency of the rows that actually have a heat exchanger.
func heatRecoveryRows(methods []model.VentilationMethod, efficiency []float64) map[int]float64 {
	out := make(map[int]float64)
	for i, m := range methods {
		if m == model.MechanicalVentilationHeatRecovery {
			out[i] = efficiency[i]
		}
	}
	return out
}

func checkPercentages(column string, values map[int]float64) error {
	var bad, missing []int
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			missing = append(missing, i)
		case v < 0 || v > 100:
			bad = append(bad, i)
		}
	}
	sort.Ints(bad)
	sort.Ints(missing)
	var errs model.Errors
	if len(missing) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrMissingValue, Column: column, Rows: missing})
	}
	if len(bad) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: column, Rows: bad, Message: "percentages must be within [0, 100]"})
	}
	return errs.Err()
}

// checkStructureInputs validates the theoretical-estimate columns. Categories must be in their
// enumerated set on every row; values are only required on rows without a measured
// permeability, since a tested building never reads them.
func checkStructureInputs(
	permeability []model.Permeability,
	noStoreys []int,
	percentageDraughtStripped []float64,
	floor []model.FloorSuspension,
	structure []model.StructureType,
	p Params,
) error {
	var badPerm, storeys, badPct, missingPct, badFloor, missingFloor, badStructure, missingStructure []int
	for i, perm := range permeability {
		measured := perm.IsMeasured()
		if v, ok := perm.Value(); ok && (v < 0 || math.IsNaN(v)) {
			badPerm = append(badPerm, i)
		}
		switch {
		case floor[i] == "":
			if !measured {
				missingFloor = append(missingFloor, i)
			}
		case !floor[i].Valid():
			badFloor = append(badFloor, i)
		}
		switch {
		case structure[i] == "":
			if !measured && !p.LenientStructureType {
				missingStructure = append(missingStructure, i)
			}
		case !structure[i].Valid() && !p.LenientStructureType:
			badStructure = append(badStructure, i)
		}
		if measured {
			continue
		}
		if noStoreys[i] < 1 {
			storeys = append(storeys, i)
		}
		switch pct := percentageDraughtStripped[i]; {
		case math.IsNaN(pct):
			missingPct = append(missingPct, i)
		case pct < 0 || pct > 100:
			badPct = append(badPct, i)
		}
	}

	var errs model.Errors
	if len(badPerm) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: "permeability_test_result", Rows: badPerm, Message: "measured permeability must be >= 0"})
	}
	if len(storeys) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: "no_of_storeys", Rows: storeys, Message: "must be >= 1"})
	}
	if len(missingPct) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrMissingValue, Column: "percentage_draught_stripped", Rows: missingPct,
			Message: "required when no permeability test result is available"})
	}
	if len(badPct) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: "percentage_draught_stripped", Rows: badPct, Message: "percentages must be within [0, 100]"})
	}
	if len(missingFloor) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrMissingValue, Column: "floor_suspension", Rows: missingFloor,
			Message: "required when no permeability test result is available"})
	}
	if len(missingStructure) > 0 {
		errs.Add(&model.ColumnError{Kind: model.ErrMissingValue, Column: "structure_type", Rows: missingStructure,
			Message: "required when no permeability test result is available"})
	}
	if len(badFloor) > 0 {
		errs.Add(model.InvalidValues("floor_suspension", badFloor, model.Names(model.AllFloorSuspensions())))
	}
	if len(badStructure) > 0 {
		errs.Add(model.InvalidValues("structure_type", badStructure, model.Names(model.AllStructureTypes())))
	}
	return errs.Err()
}

// UnrecognisedStructureRows lists rows the deprecated lenient mode silently maps to "unknown",
// so callers can log them.
func UnrecognisedStructureRows(structure []model.StructureType) []int {
	var rows []int
	for i, s := range structure {
		if !s.Valid() {
			rows = append(rows, i)
		}
	}
	return rows
}
