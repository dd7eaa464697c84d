package survey

import (
	"math"

	"rc-building-model/internal/model"
)

// Dimensions are the optional storey measurements used to derive a building volume
// when the survey does not record one. Areas in m², heights in m.
type Dimensions struct {
	GroundFloorArea    *float64 `json:"ground_floor_area,omitempty"`
	GroundFloorHeight  *float64 `json:"ground_floor_height,omitempty"`
	FirstFloorArea     *float64 `json:"first_floor_area,omitempty"`
	FirstFloorHeight   *float64 `json:"first_floor_height,omitempty"`
	SecondFloorArea    *float64 `json:"second_floor_area,omitempty"`
	SecondFloorHeight  *float64 `json:"second_floor_height,omitempty"`
	ThirdFloorArea     *float64 `json:"third_floor_area,omitempty"`
	ThirdFloorHeight   *float64 `json:"third_floor_height,omitempty"`
	AssumedFloorHeight *float64 `json:"assumed_floor_height,omitempty"`
}

// Record is one surveyed building as it appears in a JSON or CSV file.
type Record struct {
	model.Building
	Dimensions
}

// BuildingVolume derives a volume in m³, preferring per-storey measurements:
//
//	ground area·height + first + second + third (a missing upper storey counts as zero)
//
// and otherwise floor_area × no_of_storeys × assumed_floor_height.
// It reports false when neither set of measurements is present.
func BuildingVolume(d Dimensions, floorArea float64, noStoreys int) (float64, bool) {
	if present(d.GroundFloorArea) && present(d.GroundFloorHeight) {
		return *d.GroundFloorArea**d.GroundFloorHeight +
			orZero(d.FirstFloorArea)*orZero(d.FirstFloorHeight) +
			orZero(d.SecondFloorArea)*orZero(d.SecondFloorHeight) +
			orZero(d.ThirdFloorArea)*orZero(d.ThirdFloorHeight), true
	}
	if present(d.AssumedFloorHeight) && noStoreys > 0 && !math.IsNaN(floorArea) {
		return floorArea * float64(noStoreys) * *d.AssumedFloorHeight, true
	}
	return 0, false
}

// Resolve fills in every building volume the survey left blank. Rows that have neither a
// volume nor the dimensions to derive one fail together with model.ErrMissingValue.
// A recorded volume, zero included, is kept as is for the calculators to judge.
func Resolve(records []Record) ([]model.Building, error) {
	out := make([]model.Building, len(records))
	var missing []int
	for i, r := range records {
		b := r.Building
		if !present(b.BuildingVolume) {
			v, ok := BuildingVolume(r.Dimensions, b.FloorArea, b.NoStoreys)
			if !ok {
				missing = append(missing, i)
			}
			b.BuildingVolume = &v
		}
		out[i] = b
	}
	if len(missing) > 0 {
		return nil, &model.ColumnError{
			Kind:    model.ErrMissingValue,
			Column:  "building_volume",
			Rows:    missing,
			Message: "supply building_volume, per-storey areas and heights, or no_of_storeys with assumed_floor_height",
		}
	}
	return out, nil
}

func present(v *float64) bool { return v != nil && !math.IsNaN(*v) }

func orZero(v *float64) float64 {
	if !present(v) {
		return 0
	}
	return *v
}
