package fabric

import (
	"rc-building-model/internal/model"

	"gonum.org/v1/gonum/floats"
)

// HeatLossParameter returns (fabric + ventilation) / total floor area in W/m²K.
//
// The whole floor area column is checked before dividing: a single zero or missing
// entry fails the batch with model.ErrDivisionByZero.
func HeatLossParameter(fabricHLC, ventilationHLC, totalFloorArea []float64) ([]float64, error) {
	if err := model.CheckLengths(
		model.ColumnLength{Name: "fabric_heat_loss_coefficient", Len: len(fabricHLC)},
		model.ColumnLength{Name: "ventilation_heat_loss_coefficient", Len: len(ventilationHLC)},
		model.ColumnLength{Name: "total_floor_area", Len: len(totalFloorArea)},
	); err != nil {
		return nil, err
	}
	if err := CheckFloorArea(totalFloorArea); err != nil {
		return nil, err
	}
	out := make([]float64, len(fabricHLC))
	floats.AddTo(out, fabricHLC, ventilationHLC)
	floats.Div(out, totalFloorArea)
	return out, nil
}

// CheckFloorArea rejects zero or missing floor areas.
func CheckFloorArea(totalFloorArea []float64) error {
	if rows := model.ZeroOrMissingRows(totalFloorArea); len(rows) > 0 {
		return &model.ColumnError{
			Kind:    model.ErrDivisionByZero,
			Column:  "total_floor_area",
			Rows:    rows,
			Message: "cannot divide heat loss coefficient by a zero or missing floor area, remove these buildings",
		}
	}
	return nil
}
