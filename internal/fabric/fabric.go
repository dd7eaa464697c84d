// Package fabric computes conduction and thermal bridging losses through the building envelope
// and normalises the total heat loss by floor area (DEAP 4.2.0 section 3).
package fabric

import (
	"errors"
	"math"

	"rc-building-model/internal/model"

	"gonum.org/v1/gonum/floats"
)

// DefaultThermalBridgingFactor is the DEAP default y-value in W/m²K.
const DefaultThermalBridgingFactor = 0.05

// Params configures the fabric calculation.
type Params struct {
	// ThermalBridgingFactor multiplies the total exposed element area.
	ThermalBridgingFactor float64
}

func DefaultParams() Params {
	return Params{ThermalBridgingFactor: DefaultThermalBridgingFactor}
}

func (p Params) Validate() error {
	if p.ThermalBridgingFactor < 0 {
		return errors.New("ThermalBridgingFactor must be >= 0")
	}
	return nil
}

// HeatLossCoefficient returns Σ(area·U) + factor·Σ(area) over roof, wall, floor, window and door,
// in W/K, one value per building.
func HeatLossCoefficient(env model.Envelope, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cols := env.Columns()
	lengths := make([]model.ColumnLength, len(cols))
	for i, c := range cols {
		lengths[i] = model.ColumnLength{Name: c.Name, Len: len(c.Values)}
	}
	if err := model.CheckLengths(lengths...); err != nil {
		return nil, err
	}
	if err := CheckEnvelope(env); err != nil {
		return nil, err
	}

	n := len(env.RoofArea)
	planeArea := make([]float64, n)
	floats.Add(planeArea, env.RoofArea)
	floats.Add(planeArea, env.FloorArea)
	floats.Add(planeArea, env.DoorArea)
	floats.Add(planeArea, env.WallArea)
	floats.Add(planeArea, env.WindowArea)

	out := make([]float64, n)
	floats.AddScaled(out, p.ThermalBridgingFactor, planeArea)

	conduction := make([]float64, n)
	scratch := make([]float64, n)
	for _, pair := range [][2][]float64{
		{env.WallArea, env.WallUValue},
		{env.RoofArea, env.RoofUValue},
		{env.FloorArea, env.FloorUValue},
		{env.WindowArea, env.WindowUValue},
		{env.DoorArea, env.DoorUValue},
	} {
		floats.MulTo(scratch, pair[0], pair[1])
		floats.Add(conduction, scratch)
	}
	floats.Add(out, conduction)
	return out, nil
}

// ComponentHeatLossCoefficient is the loss through a single element type:
// area·U plus its share of thermal bridging.
func ComponentHeatLossCoefficient(area, uvalue []float64, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckLengths(
		model.ColumnLength{Name: "area", Len: len(area)},
		model.ColumnLength{Name: "uvalue", Len: len(uvalue)},
	); err != nil {
		return nil, err
	}
	out := make([]float64, len(area))
	floats.MulTo(out, area, uvalue)
	floats.AddScaled(out, p.ThermalBridgingFactor, area)
	return out, nil
}

// CheckEnvelope rejects missing (NaN) and negative or infinite areas and U-values,
// reporting every offending column with its rows.
func CheckEnvelope(env model.Envelope) error {
	var errs model.Errors
	for _, c := range env.Columns() {
		var missing, bad []int
		for i, v := range c.Values {
			switch {
			case math.IsNaN(v):
				missing = append(missing, i)
			case v < 0 || math.IsInf(v, 0):
				bad = append(bad, i)
			}
		}
		if len(missing) > 0 {
			errs.Add(&model.ColumnError{Kind: model.ErrMissingValue, Column: c.Name, Rows: missing})
		}
		if len(bad) > 0 {
			errs.Add(&model.ColumnError{Kind: model.ErrValidation, Column: c.Name, Rows: bad, Message: "must be finite and >= 0"})
		}
	}
	return errs.Err()
}
