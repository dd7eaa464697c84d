// Package ventilation implements the DEAP 4.2.0 ventilation heat loss model: infiltration
// through openings and the structure, an effective air change rate per ventilation regime,
// and the resulting heat loss coefficient.
package ventilation

import (
	"rc-building-model/internal/model"

	"gonum.org/v1/gonum/floats"
)

// HeatLossCoefficient returns volume × 0.33 × effective air change rate, in W/K.
func HeatLossCoefficient(buildingVolume, effectiveAirChangeRate []float64, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := model.CheckLengths(
		model.ColumnLength{Name: "building_volume", Len: len(buildingVolume)},
		model.ColumnLength{Name: "effective_air_change_rate", Len: len(effectiveAirChangeRate)},
	); err != nil {
		return nil, err
	}
	out := make([]float64, len(buildingVolume))
	floats.AddScaled(out, p.HeatLossConstant, buildingVolume)
	floats.Mul(out, effectiveAirChangeRate)
	return out, nil
}

// Result holds every intermediate column of a ventilation calculation.
type Result struct {
	Infiltration
	EffectiveAirChangeRate []float64
	HeatLossCoefficient    []float64
}

// Calculate runs the full ventilation model on a survey batch. The batch is validated as a
// whole first, so a failure never leaves a partially computed result.
func Calculate(v model.VentilationInputs, p Params) (*Result, error) {
	if err := Validate(v, p); err != nil {
		return nil, err
	}
	inf, err := InfiltrationRate(v, p)
	if err != nil {
		return nil, err
	}
	effective, err := EffectiveAirChangeRate(v.VentilationMethod, v.BuildingVolume, inf.Rate, v.HeatExchangerEfficiency, p)
	if err != nil {
		return nil, err
	}
	hlc, err := HeatLossCoefficient(v.BuildingVolume, effective, p)
	if err != nil {
		return nil, err
	}
	return &Result{
		Infiltration:           *inf,
		EffectiveAirChangeRate: effective,
		HeatLossCoefficient:    hlc,
	}, nil
}
