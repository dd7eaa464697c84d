// Package demand turns a heat loss coefficient into monthly and annual space heating demand
// using monthly mean temperatures (degree-hours over the heating season).
package demand

import (
	"fmt"
	"math"
	"time"

	"rc-building-model/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Method selects how annual demand is aggregated.
type Method string

// Monthly aggregates monthly mean temperature differences. It is the only method.
const Monthly Method = "monthly"

// AllMethods returns the supported aggregation methods.
func AllMethods() []Method { return []Method{Monthly} }

func (m Method) Valid() bool { return m == Monthly }

// Params configures the demand aggregation. Temperatures are in °C.
type Params struct {
	Method   Method
	Internal MonthlyProfile
	External MonthlyProfile
	Season   Season
}

// DefaultParams uses the DEAP reference temperatures and the heating season.
func DefaultParams() Params {
	return Params{
		Method:   Monthly,
		Internal: DefaultInternalTemperatures(),
		External: DefaultExternalTemperatures(),
		Season:   HeatingSeason(),
	}
}

func (p Params) Validate() error {
	if !p.Method.Valid() {
		return model.InvalidValues("method", nil, model.Names(AllMethods()))
	}
	for i := range p.Internal {
		if math.IsNaN(p.Internal[i]) || math.IsNaN(p.External[i]) {
			return fmt.Errorf("%w: temperature for %s", model.ErrMissingValue, monthKey(time.Month(i+1)))
		}
	}
	return nil
}

// DeltaT is the internal minus external temperature of each month.
func (p Params) DeltaT() MonthlyProfile {
	return p.Internal.Sub(p.External)
}

// MonthlyHeatLoss is the cross join of buildings and months: entry (b, m) is
// hlc[b] × deltaT[m] × hours[m] / 1000, in kWh. The result has len(hlc) rows in input
// order and 12 columns, January first. hlc must not be empty.
func MonthlyHeatLoss(hlc []float64, deltaT, hours MonthlyProfile) *mat.Dense {
	perWatt := make([]float64, 12)
	for i := range perWatt {
		perWatt[i] = deltaT[i] * hours[i] / 1000
	}
	var out mat.Dense
	out.Outer(1, mat.NewVecDense(len(hlc), hlc), mat.NewVecDense(12, perWatt))
	return &out
}

// AnnualHeatDemand sums each building's monthly heat loss over the season and rounds it to
// whole kWh, half to even. The output has the same length and order as hlc.
func AnnualHeatDemand(hlc []float64, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rows := missingRows(hlc); len(rows) > 0 {
		return nil, &model.ColumnError{Kind: model.ErrMissingValue, Column: "heat_loss_coefficient", Rows: rows}
	}
	if len(hlc) == 0 {
		return []float64{}, nil
	}

	losses := MonthlyHeatLoss(hlc, p.DeltaT(), p.Season.Mask(HoursPerMonth()))
	out := make([]float64, len(hlc))
	for i := range out {
		out[i] = math.RoundToEven(floats.Sum(losses.RawRowView(i)))
	}
	return out, nil
}

func missingRows(values []float64) []int {
	var rows []int
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			rows = append(rows, i)
		}
	}
	return rows
}
