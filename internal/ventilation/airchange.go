package ventilation

import (
	"fmt"
	"math"
	"sort"

	"rc-building-model/internal/model"
)

// Regime documents how one ventilation method turns infiltration into an effective air change rate.
type Regime struct {
	Method      model.VentilationMethod `json:"method"`
	Description string                  `json:"description"`
	Formula     string                  `json:"formula"`
}

// Regimes lists every ventilation method in the order AllVentilationMethods returns them.
func Regimes() []Regime {
	return []Regime{
		{
			Method:      model.NaturalVentilation,
			Description: "Natural ventilation through openings and the fabric.",
			Formula:     "infiltration if infiltration > 1, else 0.5 + 0.5 × infiltration²",
		},
		{
			Method:      model.PositiveInputVentilationFromLoft,
			Description: "Positive input ventilation drawing air from the loft.",
			Formula:     "natural ventilation rate + 20 / building_volume",
		},
		{
			Method:      model.PositiveInputVentilationFromOutside,
			Description: "Positive input ventilation drawing air from outside.",
			Formula:     "max(0.5, infiltration + 0.25)",
		},
		{
			Method:      model.MechanicalVentilationNoHeatRecovery,
			Description: "Balanced or extract mechanical ventilation without heat recovery.",
			Formula:     "infiltration + 0.5",
		},
		{
			Method:      model.MechanicalVentilationHeatRecovery,
			Description: "Balanced mechanical ventilation with a heat exchanger.",
			Formula:     "infiltration + 0.5 × (1 - heat_exchanger_efficiency / 100)",
		},
	}
}

// partial is the result of one regime: the rows it owns and their values, in the same order.
type partial struct {
	rows   []int
	values []float64
}

// EffectiveAirChangeRate partitions rows by ventilation method, applies the regime formula to
// each subset and recombines the subsets in the original row order. Every row belongs to
// exactly one regime; an unlisted method fails validation.
func EffectiveAirChangeRate(
	method []model.VentilationMethod,
	buildingVolume []float64,
	infiltration []float64,
	heatExchangerEfficiency []float64,
	p Params,
) ([]float64, error) {
	if err := model.CheckLengths(
		model.ColumnLength{Name: "ventilation_method", Len: len(method)},
		model.ColumnLength{Name: "building_volume", Len: len(buildingVolume)},
		model.ColumnLength{Name: "infiltration_rate", Len: len(infiltration)},
		model.ColumnLength{Name: "heat_exchanger_efficiency", Len: len(heatExchangerEfficiency)},
	); err != nil {
		return nil, err
	}
	if err := model.ValidateCategory("ventilation_method", method, model.AllVentilationMethods()); err != nil {
		return nil, err
	}
	var errs model.Errors
	errs.Add(checkVolume(regimeColumn(method, buildingVolume, model.PositiveInputVentilationFromLoft)))
	errs.Add(checkPercentages("heat_exchanger_efficiency", heatRecoveryRows(method, heatExchangerEfficiency)))
	if err := errs.Err(); err != nil {
		return nil, err
	}

	byMethod := make(map[model.VentilationMethod][]int, 5)
	for i, m := range method {
		byMethod[m] = append(byMethod[m], i)
	}

	parts := make([]partial, 0, len(byMethod))
	for _, m := range model.AllVentilationMethods() {
		rows := byMethod[m]
		if len(rows) == 0 {
			continue
		}
		inf := gather(infiltration, rows)
		var values []float64
		switch m {
		case model.NaturalVentilation:
			values = naturalAirChange(inf)
		case model.PositiveInputVentilationFromLoft:
			values = loftAirChange(inf, gather(buildingVolume, rows), p)
		case model.PositiveInputVentilationFromOutside:
			values = outsideAirChange(inf)
		case model.MechanicalVentilationNoHeatRecovery:
			values = mechanicalAirChange(inf)
		case model.MechanicalVentilationHeatRecovery:
			values = heatRecoveryAirChange(inf, gather(heatExchangerEfficiency, rows))
		default:
			return nil, fmt.Errorf("no formula for ventilation method %q", m)
		}
		parts = append(parts, partial{rows: rows, values: values})
	}
	return recombine(len(method), parts)
}

// recombine concatenates the regime results and sorts them back to the original row index.
// It fails if any row is missing or appears twice.
func recombine(n int, parts []partial) ([]float64, error) {
	type indexed struct {
		row   int
		value float64
	}
	all := make([]indexed, 0, n)
	for _, part := range parts {
		for j, row := range part.rows {
			all = append(all, indexed{row: row, value: part.values[j]})
		}
	}
	if len(all) != n {
		return nil, fmt.Errorf("ventilation regimes covered %d rows, expected %d", len(all), n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].row < all[j].row })

	out := make([]float64, n)
	for i, r := range all {
		if r.row != i {
			return nil, fmt.Errorf("ventilation regimes produced row %d where row %d was expected", r.row, i)
		}
		out[i] = r.value
	}
	return out, nil
}

func gather(col []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for j, row := range rows {
		out[j] = col[row]
	}
	return out
}

// regimeColumn keeps col on rows using method m and 1 elsewhere, so a volume check only
// flags the rows that divide by it.
func regimeColumn(method []model.VentilationMethod, col []float64, m model.VentilationMethod) []float64 {
	out := make([]float64, len(col))
	for i := range col {
		out[i] = 1
		if method[i] == m {
			out[i] = col[i]
		}
	}
	return out
}

func naturalAirChange(infiltration []float64) []float64 {
	out := make([]float64, len(infiltration))
	for i, rate := range infiltration {
		if rate > 1 {
			out[i] = rate
		} else {
			out[i] = 0.5 + rate*rate*0.5
		}
	}
	return out
}

func loftAirChange(infiltration, buildingVolume []float64, p Params) []float64 {
	out := naturalAirChange(infiltration)
	for i, volume := range buildingVolume {
		out[i] += p.LoftSupplyRate / volume
	}
	return out
}

func outsideAirChange(infiltration []float64) []float64 {
	out := make([]float64, len(infiltration))
	for i, rate := range infiltration {
		out[i] = math.Max(0.5, rate+0.25)
	}
	return out
}

func mechanicalAirChange(infiltration []float64) []float64 {
	out := make([]float64, len(infiltration))
	for i, rate := range infiltration {
		out[i] = rate + 0.5
	}
	return out
}

func heatRecoveryAirChange(infiltration, efficiency []float64) []float64 {
	out := make([]float64, len(infiltration))
	for i, rate := range infiltration {
		out[i] = rate + 0.5*(1-efficiency[i]/100)
	}
	return out
}
