package assess

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Columns are the engine outputs, one value per building in input order.
type Columns struct {
	FabricHeatLossCoefficient      []float64
	InfiltrationDueToOpenings      []float64
	InfiltrationDueToStructure     []float64
	InfiltrationRate               []float64
	EffectiveAirChangeRate         []float64
	VentilationHeatLossCoefficient []float64
	HeatLossCoefficient            []float64
	HeatLossParameter              []float64
	AnnualHeatDemand               []float64
}

func (c *Columns) append(o Columns) {
	c.FabricHeatLossCoefficient = append(c.FabricHeatLossCoefficient, o.FabricHeatLossCoefficient...)
	c.InfiltrationDueToOpenings = append(c.InfiltrationDueToOpenings, o.InfiltrationDueToOpenings...)
	c.InfiltrationDueToStructure = append(c.InfiltrationDueToStructure, o.InfiltrationDueToStructure...)
	c.InfiltrationRate = append(c.InfiltrationRate, o.InfiltrationRate...)
	c.EffectiveAirChangeRate = append(c.EffectiveAirChangeRate, o.EffectiveAirChangeRate...)
	c.VentilationHeatLossCoefficient = append(c.VentilationHeatLossCoefficient, o.VentilationHeatLossCoefficient...)
	c.HeatLossCoefficient = append(c.HeatLossCoefficient, o.HeatLossCoefficient...)
	c.HeatLossParameter = append(c.HeatLossParameter, o.HeatLossParameter...)
	c.AnnualHeatDemand = append(c.AnnualHeatDemand, o.AnnualHeatDemand...)
}

// ResultRow is one building's output.
// This is the primary artifact for "what did each dwelling score" in an assessment.
type ResultRow struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`

	FabricHeatLossCoefficient float64 `json:"fabric_heat_loss_coefficient"`

	InfiltrationDueToOpenings      float64 `json:"infiltration_due_to_openings"`
	InfiltrationDueToStructure     float64 `json:"infiltration_due_to_structure"`
	InfiltrationRate               float64 `json:"infiltration_rate"`
	EffectiveAirChangeRate         float64 `json:"effective_air_change_rate"`
	VentilationHeatLossCoefficient float64 `json:"ventilation_heat_loss_coefficient"`

	HeatLossCoefficient float64 `json:"heat_loss_coefficient"`
	HeatLossParameter   float64 `json:"heat_loss_parameter"`
	AnnualHeatDemand    float64 `json:"annual_heat_demand"`
}

// Summary aggregates a batch.
type Summary struct {
	Buildings               int     `json:"buildings"`
	Chunks                  int     `json:"chunks"`
	TotalAnnualHeatDemand   float64 `json:"total_annual_heat_demand"`
	MeanAnnualHeatDemand    float64 `json:"mean_annual_heat_demand"`
	MeanHeatLossParameter   float64 `json:"mean_heat_loss_parameter"`
	MaxHeatLossParameter    float64 `json:"max_heat_loss_parameter"`
	MeanHeatLossCoefficient float64 `json:"mean_heat_loss_coefficient"`
}

type Result struct {
	Columns Columns
	Rows    []ResultRow
	Summary Summary
}

func buildRows(ids []string, c Columns) []ResultRow {
	rows := make([]ResultRow, len(c.HeatLossCoefficient))
	for i := range rows {
		r := ResultRow{
			Index:                          i,
			FabricHeatLossCoefficient:      c.FabricHeatLossCoefficient[i],
			InfiltrationDueToOpenings:      c.InfiltrationDueToOpenings[i],
			InfiltrationDueToStructure:     c.InfiltrationDueToStructure[i],
			InfiltrationRate:               c.InfiltrationRate[i],
			EffectiveAirChangeRate:         c.EffectiveAirChangeRate[i],
			VentilationHeatLossCoefficient: c.VentilationHeatLossCoefficient[i],
			HeatLossCoefficient:            c.HeatLossCoefficient[i],
			HeatLossParameter:              c.HeatLossParameter[i],
			AnnualHeatDemand:               c.AnnualHeatDemand[i],
		}
		if i < len(ids) {
			r.ID = ids[i]
		}
		rows[i] = r
	}
	return rows
}

func summarize(c Columns, chunks int) Summary {
	s := Summary{Buildings: len(c.HeatLossCoefficient), Chunks: chunks}
	if s.Buildings == 0 {
		return s
	}
	s.TotalAnnualHeatDemand = floats.Sum(c.AnnualHeatDemand)
	s.MeanAnnualHeatDemand = stat.Mean(c.AnnualHeatDemand, nil)
	s.MeanHeatLossParameter = stat.Mean(c.HeatLossParameter, nil)
	s.MaxHeatLossParameter = floats.Max(c.HeatLossParameter)
	s.MeanHeatLossCoefficient = stat.Mean(c.HeatLossCoefficient, nil)
	return s
}
