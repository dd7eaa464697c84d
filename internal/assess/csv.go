package assess

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"index",
	"id",
	"fabric_heat_loss_coefficient",
	"infiltration_due_to_openings",
	"infiltration_due_to_structure",
	"infiltration_rate",
	"effective_air_change_rate",
	"ventilation_heat_loss_coefficient",
	"heat_loss_coefficient",
	"heat_loss_parameter",
	"annual_heat_demand",
}

func WriteResultsCSVFile(path string, rows []ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteResultsCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

func WriteResultsCSV(out io.Writer, rows []ResultRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			r.ID,
			fmtFloat(r.FabricHeatLossCoefficient),
			fmtFloat(r.InfiltrationDueToOpenings),
			fmtFloat(r.InfiltrationDueToStructure),
			fmtFloat(r.InfiltrationRate),
			fmtFloat(r.EffectiveAirChangeRate),
			fmtFloat(r.VentilationHeatLossCoefficient),
			fmtFloat(r.HeatLossCoefficient),
			fmtFloat(r.HeatLossParameter),
			strconv.FormatFloat(r.AnnualHeatDemand, 'f', 0, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
