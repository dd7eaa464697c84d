package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"rc-building-model/internal/assess"
	"rc-building-model/internal/model"
	"rc-building-model/internal/survey"

	"github.com/spf13/cobra"
)

var (
	assessData   string
	assessOut    string
	assessFormat string
	assessLimit  int
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a survey of buildings",
	Long: `Run the full heat loss pipeline over a survey file (JSON or CSV) and report
fabric and ventilation heat loss, heat loss parameter and annual heat demand
per building.

A batch is evaluated as a whole: any invalid row rejects the whole file and
the error names every offending column and row.

Examples:
  rcbm assess --data buildings.json
  rcbm assess --data buildings.csv --config model.yaml --out results/assessment.csv
  rcbm assess --data buildings.csv --format csv > results.csv`,
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVarP(&assessData, "data", "d", "", "Survey file, .json or .csv [required]")
	assessCmd.Flags().StringVarP(&assessOut, "out", "o", "", "Optional: write per-building results CSV to this path")
	assessCmd.Flags().StringVarP(&assessFormat, "format", "f", "table", "Output format: table or csv")
	assessCmd.Flags().IntVarP(&assessLimit, "limit", "n", 20, "Rows shown in table output (0=all)")

	assessCmd.MarkFlagRequired("data")
}

func runAssess(cmd *cobra.Command, args []string) error {
	if assessFormat != "table" && assessFormat != "csv" {
		return fmt.Errorf("unsupported format %q, use table or csv", assessFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	b, err := survey.Load(assessData)
	if err != nil {
		return err
	}

	engine, err := assess.New(cfg.Params(), assess.Options{
		ChunkSize: cfg.Engine.ChunkSize,
		Workers:   cfg.Engine.Workers,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	res, err := engine.Run(context.Background(), b)
	if err != nil {
		printColumnErrors(cmd.ErrOrStderr(), err)
		return err
	}

	if assessOut != "" {
		if err := os.MkdirAll(filepath.Dir(assessOut), 0o755); err != nil {
			return err
		}
		if err := assess.WriteResultsCSVFile(assessOut, res.Rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(res.Rows), assessOut)
	}

	out := cmd.OutOrStdout()
	if assessFormat == "csv" {
		return assess.WriteResultsCSV(out, res.Rows)
	}
	printAssessment(out, res, assessLimit)
	return nil
}

func printAssessment(out io.Writer, res *assess.Result, limit int) {
	s := res.Summary

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     HEAT LOSS ASSESSMENT")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "SUMMARY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Buildings:\t%d\n", s.Buildings)
	fmt.Fprintf(w, "  Total annual heat demand:\t%.0f kWh\n", s.TotalAnnualHeatDemand)
	fmt.Fprintf(w, "  Mean annual heat demand:\t%.0f kWh\n", s.MeanAnnualHeatDemand)
	fmt.Fprintf(w, "  Mean heat loss coefficient:\t%.2f W/K\n", s.MeanHeatLossCoefficient)
	fmt.Fprintf(w, "  Mean heat loss parameter:\t%.3f W/m²K\n", s.MeanHeatLossParameter)
	fmt.Fprintf(w, "  Max heat loss parameter:\t%.3f W/m²K\n", s.MaxHeatLossParameter)
	w.Flush()
	fmt.Fprintln(out)

	if len(res.Rows) == 0 {
		return
	}

	rows := res.Rows
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	fmt.Fprintln(out, "BUILDINGS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "  building\tfabric HLC\tACH\tvent HLC\tHLC\tHLP\tkWh/yr\t")
	for _, r := range rows {
		label := r.ID
		if label == "" {
			label = fmt.Sprint(r.Index)
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\t%.2f\t%.2f\t%.3f\t%.0f\t\n",
			label,
			r.FabricHeatLossCoefficient,
			r.EffectiveAirChangeRate,
			r.VentilationHeatLossCoefficient,
			r.HeatLossCoefficient,
			r.HeatLossParameter,
			r.AnnualHeatDemand,
		)
	}
	w.Flush()
	if len(rows) < len(res.Rows) {
		fmt.Fprintf(out, "  ... %d more (use --limit 0 or --out)\n", len(res.Rows)-len(rows))
	}
	fmt.Fprintln(out)
}

func printColumnErrors(out io.Writer, err error) {
	cols := model.ColumnErrors(err)
	if len(cols) == 0 {
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  column\terror\trows\t")
	for _, ce := range cols {
		fmt.Fprintf(w, "  %s\t%v\t%d\t\n", ce.Column, ce.Kind, len(ce.Rows))
	}
	w.Flush()
}
