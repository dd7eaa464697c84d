package main

import (
	"fmt"
	"text/tabwriter"

	"rc-building-model/internal/demand"

	"github.com/spf13/cobra"
)

var demandHLC []float64

var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Annual space heat demand for given heat loss coefficients",
	Long: `Compute annual space heat demand (kWh) from one or more heat loss
coefficients (W/K), using the monthly temperature profiles and heating season
of the model config.

Examples:
  rcbm demand --hlc 121
  rcbm demand --hlc 121,150 --config model.yaml`,
	RunE: runDemand,
}

func init() {
	rootCmd.AddCommand(demandCmd)

	demandCmd.Flags().Float64SliceVar(&demandHLC, "hlc", nil, "Heat loss coefficients in W/K, comma separated [required]")
	demandCmd.MarkFlagRequired("hlc")
}

func runDemand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	annual, err := demand.AnnualHeatDemand(demandHLC, cfg.Params().Demand)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "HLC (W/K)\tDemand (kWh/yr)\t")
	for i, hlc := range demandHLC {
		fmt.Fprintf(w, "%.2f\t%.0f\t\n", hlc, annual[i])
	}
	return w.Flush()
}
