package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"rc-building-model/internal/demand"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Print the monthly temperature profiles and heating season in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p := cfg.Params().Demand
		deltaT := p.DeltaT()
		hours := demand.HoursPerMonth()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "month\tinternal °C\texternal °C\tΔT\thours\theating")
		for m := time.January; m <= time.December; m++ {
			heating := ""
			if p.Season.Contains(m) {
				heating = "✓"
			}
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f\t%s\n",
				m.String()[:3], p.Internal.Get(m), p.External.Get(m), deltaT.Get(m), hours.Get(m), heating)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
