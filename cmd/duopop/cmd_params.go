package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the effective parameter set and its balance",
		Long: `Display the ten model coefficients along with the arrival/departure
ratio of each population and how balanced the two populations are.

A balance below 0.2 means neither population dominates at stationarity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			summary := cfg.Model.Summarize()

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}

			p := summary.Parameters
			fmt.Println("Model parameters:")
			fmt.Printf("  Red arrivals:    alpha1=%g beta1=%g\n", p.Alpha1, p.Beta1)
			fmt.Printf("  Blue arrivals:   alpha2=%g beta2=%g\n", p.Alpha2, p.Beta2)
			fmt.Printf("  Competition:     gamma=%g\n", p.Gamma)
			fmt.Printf("  Red departures:  delta1=%g beta_hat1=%g\n", p.Delta1, p.BetaHat1)
			fmt.Printf("  Blue departures: delta2=%g beta_hat2=%g\n", p.Delta2, p.BetaHat2)
			fmt.Printf("  Pressure:        gamma_hat=%g\n", p.GammaHat)
			fmt.Println()
			fmt.Printf("Red ratio (alpha1/delta1):  %.4f\n", summary.RedRatio)
			fmt.Printf("Blue ratio (alpha2/delta2): %.4f\n", summary.BlueRatio)
			fmt.Printf("Balance: %.4f", summary.RatioBalance)
			if summary.IsBalanced {
				fmt.Println(" (balanced)")
			} else {
				fmt.Println(" (imbalanced)")
			}
			return nil
		},
	}
}
