package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates <x> <y>",
		Short: "Compute transition rates at a state",
		Long: `Compute the four instantaneous transition rates out of state (x,y):
red arrival, blue arrival, red departure, and blue departure.

Example:
  duopop rates 3 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q: %w", args[0], err)
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q: %w", args[1], err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, _, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			rates, err := eng.Rates(x, y)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"state": map[string]int{"x": x, "y": y},
					"rates": rates,
					"total": rates.Total(),
				})
			}

			fmt.Printf("Rates at (%d,%d):\n", x, y)
			fmt.Printf("  Red arrival:    %.6f\n", rates.ArrivalA)
			fmt.Printf("  Blue arrival:   %.6f\n", rates.ArrivalB)
			fmt.Printf("  Red departure:  %.6f\n", rates.DepartureA)
			fmt.Printf("  Blue departure: %.6f\n", rates.DepartureB)
			fmt.Printf("  Total:          %.6f\n", rates.Total())
			return nil
		},
	}
}
