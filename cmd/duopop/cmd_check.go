package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify reversibility of the rate functions",
		Long: `Verify Kolmogorov's cycle criterion over every four-state cycle in
the grid {0..max-states}². The model is reversible by construction, so
any failing corner indicates inconsistent rate functions.

Examples:
  duopop check
  duopop check --max-states 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if n, _ := cmd.Flags().GetInt("max-states"); n > 0 {
				cfg.Simulation.MaxStates = n
			}

			eng, _, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			var failed [][2]int
			checked := 0
			for x := 0; x < cfg.Simulation.MaxStates; x++ {
				for y := 0; y < cfg.Simulation.MaxStates; y++ {
					ok, err := eng.CheckReversibility(x, y)
					if err != nil {
						return err
					}
					checked++
					if !ok {
						failed = append(failed, [2]int{x, y})
					}
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"checked":    checked,
					"failed":     len(failed),
					"corners":    failed,
					"reversible": len(failed) == 0,
				})
			}

			if len(failed) == 0 {
				fmt.Printf("Reversibility holds at all %d corners.\n", checked)
				return nil
			}
			fmt.Printf("Reversibility FAILED at %d of %d corners:\n", len(failed), checked)
			for _, c := range failed {
				fmt.Printf("  (%d,%d)\n", c[0], c[1])
			}
			return fmt.Errorf("reversibility check failed")
		},
	}

	cmd.Flags().Int("max-states", 0, "Grid ceiling (overrides config)")

	return cmd
}
