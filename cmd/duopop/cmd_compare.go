package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/duopop/duopop/internal/logging"
	"github.com/duopop/duopop/internal/stats"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare simulation against the theoretical distribution",
		Long: `Run one simulation, build the empirical distribution from its samples,
and measure the total variation distance to the closed-form stationary
distribution. Small distances mean the simulated chain has converged to
the theory.

Examples:
  duopop compare
  duopop compare --total-time 1000 --seed 7
  duopop compare --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applySimFlags(cmd, cfg)

			eng, seed, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			theoretical, err := eng.StationaryDistribution(cfg.Simulation.MaxStates)
			if err != nil {
				return err
			}

			res, err := eng.Simulate(cfg.Simulation.TotalTime, cfg.Simulation.BurnInTime, cfg.Simulation.MaxStates)
			if err != nil {
				return err
			}

			empirical := eng.EmpiricalDistribution(res.Samples, cfg.Simulation.MaxStates)
			tv := stats.TotalVariation(theoretical, empirical)
			summary := stats.Summarize(res.Samples)
			balance := eng.ParameterSummary()

			tracer := logging.NewEventLogger(".", cfg.Logging.Level)
			defer tracer.Close()
			tracer.Log(logging.RunEvent{
				Kind:      "compare",
				Seed:      seed,
				MaxStates: cfg.Simulation.MaxStates,
				TotalTime: cfg.Simulation.TotalTime,
				BurnIn:    cfg.Simulation.BurnInTime,
				Events:    res.Events,
				Samples:   len(res.Samples),
				Truncated: res.Truncated,
				TVDist:    tv,
			})

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"seed":               seed,
					"tv_distance":        tv,
					"events":             res.Events,
					"samples":            len(res.Samples),
					"truncated":          res.Truncated,
					"statistics":         summary,
					"parameter_summary":  balance,
					"theoretical_states": len(theoretical),
				})
			}

			fmt.Printf("Compared %d samples against the theoretical distribution (seed %d):\n\n",
				len(res.Samples), seed)
			fmt.Printf("Total variation distance: %.4f\n", tv)
			if res.Truncated {
				fmt.Println("NOTE: run truncated at the event ceiling")
			}
			fmt.Println()
			printSummary(summary)
			fmt.Println()
			fmt.Printf("Ratio balance: %.4f", balance.RatioBalance)
			if balance.IsBalanced {
				fmt.Println(" (balanced)")
			} else {
				fmt.Println(" (imbalanced)")
			}
			return nil
		},
	}

	addSimFlags(cmd)

	return cmd
}
