package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/duopop/duopop/internal/config"
	"github.com/duopop/duopop/internal/logging"
	"github.com/duopop/duopop/internal/stats"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one exact sample path of the chain",
		Long: `Simulate the chain with exact continuous-time event sampling,
discard the burn-in prefix, and report descriptive statistics of the
collected samples.

Examples:
  duopop simulate
  duopop simulate --total-time 500 --burn-in 100 --seed 42
  duopop simulate --json`,
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

			res, err := eng.Simulate(cfg.Simulation.TotalTime, cfg.Simulation.BurnInTime, cfg.Simulation.MaxStates)
			if err != nil {
				return err
			}
			summary := stats.Summarize(res.Samples)

			tracer := logging.NewEventLogger(".", cfg.Logging.Level)
			defer tracer.Close()
			tracer.Log(logging.RunEvent{
				Kind:      "simulate",
				Seed:      seed,
				MaxStates: cfg.Simulation.MaxStates,
				TotalTime: cfg.Simulation.TotalTime,
				BurnIn:    cfg.Simulation.BurnInTime,
				Events:    res.Events,
				Samples:   len(res.Samples),
				Truncated: res.Truncated,
			})

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"seed":       seed,
					"final":      res.Final,
					"events":     res.Events,
					"elapsed":    res.Elapsed,
					"truncated":  res.Truncated,
					"samples":    len(res.Samples),
					"trajectory": len(res.Trajectory),
					"statistics": summary,
				})
			}

			fmt.Printf("Simulated %.1f time units after %.1f burn-in (seed %d):\n",
				res.Elapsed, cfg.Simulation.BurnInTime, seed)
			fmt.Printf("  Events:      %d\n", res.Events)
			fmt.Printf("  Samples:     %d\n", len(res.Samples))
			fmt.Printf("  Final state: %s\n", res.Final)
			if res.Truncated {
				fmt.Println("  NOTE: run truncated at the event ceiling")
			}
			fmt.Println()
			printSummary(summary)
			return nil
		},
	}

	addSimFlags(cmd)

	return cmd
}

// addSimFlags registers the simulation control flags shared by the
// simulate and compare commands.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("total-time", 0, "Simulated duration after burn-in (overrides config)")
	cmd.Flags().Float64("burn-in", -1, "Discarded initial duration (overrides config)")
	cmd.Flags().Int("max-states", 0, "Grid ceiling (overrides config)")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible runs (0 = random)")
}

// applySimFlags overlays command line flags onto the loaded config.
func applySimFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetFloat64("total-time"); v > 0 {
		cfg.Simulation.TotalTime = v
	}
	if v, _ := cmd.Flags().GetFloat64("burn-in"); v >= 0 {
		cfg.Simulation.BurnInTime = v
	}
	if v, _ := cmd.Flags().GetInt("max-states"); v > 0 {
		cfg.Simulation.MaxStates = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		cfg.Simulation.Seed = v
	}
}

func printSummary(s stats.Summary) {
	fmt.Println("Sample statistics:")
	fmt.Printf("  Count:       %d\n", s.Count)
	fmt.Printf("  Mean:        red=%.3f blue=%.3f\n", s.MeanX, s.MeanY)
	fmt.Printf("  Variance:    red=%.3f blue=%.3f\n", s.VarX, s.VarY)
	fmt.Printf("  Covariance:  %.3f\n", s.Covariance)
	fmt.Printf("  Correlation: %.3f\n", s.Correlation)
}
