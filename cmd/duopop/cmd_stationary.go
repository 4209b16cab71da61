package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/duopop/duopop/internal/model"
	"github.com/spf13/cobra"
)

func newStationaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stationary",
		Short: "Compute the theoretical stationary distribution",
		Long: `Compute the closed-form stationary distribution over the grid
{0..max-states}² and report its most probable states and marginal means.

Examples:
  duopop stationary
  duopop stationary --max-states 20 --top 5
  duopop stationary --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if n, _ := cmd.Flags().GetInt("max-states"); n > 0 {
				cfg.Simulation.MaxStates = n
			}
			topN, _ := cmd.Flags().GetInt("top")

			eng, _, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			dist, err := eng.StationaryDistribution(cfg.Simulation.MaxStates)
			if err != nil {
				return err
			}

			meanX, meanY := distributionMeans(dist)
			top := topStates(dist, topN)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				entries := make([]map[string]any, 0, len(top))
				for _, e := range top {
					entries = append(entries, map[string]any{
						"x": e.state.X, "y": e.state.Y, "p": e.p,
					})
				}
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"max_states": cfg.Simulation.MaxStates,
					"states":     len(dist),
					"mean_x":     meanX,
					"mean_y":     meanY,
					"top":        entries,
				})
			}

			fmt.Printf("Stationary distribution over {0..%d}² (%d states):\n\n",
				cfg.Simulation.MaxStates, len(dist))
			fmt.Printf("Mean occupancy: red=%.3f blue=%.3f\n\n", meanX, meanY)
			fmt.Printf("Most probable states:\n")
			for i, e := range top {
				fmt.Printf("  %d. %s  p=%.5f\n", i+1, e.state, e.p)
			}
			return nil
		},
	}

	cmd.Flags().Int("max-states", 0, "Grid ceiling (overrides config)")
	cmd.Flags().Int("top", 10, "Number of most probable states to show")

	return cmd
}

type stateProb struct {
	state model.State
	p     float64
}

// topStates returns the n highest-probability states, ties broken by
// state order for stable output.
func topStates(dist model.Distribution, n int) []stateProb {
	all := make([]stateProb, 0, len(dist))
	for s, p := range dist {
		all = append(all, stateProb{s, p})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].p != all[j].p {
			return all[i].p > all[j].p
		}
		if all[i].state.X != all[j].state.X {
			return all[i].state.X < all[j].state.X
		}
		return all[i].state.Y < all[j].state.Y
	})
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// distributionMeans computes the marginal mean of each coordinate.
func distributionMeans(dist model.Distribution) (meanX, meanY float64) {
	for s, p := range dist {
		meanX += float64(s.X) * p
		meanY += float64(s.Y) * p
	}
	return meanX, meanY
}
