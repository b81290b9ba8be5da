package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
	"github.com/elektrokombinacija/mapf-lpastar/internal/integration"
	"github.com/elektrokombinacija/mapf-lpastar/internal/lpastar"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Plan each agent once and print the resulting paths",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func loadScenario(path string) (*integration.Scenario, *core.GridMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scenario: %w", err)
	}
	scn, err := integration.ParseScenario(data)
	if err != nil {
		return nil, nil, err
	}
	m, err := scn.BuildMap()
	if err != nil {
		return nil, nil, fmt.Errorf("build grid: %w", err)
	}
	return scn, m, nil
}

func buildPlanners(scn *integration.Scenario, m *core.GridMap) (map[int]*lpastar.Planner, error) {
	planners := make(map[int]*lpastar.Planner, len(scn.Agents))
	for _, a := range scn.Agents {
		h := core.ManhattanHeuristic{Goal: a.Goal, Map: m}
		p, err := lpastar.NewPlanner(a.Start, a.Goal, h, m, a.ID)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", a.ID, err)
		}
		planners[a.ID] = p
	}
	return planners, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	scn, m, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	planners, err := buildPlanners(scn, m)
	if err != nil {
		return err
	}

	cat := lpastar.NewStepCAT(scn.Horizon)
	for _, a := range scn.Agents {
		p := planners[a.ID]
		if !p.FindPath(cat, 0, scn.Horizon) {
			slog.Warn("lpadrive: no path found", "agent_id", a.ID)
			continue
		}
		path := p.Paths(p.Iter())
		fmt.Printf("agent %d: cost=%.0f expanded=%d path=%v\n",
			a.ID, p.PathCost(p.Iter()), p.NumExpanded(p.Iter()), path)
	}
	return nil
}
