package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-lpastar/internal/integration"
	"github.com/elektrokombinacija/mapf-lpastar/internal/lpastar"
)

var benchCmd = &cobra.Command{
	Use:   "bench <scenario.yaml>",
	Short: "Replay a scenario's constraint mutation sequence and report per-iteration search effort",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	scn, m, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	planners, err := buildPlanners(scn, m)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	cat := lpastar.NewStepCAT(scn.Horizon)

	for _, a := range scn.Agents {
		p := planners[a.ID]
		if !p.FindPath(cat, 0, scn.Horizon) {
			slog.Warn("lpadrive: initial plan failed", "run_id", runID, "agent_id", a.ID)
		}
	}
	reportIteration(runID, "initial", planners)

	for i, ev := range scn.Events {
		p, ok := planners[ev.AgentID]
		if !ok {
			return fmt.Errorf("event %d: unknown agent %d", i, ev.AgentID)
		}
		if err := applyEvent(p, ev, cat); err != nil {
			slog.Warn("lpadrive: constraint mutation failed", "run_id", runID, "event", i, "err", err)
		}

		start := time.Now()
		ok = p.FindPath(cat, 0, scn.Horizon)
		elapsed := time.Since(start)
		if !ok {
			slog.Warn("lpadrive: replan failed", "run_id", runID, "event", i, "agent_id", ev.AgentID)
			continue
		}
		fmt.Printf("run=%s event=%d agent=%d kind=%s cost=%.0f expanded=%d elapsed=%v\n",
			runID, i, ev.AgentID, ev.Kind, p.PathCost(p.Iter()), p.NumExpanded(p.Iter()), elapsed)
	}
	return nil
}

func applyEvent(p *lpastar.Planner, ev integration.EventSpec, cat lpastar.CAT) error {
	switch ev.Kind {
	case "add_vertex":
		return p.AddVertexConstraint(ev.Loc, ev.T, cat)
	case "pop_vertex":
		return p.PopVertexConstraint(ev.Loc, ev.T, cat)
	case "add_edge":
		return p.AddEdgeConstraint(ev.From, ev.To, ev.T, cat)
	case "pop_edge":
		return p.PopEdgeConstraint(ev.From, ev.To, ev.T, cat)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func reportIteration(runID, label string, planners map[int]*lpastar.Planner) {
	for id, p := range planners {
		fmt.Fprintf(os.Stderr, "run=%s phase=%s agent=%d cost=%.0f expanded=%d\n",
			runID, label, id, p.PathCost(p.Iter()), p.NumExpanded(p.Iter()))
	}
}
