// Command genscenario generates deterministic grid/agent/event scenario
// files for lpadrive bench, seeded with an explicit RNG for reproducible
// output.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
	"github.com/elektrokombinacija/mapf-lpastar/internal/integration"
)

func generateLayout(rng *rand.Rand, rows, cols int, obstacleDensity float64) []string {
	layout := make([]string, rows)
	for y := 0; y < rows; y++ {
		row := make([]byte, cols)
		for x := 0; x < cols; x++ {
			if rng.Float64() < obstacleDensity {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		layout[y] = string(row)
	}
	return layout
}

func randomFreeCell(rng *rand.Rand, m *core.GridMap) core.Location {
	for {
		loc := core.Location(rng.Intn(m.MapSize()))
		if !m.IsObstacle(loc) {
			return loc
		}
	}
}

func generateEvents(rng *rand.Rand, m *core.GridMap, agentIDs []int, count int, horizon int64) []integration.EventSpec {
	events := make([]integration.EventSpec, 0, count)
	for i := 0; i < count; i++ {
		agent := agentIDs[rng.Intn(len(agentIDs))]
		loc := randomFreeCell(rng, m)
		t := int64(rng.Intn(int(horizon)))
		events = append(events, integration.EventSpec{
			Kind:    "add_vertex",
			AgentID: agent,
			Loc:     loc,
			T:       t,
		})
	}
	return events
}

func main() {
	seed := flag.Int64("seed", 42, "random seed for deterministic generation")
	rows := flag.Int("rows", 10, "grid rows")
	cols := flag.Int("cols", 10, "grid cols")
	agents := flag.Int("agents", 2, "number of agents")
	obstacleDensity := flag.Float64("obstacles", 0.1, "fraction of cells blocked")
	eventCount := flag.Int("events", 10, "number of constraint-mutation events")
	horizon := flag.Int64("horizon", 50, "planning horizon")
	output := flag.String("output", "scenario.yaml", "output file path")

	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	layout := generateLayout(rng, *rows, *cols, *obstacleDensity)
	m, err := core.ParseGridMap(strings.NewReader(strings.Join(layout, "\n")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate layout: %v\n", err)
		os.Exit(1)
	}

	agentSpecs := make([]integration.AgentSpec, *agents)
	agentIDs := make([]int, *agents)
	for i := 0; i < *agents; i++ {
		agentSpecs[i] = integration.AgentSpec{
			ID:    i,
			Start: randomFreeCell(rng, m),
			Goal:  randomFreeCell(rng, m),
		}
		agentIDs[i] = i
	}

	scn := &integration.Scenario{
		Grid:    integration.GridSpec{Layout: layout},
		Agents:  agentSpecs,
		Events:  generateEvents(rng, m, agentIDs, *eventCount, *horizon),
		Horizon: *horizon,
	}

	data, err := scn.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal scenario: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("generated %s (%dx%d grid, %d agents, %d events)\n", *output, *rows, *cols, *agents, *eventCount)
}
