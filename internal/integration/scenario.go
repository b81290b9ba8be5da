package integration

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// Scenario is the on-disk description of a grid, a list of agents, and a
// sequence of constraint mutations to replay against them. cmd/lpadrive
// and tools/genscenario both read and write this shape.
type Scenario struct {
	Grid    GridSpec    `yaml:"grid"`
	Agents  []AgentSpec `yaml:"agents"`
	Events  []EventSpec `yaml:"events"`
	Horizon int64       `yaml:"horizon"`
}

// GridSpec holds an obstacle layout drawn as rows of '.' and '#',
// matching core.ParseGridMap's text format; Rows/Cols are read back off
// the parsed map rather than trusted from the file.
type GridSpec struct {
	Layout []string `yaml:"layout"`
}

// AgentSpec is one planner's start/goal pair.
type AgentSpec struct {
	ID    int           `yaml:"id"`
	Start core.Location `yaml:"start"`
	Goal  core.Location `yaml:"goal"`
}

// EventSpec is one constraint mutation to apply, in order, against a
// named agent. Kind is one of "add_vertex", "pop_vertex", "add_edge",
// "pop_edge".
type EventSpec struct {
	Kind    string        `yaml:"kind"`
	AgentID int           `yaml:"agent_id"`
	Loc     core.Location `yaml:"loc"`
	From    core.Location `yaml:"from"`
	To      core.Location `yaml:"to"`
	T       int64         `yaml:"t"`
}

// ParseScenario decodes a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("integration: parse scenario: %w", err)
	}
	return &s, nil
}

// BuildMap assembles the core.GridMap described by the scenario, parsing
// the obstacle layout the same way core.ParseGridMap does.
func (s *Scenario) BuildMap() (*core.GridMap, error) {
	layout := strings.Join(s.Grid.Layout, "\n")
	return core.ParseGridMap(strings.NewReader(layout))
}

// Marshal serializes the scenario back to YAML, used by genscenario.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
