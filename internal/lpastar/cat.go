package lpastar

import "github.com/elektrokombinacija/mapf-lpastar/internal/core"

// AvoidanceState is one CAT entry: the per-(loc,t) occupancy weight the
// enclosing solver wants the low-level planner to avoid when it has a
// choice. The exact semantics are defined externally; the core only ever
// reads Count.
type AvoidanceState struct {
	Count int
}

// CAT is the conflict-avoidance table external collaborator: an opaque
// per-edge conflict weight used only for tie-breaking inside predecessor
// selection. Conflicts never participate in the OPEN key itself.
type CAT interface {
	// NumOfConflicts returns the non-negative count of avoidance-table
	// entries that collide with the directed move from->to arriving at
	// timestep t. It must count both the destination vertex occupancy
	// (to,t) and the swap edge (from<->to, t-1->t).
	NumOfConflicts(from, to core.Location, t int64) int
}

// StepCAT is the concrete CAT implementation: a sequence indexed by
// timestep of per-location avoidance entries. It mirrors the vertex/edge
// conflict split that integration.FindFirstConflict distinguishes one
// layer up the stack.
type StepCAT []map[core.Location]AvoidanceState

// NewStepCAT creates an empty table with horizon+1 timestep slots.
func NewStepCAT(horizon int64) StepCAT {
	t := make(StepCAT, horizon+1)
	for i := range t {
		t[i] = make(map[core.Location]AvoidanceState)
	}
	return t
}

// Add records an avoidance entry at (loc,t), growing the table if needed.
func (c *StepCAT) Add(loc core.Location, t int64, weight int) {
	for int64(len(*c)) <= t {
		*c = append(*c, make(map[core.Location]AvoidanceState))
	}
	e := (*c)[t][loc]
	e.Count += weight
	(*c)[t][loc] = e
}

// NumOfConflicts implements CAT: vertex occupancy at (to,t) plus, for a
// non-wait move, occupancy at (to,t-1). The second term is the half of a
// swap conflict a per-vertex table can see; it counts every entry at `to`
// on the previous step, whether or not that agent moves to `from`.
func (c StepCAT) NumOfConflicts(from, to core.Location, t int64) int {
	count := 0
	if int64(len(c)) > t && t >= 0 {
		count += c[t][to].Count
	}
	if from != to && t > 0 && int64(len(c)) > t-1 {
		count += c[t-1][to].Count // another agent was at `to` one step earlier
	}
	return count
}
