// Package lpastar implements the search engine: the OPEN priority queue,
// the dynamic constraint manager, and the Lifelong Planning A* procedures
// (UpdateState, ComputeShortestPath, goal tracking, constraint mutation
// repair, path extraction, and deep clone) that together form the
// incremental low-level planner for a single agent on a time-expanded
// grid.
package lpastar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// ErrZeroTimestepConstraint indicates AddVertexConstraint was called at
// t=0: a vertex constraint on the start location at t=0 is undefined
// behaviour. AddVertexConstraint logs a warning and returns this error
// without mutating planner state.
var ErrZeroTimestepConstraint = errors.New("lpastar: AddVertexConstraint at t=0 is a caller bug")

// Planner is one exclusively-owned, single-threaded LPA* instance for one
// agent.
type Planner struct {
	Map       *core.GridMap
	Heuristic core.Heuristic
	AgentID   int

	table *core.StateTable
	open  *OpenSet
	dcm   *ConstraintManager

	start, goal     core.Location
	startN, goalN   *core.Node
	possibleGoals   *core.PossibleGoals
	minGoalTimestep int64

	// lastFLowerBound records the bounded-suboptimality hint the external
	// FindPath signature accepts; the core LPA* itself always searches for
	// the optimal goal arrival and does not use it, since focal-search
	// bounded suboptimality is multi-agent coordination policy, not a
	// concern of the single-agent core. It is stored and copied by Clone;
	// no accessor exposes it.
	lastFLowerBound float64

	iter                int
	paths               map[int][]core.Location
	pathCosts           map[int]float64
	numExpanded         map[int]int
	heatMaps            map[int]map[core.Location]int
	numExpandedThisIter int
	heatMapThisIter     map[core.Location]int
}

// NewPlanner constructs a planner for one agent, eagerly creating start_n
// (g=0, v=+Inf, pushed into OPEN) and the sentinel goal node (g=v=+Inf,
// t=InfiniteTime).
func NewPlanner(start, goal core.Location, h core.Heuristic, m *core.GridMap, agentID int) (*Planner, error) {
	if !m.InBounds(start) || !m.InBounds(goal) {
		return nil, fmt.Errorf("%w: start=%d goal=%d map size=%d", core.ErrOutOfBounds, start, goal, m.MapSize())
	}
	if m.IsObstacle(start) || m.IsObstacle(goal) {
		return nil, fmt.Errorf("%w: start=%d goal=%d", core.ErrObstacle, start, goal)
	}

	p := &Planner{
		Map:         m,
		Heuristic:   h,
		AgentID:     agentID,
		table:       core.NewStateTable(m.Rows, m.Cols),
		open:        NewOpenSet(),
		dcm:         NewConstraintManager(),
		start:       start,
		goal:        goal,
		paths:       make(map[int][]core.Location),
		pathCosts:   make(map[int]float64),
		numExpanded: make(map[int]int),
		heatMaps:    make(map[int]map[core.Location]int),
		iter:        -1,
	}

	startN := core.NewNode(start, 0, h.H(start))
	startN.SetG(0)
	p.table.Set(start, 0, startN)
	p.startN = startN
	p.open.Push(startN)

	goalSentinel := core.NewNode(goal, core.InfiniteTime, h.H(goal))
	p.table.Set(goal, core.InfiniteTime, goalSentinel)
	p.goalN = goalSentinel
	p.possibleGoals = core.NewPossibleGoals(goalSentinel)

	// start_n is never passed through UpdateState, the only place that
	// normally enrols a goal-cell node in possible_goals. When start and
	// goal coincide, start_n itself is the trivial zero-cost solution, so
	// it needs the same enrolment done by hand here.
	if start == goal {
		p.possibleGoals.Insert(startN)
	}

	return p, nil
}

// edgeConflicts counts CAT collisions for the directed move u->v arriving
// at timestep t.
func edgeConflicts(cat CAT, u, v core.Location, t int64) int {
	return cat.NumOfConflicts(u, v, t)
}

// admissibleEdge reports whether the directed edge (from,to) arriving at
// timestep tTo is admissible: from/to are in-bounds non-obstacle cells
// within one column of each other, and the edge is not DCM-blocked.
func (p *Planner) admissibleEdge(from, to core.Location, tTo int64) bool {
	if !p.Map.InBounds(from) || p.Map.IsObstacle(from) {
		return false
	}
	if !p.Map.Admissible(from, to) {
		return false
	}
	return !p.dcm.IsBlocked(from, to, tTo)
}

// successors returns the admissible successor locations of (loc,t),
// arriving at t+1.
func (p *Planner) successors(loc core.Location, t int64) []core.Location {
	offsets := p.Map.Offsets()
	out := make([]core.Location, 0, len(offsets))
	for _, off := range offsets {
		s := loc + core.Location(off)
		if p.admissibleEdge(loc, s, t+1) {
			out = append(out, s)
		}
	}
	return out
}

// predecessors returns the admissible predecessor locations of (loc,t),
// departing from t-1: the same offset table applied in reverse, pred =
// loc - offsets[d].
func (p *Planner) predecessors(loc core.Location, t int64) []core.Location {
	offsets := p.Map.Offsets()
	out := make([]core.Location, 0, len(offsets))
	for _, off := range offsets {
		pred := loc - core.Location(off)
		if !p.Map.InBounds(pred) || p.Map.IsObstacle(pred) {
			continue
		}
		if p.admissibleEdge(pred, loc, t) {
			out = append(out, pred)
		}
	}
	return out
}

// retrieveMinPred picks the argmin over admissible predecessors of
// (p.V+1), tie-broken by smaller p.Conflicts. Returns nil if no
// admissible predecessor exists.
func (p *Planner) retrieveMinPred(n *core.Node) *core.Node {
	var best *core.Node
	for _, loc := range p.predecessors(n.Loc, n.T) {
		cand := p.table.GetOrCreate(loc, n.T-1, p.Heuristic)
		if best == nil {
			best = cand
			continue
		}
		if cand.V+1 < best.V+1 {
			best = cand
		} else if cand.V+1 == best.V+1 && cand.Conflicts < best.Conflicts {
			best = cand
		}
	}
	return best
}

// UpdateState is the central repair primitive: recompute n's backpointer
// and g from its best predecessor, then re-key or erase it from OPEN, and
// check whether it's a newly viable goal candidate. n must already exist
// in the state table and must not be start_n.
func (p *Planner) UpdateState(n *core.Node, cat CAT, bpAlreadySet bool) {
	if !bpAlreadySet {
		n.BP = p.retrieveMinPred(n)
	}

	if n.BP != nil {
		n.SetG(n.BP.V + 1)
		n.Conflicts = n.BP.Conflicts + edgeConflicts(cat, n.BP.Loc, n.Loc, n.T)
	} else {
		n.SetG(core.Inf)
		n.Conflicts = 0
	}

	if n.G != n.V {
		if n.InOpen {
			p.open.Update(n)
		} else {
			p.open.Push(n)
		}
	} else if n.InOpen {
		p.open.Erase(n)
	}

	if n.Loc == p.goal && n.T >= p.minGoalTimestep && n != p.goalN && core.LessKey(n, p.goalN) {
		p.possibleGoals.Insert(n)
		p.updateGoal()
	}
}

// updateGoal walks possible_goals in ascending t, accepting the first
// candidate that is either provably unbeatable by anything still in
// OPEN, or still reachable under unit edge costs even if its own cost is
// unknown.
func (p *Planner) updateGoal() {
	if p.open.Len() == 0 {
		return
	}
	top := p.open.Top()
	topPrimary, _ := top.Key()

	for _, pg := range p.possibleGoals.Nodes() {
		if pg.T < p.minGoalTimestep {
			continue
		}
		provablyBest := core.LessOrEqualKey(pg, top) && pg.V >= pg.G
		stillReachable := float64(pg.T) >= topPrimary
		if provablyBest || stillReachable {
			p.goalN = pg
			return
		}
	}
}

// ComputeShortestPath is the main LPA* loop: pop the most promising
// inconsistent node, settle or invalidate it, propagate the change to its
// neighbours, and re-evaluate the tracked goal candidate, until OPEN is
// exhausted or the goal can no longer improve.
func (p *Planner) ComputeShortestPath(cat CAT, lastGoalConstraintTimestep int64) {
	if bound := lastGoalConstraintTimestep + 1; bound < p.minGoalTimestep {
		p.minGoalTimestep = bound
	}
	p.updateGoal()

	for p.open.Len() > 0 && (core.LessKey(p.open.Top(), p.goalN) || p.goalN.V < p.goalN.G) {
		curr := p.open.Pop()
		p.numExpandedThisIter++
		p.heatMapThisIter[curr.Loc]++

		if curr.Overconsistent() {
			curr.SetV(curr.G)
			for _, sLoc := range p.successors(curr.Loc, curr.T) {
				s := p.table.GetOrCreate(sLoc, curr.T+1, p.Heuristic)
				if s.G > curr.V+1 {
					s.BP = curr
					p.UpdateState(s, cat, true)
				}
			}
		} else {
			curr.SetV(core.Inf)
			p.UpdateState(curr, cat, false)
			for _, sLoc := range p.successors(curr.Loc, curr.T) {
				s := p.table.GetOrCreate(sLoc, curr.T+1, p.Heuristic)
				p.UpdateState(s, cat, false)
			}
		}

		p.updateGoal()
	}
}

// FindPath runs ComputeShortestPath for one planning iteration and
// extracts the path if one was found. fLowerBound is accepted for API
// parity and recorded, but unused by the core search (see
// Planner.lastFLowerBound).
func (p *Planner) FindPath(cat CAT, fLowerBound float64, lastGoalConstraintTimestep int64) bool {
	p.iter++
	p.lastFLowerBound = fLowerBound
	p.numExpandedThisIter = 0
	p.heatMapThisIter = make(map[core.Location]int)

	p.ComputeShortestPath(cat, lastGoalConstraintTimestep)

	p.numExpanded[p.iter] = p.numExpandedThisIter
	p.heatMaps[p.iter] = p.heatMapThisIter

	if p.goalN.G == core.Inf {
		p.paths[p.iter] = nil
		p.pathCosts[p.iter] = core.Inf
		return false
	}

	path, ok := p.updatePath(p.goalN)
	if !ok {
		p.paths[p.iter] = nil
		return false
	}
	p.paths[p.iter] = path
	p.pathCosts[p.iter] = p.goalN.G
	return true
}

// updatePath walks bp from goal to start_n, returning false defensively
// if a null bp is found first.
func (p *Planner) updatePath(goal *core.Node) ([]core.Location, bool) {
	var rev []core.Location
	n := goal
	for {
		rev = append(rev, n.Loc)
		if n == p.startN {
			break
		}
		if n.BP == nil {
			slog.Warn("lpastar: broken backpointer chain during path extraction",
				"agent_id", p.AgentID, "loc", n.Loc, "t", n.T)
			return nil, false
		}
		n = n.BP
	}

	path := make([]core.Location, len(rev))
	for i, loc := range rev {
		path[len(rev)-1-i] = loc
	}
	return path, true
}

// Paths returns the extracted path for iteration iter, or nil if none was
// found.
func (p *Planner) Paths(iter int) []core.Location { return p.paths[iter] }

// PathCost returns goal_n.g as of iteration iter.
func (p *Planner) PathCost(iter int) float64 { return p.pathCosts[iter] }

// NumExpanded returns the expansion count for iteration iter.
func (p *Planner) NumExpanded(iter int) int { return p.numExpanded[iter] }

// HeatMap returns the per-location expansion counts for iteration iter.
func (p *Planner) HeatMap(iter int) map[core.Location]int { return p.heatMaps[iter] }

// Iter returns the most recently completed iteration index, or -1 if
// FindPath has never been called.
func (p *Planner) Iter() int { return p.iter }

// GoalCost returns the tracked goal node's current g, the search's
// termination outcome (+Inf means no solution).
func (p *Planner) GoalCost() float64 { return p.goalN.G }

// MinGoalTimestep returns the earliest timestep at which the goal
// location may currently be accepted as a solution: goal_n.t must be >=
// this value whenever a candidate is accepted.
func (p *Planner) MinGoalTimestep() int64 { return p.minGoalTimestep }
