package lpastar

import (
	"fmt"
	"log/slog"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// checkLocation reports ErrOutOfBounds if loc falls outside p.Map, the
// validation every constraint-mutation entry point runs before touching
// the state table.
func (p *Planner) checkLocation(loc core.Location) error {
	if !p.Map.InBounds(loc) {
		return fmt.Errorf("%w: loc=%d map size=%d", core.ErrOutOfBounds, loc, p.Map.MapSize())
	}
	return nil
}

// AddVertexConstraint forbids occupying loc at time t. t must be > 0; t=0
// is a caller bug — a vertex constraint on the start location at t=0 is
// undefined — and is rejected without mutating planner state.
func (p *Planner) AddVertexConstraint(loc core.Location, t int64, cat CAT) error {
	if err := p.checkLocation(loc); err != nil {
		return err
	}
	if t == 0 {
		slog.Warn("lpastar: AddVertexConstraint called at t=0, undefined behaviour",
			"agent_id", p.AgentID, "loc", loc)
		return fmt.Errorf("%w: agent_id=%d loc=%d", ErrZeroTimestepConstraint, p.AgentID, loc)
	}

	n := p.table.GetOrCreate(loc, t, p.Heuristic)
	n.Invalidate()
	if n.InOpen {
		p.open.Erase(n)
	}

	if loc == p.goal {
		if bound := t + 1; bound > p.minGoalTimestep {
			p.minGoalTimestep = bound
		}
		for _, pg := range p.possibleGoals.Nodes() {
			if pg.T >= p.minGoalTimestep {
				p.goalN = pg
				break
			}
		}
	}

	for _, off := range p.Map.Offsets() {
		succ := loc + core.Location(off)
		if !p.Map.Admissible(loc, succ) {
			continue
		}
		p.dcm.AddEdge(loc, succ, t+1)
		p.dcm.AddEdge(succ, loc, t)

		succNode := p.table.GetOrCreate(succ, t+1, p.Heuristic)
		p.UpdateState(succNode, cat, false)
	}
	return nil
}

// PopVertexConstraint is the inverse of AddVertexConstraint, with LIFO
// semantics against DCM multiplicity.
func (p *Planner) PopVertexConstraint(loc core.Location, t int64, cat CAT) error {
	if err := p.checkLocation(loc); err != nil {
		return err
	}

	offsets := p.Map.Offsets()

	var admissible []int
	for d := len(offsets) - 1; d >= 0; d-- {
		succ := loc + core.Location(offsets[d])
		if p.Map.Admissible(loc, succ) {
			admissible = append(admissible, d)
		}
	}

	var firstErr error
	for _, d := range admissible {
		succ := loc + core.Location(offsets[d])
		if err := p.dcm.PopEdge(loc, succ, t+1); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := p.dcm.PopEdge(succ, loc, t); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if loc == p.goal && p.minGoalTimestep == t+1 {
		lowerBound := int64(p.startN.H)
		found := false
		for j := t - 1; j >= lowerBound; j-- {
			if p.locationEntirelyUnreachable(loc, j) {
				p.minGoalTimestep = j + 1
				found = true
				break
			}
		}
		if !found {
			p.minGoalTimestep = 0
		}
	}

	n := p.table.GetOrCreate(loc, t, p.Heuristic)
	p.UpdateState(n, cat, false)
	for _, d := range admissible {
		succ := loc + core.Location(offsets[d])
		succNode := p.table.GetOrCreate(succ, t+1, p.Heuristic)
		p.UpdateState(succNode, cat, false)
	}
	return firstErr
}

// locationEntirelyUnreachable reports whether every grid-admissible
// predecessor edge into (loc,t) is DCM-blocked. Used by the backward
// search for the largest unreachable timestep when a vertex constraint
// on the goal is popped.
func (p *Planner) locationEntirelyUnreachable(loc core.Location, t int64) bool {
	for _, off := range p.Map.Offsets() {
		pred := loc - core.Location(off)
		if !p.Map.InBounds(pred) || p.Map.IsObstacle(pred) {
			continue
		}
		if !p.Map.Admissible(pred, loc) {
			continue
		}
		if !p.dcm.IsBlocked(pred, loc, t) {
			return false
		}
	}
	return true
}

// AddEdgeConstraint forwards to the DCM then repairs the destination
// node. Edge constraints never affect min_goal_timestep.
func (p *Planner) AddEdgeConstraint(from, to core.Location, t int64, cat CAT) error {
	if err := p.checkLocation(from); err != nil {
		return err
	}
	if err := p.checkLocation(to); err != nil {
		return err
	}
	p.dcm.AddEdge(from, to, t)
	n := p.table.GetOrCreate(to, t, p.Heuristic)
	p.UpdateState(n, cat, false)
	return nil
}

// PopEdgeConstraint is the inverse of AddEdgeConstraint.
func (p *Planner) PopEdgeConstraint(from, to core.Location, t int64, cat CAT) error {
	if err := p.checkLocation(from); err != nil {
		return err
	}
	if err := p.checkLocation(to); err != nil {
		return err
	}
	if err := p.dcm.PopEdge(from, to, t); err != nil {
		return err
	}
	n := p.table.GetOrCreate(to, t, p.Heuristic)
	p.UpdateState(n, cat, false)
	return nil
}
