package lpastar

import "github.com/elektrokombinacija/mapf-lpastar/internal/core"

// Clone deep-copies p, required because the enclosing solver branches on
// constraint choices. The clone shares Map and Heuristic (borrowed
// read-only) but owns an independent state table, OPEN set, and DCM; no
// node is aliased between p and the result.
func (p *Planner) Clone() *Planner {
	c := &Planner{
		Map:             p.Map,
		Heuristic:       p.Heuristic,
		AgentID:         p.AgentID,
		table:           core.NewStateTable(p.table.Rows(), p.table.Cols()),
		open:            NewOpenSet(),
		dcm:             p.dcm.Clone(),
		start:           p.start,
		goal:            p.goal,
		minGoalTimestep: p.minGoalTimestep,
		lastFLowerBound: p.lastFLowerBound,
		iter:            p.iter,
		paths:           make(map[int][]core.Location, len(p.paths)),
		pathCosts:       make(map[int]float64, len(p.pathCosts)),
		numExpanded:     make(map[int]int, len(p.numExpanded)),
		heatMaps:        make(map[int]map[core.Location]int, len(p.heatMaps)),
	}

	for k, v := range p.paths {
		c.paths[k] = append([]core.Location(nil), v...)
	}
	for k, v := range p.pathCosts {
		c.pathCosts[k] = v
	}
	for k, v := range p.numExpanded {
		c.numExpanded[k] = v
	}
	for k, v := range p.heatMaps {
		m := make(map[core.Location]int, len(v))
		for loc, count := range v {
			m[loc] = count
		}
		c.heatMaps[k] = m
	}

	// Pass 1: fresh copy of every node, identity preserved by (loc,t).
	clones := make(map[*core.Node]*core.Node)
	p.table.Each(func(n *core.Node) {
		cn := n.CloneShallow()
		clones[n] = cn
		c.table.Set(n.Loc, n.T, cn)
	})

	// Pass 2: bp fixup — every clone's BP must point into c's table, not
	// p's.
	for orig, cn := range clones {
		if orig.BP != nil {
			cn.BP = clones[orig.BP]
		}
	}

	// Pass 3: rebuild OPEN by repeated Push in source storage order,
	// never popping from (and so never mutating) the source.
	p.open.EachInOrder(func(n *core.Node) {
		c.open.Push(clones[n])
	})

	// Pass 4: start_n/goal_n via table lookup from the source's (loc,t).
	c.startN, _ = c.table.Get(p.startN.Loc, p.startN.T)
	c.goalN, _ = c.table.Get(p.goalN.Loc, p.goalN.T)

	// Pass 5: possible_goals rebuilt in the same ascending-t order.
	srcGoals := p.possibleGoals.Nodes()
	sentinelClone, _ := c.table.Get(srcGoals[len(srcGoals)-1].Loc, srcGoals[len(srcGoals)-1].T)
	c.possibleGoals = core.NewPossibleGoals(sentinelClone)
	for _, pg := range srcGoals[:len(srcGoals)-1] {
		pgClone, _ := c.table.Get(pg.Loc, pg.T)
		c.possibleGoals.Insert(pgClone)
	}

	return c
}
