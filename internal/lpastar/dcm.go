package lpastar

import (
	"errors"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// ErrConstraintNotPresent is returned by PopEdge when the edge's
// multiplicity is already zero — a caller bug: popping a constraint that
// was never added (or already fully popped).
var ErrConstraintNotPresent = errors.New("lpastar: popEdge on an edge with zero multiplicity")

// dcmKey identifies a directed edge constraint by its endpoints and the
// arrival timestep.
type dcmKey struct {
	from, to core.Location
	t        int64
}

// ConstraintManager is a multiset of directed edge constraints
// (from,to,t), answering isBlocked via multiplicity >= 1. Repeated
// AddEdge/PopEdge follow LIFO semantics against the multiplicity count.
type ConstraintManager struct {
	multiplicity map[dcmKey]int
}

// NewConstraintManager creates an empty DCM.
func NewConstraintManager() *ConstraintManager {
	return &ConstraintManager{multiplicity: make(map[dcmKey]int)}
}

// AddEdge increments the multiplicity of the directed edge (from,to,t).
func (d *ConstraintManager) AddEdge(from, to core.Location, t int64) {
	d.multiplicity[dcmKey{from, to, t}]++
}

// PopEdge decrements the multiplicity of (from,to,t). It is undefined
// (ErrConstraintNotPresent) to pop an edge whose multiplicity is already
// zero.
func (d *ConstraintManager) PopEdge(from, to core.Location, t int64) error {
	k := dcmKey{from, to, t}
	if d.multiplicity[k] <= 0 {
		return ErrConstraintNotPresent
	}
	d.multiplicity[k]--
	if d.multiplicity[k] == 0 {
		delete(d.multiplicity, k)
	}
	return nil
}

// IsBlocked reports whether the directed edge (from,to,t) has multiplicity
// >= 1.
func (d *ConstraintManager) IsBlocked(from, to core.Location, t int64) bool {
	return d.multiplicity[dcmKey{from, to, t}] > 0
}

// Clone returns an independent copy sharing no mutable state with d,
// used by Planner.Clone.
func (d *ConstraintManager) Clone() *ConstraintManager {
	c := NewConstraintManager()
	for k, v := range d.multiplicity {
		c.multiplicity[k] = v
	}
	return c
}
