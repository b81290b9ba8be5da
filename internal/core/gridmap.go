// Package core defines the passive data model shared by the LPA* search
// engine and its external collaborators: the time-expanded grid, the node
// and state-table records, the heuristic oracle, and the possible-goals
// list.
package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Location is a row-major cell index into a GridMap.
type Location int

// ErrOutOfBounds indicates a Location outside [0, Rows*Cols). Returned by
// NewPlanner and the constraint-mutation entry points when a caller
// supplies a Location the grid doesn't contain.
var ErrOutOfBounds = errors.New("core: location out of bounds")

// ErrObstacle indicates a Location that is blocked on the static grid,
// returned where a caller supplies a start or goal cell that can never be
// occupied.
var ErrObstacle = errors.New("core: location is an obstacle")

// ErrDimensionMismatch indicates an obstacle mask's length disagrees with
// the declared Rows*Cols, surfaced by NewGridMap.
var ErrDimensionMismatch = errors.New("core: dimension mismatch")

// moveCount is the fixed arity of the offsets table: four cardinal moves
// plus wait.
const moveCount = 5

// waitMoveIndex is the offset-table slot reserved for the zero-delta wait
// move.
const waitMoveIndex = 4

// GridMap is the map loader external collaborator: a fixed obstacle grid
// plus the five-entry moves-offset table used for both successor and
// predecessor iteration.
type GridMap struct {
	Rows, Cols int
	Obstacle   []bool // row-major, len == Rows*Cols
	offsets    [moveCount]int
}

// NewGridMap builds a GridMap from explicit dimensions and an obstacle
// mask. obstacle may be nil, meaning no cell is blocked.
func NewGridMap(rows, cols int, obstacle []bool) (*GridMap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("core: NewGridMap: non-positive dimensions %dx%d", rows, cols)
	}
	size := rows * cols
	if obstacle == nil {
		obstacle = make([]bool, size)
	} else if len(obstacle) != size {
		return nil, fmt.Errorf("core: NewGridMap: %w: obstacle length %d != rows*cols %d", ErrDimensionMismatch, len(obstacle), size)
	}

	m := &GridMap{Rows: rows, Cols: cols, Obstacle: obstacle}
	// North, South, East, West, Wait, with index 4 fixed at the wait move
	// (delta 0).
	m.offsets = [moveCount]int{-cols, cols, 1, -1, 0}
	return m, nil
}

// ParseGridMap reads a textual grid, one row per line, '#' marking an
// obstacle and any other non-whitespace byte (conventionally '.') marking
// a free cell. Trailing blank lines are ignored.
func ParseGridMap(r io.Reader) (*GridMap, error) {
	scanner := bufio.NewScanner(r)
	var rows []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("core: ParseGridMap: empty input")
	}
	cols := len(rows[0])
	obstacle := make([]bool, len(rows)*cols)
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("core: ParseGridMap: row %d has length %d, want %d", y, len(row), cols)
		}
		for x, c := range row {
			if c == '#' {
				obstacle[y*cols+x] = true
			}
		}
	}
	return NewGridMap(len(rows), cols, obstacle)
}

// MapSize returns Rows*Cols.
func (m *GridMap) MapSize() int { return m.Rows * m.Cols }

// InBounds reports whether loc indexes a real cell.
func (m *GridMap) InBounds(loc Location) bool {
	return loc >= 0 && int(loc) < m.MapSize()
}

// IsObstacle reports whether loc is blocked on the static grid. loc must
// be in bounds.
func (m *GridMap) IsObstacle(loc Location) bool {
	return m.Obstacle[loc]
}

// Col returns the column index of loc.
func (m *GridMap) Col(loc Location) int {
	return int(loc) % m.Cols
}

// Offsets returns the five move deltas bound to this map's Cols, with
// index waitMoveIndex fixed at the wait move.
func (m *GridMap) Offsets() [moveCount]int { return m.offsets }

// WaitOffsetIndex returns the offsets index reserved for the wait move.
func WaitOffsetIndex() int { return waitMoveIndex }

// Admissible reports whether the directed edge (from -> to) is a legal
// successor/predecessor move: to must be in bounds, not an obstacle, and
// within one column of from (rejecting row-major wrap-around on the
// east/west moves).
func (m *GridMap) Admissible(from, to Location) bool {
	if !m.InBounds(to) {
		return false
	}
	if m.IsObstacle(to) {
		return false
	}
	colDiff := m.Col(to) - m.Col(from)
	if colDiff > 1 || colDiff < -1 {
		return false
	}
	return true
}
