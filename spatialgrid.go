package sweep

import (
	"math"
	"sort"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// Pair - two bodies whose swept volumes may meet, A < B
type Pair struct {
	A, B int
}

// SpatialGrid - uniform hashed grid used as broad phase on swept bounding boxes
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int

	// bodies covering too many cells are tested against everyone instead
	maxCellsPerBody int
	oversized       []int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - creates a spatial grid, numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize:        cellSize,
		cells:           cells,
		cellMask:        numCells - 1,
		maxCellsPerBody: numCells,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - registers a body in every cell its box covers
func (sg *SpatialGrid) Insert(bodyIndex int, aabb actor.AABB) {
	if aabb.IsEmpty() {
		return
	}
	if sg.spanCells(aabb) > float64(sg.maxCellsPerBody) {
		sg.oversized = append(sg.oversized, bodyIndex)
		return
	}

	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				cell := &sg.cells[cellIdx]

				// a body may hash twice into the same cell
				if n := len(cell.bodyIndices); n > 0 && cell.bodyIndices[n-1] == bodyIndex {
					continue
				}
				cell.bodyIndices = append(cell.bodyIndices, bodyIndex)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
	sg.oversized = sg.oversized[:0]
}

// FindPairs - inserts every box and returns the pairs of overlapping boxes,
// sorted, skipping pairs of static bodies
func (sg *SpatialGrid) FindPairs(aabbs []actor.AABB, static []bool) []Pair {
	sg.Clear()
	for i, aabb := range aabbs {
		sg.Insert(i, aabb)
	}

	seen := make(map[Pair]struct{})
	pairs := make([]Pair, 0, len(aabbs))

	add := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		if static[a] && static[b] {
			return
		}
		pair := Pair{A: a, B: b}
		if _, ok := seen[pair]; ok {
			return
		}
		if !aabbs[a].Overlaps(aabbs[b]) {
			return
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	for _, cell := range sg.cells {
		for i, a := range cell.bodyIndices {
			for _, b := range cell.bodyIndices[i+1:] {
				add(a, b)
			}
		}
	}

	for _, a := range sg.oversized {
		for b := range aabbs {
			add(a, b)
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	return pairs
}

// spanCells - number of cells covered by a box, in float64 so huge boxes cannot overflow
func (sg *SpatialGrid) spanCells(aabb actor.AABB) float64 {
	n := 1.0
	for i := 0; i < 3; i++ {
		n *= math.Floor(aabb.Max[i]/sg.cellSize) - math.Floor(aabb.Min[i]/sg.cellSize) + 1
	}
	return n
}

// worldToCell - converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
