package sweep

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func box(center mgl64.Vec3, half float64) actor.AABB {
	h := mgl64.Vec3{half, half, half}
	return actor.AABB{Min: center.Sub(h), Max: center.Add(h)}
}

func cellContains(grid *SpatialGrid, key CellKey, bodyIndex int) bool {
	for _, idx := range grid.cells[grid.hashCell(key)].bodyIndices {
		if idx == bodyIndex {
			return true
		}
	}
	return false
}

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{1.5, 2.3, 3.7}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-1.5, -2.3, -3.7}, CellKey{-2, -3, -4}},
		{"fractional", mgl64.Vec3{0.5, 0.5, 0.5}, CellKey{0, 0, 0}},
		{"large", mgl64.Vec3{100.7, -200.3, 50.1}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.worldToCell(tt.position)
			if result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0, 0}, 0},
		{"simple", CellKey{1, 2, 3}, 0},
		{"negative", CellKey{-1, -2, -3}, 13},
		{"large", CellKey{100, 200, 300}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			if result < 0 || result >= len(grid.cells) {
				t.Errorf("hashCell(%v) = %d, out of range [0, %d)", tt.key, result, len(grid.cells))
			}
			if result != tt.expected {
				t.Errorf("hashCell(%v) = %d, want %d", tt.key, result, tt.expected)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {3, 4}, {16, 16}, {17, 32}, {1000, 1024},
	}

	for _, tt := range tests {
		if result := nextPowerOfTwo(tt.n); result != tt.expected {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.n, result, tt.expected)
		}
	}
}

func TestInsert(t *testing.T) {
	t.Run("single cell", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 16)
		grid.Insert(0, box(mgl64.Vec3{1.5, 2.5, 3.5}, 0.4))

		if !cellContains(grid, CellKey{1, 2, 3}, 0) {
			t.Error("body not found in its cell")
		}
	})

	t.Run("box across cells", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 64)
		grid.Insert(3, box(mgl64.Vec3{1, 1, 1}, 0.5))

		for _, key := range []CellKey{{0, 0, 0}, {1, 0, 0}, {0, 1, 1}, {1, 1, 1}} {
			if !cellContains(grid, key, 3) {
				t.Errorf("body missing from cell %v", key)
			}
		}
	})

	t.Run("empty box is ignored", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 16)
		grid.Insert(0, actor.EmptyAABB())

		for _, cell := range grid.cells {
			if len(cell.bodyIndices) != 0 {
				t.Fatal("empty box should not be inserted")
			}
		}
	})

	t.Run("oversized box", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 16)
		grid.Insert(0, box(mgl64.Vec3{}, 10))

		if len(grid.oversized) != 1 || grid.oversized[0] != 0 {
			t.Errorf("oversized = %v, want [0]", grid.oversized)
		}
	})
}

func TestClear(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(0, box(mgl64.Vec3{1, 1, 1}, 0.4))
	grid.Insert(1, box(mgl64.Vec3{}, 10))

	grid.Clear()

	for _, cell := range grid.cells {
		if len(cell.bodyIndices) != 0 {
			t.Error("cells should be empty after clear")
		}
	}
	if len(grid.oversized) != 0 {
		t.Error("oversized list should be empty after clear")
	}
}

func TestFindPairs(t *testing.T) {
	tests := []struct {
		name     string
		aabbs    []actor.AABB
		static   []bool
		expected []Pair
	}{
		{
			name:     "separated",
			aabbs:    []actor.AABB{box(mgl64.Vec3{0, 0, 0}, 0.4), box(mgl64.Vec3{10, 10, 10}, 0.4)},
			static:   []bool{false, false},
			expected: []Pair{},
		},
		{
			name:     "overlapping",
			aabbs:    []actor.AABB{box(mgl64.Vec3{0, 0, 0}, 0.4), box(mgl64.Vec3{0.5, 0.5, 0.5}, 0.4)},
			static:   []bool{false, false},
			expected: []Pair{{0, 1}},
		},
		{
			// both boxes hash to bucket 0
			name:     "hash collision",
			aabbs:    []actor.AABB{box(mgl64.Vec3{0.5, 0.5, 0.5}, 0.4), box(mgl64.Vec3{1.5, 2.5, 3.5}, 0.4)},
			static:   []bool{false, false},
			expected: []Pair{},
		},
		{
			name:     "static pair skipped",
			aabbs:    []actor.AABB{box(mgl64.Vec3{0, 0, 0}, 0.4), box(mgl64.Vec3{0.5, 0.5, 0.5}, 0.4)},
			static:   []bool{true, true},
			expected: []Pair{},
		},
		{
			name:     "static and dynamic",
			aabbs:    []actor.AABB{box(mgl64.Vec3{0, 0, 0}, 0.4), box(mgl64.Vec3{0.5, 0.5, 0.5}, 0.4)},
			static:   []bool{true, false},
			expected: []Pair{{0, 1}},
		},
		{
			name: "sorted",
			aabbs: []actor.AABB{
				box(mgl64.Vec3{0.2, 0.2, 0.2}, 0.4),
				box(mgl64.Vec3{0, 0, 0}, 0.4),
				box(mgl64.Vec3{0.4, 0.4, 0.4}, 0.4),
			},
			static:   []bool{false, false, false},
			expected: []Pair{{0, 1}, {0, 2}, {1, 2}},
		},
		{
			name: "oversized against everyone",
			aabbs: []actor.AABB{
				box(mgl64.Vec3{1, 1, 1}, 0.4),
				box(mgl64.Vec3{}, 10),
				box(mgl64.Vec3{-5, 3, 2}, 0.4),
				box(mgl64.Vec3{50, 0, 0}, 0.4),
			},
			static:   []bool{false, true, false, false},
			expected: []Pair{{0, 1}, {1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewSpatialGrid(1.0, 16)
			pairs := grid.FindPairs(tt.aabbs, tt.static)

			if !reflect.DeepEqual(pairs, tt.expected) {
				t.Errorf("FindPairs() = %v, want %v", pairs, tt.expected)
			}
		})
	}
}

func TestFindPairsMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	aabbs := make([]actor.AABB, 200)
	static := make([]bool, len(aabbs))
	for i := range aabbs {
		center := mgl64.Vec3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		aabbs[i] = box(center, 0.2+rng.Float64()*2)
		static[i] = i%5 == 0
	}

	expected := []Pair{}
	for a := range aabbs {
		for b := a + 1; b < len(aabbs); b++ {
			if static[a] && static[b] {
				continue
			}
			if aabbs[a].Overlaps(aabbs[b]) {
				expected = append(expected, Pair{a, b})
			}
		}
	}

	grid := NewSpatialGrid(2.0, 1024)
	// twice, so that a stale grid would show up
	for run := 0; run < 2; run++ {
		pairs := grid.FindPairs(aabbs, static)
		if !reflect.DeepEqual(pairs, expected) {
			t.Fatalf("run %d: grid found %d pairs, brute force %d", run, len(pairs), len(expected))
		}
	}
}
