package sweep

import (
	"sort"
	"sync"

	"github.com/akmonengine/sweep/actor"
	"github.com/akmonengine/sweep/gjk"
)

// Overlaps returns the pairs of bodies whose convex hulls interpenetrate at their
// current pose, sorted. Pairs of static bodies are skipped.
func Overlaps(bodies []*actor.RigidBody, workersCount int) []Pair {
	workersCount = max(DEFAULT_WORKERS, workersCount)

	aabbs := make([]actor.AABB, len(bodies))
	for i, body := range bodies {
		aabbs[i] = body.WorldAABB()
	}

	candidates := make(chan Pair, workersCount)
	go func() {
		defer close(candidates)
		for a := range bodies {
			for b := a + 1; b < len(bodies); b++ {
				if bodies[a].IsStatic() && bodies[b].IsStatic() {
					continue
				}
				if aabbs[a].Overlaps(aabbs[b]) {
					candidates <- Pair{A: a, B: b}
				}
			}
		}
	}()

	pairs := make([]Pair, 0)
	for pair := range intersect(bodies, candidates, workersCount) {
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	return pairs
}

// intersect runs GJK on each candidate and forwards the overlapping ones
func intersect(bodies []*actor.RigidBody, pairChan <-chan Pair, workersCount int) <-chan Pair {
	overlapChan := make(chan Pair, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(overlapChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairChan {
					if gjk.Intersect(bodies[p.A], bodies[p.B]) {
						overlapChan <- p
					}
				}
			}()
		}
		wg.Wait()
	}()

	return overlapChan
}
