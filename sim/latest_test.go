package sim

import (
	"sync"
	"testing"
)

func TestLatestLoad(t *testing.T) {
	var cell Latest[int]

	if _, _, ok := cell.Load(); ok {
		t.Fatal("empty cell should not be ok")
	}

	cell.Store(1)
	cell.Store(2)

	value, fresh, ok := cell.Load()
	if !ok || !fresh || value != 2 {
		t.Errorf("Load() = %d, %v, %v; want 2, true, true", value, fresh, ok)
	}

	value, fresh, ok = cell.Load()
	if !ok || fresh || value != 2 {
		t.Errorf("second Load() = %d, %v, %v; want 2, false, true", value, fresh, ok)
	}
}

func TestLatestTake(t *testing.T) {
	var cell Latest[string]
	cell.Store("a")

	if value, ok := cell.Take(); !ok || value != "a" {
		t.Errorf("Take() = %q, %v", value, ok)
	}
	if _, ok := cell.Take(); ok {
		t.Error("Take() on a drained cell should not be ok")
	}
}

func TestLatestConcurrent(t *testing.T) {
	var cell Latest[int]
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			cell.Store(i)
		}
	}()
	go func() {
		defer wg.Done()
		last := 0
		for i := 0; i < 1000; i++ {
			if value, _, ok := cell.Load(); ok {
				if value < last {
					t.Errorf("value went back from %d to %d", last, value)
					return
				}
				last = value
			}
		}
	}()
	wg.Wait()

	if value, _, _ := cell.Load(); value != 1000 {
		t.Errorf("final value = %d, want 1000", value)
	}
}
