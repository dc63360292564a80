package sim

import "sync"

// Latest is a single-slot cell holding the newest value published by one goroutine
// for another. Store overwrites whatever was not read yet; values must not be
// mutated once stored.
type Latest[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	seen    uint64
	set     bool
}

func (l *Latest[T]) Store(value T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.value = value
	l.version++
	l.set = true
}

// Load returns the newest value and whether it was stored after the previous Load or Take.
// ok is false until the first Store.
func (l *Latest[T]) Load() (value T, fresh bool, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fresh = l.version != l.seen
	l.seen = l.version
	return l.value, fresh, l.set
}

// Take returns the value and empties the cell
func (l *Latest[T]) Take() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	value, ok := l.value, l.set
	l.value, l.set = zero, false
	l.seen = l.version
	return value, ok
}
