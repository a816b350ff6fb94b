package viewmodel

import "sync"

// Resource holds one screen's data and its load lifecycle. Each call
// to Begin starts a new generation; completions carrying a stale
// generation are discarded, so a slow first refresh can never
// overwrite the result of a second one started after it.
type Resource[T any] struct {
	mu    sync.Mutex
	gen   uint64
	state State[T]
}

// NewResource returns an idle holder.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{}
}

// Begin marks the resource loading and returns the generation the
// caller must present when completing. Any in-flight older load is
// implicitly invalidated.
func (r *Resource[T]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.state.Status = StatusLoading
	r.state.Err = nil
	r.state.Advisory = ""
	return r.gen
}

// Complete installs a successful value. It reports false, leaving the
// state untouched, when gen is not the latest generation.
func (r *Resource[T]) Complete(gen uint64, v T) bool {
	return r.complete(gen, v, "")
}

// CompleteDegraded installs a value together with an advisory note,
// for refreshes that succeeded only partially.
func (r *Resource[T]) CompleteDegraded(gen uint64, v T, advisory string) bool {
	return r.complete(gen, v, advisory)
}

func (r *Resource[T]) complete(gen uint64, v T, advisory string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.state = State[T]{Status: StatusSuccess, Value: v, Advisory: advisory}
	return true
}

// Fail records a load failure. The error replaces any prior value:
// screens render the error state, not stale content. Stale
// generations are discarded as with Complete.
func (r *Resource[T]) Fail(gen uint64, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	var zero T
	r.state = State[T]{Status: StatusError, Value: zero, Err: err}
	return true
}

// Snapshot returns the current state.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}
