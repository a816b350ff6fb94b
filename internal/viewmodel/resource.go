// Package viewmodel provides the state holder screens observe: a value
// plus an explicit loading/error/success phase, guarded against
// out-of-order completion by a per-load generation counter.
package viewmodel

// Status is the lifecycle phase of a Resource.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// State is an immutable view of a Resource at one point in time.
type State[T any] struct {
	Status Status
	Value  T
	Err    error
	// Advisory carries a non-fatal note alongside a success, such as
	// "showing cached totals" after a degraded refresh.
	Advisory string
}
