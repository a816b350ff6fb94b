package availability

import "context"

// ServiceInterface defines the contract for the availability machine.
type ServiceInterface interface {
	Current() State
	MarkUnavailable(ctx context.Context, req Request) (State, error)
	MarkAvailable(ctx context.Context) (State, error)
}
