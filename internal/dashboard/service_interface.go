package dashboard

import "context"

// ServiceInterface defines the contract for the dashboard aggregator.
type ServiceInterface interface {
	Fetch(ctx context.Context, doctorID string) (*Snapshot, error)
}
