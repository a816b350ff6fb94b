package doctor

import "context"

// ServiceInterface defines the contract for doctor identity resolution.
type ServiceInterface interface {
	Resolve(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, doctorID string, req UpdateRequest) (*Profile, error)
}
