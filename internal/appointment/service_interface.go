package appointment

import "context"

// ServiceInterface defines the contract for the appointment list engine.
type ServiceInterface interface {
	Fetch(ctx context.Context, doctorID string) ([]Appointment, error)
	UpdateDelay(ctx context.Context, appointmentID int64, delayTime string) error
}
