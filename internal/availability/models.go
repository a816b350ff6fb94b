package availability

import (
	"fmt"
	"time"
)

// Storage keys for the availability flag and its annotation.
const (
	keyAvailable  = "doctor_available"
	keyAnnotation = "unavailability_details"
)

const dateLayout = "2006-01-02"

// ValidationError rejects a request field before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// State is the doctor's current availability. When Available is false
// the annotation fields say why and for how long.
type State struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// annotation is the compact "why unavailable" record persisted next to
// the boolean flag.
type annotation struct {
	Reason    string `json:"reason"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Request carries an unavailability submission. Transient: validated,
// submitted, then discarded.
type Request struct {
	Reason    string `json:"content"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	DoctorID  string `json:"doctor_id"`
	ClinicID  string `json:"clinic_id"`
}

// Validate checks the request without touching the network. Errors are
// field-specific so the screen can highlight the offending input.
func (r *Request) Validate() error {
	if r.Reason == "" {
		return &ValidationError{Field: "reason", Message: "reason is required"}
	}
	if r.StartDate == "" {
		return &ValidationError{Field: "start_date", Message: "start date is required"}
	}
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"}
	}
	if r.EndDate == "" {
		return &ValidationError{Field: "end_date", Message: "end date is required"}
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "end_date", Message: "end date is before start date"}
	}
	if r.DoctorID == "" {
		return &ValidationError{Field: "doctor_id", Message: "doctor id is required"}
	}
	return nil
}
