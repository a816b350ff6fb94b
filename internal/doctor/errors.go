package doctor

import "errors"

var (
	// ErrMissingSession means no usable session (or no login id inside
	// it) exists; the caller should route to login.
	ErrMissingSession = errors.New("no logged-in session")

	// ErrMissingDoctorID means a doctor id was required and could not
	// be resolved.
	ErrMissingDoctorID = errors.New("doctor id not available")
)
