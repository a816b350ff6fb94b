package dashboard

import "github.com/arun-kumar-js/heal-doc/internal/appointment"

// Snapshot is the aggregated landing-screen state: counters plus
// today's scheduled appointments. Rebuilt wholesale on every fetch;
// the last successful fetch wins.
//
// The counters come verbatim from the server and may legitimately
// disagree with len(Appointments) — the list is filtered to scheduled
// entries, the counters are not recomputed client-side.
type Snapshot struct {
	TotalPatientsToday int                       `json:"total_patients_today"`
	PendingPatients    int                       `json:"pending_patients"`
	CompletedPatients  int                       `json:"completed_patients"`
	Appointments       []appointment.Appointment `json:"appointments"`

	// Degraded marks the network-fallback snapshot: zeroed counts,
	// empty list, shown with an advisory instead of a hard error.
	Degraded bool `json:"-"`
}

// dashboardPayload mirrors the server's doctor-dashboard data shape.
type dashboardPayload struct {
	TotalPatientsToday          int                       `json:"total_patients_today"`
	TotalPendingPatientsToday   int                       `json:"total_pending_patients_today"`
	TotalCompletedPatientsToday int                       `json:"total_completed_patients_today"`
	Appointments                []appointment.Appointment `json:"appointments"`
}

// fallbackSnapshot is what the landing screen shows when the API is
// unreachable at the transport level.
func fallbackSnapshot() *Snapshot {
	return &Snapshot{
		Appointments: []appointment.Appointment{},
		Degraded:     true,
	}
}
