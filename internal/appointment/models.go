package appointment

// Appointment statuses as the API spells them. Anything else is
// treated as pending.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// defaultTime sorts appointments with no time first.
const defaultTime = "00:00"

// UnknownPatientName is shown when neither patient record carries a name.
const UnknownPatientName = "Unknown Patient"

// Patient is the primary patient record attached to an appointment.
type Patient struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	ProfileImage string `json:"profile_image"`
}

// SubPatient is a dependent booked under the primary patient's account.
type SubPatient struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Details carries the queue token and free-text description.
type Details struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

// Appointment is one entry of the doctor's list. Read-only from the
// client's perspective; the list is replaced wholesale on every fetch.
type Appointment struct {
	ID              int64       `json:"id"`
	AppointmentTime string      `json:"appointment_time"`
	Status          string      `json:"status"`
	Patient         *Patient    `json:"patient,omitempty"`
	SubPatient      *SubPatient `json:"sub_patient,omitempty"`
	Details         *Details    `json:"details,omitempty"`
	Token           string      `json:"token,omitempty"`
}

// DisplayName resolves the patient name shown on cards, falling back
// patient -> sub_patient -> "Unknown Patient".
func (a *Appointment) DisplayName() string {
	if a.Patient != nil && a.Patient.Name != "" {
		return a.Patient.Name
	}
	if a.SubPatient != nil && a.SubPatient.Name != "" {
		return a.SubPatient.Name
	}
	return UnknownPatientName
}

// QueueToken resolves the per-appointment display ordinal, preferring
// the nested details record.
func (a *Appointment) QueueToken() string {
	if a.Details != nil && a.Details.Token != "" {
		return a.Details.Token
	}
	return a.Token
}

// timeOrDefault returns the sort key for an appointment. The format is
// fixed zero-padded 24h HH:MM upstream, which is what makes lexical
// comparison correct.
func timeOrDefault(a Appointment) string {
	if a.AppointmentTime == "" {
		return defaultTime
	}
	return a.AppointmentTime
}
