package api

// Endpoint is one entry of the closed endpoint table. The gateway
// rejects anything outside this table.
type Endpoint string

const (
	EndpointDoctorLogin       Endpoint = "/doctor-login"
	EndpointDoctorDashboard   Endpoint = "/doctor-dashboard"
	EndpointDoctorAppointments Endpoint = "/doctor-appointments"
	EndpointDoctorEdit        Endpoint = "/doctor-edit"
	EndpointDoctorUpdate      Endpoint = "/doctor-update"
	EndpointDoctorInactive    Endpoint = "/doctor-inactive"
	EndpointAppointmentUpdate Endpoint = "/appointment-update"
)

var knownEndpoints = map[Endpoint]bool{
	EndpointDoctorLogin:        true,
	EndpointDoctorDashboard:    true,
	EndpointDoctorAppointments: true,
	EndpointDoctorEdit:         true,
	EndpointDoctorUpdate:       true,
	EndpointDoctorInactive:     true,
	EndpointAppointmentUpdate:  true,
}
