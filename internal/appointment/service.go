package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/doctor"
	"github.com/arun-kumar-js/heal-doc/internal/telemetry"
)

// Service fetches the full appointment collection for a doctor. The
// fetch is independent of the dashboard's and carries no status
// restriction; filtering is the caller's local projection.
type Service struct {
	gw      api.Gateway
	log     zerolog.Logger
	metrics *telemetry.Metrics
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates the appointment list engine. metrics may be nil.
func NewService(gw api.Gateway, log zerolog.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{gw: gw, log: log, metrics: metrics}
}

type listPayload struct {
	Appointments []Appointment `json:"appointments"`
}

// Fetch returns the doctor's full appointment list sorted ascending by
// time. The list replaces any previous one wholesale.
func (s *Service) Fetch(ctx context.Context, doctorID string) ([]Appointment, error) {
	if doctorID == "" {
		return nil, doctor.ErrMissingDoctorID
	}

	s.metrics.RecordRefresh(ctx, "appointments")

	resp, err := s.gw.Do(ctx, api.EndpointDoctorAppointments, http.MethodGet, nil,
		url.Values{"doctor_id": {doctorID}})
	if err != nil {
		s.log.Warn().Str("doctor_id", doctorID).Err(err).Msg("appointment fetch failed")
		return nil, err
	}

	var payload listPayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode appointments payload: %w", err)
	}

	sorted := SortByTime(payload.Appointments)
	s.log.Info().
		Str("doctor_id", doctorID).
		Int("count", len(sorted)).
		Msg("appointments fetched")

	return sorted, nil
}

type delayRequest struct {
	AppointmentID int64  `json:"appointment_id"`
	DelayTime     string `json:"delay_time"`
}

// UpdateDelay reports a running delay for one appointment. The local
// list is not touched; the next fetch reflects the server's view.
func (s *Service) UpdateDelay(ctx context.Context, appointmentID int64, delayTime string) error {
	_, err := s.gw.Do(ctx, api.EndpointAppointmentUpdate, http.MethodPost,
		delayRequest{AppointmentID: appointmentID, DelayTime: delayTime}, nil)
	if err != nil {
		s.log.Warn().Int64("appointment_id", appointmentID).Err(err).Msg("delay update failed")
		return err
	}

	s.log.Info().
		Int64("appointment_id", appointmentID).
		Str("delay_time", delayTime).
		Msg("appointment delay reported")
	return nil
}
