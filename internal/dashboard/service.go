package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/appointment"
	"github.com/arun-kumar-js/heal-doc/internal/doctor"
	"github.com/arun-kumar-js/heal-doc/internal/telemetry"
)

// Resolver is the slice of the doctor service the aggregator needs to
// recover a missing doctor id.
type Resolver interface {
	Resolve(ctx context.Context) (*doctor.Profile, error)
}

// Service aggregates the landing-screen snapshot.
type Service struct {
	gw       api.Gateway
	resolver Resolver
	log      zerolog.Logger
	metrics  *telemetry.Metrics
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates the dashboard aggregator. metrics may be nil.
func NewService(gw api.Gateway, resolver Resolver, log zerolog.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{gw: gw, resolver: resolver, log: log, metrics: metrics}
}

// Fetch builds a fresh snapshot for the given doctor. An empty id gets
// one resolution pass before failing. Only a transport-level network
// error degrades to the zeroed fallback; every other error class is a
// hard failure with no synthetic data.
func (s *Service) Fetch(ctx context.Context, doctorID string) (*Snapshot, error) {
	if doctorID == "" {
		profile, err := s.resolver.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("doctor id resolution failed: %w", err)
		}
		doctorID = profile.ID
		if doctorID == "" {
			return nil, doctor.ErrMissingDoctorID
		}
	}

	s.metrics.RecordRefresh(ctx, "dashboard")

	resp, err := s.gw.Do(ctx, api.EndpointDoctorDashboard, http.MethodGet, nil,
		url.Values{"doctor_id": {doctorID}})
	if err != nil {
		if api.IsNetworkError(err) {
			s.log.Warn().
				Str("doctor_id", doctorID).
				Err(err).
				Msg("API unavailable, serving zeroed dashboard fallback")
			return fallbackSnapshot(), nil
		}
		s.log.Warn().Str("doctor_id", doctorID).Err(err).Msg("dashboard fetch failed")
		return nil, err
	}

	var payload dashboardPayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard payload: %w", err)
	}

	// The landing view shows scheduled appointments only; completed
	// ones are excluded here, not user-configurable.
	scheduled := appointment.ApplyFilter(payload.Appointments, appointment.FilterScheduled)
	sorted := appointment.SortByTime(scheduled)

	snapshot := &Snapshot{
		TotalPatientsToday: payload.TotalPatientsToday,
		PendingPatients:    payload.TotalPendingPatientsToday,
		CompletedPatients:  payload.TotalCompletedPatientsToday,
		Appointments:       sorted,
	}

	s.log.Info().
		Str("doctor_id", doctorID).
		Int("total", snapshot.TotalPatientsToday).
		Int("pending", snapshot.PendingPatients).
		Int("scheduled", len(snapshot.Appointments)).
		Msg("dashboard snapshot built")

	return snapshot, nil
}
