package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/storage"
	"github.com/arun-kumar-js/heal-doc/internal/telemetry"
)

// Service is the availability state machine. The local flag only ever
// flips to Unavailable after the server acknowledges; it is never set
// optimistically ahead of confirmation.
type Service struct {
	gw      api.Gateway
	kv      storage.Store
	log     zerolog.Logger
	metrics *telemetry.Metrics

	mu    sync.Mutex
	state State
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates the state machine with its state loaded from
// storage, defaulting to Available when nothing is persisted.
func NewService(gw api.Gateway, kv storage.Store, log zerolog.Logger, metrics *telemetry.Metrics) *Service {
	s := &Service{gw: gw, kv: kv, log: log, metrics: metrics}
	s.state = s.load()
	return s
}

func (s *Service) load() State {
	state := State{Available: true}

	b, err := s.kv.Get(keyAvailable)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("failed to read availability flag, defaulting to available")
		}
		return state
	}
	if err := json.Unmarshal(b, &state.Available); err != nil {
		s.log.Warn().Err(err).Msg("corrupt availability flag, defaulting to available")
		return State{Available: true}
	}

	if !state.Available {
		if b, err := s.kv.Get(keyAnnotation); err == nil {
			var a annotation
			if err := json.Unmarshal(b, &a); err == nil {
				state.Reason = a.Reason
				state.StartDate = a.StartDate
				state.EndDate = a.EndDate
			}
		}
	}

	return state
}

// Current returns the present state.
func (s *Service) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// MarkUnavailable validates the request, submits it, and only commits
// the local transition once the server acknowledges. Validation
// failure makes no network call and leaves the state untouched.
func (s *Service) MarkUnavailable(ctx context.Context, req Request) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := req.Validate(); err != nil {
		s.log.Info().Err(err).Msg("unavailability request rejected before submission")
		return s.state, err
	}

	_, err := s.gw.Do(ctx, api.EndpointDoctorInactive, http.MethodPost, req, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("mark-inactive submission failed, staying available")
		return s.state, err
	}

	next := State{
		Available: false,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.persist(next); err != nil {
		// Server accepted but the local write failed; report it so the
		// screen can warn, and keep the confirmed state in memory.
		s.state = next
		return s.state, err
	}

	s.state = next
	s.metrics.RecordAvailabilityTransition(ctx, "unavailable")
	s.log.Info().
		Str("start_date", req.StartDate).
		Str("end_date", req.EndDate).
		Msg("doctor marked unavailable")

	return s.state, nil
}

// MarkAvailable flips back unconditionally: no payload, no server
// round-trip required, just the persisted local transition.
func (s *Service) MarkAvailable(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := State{Available: true}
	if err := s.persist(next); err != nil {
		return s.state, err
	}

	s.state = next
	s.metrics.RecordAvailabilityTransition(ctx, "available")
	s.log.Info().Msg("doctor marked available")

	return s.state, nil
}

func (s *Service) persist(state State) error {
	flag, _ := json.Marshal(state.Available)
	if err := s.kv.Set(keyAvailable, flag); err != nil {
		return fmt.Errorf("failed to persist availability flag: %w", err)
	}

	if state.Available {
		if err := s.kv.Delete(keyAnnotation); err != nil {
			return fmt.Errorf("failed to clear unavailability annotation: %w", err)
		}
		return nil
	}

	b, err := json.Marshal(annotation{
		Reason:    state.Reason,
		StartDate: state.StartDate,
		EndDate:   state.EndDate,
	})
	if err != nil {
		return fmt.Errorf("failed to encode unavailability annotation: %w", err)
	}
	if err := s.kv.Set(keyAnnotation, b); err != nil {
		return fmt.Errorf("failed to persist unavailability annotation: %w", err)
	}
	return nil
}
