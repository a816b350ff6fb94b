package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/session"
)

// Service resolves and maintains the canonical doctor identity.
type Service struct {
	gw       api.Gateway
	sessions *session.Store
	log      zerolog.Logger
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates the profile resolver.
func NewService(gw api.Gateway, sessions *session.Store, log zerolog.Logger) *Service {
	return &Service{gw: gw, sessions: sessions, log: log}
}

// Resolve derives the canonical doctor profile. The id embedded in the
// login payload is the only authoritative source; a fresh doctor-edit
// fetch supplies the remaining fields, and the resolved id is written
// through to the doctor-id cache slot only after the fetch succeeds.
// Failures are typed, never retried here.
func (s *Service) Resolve(ctx context.Context) (*Profile, error) {
	sess, ok := s.sessions.LoadSession()
	if !ok {
		return nil, ErrMissingSession
	}

	doctorID, ok := sess.LoginDoctorID()
	if !ok {
		s.log.Warn().Msg("session present but login payload carries no doctor id")
		return nil, ErrMissingSession
	}

	resp, err := s.gw.Do(ctx, api.EndpointDoctorEdit, http.MethodGet, nil,
		url.Values{"doctor_id": {doctorID}})
	if err != nil {
		s.log.Warn().Str("doctor_id", doctorID).Err(err).Msg("profile fetch failed")
		return nil, err
	}

	var payload profilePayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode doctor payload: %w", err)
	}

	profile := payload.toProfile()
	if profile.ID == "" {
		// Server omitted the id; keep the authoritative login id.
		profile.ID = doctorID
	}

	if err := s.sessions.SetDoctorID(profile.ID); err != nil {
		// The profile itself is good; a failed cache write heals on
		// the next resolution pass.
		s.log.Warn().Err(err).Msg("failed to write through doctor id cache")
	}

	s.log.Info().
		Str("doctor_id", profile.ID).
		Str("name", profile.Name).
		Msg("doctor profile resolved")

	return profile, nil
}

// Update submits edited profile fields, multipart when an image path
// is attached. Local state is only refreshed from the server's
// response after it acknowledges, never optimistically.
func (s *Service) Update(ctx context.Context, doctorID string, req UpdateRequest) (*Profile, error) {
	if doctorID == "" {
		return nil, ErrMissingDoctorID
	}

	var resp *api.Response
	var err error

	if req.ImagePath != "" {
		resp, err = s.gw.Upload(ctx, api.EndpointDoctorUpdate, updateFields(doctorID, req),
			"profile_image", req.ImagePath)
	} else {
		body := struct {
			DoctorID string `json:"doctor_id"`
			UpdateRequest
		}{DoctorID: doctorID, UpdateRequest: req}
		resp, err = s.gw.Do(ctx, api.EndpointDoctorUpdate, http.MethodPost, body, nil)
	}
	if err != nil {
		s.log.Warn().Str("doctor_id", doctorID).Err(err).Msg("profile update failed")
		return nil, err
	}

	var payload profilePayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode updated doctor payload: %w", err)
	}

	profile := payload.toProfile()
	if profile.ID == "" {
		profile.ID = doctorID
	}

	s.log.Info().Str("doctor_id", profile.ID).Msg("doctor profile updated")
	return profile, nil
}

func updateFields(doctorID string, req UpdateRequest) map[string]string {
	return map[string]string{
		"doctor_id":        doctorID,
		"name":             req.Name,
		"email":            req.Email,
		"phone":            req.Phone,
		"gender":           req.Gender,
		"blood_group":      req.BloodGroup,
		"address":          req.Address,
		"dob":              req.DOB,
		"qualification":    req.Qualification,
		"experience_years": req.ExperienceYears,
	}
}
