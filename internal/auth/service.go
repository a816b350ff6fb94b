// Package auth implements the login/logout flow that creates and
// destroys the persisted session.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/session"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service drives login and logout.
type Service struct {
	gw       api.Gateway
	sessions *session.Store
	log      zerolog.Logger

	now func() time.Time
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)

// NewService creates the auth service.
func NewService(gw api.Gateway, sessions *session.Store, log zerolog.Logger) *Service {
	return &Service{gw: gw, sessions: sessions, log: log, now: time.Now}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts the credentials and, on success, persists the full login
// response plus bookkeeping fields as the one process-wide session.
// Any prior session is overwritten unconditionally.
func (s *Service) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	raw, err := s.gw.DoRaw(ctx, api.EndpointDoctorLogin, http.MethodPost,
		loginRequest{Username: username, Password: password}, nil)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) && (httpErr.Status == http.StatusUnauthorized || httpErr.Status == http.StatusUnprocessableEntity) {
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, ErrInvalidCredentials
		}
		s.log.Warn().Str("username", username).Err(err).Msg("login failed")
		return nil, err
	}

	sess := session.Session{
		IsLoggedIn: true,
		UserData:   raw,
		LoginTime:  s.now().UTC().Format(time.RFC3339),
		Username:   username,
	}
	if err := s.sessions.SaveSession(sess); err != nil {
		return nil, err
	}

	if token := sess.LoginToken(); token != "" {
		if err := s.sessions.SetAuthToken(token); err != nil {
			s.log.Warn().Err(err).Msg("failed to persist auth token")
		}
		s.gw.SetAuthToken(token)
	}

	s.log.Info().Str("username", username).Msg("login successful")
	return &sess, nil
}

// Logout wipes the entire local store, not a subset: session, doctor
// id cache, theme preference, and availability state all go.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.ClearSession(); err != nil {
		return err
	}
	s.gw.SetAuthToken("")
	s.log.Info().Msg("logout complete")
	return nil
}
