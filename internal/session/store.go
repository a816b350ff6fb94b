package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/storage"
)

// Store persists the single logged-in doctor's session plus the
// independently keyed doctor-id cache.
type Store struct {
	kv  storage.Store
	log zerolog.Logger
}

// NewStore creates a session store over the given key-value backend.
func NewStore(kv storage.Store, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// SaveSession writes the full session under one key, unconditionally
// replacing any prior session.
func (s *Store) SaveSession(sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(keySession, b); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.log.Info().Str("username", sess.Username).Msg("session saved")
	return nil
}

// LoadSession returns the persisted session. Absent or corrupt data
// fails open to the logged-out state: (nil, false) plus a log line,
// never an error.
func (s *Store) LoadSession() (*Session, bool) {
	b, err := s.kv.Get(keySession)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warn().Err(err).Msg("failed to read session, treating as logged out")
		}
		return nil, false
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		s.log.Warn().Err(err).Msg("corrupt session data, treating as logged out")
		return nil, false
	}

	return &sess, true
}

// ClearSession erases every locally persisted key, not just the
// session blob. Logout is a total data wipe.
func (s *Store) ClearSession() error {
	if err := s.kv.Clear(); err != nil {
		return fmt.Errorf("failed to clear local store: %w", err)
	}
	s.log.Info().Msg("local store cleared")
	return nil
}

// SetDoctorID writes the doctor-id cache slot. Idempotent overwrite;
// survives independently of whether the full session decodes.
func (s *Store) SetDoctorID(id string) error {
	if err := s.kv.Set(keyDoctorID, []byte(id)); err != nil {
		return fmt.Errorf("failed to persist doctor id: %w", err)
	}
	s.log.Debug().Str("doctor_id", id).Msg("doctor id cached")
	return nil
}

// DoctorID reads the doctor-id cache slot.
func (s *Store) DoctorID() (string, bool) {
	b, err := s.kv.Get(keyDoctorID)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// SetAuthToken stores the bearer token from the login payload.
func (s *Store) SetAuthToken(token string) error {
	if err := s.kv.Set(keyAuthToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist auth token: %w", err)
	}
	return nil
}

// AuthToken reads the stored bearer token.
func (s *Store) AuthToken() (string, bool) {
	b, err := s.kv.Get(keyAuthToken)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}
