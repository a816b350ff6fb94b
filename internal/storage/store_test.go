package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(v) != "v" {
		t.Errorf("Expected 'v', got '%s'", v)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = s.Get("k")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got: %v", err)
	}
}

func TestMemoryStore_ClearRemovesEverything(t *testing.T) {
	s := NewMemoryStore()
	s.Set("a", []byte("1"))
	s.Set("b", []byte("2"))

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store after Clear, got %d keys", s.Len())
	}
}

func TestBoltStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healdoc.db")

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	defer s.Close()

	if err := s.Set("session", []byte(`{"isLoggedIn":true}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := s.Get("session")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(v) != `{"isLoggedIn":true}` {
		t.Errorf("Unexpected value: %s", v)
	}

	_, err = s.Get("missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got: %v", err)
	}
}

func TestBoltStore_ClearRemovesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healdoc.db")

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	defer s.Close()

	s.Set("doctor_id", []byte("12"))
	s.Set("themePreference", []byte("true"))

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	for _, key := range []string{"doctor_id", "themePreference"} {
		if _, err := s.Get(key); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Expected key %q gone after Clear, got: %v", key, err)
		}
	}
}
