package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
)

// MockAPI is an in-process stand-in for the healto backend. Tests set
// the fixture fields they care about; every handler answers with the
// live envelope shape the real server uses.
type MockAPI struct {
	mu sync.Mutex

	// LoginResponse is returned verbatim from doctor-login. Defaults
	// to a minimal successful payload.
	LoginResponse json.RawMessage
	// DoctorProfile is the data object returned from doctor-edit.
	DoctorProfile json.RawMessage
	// Dashboard is the data object returned from doctor-dashboard.
	Dashboard json.RawMessage
	// Appointments is the data object returned from doctor-appointments.
	Appointments json.RawMessage
	// FailWith, when non-zero, makes every handler answer that HTTP
	// status instead of its fixture.
	FailWith int

	// Requests records "METHOD path" in arrival order.
	Requests []string
	// LastAuth records the Authorization header of the latest request.
	LastAuth string
	// LastBody records the raw body of the latest mutating request.
	LastBody []byte
}

// NewMockAPI returns a MockAPI with workable default fixtures.
func NewMockAPI() *MockAPI {
	return &MockAPI{
		LoginResponse: json.RawMessage(`{"data":{"id":1,"name":"Dr. Test","token":"test-token"}}`),
		DoctorProfile: json.RawMessage(`{"id":1,"name":"Dr. Test","specialization":"General"}`),
		Dashboard:     json.RawMessage(`{"total_patients_today":0,"total_pending_patients_today":0,"total_completed_patients_today":0,"appointments":[]}`),
		Appointments:  json.RawMessage(`{"appointments":[]}`),
	}
}

// Start serves the mock over an httptest server. The caller owns the
// returned server and must Close it.
func (a *MockAPI) Start() *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/doctor-login", a.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/doctor-edit", a.fixtureHandler(&a.DoctorProfile)).Methods(http.MethodGet)
	r.HandleFunc("/doctor-dashboard", a.fixtureHandler(&a.Dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/doctor-appointments", a.fixtureHandler(&a.Appointments)).Methods(http.MethodGet)
	r.HandleFunc("/doctor-update", a.handleAck).Methods(http.MethodPost)
	r.HandleFunc("/doctor-inactive", a.handleAck).Methods(http.MethodPost)
	r.HandleFunc("/appointment-update", a.handleAck).Methods(http.MethodPost)
	return httptest.NewServer(r)
}

// RequestCount reports how many requests the mock has served.
func (a *MockAPI) RequestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Requests)
}

func (a *MockAPI) observe(r *http.Request) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Requests = append(a.Requests, r.Method+" "+r.URL.Path)
	a.LastAuth = r.Header.Get("Authorization")
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		if body, err := io.ReadAll(r.Body); err == nil {
			a.LastBody = body
		}
	}
	return a.FailWith != 0
}

func (a *MockAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if a.observe(r) {
		http.Error(w, "server error", a.FailWith)
		return
	}
	a.mu.Lock()
	resp := a.LoginResponse
	a.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.Write(resp)
}

func (a *MockAPI) fixtureHandler(data *json.RawMessage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.observe(r) {
			http.Error(w, "server error", a.FailWith)
			return
		}
		a.mu.Lock()
		d := *data
		a.mu.Unlock()
		writeEnvelope(w, d)
	}
}

func (a *MockAPI) handleAck(w http.ResponseWriter, r *http.Request) {
	if a.observe(r) {
		http.Error(w, "server error", a.FailWith)
		return
	}
	writeEnvelope(w, json.RawMessage(`{}`))
}

func writeEnvelope(w http.ResponseWriter, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  true,
		"message": "success",
		"data":    data,
	})
}
