package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, 2*time.Second, zerolog.Nop(), nil)
}

func TestDo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doctor-dashboard" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("doctor_id"); got != "12" {
			t.Errorf("Expected doctor_id=12, got %q", got)
		}
		w.Write([]byte(`{"status":true,"message":"ok","data":{"total_patients_today":3}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, url.Values{"doctor_id": {"12"}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !resp.Status {
		t.Error("Expected status true")
	}
	if resp.Message != "ok" {
		t.Errorf("Expected message 'ok', got %q", resp.Message)
	}
}

func TestDo_APIStatusFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"doctor not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Do(context.Background(), EndpointDoctorEdit, http.MethodGet, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got: %v", err)
	}
	if apiErr.Message != "doctor not found" {
		t.Errorf("Expected server message, got %q", apiErr.Message)
	}
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected *HTTPError, got: %v", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", httpErr.Status)
	}
	if IsNetworkError(err) {
		t.Error("HTTPError must not be classified as NetworkError")
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL)
	_, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, nil)

	if !IsNetworkError(err) {
		t.Fatalf("Expected NetworkError, got: %v", err)
	}
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, zerolog.Nop(), nil)
	_, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, nil)

	if !IsNetworkError(err) {
		t.Fatalf("Expected NetworkError on timeout, got: %v", err)
	}
}

func TestDo_UnknownEndpointRejected(t *testing.T) {
	c := newTestClient("http://localhost:1")
	_, err := c.Do(context.Background(), Endpoint("/not-in-table"), http.MethodGet, nil, nil)

	if !errors.Is(err, ErrUnknownEndpoint) {
		t.Fatalf("Expected ErrUnknownEndpoint, got: %v", err)
	}
}

func TestDo_MalformedJSONIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError for malformed body, got: %v", err)
	}
}

func TestDoRaw_ReturnsBodyWithoutEnvelopeCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"data":{"id":7,"name":"Dr. Priya"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	raw, err := c.DoRaw(context.Background(), EndpointDoctorLogin, http.MethodPost,
		map[string]string{"username": "priya", "password": "secret"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("Expected raw body")
	}
}

func TestSetAuthToken_AttachesBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.SetAuthToken("tok-123")
	if _, err := c.Do(context.Background(), EndpointDoctorDashboard, http.MethodGet, nil, nil); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
}
