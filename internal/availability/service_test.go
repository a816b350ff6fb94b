package availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/storage"
	"github.com/arun-kumar-js/heal-doc/internal/testutil"
)

func validRequest() Request {
	return Request{
		Reason:    "Annual leave",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-10",
		DoctorID:  "12",
		ClinicID:  "2",
	}
}

func TestValidate_EmptyReason(t *testing.T) {
	req := validRequest()
	req.Reason = ""

	var verr *ValidationError
	if err := req.Validate(); !errors.As(err, &verr) || verr.Field != "reason" {
		t.Fatalf("Expected reason validation error, got: %v", err)
	}
}

func TestValidate_EndBeforeStart(t *testing.T) {
	req := validRequest()
	req.StartDate = "2024-02-10"
	req.EndDate = "2024-02-01"

	var verr *ValidationError
	if err := req.Validate(); !errors.As(err, &verr) || verr.Field != "end_date" {
		t.Fatalf("Expected end_date validation error, got: %v", err)
	}
}

func TestValidate_BadDateFormat(t *testing.T) {
	req := validRequest()
	req.StartDate = "01/02/2024"

	var verr *ValidationError
	if err := req.Validate(); !errors.As(err, &verr) || verr.Field != "start_date" {
		t.Fatalf("Expected start_date validation error, got: %v", err)
	}
}

func TestValidate_SameDayRangeAllowed(t *testing.T) {
	req := validRequest()
	req.EndDate = req.StartDate

	if err := req.Validate(); err != nil {
		t.Fatalf("Single-day range must validate, got: %v", err)
	}
}

func TestMarkUnavailable_ValidationFailureMakesNoCall(t *testing.T) {
	gw := &testutil.MockGateway{}
	svc := NewService(gw, storage.NewMemoryStore(), zerolog.Nop(), nil)

	req := validRequest()
	req.Reason = ""
	state, err := svc.MarkUnavailable(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected validation error, got: %v", err)
	}
	if !state.Available {
		t.Error("State must stay Available on validation failure")
	}
	if gw.CallCount() != 0 {
		t.Error("Validation failure must not reach the network")
	}
}

func TestMarkUnavailable_CommitsOnlyAfterServerAck(t *testing.T) {
	kv := storage.NewMemoryStore()
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			if endpoint != api.EndpointDoctorInactive {
				t.Errorf("Unexpected endpoint: %s", endpoint)
			}
			return &api.Response{Status: true}, nil
		},
	}

	svc := NewService(gw, kv, zerolog.Nop(), nil)
	state, err := svc.MarkUnavailable(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("MarkUnavailable failed: %v", err)
	}

	if state.Available {
		t.Error("Expected Unavailable after server ack")
	}
	if state.StartDate != "2024-02-01" || state.EndDate != "2024-02-10" {
		t.Errorf("Exact dates not preserved: %+v", state)
	}

	// Annotation persisted alongside the flag.
	b, err := kv.Get("unavailability_details")
	if err != nil {
		t.Fatalf("Annotation not persisted: %v", err)
	}
	var a struct {
		Reason    string `json:"reason"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		t.Fatalf("Annotation not decodable: %v", err)
	}
	if a.Reason != "Annual leave" || a.StartDate != "2024-02-01" || a.EndDate != "2024-02-10" {
		t.Errorf("Annotation mismatch: %+v", a)
	}
}

func TestMarkUnavailable_ServerFailureStaysAvailable(t *testing.T) {
	kv := storage.NewMemoryStore()
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			return nil, &api.NetworkError{Err: errors.New("down")}
		},
	}

	svc := NewService(gw, kv, zerolog.Nop(), nil)
	state, err := svc.MarkUnavailable(context.Background(), validRequest())

	if err == nil {
		t.Fatal("Expected error from failed submission")
	}
	if !state.Available {
		t.Error("State must stay Available when the server does not confirm")
	}
	if _, err := kv.Get("unavailability_details"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Error("Nothing may be persisted without server confirmation")
	}
}

func TestMarkAvailable_UnconditionalLocalFlip(t *testing.T) {
	kv := storage.NewMemoryStore()
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			return &api.Response{Status: true}, nil
		},
	}

	svc := NewService(gw, kv, zerolog.Nop(), nil)
	if _, err := svc.MarkUnavailable(context.Background(), validRequest()); err != nil {
		t.Fatalf("Setup transition failed: %v", err)
	}
	callsBefore := gw.CallCount()

	state, err := svc.MarkAvailable(context.Background())
	if err != nil {
		t.Fatalf("MarkAvailable failed: %v", err)
	}
	if !state.Available {
		t.Error("Expected Available")
	}
	if state.Reason != "" {
		t.Error("Annotation must be cleared on return to Available")
	}
	if gw.CallCount() != callsBefore {
		t.Error("MarkAvailable must not require a server round-trip")
	}
}

func TestNewService_InitialStateFromStorage(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set("doctor_available", []byte("false"))
	kv.Set("unavailability_details", []byte(`{"reason":"Conference","startDate":"2024-03-01","endDate":"2024-03-05"}`))

	svc := NewService(&testutil.MockGateway{}, kv, zerolog.Nop(), nil)
	state := svc.Current()

	if state.Available {
		t.Error("Expected persisted Unavailable state restored")
	}
	if state.Reason != "Conference" || state.StartDate != "2024-03-01" {
		t.Errorf("Annotation not restored: %+v", state)
	}
}

func TestNewService_DefaultsToAvailable(t *testing.T) {
	svc := NewService(&testutil.MockGateway{}, storage.NewMemoryStore(), zerolog.Nop(), nil)

	if !svc.Current().Available {
		t.Error("Expected Available default on empty storage")
	}
}
