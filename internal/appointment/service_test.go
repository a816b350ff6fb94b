package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/api"
	"github.com/arun-kumar-js/heal-doc/internal/doctor"
	"github.com/arun-kumar-js/heal-doc/internal/testutil"
)

func TestFetch_ReturnsFullSortedList(t *testing.T) {
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			if endpoint != api.EndpointDoctorAppointments {
				t.Errorf("Unexpected endpoint: %s", endpoint)
			}
			if got := query.Get("doctor_id"); got != "12" {
				t.Errorf("Expected doctor_id=12, got %q", got)
			}
			return &api.Response{
				Status: true,
				Data: json.RawMessage(`{"appointments":[
					{"id":1,"appointment_time":"11:00","status":"completed"},
					{"id":2,"appointment_time":"09:00","status":"scheduled"}
				]}`),
			}, nil
		},
	}

	svc := NewService(gw, zerolog.Nop(), nil)
	list, err := svc.Fetch(context.Background(), "12")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Full set, no status restriction, sorted ascending.
	if len(list) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(list))
	}
	if list[0].ID != 2 || list[1].ID != 1 {
		t.Errorf("Expected sorted order [2 1], got [%d %d]", list[0].ID, list[1].ID)
	}
}

func TestFetch_MissingDoctorID(t *testing.T) {
	gw := &testutil.MockGateway{}
	svc := NewService(gw, zerolog.Nop(), nil)

	_, err := svc.Fetch(context.Background(), "")
	if !errors.Is(err, doctor.ErrMissingDoctorID) {
		t.Fatalf("Expected ErrMissingDoctorID, got: %v", err)
	}
	if gw.CallCount() != 0 {
		t.Error("No network call may happen without a doctor id")
	}
}

func TestFetch_ErrorPropagates(t *testing.T) {
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			return nil, &api.NetworkError{Err: errors.New("down")}
		},
	}

	svc := NewService(gw, zerolog.Nop(), nil)
	_, err := svc.Fetch(context.Background(), "12")

	// Unlike the dashboard there is no fallback path here.
	if !api.IsNetworkError(err) {
		t.Fatalf("Expected NetworkError to propagate, got: %v", err)
	}
}

func TestUpdateDelay_PostsPayload(t *testing.T) {
	var gotBody any
	gw := &testutil.MockGateway{
		DoFunc: func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
			if endpoint != api.EndpointAppointmentUpdate || method != "POST" {
				t.Errorf("Unexpected call: %s %s", method, endpoint)
			}
			gotBody = body
			return &api.Response{Status: true}, nil
		},
	}

	svc := NewService(gw, zerolog.Nop(), nil)
	if err := svc.UpdateDelay(context.Background(), 42, "00:15"); err != nil {
		t.Fatalf("UpdateDelay failed: %v", err)
	}

	b, _ := json.Marshal(gotBody)
	if string(b) != `{"appointment_id":42,"delay_time":"00:15"}` {
		t.Errorf("Unexpected body: %s", b)
	}
}
