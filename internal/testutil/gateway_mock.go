package testutil

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/arun-kumar-js/heal-doc/internal/api"
)

// MockGateway is a func-field mock of the API gateway for unit tests.
// Unset funcs answer with an empty successful envelope.
type MockGateway struct {
	mu sync.Mutex

	DoFunc     func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error)
	DoRawFunc  func(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (json.RawMessage, error)
	UploadFunc func(ctx context.Context, endpoint api.Endpoint, fields map[string]string, fileField, filePath string) (*api.Response, error)

	// Calls records "METHOD endpoint" in invocation order.
	Calls []string
	// Token records the last SetAuthToken value.
	Token string
}

// Ensure MockGateway implements api.Gateway
var _ api.Gateway = (*MockGateway)(nil)

func (m *MockGateway) record(method string, endpoint api.Endpoint) {
	m.mu.Lock()
	m.Calls = append(m.Calls, method+" "+string(endpoint))
	m.mu.Unlock()
}

func (m *MockGateway) Do(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (*api.Response, error) {
	m.record(method, endpoint)
	if m.DoFunc != nil {
		return m.DoFunc(ctx, endpoint, method, body, query)
	}
	return &api.Response{Status: true, Data: json.RawMessage(`{}`)}, nil
}

func (m *MockGateway) DoRaw(ctx context.Context, endpoint api.Endpoint, method string, body any, query url.Values) (json.RawMessage, error) {
	m.record(method, endpoint)
	if m.DoRawFunc != nil {
		return m.DoRawFunc(ctx, endpoint, method, body, query)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockGateway) Upload(ctx context.Context, endpoint api.Endpoint, fields map[string]string, fileField, filePath string) (*api.Response, error) {
	m.record("UPLOAD", endpoint)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, endpoint, fields, fileField, filePath)
	}
	return &api.Response{Status: true, Data: json.RawMessage(`{}`)}, nil
}

func (m *MockGateway) SetAuthToken(token string) {
	m.mu.Lock()
	m.Token = token
	m.mu.Unlock()
}

// CallCount reports how many gateway calls were made.
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
