package application

import (
	"context"
	"encoding/json"
	"time"

	"zinnia/internal/domain"
)

// Response is the envelope every Tuya OpenAPI call answers with.
type Response struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	T       int64           `json:"t"`
	Result  json.RawMessage `json:"result"`
}

type Transport interface {
	Post(ctx context.Context, path string, body any) (*Response, error)
	Get(ctx context.Context, path string) (*Response, error)
}

// Notifier pushes a human-readable message to the user, e.g. when a routine
// finishes.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(_ context.Context, _ string) error { return nil }

type Recorder interface {
	ObserveBatch(action string, took time.Duration, err error)
	ObserveState(state domain.LampState)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveBatch(_ string, _ time.Duration, _ error) {}
func (NoopRecorder) ObserveState(_ domain.LampState)                 {}
