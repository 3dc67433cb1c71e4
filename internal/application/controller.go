package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"zinnia/internal/domain"
)

// Controller drives a single lamp. It keeps no device state between calls and
// never retries: retries belong to the Transport.
type Controller struct {
	transport Transport
	deviceID  string
	recorder  Recorder
	logger    *slog.Logger
}

func NewController(transport Transport, deviceID string, recorder Recorder, logger *slog.Logger) *Controller {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Controller{
		transport: transport,
		deviceID:  deviceID,
		recorder:  recorder,
		logger:    logger,
	}
}

func (c *Controller) DeviceID() string {
	return c.deviceID
}

func (c *Controller) SetBrightness(ctx context.Context, percent int) error {
	if err := domain.ValidatePercent(percent); err != nil {
		c.logger.Warn("rejecting brightness", "percent", percent, "error", err)
		return err
	}
	return c.send(ctx, "set_brightness", domain.BrightnessBatch(percent))
}

func (c *Controller) TurnOn(ctx context.Context) error {
	return c.send(ctx, "turn_on", domain.PowerBatch(true))
}

// TurnOnAt is SetBrightness under another name: a brightness implies power
// on and white mode.
func (c *Controller) TurnOnAt(ctx context.Context, percent int) error {
	return c.SetBrightness(ctx, percent)
}

func (c *Controller) TurnOff(ctx context.Context) error {
	return c.send(ctx, "turn_off", domain.PowerBatch(false))
}

// Toggle reads the power state and flips it. Nothing is sent when the status
// cannot be read.
func (c *Controller) Toggle(ctx context.Context) error {
	status, err := c.status(ctx)
	if err != nil {
		return err
	}

	if status.IsOn() {
		return c.TurnOff(ctx)
	}
	return c.TurnOn(ctx)
}

func (c *Controller) Status(ctx context.Context) (domain.LampState, error) {
	status, err := c.status(ctx)
	if err != nil {
		return domain.LampState{}, err
	}

	state, err := status.State()
	if err != nil {
		return domain.LampState{}, fmt.Errorf("reading lamp state: %w", err)
	}

	c.recorder.ObserveState(state)
	return state, nil
}

func (c *Controller) Info(ctx context.Context) (domain.Device, error) {
	path := fmt.Sprintf("/v1.0/iot-03/devices/%s", c.deviceID)

	resp, err := c.query(ctx, path)
	if err != nil {
		return domain.Device{}, err
	}

	var info struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		ProductName string `json:"product_name"`
		IsOnline    bool   `json:"is_online"`
	}
	if err := json.Unmarshal(resp.Result, &info); err != nil {
		return domain.Device{}, fmt.Errorf("parsing device info: %w", err)
	}

	return domain.Device{
		ID:       info.ID,
		Name:     info.Name,
		Category: info.Category,
		Product:  info.ProductName,
		Type:     domain.CategoryType(info.Category),
		Online:   info.IsOnline,
	}, nil
}

func (c *Controller) status(ctx context.Context) (domain.DeviceStatus, error) {
	path := fmt.Sprintf("/v1.0/iot-03/devices/%s/status", c.deviceID)

	resp, err := c.query(ctx, path)
	if err != nil {
		return nil, err
	}

	var status domain.DeviceStatus
	if err := json.Unmarshal(resp.Result, &status); err != nil {
		terr := &domain.TransportError{Op: http.MethodGet, Path: path, Err: fmt.Errorf("parsing status: %w", err)}
		c.logger.Error("reading device status", "error", terr)
		return nil, terr
	}

	return status, nil
}

func (c *Controller) query(ctx context.Context, path string) (*Response, error) {
	opID := uuid.NewString()

	c.logger.Debug("querying device", "op_id", opID, "path", path)

	resp, err := c.transport.Get(ctx, path)
	if terr := transportFailure(http.MethodGet, path, resp, err); terr != nil {
		c.logger.Error("querying device", "op_id", opID, "path", path, "error", terr)
		return nil, terr
	}

	return resp, nil
}

func (c *Controller) send(ctx context.Context, action string, batch domain.CommandBatch) error {
	path := fmt.Sprintf("/v1.0/iot-03/devices/%s/commands", c.deviceID)
	opID := uuid.NewString()

	c.logger.Debug("sending command batch",
		"op_id", opID,
		"action", action,
		"commands", len(batch),
	)

	start := time.Now()
	resp, err := c.transport.Post(ctx, path, map[string]any{"commands": batch})
	terr := transportFailure(http.MethodPost, path, resp, err)
	c.recorder.ObserveBatch(action, time.Since(start), terr)

	if terr != nil {
		c.logger.Error("sending command batch", "op_id", opID, "action", action, "error", terr)
		return terr
	}

	c.logger.Info("command batch accepted", "op_id", opID, "action", action)
	return nil
}

// transportFailure folds a thrown error and a success=false envelope into one
// typed error; it returns nil when the call succeeded.
func transportFailure(op, path string, resp *Response, err error) error {
	switch {
	case err != nil:
		return &domain.TransportError{Op: op, Path: path, Err: err}
	case resp == nil:
		return &domain.TransportError{Op: op, Path: path, Msg: "empty response"}
	case !resp.Success:
		return &domain.TransportError{Op: op, Path: path, Code: resp.Code, Msg: resp.Msg}
	default:
		return nil
	}
}
