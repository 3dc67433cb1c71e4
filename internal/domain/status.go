package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type StatusEntry struct {
	Code  Code `json:"code"`
	Value any  `json:"value"`
}

// DeviceStatus is the data point list returned by the status endpoint.
type DeviceStatus []StatusEntry

type LampState struct {
	On         bool   `mapstructure:"switch_led"`
	Brightness int    `mapstructure:"bright_value_v2"`
	WorkMode   string `mapstructure:"work_mode"`
}

func (s LampState) BrightnessPercent() int {
	return Unscale(s.Brightness)
}

// IsOn reports whether any switch_led entry holds a truthy value.
func (s DeviceStatus) IsOn() bool {
	for _, e := range s {
		if e.Code == CodePower && truthy(e.Value) {
			return true
		}
	}
	return false
}

func (s DeviceStatus) State() (LampState, error) {
	values := make(map[string]any, len(s))
	for _, e := range s {
		values[string(e.Code)] = e.Value
	}

	var state LampState
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &state,
	})
	if err != nil {
		return LampState{}, fmt.Errorf("creating status decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return LampState{}, fmt.Errorf("decoding status: %w", err)
	}

	state.On = s.IsOn()
	return state, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
