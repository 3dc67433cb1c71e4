package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinnia/internal/domain"
)

func TestDeviceStatus_IsOn(t *testing.T) {
	tests := []struct {
		name   string
		status domain.DeviceStatus
		want   bool
	}{
		{"empty", nil, false},
		{"on", domain.DeviceStatus{{Code: domain.CodePower, Value: true}}, true},
		{"off", domain.DeviceStatus{{Code: domain.CodePower, Value: false}}, false},
		{"other codes ignored", domain.DeviceStatus{{Code: domain.CodeBrightness, Value: 1000.0}}, false},
		{"any truthy entry wins", domain.DeviceStatus{
			{Code: domain.CodePower, Value: false},
			{Code: domain.CodePower, Value: true},
		}, true},
		{"numeric truthiness", domain.DeviceStatus{{Code: domain.CodePower, Value: 1.0}}, true},
		{"empty string is false", domain.DeviceStatus{{Code: domain.CodePower, Value: ""}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsOn())
		})
	}
}

func TestDeviceStatus_State(t *testing.T) {
	status := domain.DeviceStatus{
		{Code: domain.CodePower, Value: true},
		{Code: domain.CodeBrightness, Value: 500.0},
		{Code: domain.CodeWorkMode, Value: "white"},
		{Code: "temp_value_v2", Value: 255.0},
	}

	state, err := status.State()
	require.NoError(t, err)

	assert.True(t, state.On)
	assert.Equal(t, 500, state.Brightness)
	assert.Equal(t, 50, state.BrightnessPercent())
	assert.Equal(t, "white", state.WorkMode)
}

func TestDeviceStatus_StateWeakTypes(t *testing.T) {
	status := domain.DeviceStatus{
		{Code: domain.CodePower, Value: false},
		{Code: domain.CodeBrightness, Value: "250"},
	}

	state, err := status.State()
	require.NoError(t, err)

	assert.False(t, state.On)
	assert.Equal(t, 250, state.Brightness)
	assert.Empty(t, state.WorkMode)
}
