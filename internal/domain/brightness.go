package domain

import "math"

const (
	MinPercent = 0
	MaxPercent = 100

	// MaxDeviceBrightness is the bright_value_v2 value for 100%.
	MaxDeviceBrightness = 1000
)

func ValidatePercent(percent int) error {
	if percent < MinPercent || percent > MaxPercent {
		return &ValidationError{Field: "brightness", Value: percent, Min: MinPercent, Max: MaxPercent}
	}
	return nil
}

// Scale maps a brightness percent onto device units.
func Scale(percent int) int {
	return int(math.Round(MaxDeviceBrightness * float64(percent) / MaxPercent))
}

// Unscale maps device units back onto the nearest percent.
func Unscale(value int) int {
	return int(math.Round(MaxPercent * float64(value) / MaxDeviceBrightness))
}
