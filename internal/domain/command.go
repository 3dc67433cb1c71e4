package domain

type Code string

const (
	CodePower      Code = "switch_led"
	CodeBrightness Code = "bright_value_v2"
	CodeWorkMode   Code = "work_mode"
)

// WorkModeWhite is the work mode set alongside every brightness change.
const WorkModeWhite = "white"

type Command struct {
	Code  Code `json:"code"`
	Value any  `json:"value"`
}

// CommandBatch is sent as one request; the device applies all of it or none.
type CommandBatch []Command

func PowerBatch(on bool) CommandBatch {
	return CommandBatch{{Code: CodePower, Value: on}}
}

// BrightnessBatch powers the lamp on, sets the brightness and switches it to
// white mode. The percent must already be validated.
func BrightnessBatch(percent int) CommandBatch {
	return CommandBatch{
		{Code: CodePower, Value: true},
		{Code: CodeBrightness, Value: Scale(percent)},
		{Code: CodeWorkMode, Value: WorkModeWhite},
	}
}
