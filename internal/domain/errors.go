package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange   = errors.New("out of range")
	ErrTransport    = errors.New("transport failure")
	ErrInvalidInput = errors.New("invalid input")
)

type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrOutOfRange
}

// TransportError covers everything between the controller and the device:
// network failures, auth failures and vendor-side rejections.
type TransportError struct {
	Op   string
	Path string
	Code int
	Msg  string
	Err  error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Code != 0:
		return fmt.Sprintf("%s %s: rejected (code %d): %s", e.Op, e.Path, e.Code, e.Msg)
	default:
		return fmt.Sprintf("%s %s: rejected: %s", e.Op, e.Path, e.Msg)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

type InputError struct {
	Input string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("not a number: %q", e.Input)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
