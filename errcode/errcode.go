package errcode

import (
	"errors"

	"github.com/mucahitdemir/pico-examples/drivers/bmp280"
)

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	NoAck         Code = "no_ack"
	Timeout       Code = "timeout"
	NotDetected   Code = "not_detected"
	NotCalibrated Code = "not_calibrated"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver and transport errors to a Code.
// Protocol-ordering violations surface as not_calibrated so a consumer can
// tell a misuse apart from a wire fault.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, bmp280.ErrUninitialized):
		return NotCalibrated
	case errors.Is(err, bmp280.ErrNotDetected):
		return NotDetected
	}
	return Error
}
