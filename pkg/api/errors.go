package api

import "fmt"

// InputError is a request the host refuses before any computation runs.
type InputError struct {
	msg string
}

func (e *InputError) Error() string      { return e.msg }
func (e *InputError) InvalidInput() bool { return true }

func invalidf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}
