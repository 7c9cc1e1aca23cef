package toolpath

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every precondition failure of a generator.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError describes which input of a test failed its precondition.
type ParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Param, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidParameter) true.
func (e *ParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func invalid(param string, val interface{}, reason string) error {
	return &ParameterError{Param: param, Value: val, Reason: reason}
}
