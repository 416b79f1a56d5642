package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInstruction means the source ended after an instruction's
	// leading byte but before all of its bytes were read.
	ErrTruncatedInstruction = errors.New("truncated instruction")
	// ErrUnrecognizedOpcode means the leading byte matched no known encoding.
	ErrUnrecognizedOpcode = errors.New("unrecognized opcode")
)

// DecodeError is a failure to decode the instruction starting at Offset.
// Raw holds every byte consumed while trying.
type DecodeError struct {
	Offset int
	Raw    []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset %d: %v (% x)", e.Offset, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Err }
