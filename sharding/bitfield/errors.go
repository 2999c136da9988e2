package bitfield

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned when an attester index does not address a bit of the bitfield.
	ErrIndexOutOfRange = errors.New("attester index out of range")

	// ErrBitsDifferentLen is returned when two bitfields of different sizes are combined.
	ErrBitsDifferentLen = errors.New("different bitfield lengths")
)
