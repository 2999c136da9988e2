// Package bitutil contains byte-slice helpers for LSB-first bitfields, where bit i lives in
// byte i/8 at position i%8.
package bitutil

import (
	"github.com/pkg/errors"
	"github.com/steakknife/hamming"
)

// ErrOutOfRange is returned when a bit index falls outside of a bitfield.
var ErrOutOfRange = errors.New("bit index out of range")

// BitLength returns the number of bytes needed to hold b bits.
func BitLength(b int) int {
	if b <= 0 {
		return 0
	}
	return (b-1)/8 + 1
}

// BitfieldBit extracts the bit in bitfield at position i.
// Spec pseudocode definition:
//   def get_bitfield_bit(bitfield: bytes, i: int) -> int:
//     """
//     Extract the bit in ``bitfield`` at position ``i``.
//     """
//     return (bitfield[i // 8] >> (i % 8)) % 2
func BitfieldBit(bitfield []byte, i int) byte {
	//take the relevant byte in bitfield in order to get i value
	rb := bitfield[i>>3]
	//shift the byte till i is its first bit
	fb := rb >> (uint(i) & 0x7)
	//zero the byte value except its first bit
	return fb & 0x1
}

// CheckBit checks if the bit at index is one.
func CheckBit(bitfield []byte, index int) (bool, error) {
	if err := checkIndex(bitfield, index); err != nil {
		return false, err
	}
	return BitfieldBit(bitfield, index) == 1, nil
}

// SetBit sets the bit at index in place. Callers that share the slice must copy it first.
func SetBit(bitfield []byte, index int) error {
	if err := checkIndex(bitfield, index); err != nil {
		return err
	}
	bitfield[index>>3] |= 1 << (uint(index) & 0x7)
	return nil
}

// BitSetCount counts the number of 1s in a byte slice using Hamming weight.
// See: https://en.wikipedia.org/wiki/Hamming_weight
func BitSetCount(b []byte) int {
	return hamming.CountBitsBytes(b)
}

// OrInto sets every bit of src into dst. Both slices must have the same length.
func OrInto(dst, src []byte) error {
	if len(dst) != len(src) {
		return errors.Errorf("cannot or %d bytes into %d bytes", len(src), len(dst))
	}
	for i := range src {
		dst[i] |= src[i]
	}
	return nil
}

func checkIndex(bitfield []byte, index int) error {
	if index < 0 || index >= len(bitfield)*8 {
		return errors.Wrapf(ErrOutOfRange, "index %d, bitfield length %d bits", index, len(bitfield)*8)
	}
	return nil
}
