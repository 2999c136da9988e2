package bitfield

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/shared/bitutil"
)

// Bitfield is an immutable set of attester votes with a byte-aligned capacity.
// The zero value is a valid bitfield of size zero.
type Bitfield struct {
	data []byte
}

// NewEmpty returns a bitfield able to hold a vote from each of participants attesters,
// rounded up to a whole byte, with no votes recorded. A non-positive count yields an
// empty bitfield.
func NewEmpty(participants int) Bitfield {
	return Bitfield{data: make([]byte, bitutil.BitLength(participants))}
}

// FromBytes returns the bitfield encoded by data. The input is copied.
func FromBytes(data []byte) Bitfield {
	return Bitfield{data: copyBytes(data)}
}

// MarkVote returns a copy of the bitfield with the vote of the attester at index recorded.
// The receiver is left unchanged.
func (b Bitfield) MarkVote(index int) (Bitfield, error) {
	if err := b.checkIndex(index); err != nil {
		return Bitfield{}, err
	}
	marked := b.Copy()
	if err := bitutil.SetBit(marked.data, index); err != nil {
		return Bitfield{}, err
	}
	return marked, nil
}

// HasVoted reports whether the attester at index has voted.
func (b Bitfield) HasVoted(index int) (bool, error) {
	if err := b.checkIndex(index); err != nil {
		return false, err
	}
	return bitutil.BitfieldBit(b.data, index) == 1, nil
}

// CalcVotes returns the number of recorded votes.
func (b Bitfield) CalcVotes() int {
	return bitutil.BitSetCount(b.data)
}

// Size returns the number of addressable attester bits, always a multiple of 8.
func (b Bitfield) Size() int {
	return len(b.data) * 8
}

// Data returns the byte encoding of the bitfield, Size()/8 bytes long.
func (b Bitfield) Data() []byte {
	return copyBytes(b.data)
}

// Copy returns a bitfield with the same votes backed by its own storage.
func (b Bitfield) Copy() Bitfield {
	return Bitfield{data: copyBytes(b.data)}
}

// Equal reports whether both bitfields have the same size and votes.
func (b Bitfield) Equal(other Bitfield) bool {
	return bytes.Equal(b.data, other.data)
}

// BitIndices returns the indices of the attesters that voted, in increasing order.
func (b Bitfield) BitIndices() []int {
	indices := make([]int, 0, b.CalcVotes())
	for i := 0; i < b.Size(); i++ {
		if bitutil.BitfieldBit(b.data, i) == 1 {
			indices = append(indices, i)
		}
	}
	return indices
}

// Contains reports whether every vote recorded in other is also recorded in b.
func (b Bitfield) Contains(other Bitfield) (bool, error) {
	if b.Size() != other.Size() {
		return false, errors.Wrapf(ErrBitsDifferentLen, "%d != %d", b.Size(), other.Size())
	}
	for i := range b.data {
		if b.data[i]&other.data[i] != other.data[i] {
			return false, nil
		}
	}
	return true, nil
}

func (b Bitfield) checkIndex(index int) error {
	if index < 0 || index >= b.Size() {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, b.Size())
	}
	return nil
}

func copyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
