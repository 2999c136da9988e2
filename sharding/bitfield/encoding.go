package bitfield

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
)

var (
	_ = ssz.Marshaler(Bitfield{})
	_ = ssz.Unmarshaler(&Bitfield{})
	_ = ssz.HashRoot(Bitfield{})
)

// String returns the 0x-prefixed hex encoding of the bitfield bytes.
func (b Bitfield) String() string {
	return hexutil.Encode(b.data)
}

// MarshalText implements encoding.TextMarshaler.
func (b Bitfield) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bitfield) UnmarshalText(text []byte) error {
	data, err := hexutil.Decode(string(text))
	if err != nil {
		return errors.Wrapf(err, "could not decode bitfield %q", text)
	}
	b.data = data
	return nil
}

// SizeSSZ returns the size of the serialized bitfield, which is a Bitvector[Size()].
func (b Bitfield) SizeSSZ() int {
	return len(b.data)
}

// MarshalSSZ ssz marshals the bitfield.
func (b Bitfield) MarshalSSZ() ([]byte, error) {
	return b.MarshalSSZTo(make([]byte, 0, b.SizeSSZ()))
}

// MarshalSSZTo ssz marshals the bitfield to a target array.
func (b Bitfield) MarshalSSZTo(dst []byte) ([]byte, error) {
	return append(dst, b.data...), nil
}

// UnmarshalSSZ ssz unmarshals the bitfield. Bitvectors carry no length, so the size is
// taken from the input.
func (b *Bitfield) UnmarshalSSZ(buf []byte) error {
	b.data = copyBytes(buf)
	return nil
}

// HashTreeRoot ssz hashes the bitfield.
func (b Bitfield) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the bitfield with a hasher.
func (b Bitfield) HashTreeRootWith(hh *ssz.Hasher) error {
	if len(b.data) == 0 {
		// An empty bitvector merkleizes to the zero chunk.
		hh.PutUint64(0)
		return nil
	}
	hh.PutBytes(b.data)
	return nil
}
