package bitfield

import (
	"github.com/pkg/errors"
	gobitfield "github.com/prysmaticlabs/go-bitfield"
)

// ToBitlist converts the bitfield into a go-bitfield Bitlist of participants bits, the
// form attestations carry their aggregation bits in. Votes recorded at or beyond
// participants cannot be represented and produce ErrIndexOutOfRange.
func (b Bitfield) ToBitlist(participants uint64) (gobitfield.Bitlist, error) {
	if participants > uint64(b.Size()) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%d participants, size %d", participants, b.Size())
	}
	bl := gobitfield.NewBitlist(participants)
	for _, idx := range b.BitIndices() {
		if uint64(idx) >= participants {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "vote at index %d, %d participants", idx, participants)
		}
		bl.SetBitAt(uint64(idx), true)
	}
	return bl, nil
}

// FromBitlist returns a bitfield holding the votes of bl, sized for bl.Len() participants.
func FromBitlist(bl gobitfield.Bitlist) Bitfield {
	n := bl.Len()
	b := NewEmpty(int(n))
	for i := uint64(0); i < n; i++ {
		if bl.BitAt(i) {
			b.data[i/8] |= 1 << (i % 8)
		}
	}
	return b
}
