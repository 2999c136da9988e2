package votes

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/sharding/bitfield"
)

// AttestingIndices returns the attester ids of the committee members that voted in bits,
// sorted in increasing order. committee maps a committee position to an attester id.
// The committee is provided as an argument so callers can reuse committees across rounds.
func AttestingIndices(bits bitfield.Bitfield, committee []uint64) ([]uint64, error) {
	if len(committee) > bits.Size() {
		return nil, errors.Wrapf(bitfield.ErrBitsDifferentLen, "committee of %d does not fit bitfield of size %d", len(committee), bits.Size())
	}
	indices := make([]uint64, 0, bits.CalcVotes())
	for _, idx := range bits.BitIndices() {
		if idx >= len(committee) {
			return nil, errors.Wrapf(bitfield.ErrIndexOutOfRange, "vote at position %d, committee of %d", idx, len(committee))
		}
		indices = append(indices, committee[idx])
	}
	sort.Slice(indices, func(i, j int) bool {
		return indices[i] < indices[j]
	})
	return indices, nil
}
