package bitfield

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/shared/bitutil"
)

// Or aggregates vote records of the same round: a vote is set in the result when it is set
// in any of the inputs. The result has the size of the first bitfield, and every other
// input must match it, otherwise ErrBitsDifferentLen is returned.
//
// ok is false when no bitfield is given. That is distinct from an aggregate with zero votes.
func Or(bitfields ...Bitfield) (agg Bitfield, ok bool, err error) {
	if len(bitfields) == 0 {
		return Bitfield{}, false, nil
	}
	agg = NewEmpty(bitfields[0].Size())
	for i, bf := range bitfields {
		if bf.Size() != agg.Size() {
			return Bitfield{}, false, errors.Wrapf(ErrBitsDifferentLen, "bitfield %d has size %d, want %d", i, bf.Size(), agg.Size())
		}
		if err := bitutil.OrInto(agg.data, bf.data); err != nil {
			return Bitfield{}, false, err
		}
	}
	return agg, true, nil
}
