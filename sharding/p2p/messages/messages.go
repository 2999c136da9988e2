// Package messages defines the p2p messages attesters exchange about committee votes.
package messages

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/prysmaticlabs/shardvote/sharding/bitfield"
)

// MaxVoteRecordBytes bounds the bitfield of a vote record, enough for 2048 attesters.
const MaxVoteRecordBytes = 256

// voteRecordFixedSize is shard, period and the offset of the bitfield.
const voteRecordFixedSize = 8 + 8 + 4

// VoteRecord defines a p2p message being sent over subscription feeds by attesters
// to announce the votes they know of for a shard in a period.
type VoteRecord struct {
	Shard  uint64
	Period uint64
	Bits   bitfield.Bitfield
}

// MarshalSSZ ssz marshals the VoteRecord object
func (v *VoteRecord) MarshalSSZ() ([]byte, error) {
	return ssz.MarshalSSZ(v)
}

// MarshalSSZTo ssz marshals the VoteRecord object to a target array
func (v *VoteRecord) MarshalSSZTo(buf []byte) (dst []byte, err error) {
	dst = buf
	if size := v.Bits.SizeSSZ(); size > MaxVoteRecordBytes {
		return nil, ssz.ErrBytesLength
	}

	// Field (0) 'Shard'
	dst = ssz.MarshalUint64(dst, v.Shard)

	// Field (1) 'Period'
	dst = ssz.MarshalUint64(dst, v.Period)

	// Offset (2) 'Bits'
	dst = ssz.WriteOffset(dst, voteRecordFixedSize)

	// Field (2) 'Bits'
	return v.Bits.MarshalSSZTo(dst)
}

// UnmarshalSSZ ssz unmarshals the VoteRecord object
func (v *VoteRecord) UnmarshalSSZ(buf []byte) error {
	size := uint64(len(buf))
	if size < voteRecordFixedSize {
		return ssz.ErrSize
	}

	v.Shard = ssz.UnmarshallUint64(buf[0:8])
	v.Period = ssz.UnmarshallUint64(buf[8:16])
	if o := ssz.ReadOffset(buf[16:20]); o != voteRecordFixedSize {
		return ssz.ErrOffset
	}

	tail := buf[voteRecordFixedSize:]
	if len(tail) > MaxVoteRecordBytes {
		return ssz.ErrBytesLength
	}
	return v.Bits.UnmarshalSSZ(tail)
}

// SizeSSZ returns the ssz encoded size in bytes for the VoteRecord object
func (v *VoteRecord) SizeSSZ() int {
	return voteRecordFixedSize + v.Bits.SizeSSZ()
}

// HashTreeRoot ssz hashes the VoteRecord object
func (v *VoteRecord) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith ssz hashes the VoteRecord object with a hasher
func (v *VoteRecord) HashTreeRootWith(hh *ssz.Hasher) error {
	indx := hh.Index()

	// Field (0) 'Shard'
	hh.PutUint64(v.Shard)

	// Field (1) 'Period'
	hh.PutUint64(v.Period)

	// Field (2) 'Bits'
	{
		elemIndx := hh.Index()
		byteLen := uint64(v.Bits.SizeSSZ())
		if byteLen > MaxVoteRecordBytes {
			return ssz.ErrIncorrectListSize
		}
		hh.Append(v.Bits.Data())
		hh.FillUpTo32()
		hh.MerkleizeWithMixin(elemIndx, byteLen, (MaxVoteRecordBytes+31)/32)
	}

	hh.Merkleize(indx)
	return nil
}
