// Package bitfield records which attesters of a shard committee have voted in a period.
//
// A Bitfield is an immutable, byte-aligned bit vector. Bit i maps to byte i/8 at position
// i%8, least significant bit first, which is also its wire encoding. Methods that record a
// vote return a new Bitfield and never touch the receiver, so a Bitfield can be shared
// between goroutines without locking.
//
//   bf := bitfield.NewEmpty(committeeSize)
//   bf, err := bf.MarkVote(attesterIndex)
//   ...
//   agg, ok, err := bitfield.Or(records...)
package bitfield
