package votes

import (
	"encoding/binary"
	"fmt"
)

// Round identifies the committee vote of one shard in one period.
type Round struct {
	Shard  uint64
	Period uint64
}

// Key returns the cache key of the round.
func (r Round) Key() string {
	return fmt.Sprintf("%d/%d", r.Shard, r.Period)
}

func (r Round) marshal() []byte {
	enc := make([]byte, 16)
	binary.LittleEndian.PutUint64(enc[:8], r.Shard)
	binary.LittleEndian.PutUint64(enc[8:], r.Period)
	return enc
}
