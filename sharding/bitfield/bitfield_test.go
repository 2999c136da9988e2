package bitfield

import (
	"bytes"
	"sync"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/prysmaticlabs/shardvote/shared/testutil/assert"
	"github.com/prysmaticlabs/shardvote/shared/testutil/require"
)

func TestNewEmpty_Size(t *testing.T) {
	tests := []struct {
		participants int
		size         int
	}{
		{participants: -1, size: 0},
		{participants: 0, size: 0},
		{participants: 1, size: 8},
		{participants: 7, size: 8},
		{participants: 8, size: 8},
		{participants: 9, size: 16},
		{participants: 16, size: 16},
		{participants: 135, size: 136},
		{participants: 1024, size: 1024},
	}
	for _, tt := range tests {
		b := NewEmpty(tt.participants)
		assert.Equal(t, tt.size, b.Size(), "NewEmpty(%d).Size()", tt.participants)
		assert.Equal(t, tt.size/8, len(b.Data()), "NewEmpty(%d) data length", tt.participants)
		assert.Equal(t, 0, b.CalcVotes(), "NewEmpty(%d) votes", tt.participants)
	}
}

func TestNewEmpty_SizeFormula(t *testing.T) {
	for n := 0; n < 1000; n++ {
		want := 0
		if n != 0 {
			want = ((n-1)/8 + 1) * 8
		}
		require.Equal(t, want, NewEmpty(n).Size(), "participants %d", n)
		require.Equal(t, 0, NewEmpty(n).CalcVotes())
	}
}

func TestFromBytes(t *testing.T) {
	data := []byte{0b00000101, 0b10000000}
	b := FromBytes(data)
	assert.Equal(t, 16, b.Size())
	assert.Equal(t, 3, b.CalcVotes())
	assert.DeepEqual(t, []int{0, 2, 15}, b.BitIndices())

	// Mutating the input must not leak into the bitfield.
	data[0] = 0xff
	voted, err := b.HasVoted(1)
	require.NoError(t, err)
	assert.Equal(t, false, voted)
}

func TestFromBytes_RoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 500; i++ {
		var data []byte
		f.Fuzz(&data)
		b := FromBytes(data)
		require.Equal(t, len(data)*8, b.Size())
		if !bytes.Equal(data, b.Data()) {
			t.Fatalf("round trip mismatch, got %#x want %#x", b.Data(), data)
		}
		require.Equal(t, true, FromBytes(b.Data()).Equal(b))
	}
}

func TestMarkVote(t *testing.T) {
	b := NewEmpty(16)
	for i := 0; i < b.Size(); i++ {
		marked, err := b.MarkVote(i)
		require.NoError(t, err)

		voted, err := marked.HasVoted(i)
		require.NoError(t, err)
		assert.Equal(t, true, voted, "index %d", i)
		assert.Equal(t, 1, marked.CalcVotes())

		original, err := b.HasVoted(i)
		require.NoError(t, err)
		assert.Equal(t, false, original, "original mutated at index %d", i)

		for j := 0; j < b.Size(); j++ {
			if j == i {
				continue
			}
			other, err := marked.HasVoted(j)
			require.NoError(t, err)
			assert.Equal(t, false, other, "marking %d set %d", i, j)
		}
	}
	assert.Equal(t, 0, b.CalcVotes())
}

func TestMarkVote_DoesNotAffectOtherVotes(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for k := 0; k < 200; k++ {
		var data []byte
		f.Fuzz(&data)
		if len(data) == 0 {
			continue
		}
		b := FromBytes(data)
		var idx uint16
		f.Fuzz(&idx)
		i := int(idx) % b.Size()

		marked, err := b.MarkVote(i)
		require.NoError(t, err)
		for j := 0; j < b.Size(); j++ {
			if j == i {
				continue
			}
			before, err := b.HasVoted(j)
			require.NoError(t, err)
			after, err := marked.HasVoted(j)
			require.NoError(t, err)
			require.Equal(t, before, after, "marking %d changed %d", i, j)
		}
		require.DeepEqual(t, data, b.Data(), "receiver was mutated")
	}
}

func TestMarkVote_Idempotent(t *testing.T) {
	b, err := NewEmpty(8).MarkVote(5)
	require.NoError(t, err)
	again, err := b.MarkVote(5)
	require.NoError(t, err)
	assert.Equal(t, true, b.Equal(again))
	assert.Equal(t, 1, again.CalcVotes())
}

func TestCalcVotes(t *testing.T) {
	b := NewEmpty(16)
	b, err := b.MarkVote(3)
	require.NoError(t, err)
	b, err = b.MarkVote(9)
	require.NoError(t, err)
	assert.Equal(t, 2, b.CalcVotes())
	assert.DeepEqual(t, []int{3, 9}, b.BitIndices())
	assert.DeepEqual(t, []byte{0b00001000, 0b00000010}, b.Data())
}

func TestIndexOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		b     Bitfield
		index int
	}{
		{name: "negative", b: NewEmpty(16), index: -1},
		{name: "size", b: NewEmpty(16), index: 16},
		{name: "far beyond", b: NewEmpty(9), index: 1 << 20},
		{name: "empty bitfield", b: NewEmpty(0), index: 0},
		{name: "zero value", b: Bitfield{}, index: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.MarkVote(tt.index)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			voted, err := tt.b.HasVoted(tt.index)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.Equal(t, false, voted)
		})
	}
}

func TestOr(t *testing.T) {
	a, err := NewEmpty(8).MarkVote(0)
	require.NoError(t, err)
	b, err := NewEmpty(8).MarkVote(1)
	require.NoError(t, err)
	c := NewEmpty(8)

	agg, ok, err := Or(a, b, c)
	require.NoError(t, err)
	require.Equal(t, true, ok)
	assert.Equal(t, 8, agg.Size())
	assert.DeepEqual(t, []int{0, 1}, agg.BitIndices())

	// Inputs stay untouched.
	assert.DeepEqual(t, []int{0}, a.BitIndices())
	assert.DeepEqual(t, []int{1}, b.BitIndices())
	assert.Equal(t, 0, c.CalcVotes())
}

func TestOr_Empty(t *testing.T) {
	agg, ok, err := Or()
	require.NoError(t, err)
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, agg.Size())

	agg, ok, err = Or([]Bitfield{}...)
	require.NoError(t, err)
	assert.Equal(t, false, ok)

	// A single zero-length record is a real result.
	agg, ok, err = Or(NewEmpty(0))
	require.NoError(t, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, 0, agg.Size())
}

func TestOr_SingleReturnsCopy(t *testing.T) {
	a := FromBytes([]byte{0xa5})
	agg, ok, err := Or(a)
	require.NoError(t, err)
	require.Equal(t, true, ok)
	assert.Equal(t, true, agg.Equal(a))
	agg.data[0] = 0
	assert.DeepEqual(t, []byte{0xa5}, a.Data())
}

func TestOr_DifferentLengths(t *testing.T) {
	_, ok, err := Or(NewEmpty(8), NewEmpty(16))
	assert.ErrorIs(t, err, ErrBitsDifferentLen)
	assert.Equal(t, false, ok)

	_, _, err = Or(NewEmpty(16), NewEmpty(16), NewEmpty(8))
	assert.ErrorContains(t, "bitfield 2 has size 8, want 16", err)
}

func TestContains(t *testing.T) {
	a := FromBytes([]byte{0b0111})
	b := FromBytes([]byte{0b0101})
	ok, err := a.Contains(b)
	require.NoError(t, err)
	assert.Equal(t, true, ok)

	ok, err = b.Contains(a)
	require.NoError(t, err)
	assert.Equal(t, false, ok)

	_, err = a.Contains(NewEmpty(16))
	assert.ErrorIs(t, err, ErrBitsDifferentLen)
}

func TestData_ReturnsCopy(t *testing.T) {
	b := FromBytes([]byte{0x01})
	data := b.Data()
	data[0] = 0xff
	assert.Equal(t, 1, b.CalcVotes())
}

func TestConcurrentReads(t *testing.T) {
	b, err := NewEmpty(64).MarkVote(42)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			marked, err := b.MarkVote(i)
			if err != nil {
				t.Error(err)
				return
			}
			if marked.CalcVotes() != 2 {
				t.Errorf("unexpected vote count %d", marked.CalcVotes())
			}
		}(i)
	}
	wg.Wait()
	assert.DeepEqual(t, []int{42}, b.BitIndices())
}
