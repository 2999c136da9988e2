package votes

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prysmaticlabs/shardvote/sharding/bitfield"
	"github.com/prysmaticlabs/shardvote/sharding/params"
	"github.com/prysmaticlabs/shardvote/shared/testutil/assert"
	"github.com/prysmaticlabs/shardvote/shared/testutil/require"
	logTest "github.com/sirupsen/logrus/hooks/test"
)

func testConfig() *params.Config {
	cfg := params.DefaultConfig.Copy()
	cfg.AttesterCommitteeSize = 16
	cfg.AttesterQuorumSize = 3
	cfg.SeenRecordCacheSize = 32
	return cfg
}

func votesAt(t *testing.T, size int, indices ...int) bitfield.Bitfield {
	b := bitfield.NewEmpty(size)
	for _, i := range indices {
		var err error
		b, err = b.MarkVote(i)
		require.NoError(t, err)
	}
	return b
}

func TestNewPool_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AttesterQuorumSize = 17
	_, err := NewPool(cfg)
	assert.ErrorContains(t, "invalid vote pool config", err)
}

func TestPool_SaveVotes(t *testing.T) {
	ctx := context.Background()
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	round := Round{Shard: 1, Period: 7}

	_, ok := p.Votes(ctx, round)
	assert.Equal(t, false, ok, "no round before the first record")

	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 0)))
	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 1, 9)))

	agg, ok := p.Votes(ctx, round)
	require.Equal(t, true, ok)
	assert.DeepEqual(t, []int{0, 1, 9}, agg.BitIndices())
	assert.Equal(t, 3, p.VoteCount(ctx, round))
	assert.Equal(t, 1, p.RoundCount())

	other := Round{Shard: 2, Period: 7}
	assert.Equal(t, 0, p.VoteCount(ctx, other))
	assert.Equal(t, false, p.HasQuorum(ctx, other))
}

func TestPool_SaveVotes_WrongSize(t *testing.T) {
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	err = p.SaveVotes(context.Background(), Round{}, votesAt(t, 8, 1))
	assert.ErrorIs(t, err, bitfield.ErrBitsDifferentLen)
	assert.Equal(t, 0, p.RoundCount())
}

func TestPool_SaveVotes_Duplicates(t *testing.T) {
	ctx := context.Background()
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	round := Round{Shard: 3, Period: 1}

	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 2, 3)))
	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 2, 3)))
	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 3)))
	assert.Equal(t, 2, p.VoteCount(ctx, round))

	// Once the round is dropped, a seen record is accepted again.
	p.DeleteRound(round)
	_, ok := p.Votes(ctx, round)
	assert.Equal(t, false, ok)
	require.NoError(t, p.SaveVotes(ctx, round, votesAt(t, 16, 2, 3)))
	assert.Equal(t, 2, p.VoteCount(ctx, round))
}

func TestPool_MarkVote(t *testing.T) {
	ctx := context.Background()
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	round := Round{Shard: 0, Period: 0}

	require.NoError(t, p.MarkVote(ctx, round, 15))
	agg, ok := p.Votes(ctx, round)
	require.Equal(t, true, ok)
	assert.DeepEqual(t, []int{15}, agg.BitIndices())

	assert.ErrorIs(t, p.MarkVote(ctx, round, 16), bitfield.ErrIndexOutOfRange)
	assert.ErrorIs(t, p.MarkVote(ctx, round, -1), bitfield.ErrIndexOutOfRange)
}

func TestPool_HasQuorum(t *testing.T) {
	hook := logTest.NewGlobal()
	ctx := context.Background()
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	round := Round{Shard: 4, Period: 2}

	require.NoError(t, p.MarkVote(ctx, round, 0))
	require.NoError(t, p.MarkVote(ctx, round, 1))
	assert.Equal(t, false, p.HasQuorum(ctx, round))
	assert.LogsDoNotContain(t, hook, "Round reached attester quorum")

	require.NoError(t, p.MarkVote(ctx, round, 2))
	assert.Equal(t, true, p.HasQuorum(ctx, round))
	assert.LogsContain(t, hook, "Round reached attester quorum")

	hook.Reset()
	require.NoError(t, p.MarkVote(ctx, round, 3))
	assert.LogsDoNotContain(t, hook, "Round reached attester quorum", "quorum must be logged once per round")
}

func TestPool_Expiry(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.VoteRecordExpiry = 50 * time.Millisecond
	p, err := NewPool(cfg)
	require.NoError(t, err)
	round := Round{Shard: 5, Period: 5}

	require.NoError(t, p.MarkVote(ctx, round, 1))
	time.Sleep(100 * time.Millisecond)
	_, ok := p.Votes(ctx, round)
	assert.Equal(t, false, ok, "round aggregate should have expired")
}

func TestPool_ConcurrentMarkVote(t *testing.T) {
	ctx := context.Background()
	p, err := NewPool(testConfig())
	require.NoError(t, err)
	round := Round{Shard: 9, Period: 9}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := p.MarkVote(ctx, round, i); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, p.VoteCount(ctx, round))
}

func TestRound_Key(t *testing.T) {
	assert.Equal(t, "3/12", Round{Shard: 3, Period: 12}.Key())
	assert.NotEqual(t, recordDigest(Round{Shard: 1}, votesAt(t, 8, 0)), recordDigest(Round{Period: 1}, votesAt(t, 8, 0)))
}
