// Package votes collects the vote records of attester committees and keeps, per voting
// round, the aggregate of every record received.
package votes

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/minio/sha256-simd"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/sharding/bitfield"
	"github.com/prysmaticlabs/shardvote/sharding/params"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// Pool holds the aggregated votes of recent rounds. Round aggregates expire after
// VoteRecordExpiry. It is safe for concurrent use.
type Pool struct {
	cfg       *params.Config
	rounds    *cache.Cache
	seen      *lru.Cache
	lock      sync.RWMutex
	fieldSize int
}

// NewPool initializes a vote pool for committees described by cfg.
func NewPool(cfg *params.Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vote pool config")
	}
	seen, err := lru.New(cfg.SeenRecordCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create seen record cache")
	}
	p := &Pool{
		cfg:       cfg.Copy(),
		rounds:    cache.New(cfg.VoteRecordExpiry, cfg.VoteRecordExpiry),
		seen:      seen,
		fieldSize: bitfield.NewEmpty(cfg.AttesterCommitteeSize).Size(),
	}
	p.rounds.OnEvicted(func(string, interface{}) {
		trackedRounds.Set(float64(p.rounds.ItemCount()))
	})
	return p, nil
}

// SaveVotes aggregates a vote record into its round. Records whose votes are all known
// already are ignored.
func (p *Pool) SaveVotes(ctx context.Context, round Round, bits bitfield.Bitfield) error {
	_, span := trace.StartSpan(ctx, "votes.SaveVotes")
	defer span.End()

	if bits.Size() != p.fieldSize {
		rejectedVoteRecords.Inc()
		return errors.Wrapf(bitfield.ErrBitsDifferentLen, "record has size %d, committee needs %d", bits.Size(), p.fieldSize)
	}

	// A seen record is only a duplicate while its round is still held.
	digest := recordDigest(round, bits)
	if p.seen.Contains(digest) {
		p.lock.RLock()
		_, held := p.aggregate(round)
		p.lock.RUnlock()
		if held {
			duplicateVoteRecords.Inc()
			return nil
		}
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	current, ok := p.aggregate(round)
	if !ok {
		current = bitfield.NewEmpty(p.cfg.AttesterCommitteeSize)
	}
	known, err := current.Contains(bits)
	if err != nil {
		return err
	}
	p.seen.Add(digest, true)
	if known {
		duplicateVoteRecords.Inc()
		return nil
	}

	agg, _, err := bitfield.Or(current, bits)
	if err != nil {
		return errors.Wrap(err, "could not aggregate vote record")
	}
	p.rounds.Set(round.Key(), agg, cache.DefaultExpiration)
	trackedRounds.Set(float64(p.rounds.ItemCount()))
	savedVoteRecords.Inc()

	votes := agg.CalcVotes()
	if current.CalcVotes() < p.cfg.AttesterQuorumSize && votes >= p.cfg.AttesterQuorumSize {
		quorumReachedRounds.Inc()
		log.WithFields(logrus.Fields{
			"shard":  round.Shard,
			"period": round.Period,
			"votes":  votes,
		}).Info("Round reached attester quorum")
	}
	return nil
}

// MarkVote records the vote of a single attester of the round committee.
func (p *Pool) MarkVote(ctx context.Context, round Round, index int) error {
	ctx, span := trace.StartSpan(ctx, "votes.MarkVote")
	defer span.End()

	bits, err := bitfield.NewEmpty(p.cfg.AttesterCommitteeSize).MarkVote(index)
	if err != nil {
		return err
	}
	return p.SaveVotes(ctx, round, bits)
}

// Votes returns the aggregated votes of the round. ok is false when no record of the round
// is held.
func (p *Pool) Votes(ctx context.Context, round Round) (bits bitfield.Bitfield, ok bool) {
	_, span := trace.StartSpan(ctx, "votes.Votes")
	defer span.End()

	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.aggregate(round)
}

// VoteCount returns the number of attesters that voted in the round.
func (p *Pool) VoteCount(ctx context.Context, round Round) int {
	bits, ok := p.Votes(ctx, round)
	if !ok {
		return 0
	}
	return bits.CalcVotes()
}

// HasQuorum reports whether enough attesters voted in the round.
func (p *Pool) HasQuorum(ctx context.Context, round Round) bool {
	return p.VoteCount(ctx, round) >= p.cfg.AttesterQuorumSize
}

// DeleteRound drops the aggregate of the round.
func (p *Pool) DeleteRound(round Round) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.rounds.Delete(round.Key())
	trackedRounds.Set(float64(p.rounds.ItemCount()))
}

// RoundCount returns the number of rounds held in the pool.
func (p *Pool) RoundCount() int {
	return p.rounds.ItemCount()
}

func (p *Pool) aggregate(round Round) (bitfield.Bitfield, bool) {
	v, ok := p.rounds.Get(round.Key())
	if !ok {
		return bitfield.Bitfield{}, false
	}
	bits, ok := v.(bitfield.Bitfield)
	if !ok {
		log.WithField("round", round.Key()).Error("Could not convert cached value to bitfield")
		return bitfield.Bitfield{}, false
	}
	return bits, true
}

func recordDigest(round Round, bits bitfield.Bitfield) [32]byte {
	return sha256.Sum256(append(round.marshal(), bits.Data()...))
}
