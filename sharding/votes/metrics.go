package votes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savedVoteRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shardvote_saved_vote_records_total",
		Help: "The number of vote records aggregated into a round.",
	})
	duplicateVoteRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shardvote_duplicate_vote_records_total",
		Help: "The number of vote records ignored because their votes were already known.",
	})
	rejectedVoteRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shardvote_rejected_vote_records_total",
		Help: "The number of vote records rejected for not matching the committee size.",
	})
	quorumReachedRounds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shardvote_quorum_reached_rounds_total",
		Help: "The number of rounds that reached the attester quorum.",
	})
	trackedRounds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shardvote_tracked_rounds",
		Help: "The number of rounds currently held in the vote pool.",
	})
)
