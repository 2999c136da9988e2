package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/shardvote/sharding/bitfield"
	"github.com/prysmaticlabs/shardvote/sharding/p2p"
	"github.com/prysmaticlabs/shardvote/sharding/p2p/encoder"
	"github.com/prysmaticlabs/shardvote/sharding/p2p/messages"
	"github.com/prysmaticlabs/shardvote/sharding/params"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func emptyAction(ctx *cli.Context) error {
	participants := ctx.Int(participantsFlag)
	if participants < 0 {
		return errors.Errorf("participants must not be negative, got %d", participants)
	}
	_, err := fmt.Fprintln(ctx.App.Writer, bitfield.NewEmpty(participants))
	return err
}

func markAction(ctx *cli.Context) error {
	bits, err := singleBitfield(ctx)
	if err != nil {
		return err
	}
	for _, idx := range ctx.IntSlice(indexFlag) {
		bits, err = bits.MarkVote(idx)
		if err != nil {
			return errors.Wrapf(err, "could not mark vote of attester %d", idx)
		}
	}
	_, err = fmt.Fprintln(ctx.App.Writer, bits)
	return err
}

func inspectAction(ctx *cli.Context) error {
	bits, err := singleBitfield(ctx)
	if err != nil {
		return err
	}
	cfg := params.DefaultConfig
	if path := ctx.String(configFileFlag); path != "" {
		cfg, err = params.LoadConfigFile(path)
		if err != nil {
			return err
		}
		log.WithField("path", path).Debug("Loaded config file")
	}
	root, err := bits.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not hash bitfield")
	}

	votes := bits.CalcVotes()
	w := ctx.App.Writer
	fmt.Fprintf(w, "size: %d\n", bits.Size())
	fmt.Fprintf(w, "votes: %d\n", votes)
	fmt.Fprintf(w, "voters: %v\n", bits.BitIndices())
	fmt.Fprintf(w, "root: %#x\n", root)
	_, err = fmt.Fprintf(w, "quorum: %t (%d/%d)\n", votes >= cfg.AttesterQuorumSize, votes, cfg.AttesterQuorumSize)
	return err
}

func orAction(ctx *cli.Context) error {
	records, err := parseBitfields(ctx.StringSlice(bitsFlag))
	if err != nil {
		return err
	}
	agg, ok, err := bitfield.Or(records...)
	if err != nil {
		return errors.Wrap(err, "could not aggregate bitfields")
	}
	if !ok {
		log.Warn("No bitfields to aggregate")
		_, err = fmt.Fprintln(ctx.App.Writer, "no result")
		return err
	}
	log.WithFields(logrus.Fields{
		"records": len(records),
		"votes":   agg.CalcVotes(),
	}).Debug("Aggregated bitfields")
	_, err = fmt.Fprintln(ctx.App.Writer, agg)
	return err
}

func encodeAction(ctx *cli.Context) error {
	bits, err := singleBitfield(ctx)
	if err != nil {
		return err
	}
	record := &messages.VoteRecord{
		Shard:  ctx.Uint64(shardFlag),
		Period: ctx.Uint64(periodFlag),
		Bits:   bits,
	}
	e := encoder.SszNetworkEncoder{UseSnappyCompression: ctx.Bool(snappyFlag)}
	enc, err := encoder.Encode(e, record)
	if err != nil {
		return errors.Wrap(err, "could not encode vote record")
	}
	topic, err := gossipTopic(e, record)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "topic: %s\n", topic)
	_, err = fmt.Fprintf(ctx.App.Writer, "data: %s\n", hexutil.Encode(enc))
	return err
}

// gossipTopic returns the topic msg is published on, including the encoding suffix.
func gossipTopic(e encoder.NetworkEncoding, msg interface{}) (string, error) {
	topic, ok := p2p.TopicForMessage(msg)
	if !ok {
		return "", errors.Errorf("no gossip topic registered for %T", msg)
	}
	return topic + e.ProtocolSuffix(), nil
}

func singleBitfield(ctx *cli.Context) (bitfield.Bitfield, error) {
	values := ctx.StringSlice(bitsFlag)
	if len(values) != 1 {
		return bitfield.Bitfield{}, errors.Errorf("expected exactly one --%s value, got %d", bitsFlag, len(values))
	}
	records, err := parseBitfields(values)
	if err != nil {
		return bitfield.Bitfield{}, err
	}
	return records[0], nil
}

func parseBitfields(values []string) ([]bitfield.Bitfield, error) {
	records := make([]bitfield.Bitfield, len(values))
	for i, v := range values {
		if err := records[i].UnmarshalText([]byte(v)); err != nil {
			return nil, err
		}
	}
	return records, nil
}
