// Package params defines the configuration options used when tracking attester votes
// within the sharding package, such as the committee and quorum sizes of a voting round.
package params

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// DefaultConfig contains default configs for attester vote tracking.
var DefaultConfig = &Config{
	PeriodLength:          5,
	AttesterCommitteeSize: 135,
	AttesterQuorumSize:    90,
	VoteRecordExpiry:      5 * time.Minute,
	SeenRecordCacheSize:   4096,
}

// Config contains configs for collecting the votes of a shard committee.
type Config struct {
	PeriodLength          int64         `json:"period_length"`           // PeriodLength is num of blocks in period.
	AttesterCommitteeSize int           `json:"attester_committee_size"` // AttesterCommitteeSize sampled per period per shard.
	AttesterQuorumSize    int           `json:"attester_quorum_size"`    // AttesterQuorumSize votes the collation needs to get accepted to the canonical chain.
	VoteRecordExpiry      time.Duration `json:"vote_record_expiry"`      // VoteRecordExpiry is how long a round aggregate is kept.
	SeenRecordCacheSize   int           `json:"seen_record_cache_size"`  // SeenRecordCacheSize bounds the duplicate record filter.
}

// Copy returns a copy of the config.
func (c *Config) Copy() *Config {
	cpy := *c
	return &cpy
}

// Validate checks that the config describes a usable voting committee.
func (c *Config) Validate() error {
	if c.AttesterCommitteeSize <= 0 {
		return errors.Errorf("attester committee size must be positive, got %d", c.AttesterCommitteeSize)
	}
	if c.AttesterQuorumSize <= 0 || c.AttesterQuorumSize > c.AttesterCommitteeSize {
		return errors.Errorf("attester quorum size %d must be in [1, %d]", c.AttesterQuorumSize, c.AttesterCommitteeSize)
	}
	if c.SeenRecordCacheSize <= 0 {
		return errors.Errorf("seen record cache size must be positive, got %d", c.SeenRecordCacheSize)
	}
	if c.VoteRecordExpiry <= 0 {
		return errors.Errorf("vote record expiry must be positive, got %s", c.VoteRecordExpiry)
	}
	return nil
}

// UnmarshalJSON decodes a config, reading vote_record_expiry either as a duration
// string such as "5m" or as a number of nanoseconds.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		VoteRecordExpiry json.RawMessage `json:"vote_record_expiry"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.VoteRecordExpiry) == 0 || string(aux.VoteRecordExpiry) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.VoteRecordExpiry, &s); err != nil {
		var nanos int64
		if err := json.Unmarshal(aux.VoteRecordExpiry, &nanos); err != nil {
			return errors.Errorf("vote_record_expiry must be a duration, got %s", aux.VoteRecordExpiry)
		}
		c.VoteRecordExpiry = time.Duration(nanos)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrap(err, "could not parse vote_record_expiry")
	}
	c.VoteRecordExpiry = d
	return nil
}

// LoadConfigFile reads a YAML config file. Fields absent from the file keep their default value.
func LoadConfigFile(path string) (*Config, error) {
	yamlFile, err := ioutil.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	cfg := DefaultConfig.Copy()
	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}
