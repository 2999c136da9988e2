// Package p2p names the gossip topics attester vote messages are published on.
package p2p

import (
	"reflect"

	"github.com/prysmaticlabs/shardvote/sharding/p2p/messages"
)

// VoteRecordTopic is the gossip topic of attester vote records.
const VoteRecordTopic = "/shardvote/vote_record"

// Mapping of gossip topics to message types.
var topicTypeMapping = map[string]reflect.Type{
	VoteRecordTopic: reflect.TypeOf(messages.VoteRecord{}),
}

// Mapping of message types to topics.
var typeTopicMapping = reverseMapping(topicTypeMapping)

// TopicForMessage returns the gossip topic of msg, or false for unknown message types.
func TopicForMessage(msg interface{}) (string, bool) {
	t := reflect.TypeOf(msg)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	topic, ok := typeTopicMapping[t]
	return topic, ok
}

// MessageForTopic returns a new empty message for the gossip topic, or false for unknown topics.
func MessageForTopic(topic string) (interface{}, bool) {
	t, ok := topicTypeMapping[topic]
	if !ok {
		return nil, false
	}
	return reflect.New(t).Interface(), true
}

// Reverse map from K,V to V,K
func reverseMapping(m map[string]reflect.Type) map[reflect.Type]string {
	n := make(map[reflect.Type]string)
	for k, v := range m {
		n[v] = k
	}
	return n
}
