// Package encoder frames attester vote messages for the wire.
package encoder

import (
	"io"

	ssz "github.com/ferranbt/fastssz"
)

// NetworkEncoding represents an encoder compatible with the shardvote gossip and
// request/response protocols.
type NetworkEncoding interface {
	// DecodeGossip to the provided gossip message. The interface must be a pointer to the decoding destination.
	DecodeGossip([]byte, ssz.Unmarshaler) error
	// DecodeWithMaxLength a bytes from a reader with a varint length prefix. The interface must be a pointer to the
	// decoding destination.
	DecodeWithMaxLength(io.Reader, ssz.Unmarshaler) error
	// EncodeGossip an arbitrary gossip message to the provided writer.
	EncodeGossip(io.Writer, ssz.Marshaler) (int, error)
	// EncodeWithMaxLength an arbitrary message to the provided writer with a varint length prefix.
	EncodeWithMaxLength(io.Writer, ssz.Marshaler) (int, error)
	// ProtocolSuffix returns the last part of the protocol ID to indicate the encoding scheme.
	ProtocolSuffix() string
}
