package encoder

import (
	"bytes"
	"io"
	"sync"

	ssz "github.com/ferranbt/fastssz"
	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

var _ NetworkEncoding = (*SszNetworkEncoder)(nil)

// MaxGossipSize allowed for gossip messages.
var MaxGossipSize = uint64(1 << 20) // 1 Mib

// MaxChunkSize allowed for request/response chunks.
var MaxChunkSize = uint64(1 << 20) // 1 Mib

// This pool defines the sync pool for our buffered snappy writers, so that they
// can be constantly reused.
var bufWriterPool = new(sync.Pool)

// This pool defines the sync pool for our buffered snappy readers, so that they
// can be constantly reused.
var bufReaderPool = new(sync.Pool)

const (
	// ProtocolSuffixSSZ is the protocol suffix of uncompressed ssz messages.
	ProtocolSuffixSSZ = "/ssz"
	// ProtocolSuffixSSZSnappy is the protocol suffix of snappy compressed ssz messages.
	ProtocolSuffixSSZSnappy = "/ssz_snappy"
)

// SszNetworkEncoder supports p2p networking encoding using SimpleSerialize
// with snappy compression (if enabled).
type SszNetworkEncoder struct {
	UseSnappyCompression bool
}

func (e SszNetworkEncoder) doEncode(msg ssz.Marshaler) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("cannot encode nil message")
	}
	return msg.MarshalSSZ()
}

// EncodeGossip the proto gossip message to the io.Writer.
func (e SszNetworkEncoder) EncodeGossip(w io.Writer, msg ssz.Marshaler) (int, error) {
	b, err := e.doEncode(msg)
	if err != nil {
		return 0, err
	}
	if uint64(len(b)) > MaxGossipSize {
		return 0, errors.Errorf("gossip message exceeds max gossip size: %d bytes > %d bytes", len(b), MaxGossipSize)
	}
	if e.UseSnappyCompression {
		b = snappy.Encode(nil /*dst*/, b)
	}
	return w.Write(b)
}

// EncodeWithMaxLength the proto message to the io.Writer. This encoding prefixes the byte slice with a protobuf varint
// to indicate the size of the message. This checks that the encoded message isn't larger than the provided max limit.
func (e SszNetworkEncoder) EncodeWithMaxLength(w io.Writer, msg ssz.Marshaler) (int, error) {
	b, err := e.doEncode(msg)
	if err != nil {
		return 0, err
	}
	if uint64(len(b)) > MaxChunkSize {
		return 0, errors.Errorf("size of encoded message is %d which is larger than the provided max limit of %d", len(b), MaxChunkSize)
	}
	// write varint first
	if _, err := w.Write(proto.EncodeVarint(uint64(len(b)))); err != nil {
		return 0, err
	}
	if e.UseSnappyCompression {
		return writeSnappyBuffer(w, b)
	}
	return w.Write(b)
}

// DecodeGossip decodes the bytes to the protobuf gossip message provided.
func (e SszNetworkEncoder) DecodeGossip(b []byte, to ssz.Unmarshaler) error {
	if e.UseSnappyCompression {
		var err error
		b, err = DecodeSnappy(b, MaxGossipSize)
		if err != nil {
			return err
		}
	}
	if uint64(len(b)) > MaxGossipSize {
		return errors.Errorf("gossip message exceeds max gossip size: %d bytes > %d bytes", len(b), MaxGossipSize)
	}
	return to.UnmarshalSSZ(b)
}

// DecodeSnappy decodes a snappy compressed message.
func DecodeSnappy(msg []byte, maxSize uint64) ([]byte, error) {
	size, err := snappy.DecodedLen(msg)
	if err != nil {
		return nil, err
	}
	if uint64(size) > maxSize {
		return nil, errors.Errorf("snappy message exceeds max size: %d bytes > %d bytes", size, maxSize)
	}
	return snappy.Decode(nil /*dst*/, msg)
}

// DecodeWithMaxLength the bytes from io.Reader to the protobuf message provided.
// This checks that the decoded message isn't larger than the provided max limit.
func (e SszNetworkEncoder) DecodeWithMaxLength(r io.Reader, to ssz.Unmarshaler) error {
	msgLen, err := readVarint(r)
	if err != nil {
		return err
	}
	if msgLen > MaxChunkSize {
		return errors.Errorf("remaining bytes %d goes over the provided max limit of %d", msgLen, MaxChunkSize)
	}
	if e.UseSnappyCompression {
		bufR := newBufferedReader(r)
		defer bufReaderPool.Put(bufR)
		r = bufR
	}
	buf := make([]byte, msgLen)
	// Returns an error if less than msgLen bytes
	// are read. This ensures we read exactly the
	// required amount.
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	return to.UnmarshalSSZ(buf)
}

// ProtocolSuffix returns the appropriate suffix for protocol IDs.
func (e SszNetworkEncoder) ProtocolSuffix() string {
	if e.UseSnappyCompression {
		return ProtocolSuffixSSZSnappy
	}
	return ProtocolSuffixSSZ
}

// Writes a bytes value through a snappy buffered writer.
func writeSnappyBuffer(w io.Writer, b []byte) (int, error) {
	bufWriter := newBufferedWriter(w)
	defer bufWriterPool.Put(bufWriter)
	num, err := bufWriter.Write(b)
	if err != nil {
		// Close buf writer in the event of an error.
		if err := bufWriter.Close(); err != nil {
			return 0, err
		}
		return 0, err
	}
	return num, bufWriter.Close()
}

// Instantiates a new instance of the snappy buffered reader
// using our sync pool.
func newBufferedReader(r io.Reader) *snappy.Reader {
	rawReader := bufReaderPool.Get()
	if rawReader == nil {
		return snappy.NewReader(r)
	}
	bufR, ok := rawReader.(*snappy.Reader)
	if !ok {
		return snappy.NewReader(r)
	}
	bufR.Reset(r)
	return bufR
}

// Instantiates a new instance of the snappy buffered writer
// using our sync pool.
func newBufferedWriter(w io.Writer) *snappy.Writer {
	rawBufWriter := bufWriterPool.Get()
	if rawBufWriter == nil {
		return snappy.NewBufferedWriter(w)
	}
	bufW, ok := rawBufWriter.(*snappy.Writer)
	if !ok {
		return snappy.NewBufferedWriter(w)
	}
	bufW.Reset(w)
	return bufW
}

// Encode writes msg through the encoder into a fresh buffer, as published on gossip.
func Encode(e NetworkEncoding, msg ssz.Marshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := e.EncodeGossip(buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
