// Package mavlink implements a transport-agnostic MAVLink 1/2 framing codec:
// scanning a byte stream for packet boundaries, validating checksums and
// signatures, and building outgoing frames. It does not know how to reach a
// byte stream (that's a transport concern) or how to interpret a payload
// (that's a dialect concern) — see Dialect, and Receiver/Sender in io.go,
// which wrap a plain io.Reader/io.Writer.
package mavlink

// Protocol magic bytes (start-of-text markers).
const (
	StxV1 byte = 0xFE
	StxV2 byte = 0xFD
)

// Header sizes, in bytes.
const (
	HeaderV1Size  = 6
	HeaderV2Size  = 10
	HeaderMinSize = HeaderV1Size
	HeaderMaxSize = HeaderV2Size
)

// ChecksumSize is the width of the little-endian CRC trailer.
const ChecksumSize = 2

// Signature field widths, in bytes.
const (
	SignatureLength          = 13
	SignatureLinkIDLength    = 1
	SignatureTimestampLength = 6
	SignatureValueLength     = 6
	SecretKeyLength          = 32
)

// PayloadMaxSize is the largest payload a single frame can carry.
const PayloadMaxSize = 255

// MessageIDV1Max is the largest message id representable in a MAVLink 1 header.
const MessageIDV1Max = 255

// MessageIDV2Max is the largest message id representable in a MAVLink 2 header (24 bits).
const MessageIDV2Max = 0xFFFFFF

// IncompatFlagSigned is the only incompatibility flag bit defined by the base protocol.
const IncompatFlagSigned byte = 0x01

// MavlinkEpochOffsetSeconds is the offset between the Unix epoch and the start
// of the MAVLink epoch (2015-01-01T00:00:00Z), in seconds.
const MavlinkEpochOffsetSeconds uint64 = 1_420_070_400

// mavTimestampMask keeps only the low 48 bits of a raw timestamp value.
const mavTimestampMask uint64 = 0xFFFFFFFFFFFF
