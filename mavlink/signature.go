package mavlink

import (
	"encoding/binary"
	"fmt"
)

// MavTimestamp is a 48-bit counter of 10-microsecond ticks since the start
// of the MAVLink epoch (2015-01-01T00:00:00Z).
type MavTimestamp uint64

// NewMavTimestamp creates a MavTimestamp from a raw value, discarding any
// bits above the low 48.
func NewMavTimestamp(raw uint64) MavTimestamp {
	return MavTimestamp(raw & mavTimestampMask)
}

// Raw returns the 48-bit tick count.
func (t MavTimestamp) Raw() uint64 { return uint64(t) }

// MillisMavlink returns the timestamp expressed in the unit MAVLink itself
// names "milliseconds * 10" since the epoch (i.e. ten times Raw; the
// protocol's own naming, kept for parity with reference implementations).
func (t MavTimestamp) MillisMavlink() uint64 { return uint64(t) * 10 }

// UnixMillis returns the Unix-epoch equivalent of MillisMavlink.
func (t MavTimestamp) UnixMillis() uint64 {
	return uint64(t)*10 + MavlinkEpochOffsetSeconds*1_000_000
}

// FromUnixMillis builds a MavTimestamp from a Unix-epoch millisecond value.
func FromUnixMillis(millis uint64) MavTimestamp {
	return NewMavTimestamp((millis - MavlinkEpochOffsetSeconds*1_000_000) / 10)
}

// Bytes encodes the timestamp as 6 little-endian bytes.
func (t MavTimestamp) Bytes() [SignatureTimestampLength]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t))
	var out [SignatureTimestampLength]byte
	copy(out[:], buf[:SignatureTimestampLength])
	return out
}

// DecodeMavTimestamp reads a 6-byte little-endian timestamp.
func DecodeMavTimestamp(b []byte) MavTimestamp {
	var buf [8]byte
	copy(buf[:SignatureTimestampLength], b[:SignatureTimestampLength])
	return MavTimestamp(binary.LittleEndian.Uint64(buf[:]))
}

// SecretKey is the 32-byte signing key used to compute a Signature's value.
// Its Debug/String form never exposes the key's contents, per spec and per
// MAVLink's own documented logging recommendation.
type SecretKey [SecretKeyLength]byte

// NewSecretKey builds a SecretKey from input, zero-padding on the right if
// shorter than SecretKeyLength and truncating if longer.
func NewSecretKey(input []byte) SecretKey {
	var k SecretKey
	n := copy(k[:], input)
	_ = n
	return k
}

// String masks the key contents, matching the reference implementation's
// documented masked-logging convention ([0xff; 32]).
func (SecretKey) String() string {
	return fmt.Sprintf("SecretKey([%#02x; %d])", byte(0xff), SecretKeyLength)
}

// GoString masks the key contents the same way String does, so %#v and
// fmt.Sprintf("%v", ...) can never leak it either.
func (k SecretKey) GoString() string { return k.String() }

// Signature is the 13-byte MAVLink 2 trailer: a per-link id, a 48-bit
// timestamp, and a 6-byte HMAC-like digest over the frame.
type Signature struct {
	LinkID    byte
	Timestamp MavTimestamp
	Value     [SignatureValueLength]byte
}

// Bytes encodes the signature into its 13-byte wire form.
func (s Signature) Bytes() [SignatureLength]byte {
	var out [SignatureLength]byte
	out[0] = s.LinkID
	ts := s.Timestamp.Bytes()
	copy(out[SignatureLinkIDLength:SignatureLinkIDLength+SignatureTimestampLength], ts[:])
	copy(out[SignatureLinkIDLength+SignatureTimestampLength:], s.Value[:])
	return out
}

// DecodeSignature parses a 13-byte MAVLink 2 signature trailer.
func DecodeSignature(b []byte) (Signature, error) {
	if len(b) < SignatureLength {
		return Signature{}, fmt.Errorf("mavlink: signature trailer too short: %d bytes", len(b))
	}
	var sig Signature
	sig.LinkID = b[0]
	sig.Timestamp = DecodeMavTimestamp(b[SignatureLinkIDLength : SignatureLinkIDLength+SignatureTimestampLength])
	copy(sig.Value[:], b[SignatureLinkIDLength+SignatureTimestampLength:SignatureLength])
	return sig, nil
}
