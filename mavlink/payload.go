package mavlink

// Payload is a variable-length byte container tagged with the message id and
// wire version that produced it. It is an exact byte-for-byte container: it
// never silently truncates or zero-extends on its own — trailing-zero
// truncation on MAVLink 2 egress happens only where a caller applies
// TrimTrailingZeros (FrameBuilder.Build does not), and zero-extension of a payload shorter than a dialect's declared maximum
// is a Message.Decode concern external to this package.
type Payload struct {
	messageID uint32
	bytes     []byte
	version   ProtocolVersion
}

// NewPayload builds a Payload. data is copied so later mutation by the
// caller cannot retroactively change an already-built Frame.
func NewPayload(messageID uint32, data []byte, version ProtocolVersion) Payload {
	if len(data) > PayloadMaxSize {
		panic("mavlink: payload exceeds 255 bytes")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return Payload{messageID: messageID, bytes: cp, version: version}
}

// MessageID returns the id of the message this payload was encoded from.
func (p Payload) MessageID() uint32 { return p.messageID }

// Bytes returns the raw payload bytes. The caller must not mutate the
// returned slice.
func (p Payload) Bytes() []byte { return p.bytes }

// Len returns the declared payload_length for this payload.
func (p Payload) Len() uint8 { return uint8(len(p.bytes)) }

// Version reports the wire version this payload was produced for.
func (p Payload) Version() ProtocolVersion { return p.version }

// TrimTrailingZeros returns a Payload with trailing zero bytes removed, the
// shorter MAVLink 2 egress encoding. Nothing in this package calls it
// automatically. It does not check the payload's version: a MAVLink 1
// payload is trimmed the same way.
func (p Payload) TrimTrailingZeros() Payload {
	n := len(p.bytes)
	for n > 0 && p.bytes[n-1] == 0 {
		n--
	}
	return Payload{messageID: p.messageID, bytes: p.bytes[:n], version: p.version}
}

// UpgradeToV2 returns a Payload with the same bytes, unchanged, retagged as
// MAVLink 2. Truncation is an encode-time concern, not an upgrade-time one:
// the caller's next egress pipeline is free to re-truncate via
// TrimTrailingZeros.
func (p Payload) UpgradeToV2() Payload {
	return Payload{messageID: p.messageID, bytes: p.bytes, version: VersionV2}
}
