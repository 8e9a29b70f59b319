package mavlink

// Message is the capability a generated dialect message type exposes so the
// framing layer can assemble a frame without knowing its on-wire struct
// layout. Dialect code generation itself is out of scope for this package;
// Message is the seam a generated or hand-written dialect package plugs
// into.
type Message interface {
	// ID returns the message's numeric id.
	ID() uint32
	// CRCExtra returns the message's checksum salt byte.
	CRCExtra() byte
	// Encode renders the message body for the given wire version.
	Encode(version ProtocolVersion) ([]byte, error)
}

// MessageInfo is the metadata a Dialect exposes about one message id,
// without requiring the caller to decode its payload.
type MessageInfo struct {
	ID       uint32
	CRCExtra byte
	Name     string
}

// Dialect looks up per-message metadata, used by CRCExtraFor and
// Frame.ValidateChecksumFor for callers that only have a message id on hand.
type Dialect interface {
	MessageInfo(id uint32) (MessageInfo, bool)
}

// DialectFunc adapts a plain function to Dialect.
type DialectFunc func(id uint32) (MessageInfo, bool)

// MessageInfo calls f.
func (f DialectFunc) MessageInfo(id uint32) (MessageInfo, bool) { return f(id) }

// CRCExtraFor looks up id's crc_extra in d, returning *NotInDialectError if
// id has no entry.
func CRCExtraFor(d Dialect, id uint32) (byte, error) {
	info, ok := d.MessageInfo(id)
	if !ok {
		return 0, &NotInDialectError{MessageID: id}
	}
	return info.CRCExtra, nil
}
