package mavlink

import (
	"fmt"
	"strings"
)

// builderFlags tracks which FrameBuilder fields have been set. Go has no way
// to track field-completeness in a builder's static type the way a deep
// phantom-type chain would (one generic parameter per required field quickly
// becomes unreadable); the pragmatic fallback is a runtime bitmask that Build
// checks once, failing with a descriptive error rather than misbehaving.
type builderFlags uint16

const (
	flagVersion builderFlags = 1 << iota
	flagSequence
	flagSystemID
	flagComponentID
	flagMessageID
	flagPayload
	flagCRCExtra
	flagIncompatFlags
	flagCompatFlags
	flagSignature
)

var requiredBuilderFlags = flagVersion | flagSequence | flagSystemID | flagComponentID | flagMessageID | flagPayload | flagCRCExtra

var builderFlagNames = []struct {
	flag builderFlags
	name string
}{
	{flagVersion, "Version"},
	{flagSequence, "Sequence"},
	{flagSystemID, "SystemID"},
	{flagComponentID, "ComponentID"},
	{flagMessageID, "MessageID"},
	{flagPayload, "Payload"},
	{flagCRCExtra, "CRCExtra"},
}

func missingFields(set, required builderFlags) string {
	var missing []string
	for _, f := range builderFlagNames {
		if required&f.flag != 0 && set&f.flag == 0 {
			missing = append(missing, f.name)
		}
	}
	return strings.Join(missing, ", ")
}

// FrameBuilder assembles a Frame[V] field by field, tracking at runtime
// which required fields have been set and reporting any missing ones from
// Build. Setting a field that invalidates a previously-computed signature
// (Sequence, SystemID, MessageID, Payload) clears the pending signature so a
// stale one can never silently ship.
type FrameBuilder[V MaybeVersioned] struct {
	set builderFlags
	err error

	version ProtocolVersion

	sequence      uint8
	systemID      uint8
	componentID   uint8
	messageID     uint32
	payload       Payload
	crcExtra      byte
	incompatFlags byte
	compatFlags   byte

	signer    *Signer
	linkID    byte
	timestamp MavTimestamp
}

// NewFrameBuilder starts a builder for wire version V. If V is V1 or V2 the
// version is already fixed; for Versionless it must be supplied via Version
// before Build.
func NewFrameBuilder[V MaybeVersioned]() *FrameBuilder[V] {
	b := &FrameBuilder[V]{}
	if versioned, ok := any(zeroOf[V]()).(Versioned); ok {
		b.version = versioned.staticVersion()
		b.set |= flagVersion
	}
	return b
}

func (b *FrameBuilder[V]) fail(err error) *FrameBuilder[V] {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Version sets the wire version to encode. Required (and only meaningful)
// when V is Versionless; for V1/V2 builders it is implied and need not be
// called.
func (b *FrameBuilder[V]) Version(v ProtocolVersion) *FrameBuilder[V] {
	b.version = v
	b.set |= flagVersion
	return b
}

// Sequence sets the frame's packet sequence number.
func (b *FrameBuilder[V]) Sequence(seq uint8) *FrameBuilder[V] {
	b.sequence = seq
	b.set |= flagSequence
	b.set &^= flagSignature
	return b
}

// SystemID sets the originating system id.
func (b *FrameBuilder[V]) SystemID(id uint8) *FrameBuilder[V] {
	b.systemID = id
	b.set |= flagSystemID
	b.set &^= flagSignature
	return b
}

// ComponentID sets the originating component id.
func (b *FrameBuilder[V]) ComponentID(id uint8) *FrameBuilder[V] {
	b.componentID = id
	b.set |= flagComponentID
	return b
}

// MessageID sets the message id. Clears any previously set CRCExtra and
// pending signature, since both are tied to which message is being encoded.
func (b *FrameBuilder[V]) MessageID(id uint32) *FrameBuilder[V] {
	b.messageID = id
	b.set |= flagMessageID
	b.set &^= flagCRCExtra | flagSignature
	return b
}

// Payload sets the frame's payload directly. Clears any pending signature.
func (b *FrameBuilder[V]) Payload(p Payload) *FrameBuilder[V] {
	b.payload = p
	b.set |= flagPayload
	b.set &^= flagSignature
	return b
}

// CRCExtra sets the message-specific checksum salt byte a dialect capability
// supplies for the message currently being encoded.
func (b *FrameBuilder[V]) CRCExtra(v byte) *FrameBuilder[V] {
	b.crcExtra = v
	b.set |= flagCRCExtra
	return b
}

// IncompatFlags sets the MAVLink 2 incompatibility flags. Build reports an
// error if this is set on a MAVLink 1 builder.
func (b *FrameBuilder[V]) IncompatFlags(flags byte) *FrameBuilder[V] {
	b.incompatFlags = flags
	b.set |= flagIncompatFlags
	return b
}

// CompatFlags sets the MAVLink 2 compatibility flags. Build reports an error
// if this is set on a MAVLink 1 builder.
func (b *FrameBuilder[V]) CompatFlags(flags byte) *FrameBuilder[V] {
	b.compatFlags = flags
	b.set |= flagCompatFlags
	return b
}

// Signature requests that Build sign the assembled frame with signer, under
// linkID and timestamp. Harmless to call on a MAVLink 1 builder: a V1 frame
// has no signature field, so Build leaves it unsigned rather than erroring.
func (b *FrameBuilder[V]) Signature(signer *Signer, linkID byte, timestamp MavTimestamp) *FrameBuilder[V] {
	b.signer = signer
	b.linkID = linkID
	b.timestamp = timestamp
	b.set |= flagSignature
	return b
}

// Endpoint is a convenience setter pulling SystemID, ComponentID, and the
// next Sequence value from an Endpoint in one call.
func (b *FrameBuilder[V]) Endpoint(e *Endpoint) *FrameBuilder[V] {
	b.SystemID(e.SystemID())
	b.ComponentID(e.ComponentID())
	b.Sequence(e.Sequencer().Next())
	return b
}

// Message is a convenience setter that encodes msg through the dialect
// capability, populating MessageID, CRCExtra, and Payload in one call.
// Version must already be set.
func (b *FrameBuilder[V]) Message(msg Message) *FrameBuilder[V] {
	if b.set&flagVersion == 0 {
		return b.fail(fmt.Errorf("mavlink: Message requires Version to be set first"))
	}
	data, err := msg.Encode(b.version)
	if err != nil {
		return b.fail(WrapSpecError(err))
	}
	b.MessageID(msg.ID())
	b.CRCExtra(msg.CRCExtra())
	b.Payload(NewPayload(msg.ID(), data, b.version))
	return b
}

// Build validates that all required fields are set and assembles the Frame,
// signing it if Signature was called. It rejects a manually-set
// IncompatFlagSigned (via IncompatFlags) that isn't backed by a Signature
// call, since a frame declaring itself signed without a trailer to match is
// unparseable on the receiving end. It does not truncate trailing zero bytes
// from the payload on its own — call Payload.TrimTrailingZeros before
// Payload/Message if the shorter wire encoding is wanted.
func (b *FrameBuilder[V]) Build() (Frame[V], error) {
	if b.err != nil {
		return Frame[V]{}, b.err
	}
	if b.set&requiredBuilderFlags != requiredBuilderFlags {
		return Frame[V]{}, fmt.Errorf("mavlink: frame builder missing required field(s): %s", missingFields(b.set, requiredBuilderFlags))
	}
	if err := zeroOf[V]().expectVersion(b.version); err != nil {
		return Frame[V]{}, err
	}
	if b.version != VersionV2 && b.set&(flagIncompatFlags|flagCompatFlags) != 0 {
		return Frame[V]{}, fmt.Errorf("mavlink: incompat/compat flags require MAVLink 2")
	}

	// Trailing-zero truncation is opt-in, not automatic: call
	// Payload.TrimTrailingZeros before Payload/Message if the caller wants
	// the shorter wire encoding (spec's "SHOULD", not "MUST" — an upgraded
	// V1 payload in particular is expected to survive Build unchanged).
	payload := b.payload

	header := Header{
		version:       b.version,
		payloadLength: payload.Len(),
		sequence:      b.sequence,
		systemID:      b.systemID,
		componentID:   b.componentID,
		messageID:     b.messageID,
	}
	if b.version == VersionV2 {
		header.incompatFlags = b.incompatFlags
		header.compatFlags = b.compatFlags
	}
	if header.incompatFlags&IncompatFlagSigned != 0 && b.set&flagSignature == 0 {
		return Frame[V]{}, fmt.Errorf("mavlink: IncompatFlagSigned set via IncompatFlags but no Signature was attached")
	}

	f := AssembleFrame[V](header, payload, b.crcExtra)

	if b.set&flagSignature != 0 {
		signed, err := f.AddSignature(b.crcExtra, b.signer, b.linkID, b.timestamp)
		if err != nil {
			return Frame[V]{}, err
		}
		f = signed
	}
	return f, nil
}

// UpgradeBuilder carries a V1 builder's already-set fields over into a fresh
// V2 builder. Incompat/compat flags and a signature request set on the V1
// builder are not carried over: the V2 builder starts with zero flags and no
// signature.
func UpgradeBuilder(b *FrameBuilder[V1]) *FrameBuilder[V2] {
	nb := NewFrameBuilder[V2]()
	nb.set |= b.set & (flagSequence | flagSystemID | flagComponentID | flagMessageID | flagPayload | flagCRCExtra)
	nb.err = b.err
	nb.sequence = b.sequence
	nb.systemID = b.systemID
	nb.componentID = b.componentID
	nb.messageID = b.messageID
	nb.payload = b.payload.UpgradeToV2()
	nb.crcExtra = b.crcExtra
	return nb
}
