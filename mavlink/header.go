package mavlink

import "fmt"

// Header is the parsed, fixed-layout MAVLink frame header (component E).
// Flag fields are semantically absent for MAVLink 1: Encode omits them from
// the V1 layout and IsSigned always reports false for a V1 header.
type Header struct {
	version       ProtocolVersion
	payloadLength uint8
	incompatFlags byte
	compatFlags   byte
	sequence      uint8
	systemID      uint8
	componentID   uint8
	messageID     uint32
}

func (h Header) Version() ProtocolVersion { return h.version }
func (h Header) PayloadLength() uint8     { return h.payloadLength }
func (h Header) Sequence() uint8          { return h.sequence }
func (h Header) SystemID() uint8          { return h.systemID }
func (h Header) ComponentID() uint8       { return h.componentID }
func (h Header) MessageID() uint32        { return h.messageID }

// IncompatFlags returns the MAVLink 2 incompatibility flags, or (0, false)
// for a MAVLink 1 header, where the field does not exist on the wire.
func (h Header) IncompatFlags() (byte, bool) {
	if h.version == VersionV1 {
		return 0, false
	}
	return h.incompatFlags, true
}

// CompatFlags returns the MAVLink 2 compatibility flags, or (0, false) for a
// MAVLink 1 header.
func (h Header) CompatFlags() (byte, bool) {
	if h.version == VersionV1 {
		return 0, false
	}
	return h.compatFlags, true
}

// IsSigned reports whether the frame body should carry a signature trailer:
// always false for MAVLink 1, true for MAVLink 2 iff IncompatFlagSigned is set.
func (h Header) IsSigned() bool {
	return h.version == VersionV2 && h.incompatFlags&IncompatFlagSigned != 0
}

// Size returns the on-wire header length: HeaderV1Size or HeaderV2Size.
func (h Header) Size() int { return h.version.HeaderSize() }

// BodyLength returns the length of the frame body that follows the header:
// payload + checksum, plus the signature trailer when IsSigned.
func (h Header) BodyLength() int {
	n := int(h.payloadLength) + ChecksumSize
	if h.IsSigned() {
		n += SignatureLength
	}
	return n
}

// HeaderBytes is a fixed buffer holding an encoded Header, sized to fit
// either wire format, plus a size discriminator. It is reused both to emit
// the header on the wire and as CRC input (CRCData, which excludes magic).
type HeaderBytes struct {
	buf  [HeaderMaxSize]byte
	size int
}

// Bytes returns the encoded header including the magic byte.
func (hb HeaderBytes) Bytes() []byte { return hb.buf[:hb.size] }

// Size returns the number of encoded bytes (HeaderV1Size or HeaderV2Size).
func (hb HeaderBytes) Size() int { return hb.size }

// CRCData returns the encoded header bytes excluding the magic byte — the
// portion that feeds the frame checksum. The signature input uses Bytes,
// magic byte included.
func (hb HeaderBytes) CRCData() []byte { return hb.buf[1:hb.size] }

// Encode renders h into its on-wire byte layout.
func (h Header) Encode() HeaderBytes {
	var hb HeaderBytes
	hb.buf[0] = h.version.Stx()

	switch h.version {
	case VersionV1:
		hb.size = HeaderV1Size
		hb.buf[1] = h.payloadLength
		hb.buf[2] = h.sequence
		hb.buf[3] = h.systemID
		hb.buf[4] = h.componentID
		hb.buf[5] = byte(h.messageID)
	case VersionV2:
		hb.size = HeaderV2Size
		hb.buf[1] = h.payloadLength
		hb.buf[2] = h.incompatFlags
		hb.buf[3] = h.compatFlags
		hb.buf[4] = h.sequence
		hb.buf[5] = h.systemID
		hb.buf[6] = h.componentID
		hb.buf[7] = byte(h.messageID)
		hb.buf[8] = byte(h.messageID >> 8)
		hb.buf[9] = byte(h.messageID >> 16)
	default:
		panic(fmt.Sprintf("mavlink: invalid protocol version %d", uint8(h.version)))
	}
	return hb
}

// DecodeHeader parses bytes — which must already be aligned at a magic byte
// and contain at least HeaderV1Size or HeaderV2Size bytes depending on which
// magic it starts with — into a Header.
func DecodeHeader(bytes []byte) (Header, error) {
	if len(bytes) == 0 {
		return Header{}, fmt.Errorf("mavlink: empty header buffer")
	}
	switch bytes[0] {
	case StxV1:
		if len(bytes) < HeaderV1Size {
			return Header{}, fmt.Errorf("mavlink: short V1 header: %d bytes", len(bytes))
		}
		return Header{
			version:       VersionV1,
			payloadLength: bytes[1],
			sequence:      bytes[2],
			systemID:      bytes[3],
			componentID:   bytes[4],
			messageID:     uint32(bytes[5]),
		}, nil
	case StxV2:
		if len(bytes) < HeaderV2Size {
			return Header{}, fmt.Errorf("mavlink: short V2 header: %d bytes", len(bytes))
		}
		return Header{
			version:       VersionV2,
			payloadLength: bytes[1],
			incompatFlags: bytes[2],
			compatFlags:   bytes[3],
			sequence:      bytes[4],
			systemID:      bytes[5],
			componentID:   bytes[6],
			messageID:     uint32(bytes[7]) | uint32(bytes[8])<<8 | uint32(bytes[9])<<16,
		}, nil
	default:
		return Header{}, fmt.Errorf("mavlink: byte %#02x is not a MAVLink magic byte", bytes[0])
	}
}
