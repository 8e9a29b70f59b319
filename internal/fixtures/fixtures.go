// Package fixtures holds golden wire-format vectors matching literal
// end-to-end scenarios, used by the mavlink test suite and checked by the
// mavlink-fixtures CLI's scenarios. Every value here is a fixed
// heartbeat-shaped message (id 0, crc_extra 50) since dialect code
// generation is outside this module's scope — fixtures stand in for what a
// generated dialect would otherwise supply.
package fixtures

// HeartbeatMessageID and HeartbeatCRCExtra identify the stand-in message
// every fixture below encodes.
const (
	HeartbeatMessageID = 0
	HeartbeatCRCExtra  = 50
)

// JunkThenV1 is a byte stream opening with three junk bytes (none of them a
// MAVLink magic byte) followed by one complete, valid V1 heartbeat frame:
// sequence=1, system_id=10, component_id=255, message_id=0, an 8-byte zero
// payload. A scanner must discard the junk and resync onto the frame.
var JunkThenV1 = []byte{
	0x0C, 0x18, 0xF0,
	0xFE, 0x08, 0x01, 0x0A, 0xFF, 0x00,
	0, 0, 0, 0, 0, 0, 0, 0,
	0x00, 0x76,
}

// V2UnsignedMinimal is a complete, valid, unsigned V2 heartbeat frame:
// sequence=0, system_id=1, component_id=0, message_id=0, a 9-byte zero
// payload, incompat_flags=0, compat_flags=0.
var V2UnsignedMinimal = []byte{
	0xFD, 0x09, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x33, 0xF5,
}

// V2SignedSecret is the all-0xFF secret key V2SignedRoundTrip was signed
// with.
var V2SignedSecret = func() (k [32]byte) {
	for i := range k {
		k[i] = 0xFF
	}
	return
}()

// V2SignedWrongSecret is a secret guaranteed to fail verification against
// V2SignedRoundTrip.
var V2SignedWrongSecret [32]byte

// V2SignedRoundTrip is V2UnsignedMinimal's frame, signed with
// V2SignedSecret, link_id=0, timestamp=0: incompat_flags=0x01, checksum
// recomputed over the now-different header bytes, and a 13-byte signature
// trailer appended.
var V2SignedRoundTrip = []byte{
	0xFD, 0x09, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
	0, 0, 0, 0, 0, 0, 0, 0, 0,
	0xD4, 0x0D,
	0x00,
	0, 0, 0, 0, 0, 0,
	0x99, 0x4C, 0xDC, 0xBF, 0x9E, 0xE0,
}

// V1HeartbeatBuild describes the field values used to build the V1
// heartbeat that scenario testing upgrades to V2.
var V1HeartbeatBuild = struct {
	Sequence, SystemID, ComponentID uint8
	MessageID                       uint32
	Payload                         []byte
	CRCExtra                        byte
}{
	Sequence:    1,
	SystemID:    10,
	ComponentID: 255,
	MessageID:   HeartbeatMessageID,
	Payload:     make([]byte, 8),
	CRCExtra:    HeartbeatCRCExtra,
}
