package mavlink

import "fmt"

// ProtocolVersion is the runtime MAVLink wire version of a concrete value.
// Every wire-facing entity carries one, even when its static type parameter
// is Versionless.
type ProtocolVersion uint8

const (
	VersionV1 ProtocolVersion = 1
	VersionV2 ProtocolVersion = 2
)

func (v ProtocolVersion) String() string {
	switch v {
	case VersionV1:
		return "V1"
	case VersionV2:
		return "V2"
	default:
		return fmt.Sprintf("ProtocolVersion(%d)", uint8(v))
	}
}

// Stx returns the magic byte for v. Panics on a value that isn't VersionV1
// or VersionV2 — callers only ever hold one of those two.
func (v ProtocolVersion) Stx() byte {
	switch v {
	case VersionV1:
		return StxV1
	case VersionV2:
		return StxV2
	default:
		panic(fmt.Sprintf("mavlink: invalid protocol version %d", uint8(v)))
	}
}

// HeaderSize returns the on-wire header length for v.
func (v ProtocolVersion) HeaderSize() int {
	if v == VersionV1 {
		return HeaderV1Size
	}
	return HeaderV2Size
}

// sealedVersionTag prevents types outside this package from implementing
// MaybeVersioned/Versioned — mirroring the sealed trait in the reference
// implementation.
type sealedVersionTag interface {
	sealedVersionTag()
}

// MaybeVersioned is implemented by the three version markers (V1, V2,
// Versionless) and parameterizes every wire-facing generic type (Frame,
// FrameBuilder, Scanner, Receiver, Sender); Header itself is not generic. It lets a Versionless consumer
// accept either wire version while a V1/V2 consumer rejects the other at a
// well-defined boundary instead of silently misinterpreting bytes.
type MaybeVersioned interface {
	sealedVersionTag
	// matchesVersion reports whether a runtime version is compatible with
	// this static marker. Versionless always returns true.
	matchesVersion(v ProtocolVersion) bool
	// expectVersion returns an error if v disagrees with this static marker.
	expectVersion(v ProtocolVersion) error
	// isMagicByte reports whether b could start a frame of this marker's
	// version(s).
	isMagicByte(b byte) bool
}

// Versioned is implemented by V1 and V2 (not Versionless): it additionally
// exposes the concrete, statically-known ProtocolVersion.
type Versioned interface {
	MaybeVersioned
	staticVersion() ProtocolVersion
}

// V1 statically constrains a generic type to MAVLink 1 frames.
type V1 struct{}

func (V1) sealedVersionTag()                      {}
func (V1) matchesVersion(v ProtocolVersion) bool  { return v == VersionV1 }
func (V1) isMagicByte(b byte) bool                { return b == StxV1 }
func (V1) staticVersion() ProtocolVersion         { return VersionV1 }
func (V1) expectVersion(v ProtocolVersion) error {
	if v != VersionV1 {
		return &VersionError{Expected: VersionV1, Actual: v}
	}
	return nil
}

// V2 statically constrains a generic type to MAVLink 2 frames.
type V2 struct{}

func (V2) sealedVersionTag()                     {}
func (V2) matchesVersion(v ProtocolVersion) bool { return v == VersionV2 }
func (V2) isMagicByte(b byte) bool                { return b == StxV2 }
func (V2) staticVersion() ProtocolVersion        { return VersionV2 }
func (V2) expectVersion(v ProtocolVersion) error {
	if v != VersionV2 {
		return &VersionError{Expected: VersionV2, Actual: v}
	}
	return nil
}

// Versionless statically accepts either MAVLink version; the runtime version
// of any particular value is still well-defined, just not checked at
// compile time. It implements MaybeVersioned by vacuous truth.
type Versionless struct{}

func (Versionless) sealedVersionTag()                     {}
func (Versionless) matchesVersion(ProtocolVersion) bool   { return true }
func (Versionless) isMagicByte(b byte) bool               { return b == StxV1 || b == StxV2 }
func (Versionless) expectVersion(ProtocolVersion) error   { return nil }

// zeroOf returns the zero value of a MaybeVersioned marker type, used to
// invoke its (stateless) methods from generic code without requiring the
// caller to hand one in.
func zeroOf[V MaybeVersioned]() V {
	var z V
	return z
}

// VersionOf returns the static ProtocolVersion of a Versioned marker type
// parameter, e.g. VersionOf[V2]() == VersionV2.
func VersionOf[V Versioned]() ProtocolVersion {
	return zeroOf[V]().staticVersion()
}
