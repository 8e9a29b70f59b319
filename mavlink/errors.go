package mavlink

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is. Concrete occurrences
// carry structured context through the *Error types below, which all
// implement Unwrap to the matching sentinel.
var (
	// ErrVersionMismatch is returned when a frame's runtime version disagrees
	// with a versioned consumer (DecodeFrame, Receiver[V], TryVersioned,
	// FrameBuilder.Build).
	ErrVersionMismatch = errors.New("mavlink: version mismatch")

	// ErrChecksum is returned when a frame's CRC does not match its payload.
	ErrChecksum = errors.New("mavlink: checksum mismatch")

	// ErrSignature is returned when a frame's signature value does not match
	// the one computed from a supplied secret.
	ErrSignature = errors.New("mavlink: signature mismatch")

	// ErrIncompatible is returned by a CompatProcessor when a frame's
	// incompatibility flags are rejected by the configured strategy.
	ErrIncompatible = errors.New("mavlink: incompatible flags")

	// ErrNotInDialect is returned when a message id has no schema in the
	// supplied dialect capability.
	ErrNotInDialect = errors.New("mavlink: message id not present in dialect")

	// ErrUnexpectedEOF is returned by the header scanner when the stream ends
	// mid-header, and by Receiver.Recv when it ends mid-body.
	ErrUnexpectedEOF = errors.New("mavlink: unexpected end of stream")
)

// VersionError reports a frame/consumer protocol version mismatch.
type VersionError struct {
	Expected ProtocolVersion
	Actual   ProtocolVersion
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("mavlink: expected version %s, got %s", e.Expected, e.Actual)
}

func (e *VersionError) Unwrap() error { return ErrVersionMismatch }

// ChecksumError reports a CRC mismatch, carrying both values for logging.
type ChecksumError struct {
	Expected uint16
	Actual   uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("mavlink: checksum mismatch: expected %#04x, got %#04x", e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksum }

// SignatureError reports a signature mismatch. It never carries the secret
// key or the computed/received signature values, per spec ("the secret key
// and raw payload bytes are never included in error payloads").
type SignatureError struct {
	LinkID byte
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("mavlink: signature mismatch on link %d", e.LinkID)
}

func (e *SignatureError) Unwrap() error { return ErrSignature }

// IncompatibleError reports rejected MAVLink 2 incompatibility flags.
type IncompatibleError struct {
	Expected byte
	Actual   byte
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("mavlink: incompatible flags: expected %#02x, got %#02x", e.Expected, e.Actual)
}

func (e *IncompatibleError) Unwrap() error { return ErrIncompatible }

// NotInDialectError reports a message id absent from a dialect capability.
type NotInDialectError struct {
	MessageID uint32
}

func (e *NotInDialectError) Error() string {
	return fmt.Sprintf("mavlink: message id %d not present in dialect", e.MessageID)
}

func (e *NotInDialectError) Unwrap() error { return ErrNotInDialect }

// SpecError wraps an error raised by the external dialect/message capability
// (payload-size mismatches, enum values out of range, and similar codec
// concerns that belong to generated dialect code, not framing).
type SpecError struct {
	Err error
}

func (e *SpecError) Error() string { return fmt.Sprintf("mavlink: dialect error: %s", e.Err) }
func (e *SpecError) Unwrap() error { return e.Err }

// WrapSpecError wraps err from a dialect/message capability as a SpecError.
// Returns nil if err is nil.
func WrapSpecError(err error) error {
	if err == nil {
		return nil
	}
	return &SpecError{Err: err}
}
