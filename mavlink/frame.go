package mavlink

import (
	"crypto/subtle"
	"fmt"
)

// Frame is a complete, checksummed (and for MAVLink 2, optionally signed)
// packet: header, payload, checksum, and signature trailer when present. V
// statically constrains which wire version a Frame[V] can hold; Versionless
// accepts either, at the cost of runtime-only version checks.
type Frame[V MaybeVersioned] struct {
	header      Header
	headerBytes HeaderBytes
	payload     Payload
	checksum    uint16
	signature   *Signature
}

// Header returns the frame's parsed header.
func (f Frame[V]) Header() Header { return f.header }

// Payload returns the frame's payload.
func (f Frame[V]) Payload() Payload { return f.payload }

// Checksum returns the frame's on-wire CRC value.
func (f Frame[V]) Checksum() uint16 { return f.checksum }

// Signature returns the frame's signature trailer, if any.
func (f Frame[V]) Signature() (Signature, bool) {
	if f.signature == nil {
		return Signature{}, false
	}
	return *f.signature, true
}

// DecodeFrame assembles a Frame from a scanned header and the raw bytes that
// follow it on the wire (payload, little-endian checksum, and — when
// header.IsSigned() — the 13-byte signature trailer). It does not validate
// the checksum or signature; callers do that explicitly with ValidateChecksum
// and VerifySignature once they know the message's crc_extra / secret key.
func DecodeFrame[V MaybeVersioned](header Header, headerBytes HeaderBytes, body []byte) (Frame[V], error) {
	if err := zeroOf[V]().expectVersion(header.Version()); err != nil {
		return Frame[V]{}, err
	}

	n := int(header.PayloadLength())
	if len(body) < n+ChecksumSize {
		return Frame[V]{}, fmt.Errorf("mavlink: short frame body: need %d bytes, have %d", n+ChecksumSize, len(body))
	}

	payloadBytes := body[:n]
	checksum := uint16(body[n]) | uint16(body[n+1])<<8
	rest := body[n+ChecksumSize:]

	var sig *Signature
	if header.IsSigned() {
		if len(rest) < SignatureLength {
			return Frame[V]{}, fmt.Errorf("mavlink: short signature trailer: need %d bytes, have %d", SignatureLength, len(rest))
		}
		s, err := DecodeSignature(rest[:SignatureLength])
		if err != nil {
			return Frame[V]{}, err
		}
		sig = &s
	}

	return Frame[V]{
		header:      header,
		headerBytes: headerBytes,
		payload:     NewPayload(header.MessageID(), payloadBytes, header.Version()),
		checksum:    checksum,
		signature:   sig,
	}, nil
}

// AssembleFrame builds an unsigned outgoing Frame from a header and payload,
// computing the checksum from crcExtra (the message-specific salt byte a
// dialect capability supplies; see Dialect in dialect.go).
func AssembleFrame[V MaybeVersioned](header Header, payload Payload, crcExtra byte) Frame[V] {
	hb := header.Encode()
	f := Frame[V]{header: header, headerBytes: hb, payload: payload}
	f.checksum = f.CalculateCRC(crcExtra)
	return f
}

// CalculateCRC computes the frame's checksum over the header (excluding the
// magic byte), the payload, and the message's crc_extra salt — composing the
// same CRC accumulator whether fed as one chunk or several.
func (f Frame[V]) CalculateCRC(crcExtra byte) uint16 {
	c := NewCRC()
	c.Update(f.headerBytes.CRCData())
	c.Update(f.payload.Bytes())
	c.Update([]byte{crcExtra})
	return c.Sum()
}

// ValidateChecksum reports whether the frame's on-wire checksum matches the
// one computed from crcExtra.
func (f Frame[V]) ValidateChecksum(crcExtra byte) error {
	want := f.CalculateCRC(crcExtra)
	if want != f.checksum {
		return &ChecksumError{Expected: want, Actual: f.checksum}
	}
	return nil
}

// ValidateChecksumFor looks up the frame's message id in d and validates the
// checksum against its crc_extra, returning *NotInDialectError if the
// message id has no entry.
func (f Frame[V]) ValidateChecksumFor(d Dialect) error {
	crcExtra, err := CRCExtraFor(d, f.header.MessageID())
	if err != nil {
		return err
	}
	return f.ValidateChecksum(crcExtra)
}

// Bytes renders the full on-wire encoding of the frame: header, payload,
// little-endian checksum, and signature trailer when present.
func (f Frame[V]) Bytes() []byte {
	out := make([]byte, 0, f.headerBytes.Size()+int(f.payload.Len())+ChecksumSize+SignatureLength)
	out = append(out, f.headerBytes.Bytes()...)
	out = append(out, f.payload.Bytes()...)
	out = append(out, byte(f.checksum), byte(f.checksum>>8))
	if f.signature != nil {
		sb := f.signature.Bytes()
		out = append(out, sb[:]...)
	}
	return out
}

// AddSignature attaches a MAVLink 2 signature trailer, setting
// IncompatFlagSigned and recomputing the checksum — the signed bit lives in
// the header bytes the checksum itself covers, so flipping it changes the
// checksum too. A MAVLink 1 frame has no signature field to carry one, so it
// is returned unchanged with a nil error rather than rejected.
func (f Frame[V]) AddSignature(crcExtra byte, signer *Signer, linkID byte, timestamp MavTimestamp) (Frame[V], error) {
	if f.header.Version() != VersionV2 {
		return f, nil
	}

	h := f.header
	h.incompatFlags |= IncompatFlagSigned
	hb := h.Encode()

	nf := Frame[V]{header: h, headerBytes: hb, payload: f.payload}
	nf.checksum = nf.CalculateCRC(crcExtra)

	value := signer.Compute(hb.Bytes(), nf.payload.Bytes(), nf.checksum, linkID, timestamp)
	nf.signature = &Signature{LinkID: linkID, Timestamp: timestamp, Value: value}
	return nf, nil
}

// ReplaceSignature recomputes the signature value with a (possibly
// different) signer, link id, and timestamp, leaving the header and checksum
// untouched. The frame must already be signed.
func (f Frame[V]) ReplaceSignature(signer *Signer, linkID byte, timestamp MavTimestamp) (Frame[V], error) {
	if !f.header.IsSigned() {
		return Frame[V]{}, fmt.Errorf("mavlink: frame is not signed")
	}
	value := signer.Compute(f.headerBytes.Bytes(), f.payload.Bytes(), f.checksum, linkID, timestamp)
	nf := f
	nf.signature = &Signature{LinkID: linkID, Timestamp: timestamp, Value: value}
	return nf, nil
}

// RemoveSignature strips a signature trailer, clears IncompatFlagSigned, and
// recomputes the checksum to match. A no-op (returns f unchanged) if the
// frame was not signed.
func (f Frame[V]) RemoveSignature(crcExtra byte) Frame[V] {
	if !f.header.IsSigned() {
		return f
	}
	h := f.header
	h.incompatFlags &^= IncompatFlagSigned
	hb := h.Encode()

	nf := Frame[V]{header: h, headerBytes: hb, payload: f.payload}
	nf.checksum = nf.CalculateCRC(crcExtra)
	return nf
}

// VerifySignature recomputes the frame's signature value with signer and
// compares it in constant time against the stored one.
func (f Frame[V]) VerifySignature(signer *Signer) error {
	sig, ok := f.Signature()
	if !ok {
		return fmt.Errorf("mavlink: frame carries no signature")
	}
	want := signer.Compute(f.headerBytes.Bytes(), f.payload.Bytes(), f.checksum, sig.LinkID, sig.Timestamp)
	if subtle.ConstantTimeCompare(want[:], sig.Value[:]) != 1 {
		return &SignatureError{LinkID: sig.LinkID}
	}
	return nil
}

// IntoVersionless erases a Frame's static version parameter; the runtime
// version recorded in its header is unchanged.
func IntoVersionless[V MaybeVersioned](f Frame[V]) Frame[Versionless] {
	return Frame[Versionless]{
		header:      f.header,
		headerBytes: f.headerBytes,
		payload:     f.payload,
		checksum:    f.checksum,
		signature:   f.signature,
	}
}

// TryVersioned asserts a Versionless frame's runtime version matches W,
// returning a statically-constrained Frame[W] or a *VersionError.
func TryVersioned[W Versioned](f Frame[Versionless]) (Frame[W], error) {
	if err := zeroOf[W]().expectVersion(f.header.Version()); err != nil {
		return Frame[W]{}, err
	}
	return Frame[W]{
		header:      f.header,
		headerBytes: f.headerBytes,
		payload:     f.payload,
		checksum:    f.checksum,
		signature:   f.signature,
	}, nil
}

// UpgradeFrame converts a MAVLink 1 frame to MAVLink 2, zeroing the
// incompat/compat flags and recomputing the checksum over the wider header.
// The payload bytes are carried over unchanged; callers wanting the
// conventional trailing-zero truncation on egress call
// Payload.TrimTrailingZeros themselves before re-encoding.
func UpgradeFrame(f Frame[V1], crcExtra byte) Frame[V2] {
	h := Header{
		version:       VersionV2,
		payloadLength: f.header.payloadLength,
		sequence:      f.header.sequence,
		systemID:      f.header.systemID,
		componentID:   f.header.componentID,
		messageID:     f.header.messageID,
	}
	hb := h.Encode()
	nf := Frame[V2]{header: h, headerBytes: hb, payload: f.payload.UpgradeToV2()}
	nf.checksum = nf.CalculateCRC(crcExtra)
	return nf
}
