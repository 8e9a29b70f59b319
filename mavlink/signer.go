package mavlink

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Sign is a 48-bit digest capability: MAVLink 2 signing needs only reset,
// digest, and produce. The canonical implementor computes SHA-256 and
// returns its first 6 bytes (sha256_48); the trait itself permits any
// platform-specific replacement — see Blake2bSigner for a second one.
type Sign interface {
	// Reset clears any previously digested data.
	Reset()
	// Digest feeds bytes into the running digest. Calling Digest multiple
	// times with sequential chunks must be equivalent to calling it once
	// with the concatenation of those chunks.
	Digest(bytes []byte)
	// Produce returns the 6-byte signature value for everything digested
	// since the last Reset.
	Produce() [SignatureValueLength]byte
}

// Sha256Signer is the canonical Sign implementor: sha256_48, the first 6
// bytes of a standard SHA-256 digest. crypto/sha256 is used directly because
// it is the stdlib primitive the protocol itself names (spec: "no SHA-256
// implementation... the core accepts a digest provider") — there is no
// third-party SHA-256 package in the ecosystem worth preferring over it.
type Sha256Signer struct {
	h hash.Hash
}

// NewSha256Signer constructs a ready-to-use Sha256Signer.
func NewSha256Signer() *Sha256Signer {
	return &Sha256Signer{h: sha256.New()}
}

func (s *Sha256Signer) Reset()               { s.h.Reset() }
func (s *Sha256Signer) Digest(bytes []byte)  { s.h.Write(bytes) }
func (s *Sha256Signer) Produce() [SignatureValueLength]byte {
	sum := s.h.Sum(nil)
	var out [SignatureValueLength]byte
	copy(out[:], sum[:SignatureValueLength])
	return out
}

// Blake2bSigner is an alternate Sign implementor built on
// golang.org/x/crypto/blake2b, demonstrating that Sign accepts
// platform-specific replacements for the canonical SHA-256-based signer.
// Unlike Sha256Signer it asks BLAKE2b for exactly 6 output bytes rather than
// truncating a wider digest.
type Blake2bSigner struct {
	h hash.Hash
}

// NewBlake2bSigner constructs a ready-to-use Blake2bSigner.
func NewBlake2bSigner() *Blake2bSigner {
	h, err := blake2b.New(SignatureValueLength, nil)
	if err != nil {
		// Only returns an error for invalid size/key; SignatureValueLength
		// (6) and a nil key are always valid for blake2b.New.
		panic(err)
	}
	return &Blake2bSigner{h: h}
}

func (s *Blake2bSigner) Reset()              { s.h.Reset() }
func (s *Blake2bSigner) Digest(bytes []byte) { s.h.Write(bytes) }
func (s *Blake2bSigner) Produce() [SignatureValueLength]byte {
	sum := s.h.Sum(nil)
	var out [SignatureValueLength]byte
	copy(out[:], sum[:SignatureValueLength])
	return out
}

// Signer composes the exact MAVLink signing input and drives a Sign
// implementor over it:
//
//	secret(32) || header_bytes(10) || payload_bytes || checksum_le(2) || link_id(1) || timestamp_le(6)
type Signer struct {
	algo   Sign
	secret SecretKey
}

// NewSigner builds a Signer from a digest algorithm and secret key.
func NewSigner(algo Sign, secret SecretKey) *Signer {
	return &Signer{algo: algo, secret: secret}
}

// Compute signs a single frame's worth of bytes and returns the 6-byte
// signature value. headerBytes must be the full 10-byte MAVLink 2 header
// encoding, magic byte included; payload is the (possibly truncated) payload
// that was actually transmitted.
func (s *Signer) Compute(headerBytes []byte, payload []byte, checksum uint16, linkID byte, timestamp MavTimestamp) [SignatureValueLength]byte {
	s.algo.Reset()
	s.algo.Digest(s.secret[:])
	s.algo.Digest(headerBytes)
	s.algo.Digest(payload)
	var checksumLE [ChecksumSize]byte
	checksumLE[0] = byte(checksum)
	checksumLE[1] = byte(checksum >> 8)
	s.algo.Digest(checksumLE[:])
	s.algo.Digest([]byte{linkID})
	tsBytes := timestamp.Bytes()
	s.algo.Digest(tsBytes[:])
	return s.algo.Produce()
}
