package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/kstaniek/go-mavlink/internal/fixtures"
	"github.com/kstaniek/go-mavlink/mavlink"
)

// scenarios maps a -scenario flag value to the function that runs it. Each
// function reports a descriptive error on the first assertion that fails.
var scenarios = map[string]func(mavlink.Observer) error{
	"junk-v1":        runJunkThenV1,
	"v2-unsigned":    runV2Unsigned,
	"v2-signed":      runV2Signed,
	"upgrade":        runUpgrade,
	"version-reject": runVersionReject,
	"sequencer-fork": runSequencerFork,
}

// runJunkThenV1 feeds fixtures.JunkThenV1 to a V1 Receiver: three junk bytes
// must be skipped (reported to observer) before the heartbeat frame decodes.
func runJunkThenV1(observer mavlink.Observer) error {
	rc := mavlink.NewReceiver[mavlink.V1](bytes.NewReader(fixtures.JunkThenV1), observer)

	f, err := rc.Recv()
	if err != nil {
		return fmt.Errorf("recv: %w", err)
	}
	h := f.Header()
	if h.Sequence() != 1 || h.SystemID() != 10 || h.ComponentID() != 255 || h.MessageID() != fixtures.HeartbeatMessageID {
		return fmt.Errorf("unexpected header: %+v", h)
	}
	if err := f.ValidateChecksum(fixtures.HeartbeatCRCExtra); err != nil {
		return fmt.Errorf("checksum: %w", err)
	}

	if _, err := rc.Recv(); !errors.Is(err, mavlink.ErrUnexpectedEOF) {
		return fmt.Errorf("expected ErrUnexpectedEOF after the single frame, got %v", err)
	}
	return nil
}

// runV2Unsigned builds the minimal unsigned V2 heartbeat from scratch and
// checks its wire encoding against fixtures.V2UnsignedMinimal byte for byte.
func runV2Unsigned(_ mavlink.Observer) error {
	f, err := mavlink.NewFrameBuilder[mavlink.V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(fixtures.HeartbeatMessageID).
		Payload(mavlink.NewPayload(fixtures.HeartbeatMessageID, make([]byte, 9), mavlink.VersionV2)).
		CRCExtra(fixtures.HeartbeatCRCExtra).
		Build()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if !bytes.Equal(f.Bytes(), fixtures.V2UnsignedMinimal) {
		return fmt.Errorf("wire mismatch: got % x want % x", f.Bytes(), fixtures.V2UnsignedMinimal)
	}
	return nil
}

// runV2Signed builds the same heartbeat, signs it, checks the signed wire
// encoding against fixtures.V2SignedRoundTrip, decodes it back, verifies the
// signature with the correct secret, and confirms a wrong secret fails.
func runV2Signed(observer mavlink.Observer) error {
	f, err := mavlink.NewFrameBuilder[mavlink.V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(fixtures.HeartbeatMessageID).
		Payload(mavlink.NewPayload(fixtures.HeartbeatMessageID, make([]byte, 9), mavlink.VersionV2)).
		CRCExtra(fixtures.HeartbeatCRCExtra).
		Build()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	signer := mavlink.NewSigner(mavlink.NewSha256Signer(), mavlink.SecretKey(fixtures.V2SignedSecret))
	signed, err := f.AddSignature(fixtures.HeartbeatCRCExtra, signer, 0, mavlink.NewMavTimestamp(0))
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	if !bytes.Equal(signed.Bytes(), fixtures.V2SignedRoundTrip) {
		return fmt.Errorf("wire mismatch: got % x want % x", signed.Bytes(), fixtures.V2SignedRoundTrip)
	}

	rc := mavlink.NewReceiver[mavlink.V2](bytes.NewReader(signed.Bytes()), observer)
	decoded, err := rc.Recv()
	if err != nil {
		return fmt.Errorf("decode signed frame: %w", err)
	}
	if !decoded.Header().IsSigned() {
		return fmt.Errorf("decoded frame not marked signed")
	}

	if err := decoded.VerifySignature(signer); err != nil {
		return fmt.Errorf("verify with correct secret: %w", err)
	}

	wrongSigner := mavlink.NewSigner(mavlink.NewSha256Signer(), mavlink.SecretKey(fixtures.V2SignedWrongSecret))
	if err := decoded.VerifySignature(wrongSigner); !errors.Is(err, mavlink.ErrSignature) {
		return fmt.Errorf("expected signature mismatch with wrong secret, got %v", err)
	}
	return nil
}

// runUpgrade builds a V1 heartbeat builder, upgrades it to V2 via
// UpgradeBuilder, and checks the resulting frame carries zeroed incompat/
// compat flags, no signature, and the payload bytes untouched (no implicit
// trailing-zero truncation).
func runUpgrade(_ mavlink.Observer) error {
	b := fixtures.V1HeartbeatBuild
	v1Builder := mavlink.NewFrameBuilder[mavlink.V1]().
		Sequence(b.Sequence).
		SystemID(b.SystemID).
		ComponentID(b.ComponentID).
		MessageID(b.MessageID).
		Payload(mavlink.NewPayload(b.MessageID, b.Payload, mavlink.VersionV1)).
		CRCExtra(b.CRCExtra)

	v2, err := mavlink.UpgradeBuilder(v1Builder).Build()
	if err != nil {
		return fmt.Errorf("build upgraded frame: %w", err)
	}

	if v2.Header().Version() != mavlink.VersionV2 {
		return fmt.Errorf("expected V2, got %s", v2.Header().Version())
	}
	if incompat, _ := v2.Header().IncompatFlags(); incompat != 0 {
		return fmt.Errorf("expected incompat_flags=0, got %#02x", incompat)
	}
	if compat, _ := v2.Header().CompatFlags(); compat != 0 {
		return fmt.Errorf("expected compat_flags=0, got %#02x", compat)
	}
	if _, signed := v2.Signature(); signed {
		return fmt.Errorf("expected no signature after upgrade")
	}
	if !bytes.Equal(v2.Payload().Bytes(), b.Payload) {
		return fmt.Errorf("payload bytes changed across upgrade: got % x want % x", v2.Payload().Bytes(), b.Payload)
	}
	return nil
}

// runVersionReject feeds a V2 frame's bytes to a V1 Receiver (which must
// treat every byte as unresolvable junk and fail with ErrUnexpectedEOF) and
// to a Versionless Receiver (which must decode it as a V2 frame).
func runVersionReject(observer mavlink.Observer) error {
	rc1 := mavlink.NewReceiver[mavlink.V1](bytes.NewReader(fixtures.V2UnsignedMinimal), observer)
	if _, err := rc1.Recv(); !errors.Is(err, mavlink.ErrUnexpectedEOF) {
		return fmt.Errorf("expected ErrUnexpectedEOF from a V1 receiver on V2 bytes, got %v", err)
	}

	rc2 := mavlink.NewReceiver[mavlink.Versionless](bytes.NewReader(fixtures.V2UnsignedMinimal), observer)
	f, err := rc2.Recv()
	if err != nil {
		return fmt.Errorf("versionless recv: %w", err)
	}
	if f.Header().Version() != mavlink.VersionV2 {
		return fmt.Errorf("expected decoded V2 frame, got %s", f.Header().Version())
	}
	return nil
}

// runSequencerFork reproduces the literal sequence: two Next calls, a Fork,
// two more Next calls on the fork, a Current check on the original, a Sync
// from the fork back onto the original, and a final Next.
func runSequencerFork(_ mavlink.Observer) error {
	s := mavlink.NewSequencer()
	if v := s.Next(); v != 0 {
		return fmt.Errorf("s.Next() #1 = %d, want 0", v)
	}
	if v := s.Next(); v != 1 {
		return fmt.Errorf("s.Next() #2 = %d, want 1", v)
	}

	f := s.Fork()
	if v := f.Next(); v != 2 {
		return fmt.Errorf("f.Next() #1 = %d, want 2", v)
	}
	if v := f.Next(); v != 3 {
		return fmt.Errorf("f.Next() #2 = %d, want 3", v)
	}

	if v := s.Current(); v != 2 {
		return fmt.Errorf("s.Current() = %d, want 2", v)
	}

	s.Sync(f)
	if v := s.Next(); v != 4 {
		return fmt.Errorf("s.Next() after Sync = %d, want 4", v)
	}
	return nil
}
