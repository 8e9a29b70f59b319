package mavlink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kstaniek/go-mavlink/internal/fixtures"
)

// These mirror the worked end-to-end scenarios: junk-then-frame scanning, a
// minimal unsigned V2 round trip, a signed V2 round trip with wrong-secret
// rejection, a V1-to-V2 upgrade, cross-version receiver rejection, and
// sequencer forking. cmd/mavlink-fixtures runs the same scenarios as a
// standalone conformance check against the same golden vectors.

func TestScenarioJunkThenV1(t *testing.T) {
	rc := NewReceiver[V1](bytes.NewReader(fixtures.JunkThenV1), nil)

	f, err := rc.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	h := f.Header()
	if h.Sequence() != 1 || h.SystemID() != 10 || h.ComponentID() != 255 || h.MessageID() != fixtures.HeartbeatMessageID {
		t.Fatalf("unexpected header: %+v", h)
	}
	if err := f.ValidateChecksum(fixtures.HeartbeatCRCExtra); err != nil {
		t.Fatalf("ValidateChecksum: %v", err)
	}

	if _, err := rc.Recv(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("second Recv: got %v, want ErrUnexpectedEOF", err)
	}
}

func TestScenarioV2UnsignedMinimal(t *testing.T) {
	f, err := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(fixtures.HeartbeatMessageID).
		Payload(NewPayload(fixtures.HeartbeatMessageID, make([]byte, 9), VersionV2)).
		CRCExtra(fixtures.HeartbeatCRCExtra).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.Equal(f.Bytes(), fixtures.V2UnsignedMinimal) {
		t.Fatalf("wire mismatch: got % x want % x", f.Bytes(), fixtures.V2UnsignedMinimal)
	}
}

func TestScenarioV2SignedRoundTrip(t *testing.T) {
	f, err := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(fixtures.HeartbeatMessageID).
		Payload(NewPayload(fixtures.HeartbeatMessageID, make([]byte, 9), VersionV2)).
		CRCExtra(fixtures.HeartbeatCRCExtra).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	signer := NewSigner(NewSha256Signer(), SecretKey(fixtures.V2SignedSecret))
	signed, err := f.AddSignature(fixtures.HeartbeatCRCExtra, signer, 0, NewMavTimestamp(0))
	if err != nil {
		t.Fatalf("AddSignature: %v", err)
	}
	if !bytes.Equal(signed.Bytes(), fixtures.V2SignedRoundTrip) {
		t.Fatalf("wire mismatch: got % x want % x", signed.Bytes(), fixtures.V2SignedRoundTrip)
	}

	rc := NewReceiver[V2](bytes.NewReader(signed.Bytes()), nil)
	decoded, err := rc.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if !decoded.Header().IsSigned() {
		t.Fatal("decoded frame must report IsSigned")
	}
	if err := decoded.VerifySignature(signer); err != nil {
		t.Fatalf("VerifySignature with the correct secret: %v", err)
	}

	wrongSigner := NewSigner(NewSha256Signer(), SecretKey(fixtures.V2SignedWrongSecret))
	if err := decoded.VerifySignature(wrongSigner); !errors.Is(err, ErrSignature) {
		t.Fatalf("VerifySignature with the wrong secret: got %v, want ErrSignature", err)
	}
}

func TestScenarioV1ToV2Upgrade(t *testing.T) {
	b := fixtures.V1HeartbeatBuild
	v1Builder := NewFrameBuilder[V1]().
		Sequence(b.Sequence).
		SystemID(b.SystemID).
		ComponentID(b.ComponentID).
		MessageID(b.MessageID).
		Payload(NewPayload(b.MessageID, b.Payload, VersionV1)).
		CRCExtra(b.CRCExtra)

	v2, err := UpgradeBuilder(v1Builder).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v2.Header().Version() != VersionV2 {
		t.Fatalf("expected V2, got %s", v2.Header().Version())
	}
	if incompat, _ := v2.Header().IncompatFlags(); incompat != 0 {
		t.Fatalf("expected incompat_flags=0, got %#02x", incompat)
	}
	if compat, _ := v2.Header().CompatFlags(); compat != 0 {
		t.Fatalf("expected compat_flags=0, got %#02x", compat)
	}
	if _, signed := v2.Signature(); signed {
		t.Fatal("upgraded frame must not carry a signature")
	}
	if !bytes.Equal(v2.Payload().Bytes(), b.Payload) {
		t.Fatalf("payload bytes changed across upgrade: got % x want % x", v2.Payload().Bytes(), b.Payload)
	}
}

func TestScenarioVersionedReceiverRejectsWrongVersion(t *testing.T) {
	rc1 := NewReceiver[V1](bytes.NewReader(fixtures.V2UnsignedMinimal), nil)
	if _, err := rc1.Recv(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("V1 receiver on V2 bytes: got %v, want ErrUnexpectedEOF", err)
	}

	rc2 := NewReceiver[Versionless](bytes.NewReader(fixtures.V2UnsignedMinimal), nil)
	f, err := rc2.Recv()
	if err != nil {
		t.Fatalf("versionless Recv: %v", err)
	}
	if f.Header().Version() != VersionV2 {
		t.Fatalf("expected decoded V2 frame, got %s", f.Header().Version())
	}
}

func TestScenarioSequencerForkAndSync(t *testing.T) {
	s := NewSequencer()
	if v := s.Next(); v != 0 {
		t.Fatalf("s.Next() #1 = %d, want 0", v)
	}
	if v := s.Next(); v != 1 {
		t.Fatalf("s.Next() #2 = %d, want 1", v)
	}

	f := s.Fork()
	if v := f.Next(); v != 2 {
		t.Fatalf("f.Next() #1 = %d, want 2", v)
	}
	if v := f.Next(); v != 3 {
		t.Fatalf("f.Next() #2 = %d, want 3", v)
	}
	if v := s.Current(); v != 2 {
		t.Fatalf("s.Current() = %d, want 2", v)
	}

	s.Sync(f)
	if v := s.Next(); v != 4 {
		t.Fatalf("s.Next() after Sync = %d, want 4", v)
	}
}
