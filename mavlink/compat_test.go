package mavlink

import (
	"errors"
	"testing"
)

func v2Header(incompat, compat byte) Header {
	return Header{version: VersionV2, incompatFlags: incompat, compatFlags: compat}
}

func TestCompatProcessorDefaultsRejectThenEnforce(t *testing.T) {
	p := NewCompatProcessorBuilder().IncompatFlags(0x02).CompatFlags(0x04).Build()

	_, _, err := p.ProcessIncoming(v2Header(0x02, 0x04))
	if err != nil {
		t.Fatalf("ProcessIncoming with matching flags: %v", err)
	}

	_, _, err = p.ProcessIncoming(v2Header(0x08, 0x04))
	if !errors.Is(err, ErrIncompatible) {
		t.Fatalf("ProcessIncoming with mismatched incompat_flags: got %v, want ErrIncompatible", err)
	}

	incompat, compat, err := p.ProcessOutgoing(0x00, 0x00)
	if err != nil {
		t.Fatalf("ProcessOutgoing: %v", err)
	}
	if incompat != 0x02 || compat != 0x04 {
		t.Fatalf("Enforce egress = (%#02x, %#02x), want (0x02, 0x04)", incompat, compat)
	}
}

func TestCompatProcessorV1PassesThroughUntouched(t *testing.T) {
	p := NewCompatProcessorBuilder().IncompatFlags(0xFF).CompatFlags(0xFF).Build()
	incompat, compat, err := p.ProcessIncoming(Header{version: VersionV1})
	if err != nil || incompat != 0 || compat != 0 {
		t.Fatalf("ProcessIncoming on a V1 header = (%#02x, %#02x, %v), want (0, 0, nil)", incompat, compat, err)
	}
}

func TestCompatProcessorRejectSetOverwritesCompatOnly(t *testing.T) {
	p := NewCompatProcessorBuilder().
		Ingress(StrategyRejectSet).
		IncompatFlags(0x02).
		CompatFlags(0x10).
		Build()

	incompat, compat, err := p.ProcessIncoming(v2Header(0x02, 0x00))
	if err != nil {
		t.Fatalf("ProcessIncoming: %v", err)
	}
	if incompat != 0x02 {
		t.Fatalf("RejectSet must leave incompat_flags unchanged on success, got %#02x", incompat)
	}
	if compat != 0x10 {
		t.Fatalf("RejectSet must overwrite compat_flags, got %#02x want 0x10", compat)
	}

	if _, _, err := p.ProcessIncoming(v2Header(0x04, 0x00)); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("RejectSet must still reject on incompat_flags mismatch, got %v", err)
	}
}

func TestCompatProcessorEnforceProxyLeavesCompatAlone(t *testing.T) {
	p := NewCompatProcessorBuilder().
		Egress(StrategyEnforceProxy).
		IncompatFlags(0x02).
		CompatFlags(0x10).
		Build()

	incompat, compat, err := p.ProcessOutgoing(0x00, 0x99)
	if err != nil {
		t.Fatalf("ProcessOutgoing: %v", err)
	}
	if incompat != 0x02 {
		t.Fatalf("EnforceProxy must overwrite incompat_flags, got %#02x want 0x02", incompat)
	}
	if compat != 0x99 {
		t.Fatalf("EnforceProxy must leave compat_flags untouched, got %#02x want 0x99", compat)
	}
}

func TestCompatProcessorProxyNeverRejectsOrRewrites(t *testing.T) {
	p := NewCompatProcessorBuilder().
		Ingress(StrategyProxy).
		Egress(StrategyProxy).
		IncompatFlags(0x02).
		CompatFlags(0x04).
		Build()

	incompat, compat, err := p.ProcessIncoming(v2Header(0xAA, 0xBB))
	if err != nil {
		t.Fatalf("Proxy ingress must never reject: %v", err)
	}
	if incompat != 0xAA || compat != 0xBB {
		t.Fatalf("Proxy ingress must pass flags through unchanged, got (%#02x, %#02x)", incompat, compat)
	}

	incompat, compat, err = p.ProcessOutgoing(0xCC, 0xDD)
	if err != nil || incompat != 0xCC || compat != 0xDD {
		t.Fatalf("Proxy egress must pass flags through unchanged, got (%#02x, %#02x, %v)", incompat, compat, err)
	}
}

func TestCompatProcessorIgnoreSignatureExemptsSignedBit(t *testing.T) {
	p := NewCompatProcessorBuilder().
		IncompatFlags(0x00).
		CompatFlags(0x00).
		IgnoreSignature(true).
		Build()

	incompat, _, err := p.ProcessIncoming(v2Header(IncompatFlagSigned, 0x00))
	if err != nil {
		t.Fatalf("a SIGNED-only mismatch must not be rejected when ignoreSignature is set: %v", err)
	}
	if incompat&IncompatFlagSigned == 0 {
		t.Fatal("the frame's actual SIGNED bit must survive in the output even when ignored for comparison")
	}
}

func TestCompatProcessorSignatureComparedWhenNotIgnored(t *testing.T) {
	p := NewCompatProcessorBuilder().
		IncompatFlags(0x00).
		CompatFlags(0x00).
		IgnoreSignature(false).
		Build()

	if _, _, err := p.ProcessIncoming(v2Header(IncompatFlagSigned, 0x00)); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("with ignoreSignature=false, a SIGNED-bit mismatch must be rejected, got %v", err)
	}
}
