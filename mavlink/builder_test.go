package mavlink

import (
	"strings"
	"testing"
)

func TestFrameBuilderMissingFieldsReportsNames(t *testing.T) {
	_, err := NewFrameBuilder[V1]().SystemID(1).Build()
	if err == nil {
		t.Fatal("expected an error for an incomplete builder")
	}
	msg := err.Error()
	for _, want := range []string{"Sequence", "ComponentID", "MessageID", "Payload", "CRCExtra"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing field name %q", msg, want)
		}
	}
	if strings.Contains(msg, "SystemID") {
		t.Fatalf("error %q should not list SystemID, it was set", msg)
	}
}

func TestFrameBuilderBuildsWithoutTruncation(t *testing.T) {
	payload := make([]byte, 9)
	f, err := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, payload, VersionV2)).
		CRCExtra(50).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Payload().Len() != 9 {
		t.Fatalf("Build must not auto-truncate the payload, got length %d", f.Payload().Len())
	}
}

func TestFrameBuilderSettersClearPendingSignature(t *testing.T) {
	signer := NewSigner(NewSha256Signer(), NewSecretKey([]byte("k")))
	b := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 9), VersionV2)).
		CRCExtra(50).
		Signature(signer, 0, NewMavTimestamp(0))

	if b.set&flagSignature == 0 {
		t.Fatal("Signature must mark flagSignature")
	}

	b.Sequence(1)
	if b.set&flagSignature != 0 {
		t.Fatal("Sequence must clear a pending signature")
	}

	b.Signature(signer, 0, NewMavTimestamp(0))
	b.SystemID(2)
	if b.set&flagSignature != 0 {
		t.Fatal("SystemID must clear a pending signature")
	}

	b.Signature(signer, 0, NewMavTimestamp(0))
	b.Payload(NewPayload(0, make([]byte, 9), VersionV2))
	if b.set&flagSignature != 0 {
		t.Fatal("Payload must clear a pending signature")
	}

	b.Signature(signer, 0, NewMavTimestamp(0))
	b.MessageID(1)
	if b.set&flagSignature != 0 {
		t.Fatal("MessageID must clear a pending signature")
	}
	if b.set&flagCRCExtra != 0 {
		t.Fatal("MessageID must clear a previously set CRCExtra")
	}
}

func TestFrameBuilderRejectsV2OnlyFlagsOnV1(t *testing.T) {
	base := func() *FrameBuilder[V1] {
		return NewFrameBuilder[V1]().
			Sequence(0).
			SystemID(1).
			ComponentID(0).
			MessageID(0).
			Payload(NewPayload(0, make([]byte, 8), VersionV1)).
			CRCExtra(50)
	}

	if _, err := base().IncompatFlags(1).Build(); err == nil {
		t.Fatal("expected IncompatFlags on a V1 builder to fail Build")
	}
	if _, err := base().CompatFlags(1).Build(); err == nil {
		t.Fatal("expected CompatFlags on a V1 builder to fail Build")
	}
}

// A Signature request on a V1 builder is harmless: V1 has no signature
// field, so Build leaves the frame unsigned instead of erroring.
func TestFrameBuilderSignatureOnV1BuilderIsUnsigned(t *testing.T) {
	signer := NewSigner(NewSha256Signer(), NewSecretKey([]byte("k")))
	f, err := NewFrameBuilder[V1]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Signature(signer, 0, NewMavTimestamp(0)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, signed := f.Signature(); signed {
		t.Fatal("a V1 frame must never carry a signature")
	}
}

func TestFrameBuilderRejectsSignedFlagWithoutSignature(t *testing.T) {
	_, err := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 9), VersionV2)).
		CRCExtra(50).
		IncompatFlags(IncompatFlagSigned).
		Build()
	if err == nil {
		t.Fatal("expected Build to reject IncompatFlagSigned set without a matching Signature call")
	}
}

func TestFrameBuilderIncompatFlagsWithSignatureSucceeds(t *testing.T) {
	signer := NewSigner(NewSha256Signer(), NewSecretKey([]byte("k")))
	f, err := NewFrameBuilder[V2]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 9), VersionV2)).
		CRCExtra(50).
		IncompatFlags(IncompatFlagSigned).
		Signature(signer, 0, NewMavTimestamp(0)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !f.Header().IsSigned() {
		t.Fatal("expected the built frame to report IsSigned")
	}
	if _, signed := f.Signature(); !signed {
		t.Fatal("expected the built frame to carry a signature trailer")
	}
}

func TestUpgradeBuilderCarriesFieldsOver(t *testing.T) {
	v1 := NewFrameBuilder[V1]().
		Sequence(3).
		SystemID(10).
		ComponentID(255).
		MessageID(0).
		Payload(NewPayload(0, []byte{1, 2, 3, 0, 0}, VersionV1)).
		CRCExtra(50)

	v2 := UpgradeBuilder(v1)
	f, err := v2.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Header().Version() != VersionV2 {
		t.Fatalf("expected V2, got %s", f.Header().Version())
	}
	if f.Header().Sequence() != 3 || f.Header().SystemID() != 10 || f.Header().ComponentID() != 255 {
		t.Fatalf("upgraded builder lost identity fields: %+v", f.Header())
	}
	if f.Payload().Len() != 5 {
		t.Fatalf("upgraded payload length = %d, want 5", f.Payload().Len())
	}
}

func TestFrameBuilderVersionlessRequiresExplicitVersion(t *testing.T) {
	_, err := NewFrameBuilder[Versionless]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Build()
	if err == nil {
		t.Fatal("expected an error building a Versionless frame without an explicit Version")
	}
}

func TestFrameBuilderEndpointSetter(t *testing.T) {
	e := NewEndpoint(1, 2)
	f, err := NewFrameBuilder[V1]().
		Endpoint(e).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Header().SystemID() != 1 || f.Header().ComponentID() != 2 || f.Header().Sequence() != 0 {
		t.Fatalf("Endpoint setter produced unexpected header: %+v", f.Header())
	}
}
