package mavlink

import (
	"bufio"
	"bytes"
	"errors"
	"testing"
)

type recordingObserver struct {
	received  int
	sent      int
	checksums int
	sigs      int
	resyncs   int
}

func (r *recordingObserver) FrameReceived(ProtocolVersion, uint32) { r.received++ }
func (r *recordingObserver) FrameSent(ProtocolVersion, uint32)     { r.sent++ }
func (r *recordingObserver) ChecksumFailed(uint32)                 { r.checksums++ }
func (r *recordingObserver) SignatureFailed(uint32)                { r.sigs++ }
func (r *recordingObserver) ScannerResynced()                      { r.resyncs++ }

func TestSenderReceiverRoundTrip(t *testing.T) {
	f, err := NewFrameBuilder[V1]().
		Sequence(0).
		SystemID(1).
		ComponentID(0).
		MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	obs := &recordingObserver{}
	var buf bytes.Buffer
	sender := NewSender[V1](&buf, obs)
	if err := sender.Send(f); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if obs.sent != 1 {
		t.Fatalf("FrameSent calls = %d, want 1", obs.sent)
	}

	rc := NewReceiver[V1](&buf, obs)
	got, err := rc.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if !bytes.Equal(got.Bytes(), f.Bytes()) {
		t.Fatal("round trip through Sender/Receiver changed the frame bytes")
	}
	if obs.received != 1 {
		t.Fatalf("FrameReceived calls = %d, want 1", obs.received)
	}
}

func TestReceiverReportsScannerResync(t *testing.T) {
	junk := []byte{0x00, 0x00, 0x00}
	f, err := NewFrameBuilder[V1]().
		Sequence(0).SystemID(1).ComponentID(0).MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	obs := &recordingObserver{}
	stream := append(append([]byte{}, junk...), f.Bytes()...)
	rc := NewReceiver[V1](bytes.NewReader(stream), obs)
	if _, err := rc.Recv(); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if obs.resyncs == 0 {
		t.Fatal("expected at least one ScannerResynced notification")
	}
}

func TestReceiverReportExplicitFailures(t *testing.T) {
	obs := &recordingObserver{}
	rc := NewReceiver[V1](bytes.NewReader(nil), obs)
	rc.ReportChecksumFailure(0)
	rc.ReportSignatureFailure(0)
	if obs.checksums != 1 || obs.sigs != 1 {
		t.Fatalf("checksum/sig notifications = %d/%d, want 1/1", obs.checksums, obs.sigs)
	}
}

func TestReceiverUnexpectedEOFOnEmptyStream(t *testing.T) {
	rc := NewReceiver[V1](bytes.NewReader(nil), nil)
	if _, err := rc.Recv(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("Recv on empty stream: got %v, want ErrUnexpectedEOF", err)
	}
}

func TestNopObserverNeverPanics(t *testing.T) {
	var o Observer = NopObserver{}
	o.FrameReceived(VersionV1, 0)
	o.FrameSent(VersionV1, 0)
	o.ChecksumFailed(0)
	o.SignatureFailed(0)
	o.ScannerResynced()
}

func TestSenderFlushesBufferedWriter(t *testing.T) {
	f, err := NewFrameBuilder[V1]().
		Sequence(0).SystemID(1).ComponentID(0).MessageID(0).
		Payload(NewPayload(0, make([]byte, 8), VersionV1)).
		CRCExtra(50).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	sender := NewSender[V1](bw, nil)
	if err := sender.Send(f); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Send must flush a bufio.Writer so bytes reach the underlying buffer")
	}
}
