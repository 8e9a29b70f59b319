package mavlink

import "io"

// Observer receives notifications about Receiver/Sender activity. The core
// codec types (Header, Frame, Payload, FrameBuilder) never call a global
// metrics or logging registry themselves — only Receiver and Sender do, and
// only through this interface, so the pure value types stay free of hidden
// state. internal/diag implements Observer with Prometheus counters; nil is
// also accepted and treated as NopObserver.
type Observer interface {
	FrameReceived(version ProtocolVersion, messageID uint32)
	FrameSent(version ProtocolVersion, messageID uint32)
	ChecksumFailed(messageID uint32)
	SignatureFailed(messageID uint32)
	ScannerResynced()
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) FrameReceived(ProtocolVersion, uint32) {}
func (NopObserver) FrameSent(ProtocolVersion, uint32)     {}
func (NopObserver) ChecksumFailed(uint32)                 {}
func (NopObserver) SignatureFailed(uint32)                {}
func (NopObserver) ScannerResynced()                      {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}

// Receiver scans r for frames of version V and decodes each one it finds.
// It reports scanner resyncs (junk bytes skipped) to its Observer, but does
// not itself validate checksums or signatures: crc_extra and signing secrets
// are message- and deployment-specific, so callers validate explicitly (via
// Frame.ValidateChecksum / Frame.VerifySignature) after Recv returns,
// reporting the outcome back through the same Observer if desired.
type Receiver[V MaybeVersioned] struct {
	r        io.Reader
	scanner  Scanner[V]
	observer Observer
}

// NewReceiver wraps r. observer may be nil.
func NewReceiver[V MaybeVersioned](r io.Reader, observer Observer) *Receiver[V] {
	return &Receiver[V]{r: r, observer: observerOrNop(observer)}
}

// Recv reads and decodes the next frame from the underlying reader.
func (rc *Receiver[V]) Recv() (Frame[V], error) {
	header, headerBytes, err := rc.scanner.Next(rc.r, rc.observer.ScannerResynced)
	if err != nil {
		return Frame[V]{}, err
	}

	body := make([]byte, header.BodyLength())
	if _, err := io.ReadFull(rc.r, body); err != nil {
		return Frame[V]{}, wrapReadErr(err)
	}

	f, err := DecodeFrame[V](header, headerBytes, body)
	if err != nil {
		return Frame[V]{}, err
	}

	rc.observer.FrameReceived(header.Version(), header.MessageID())
	return f, nil
}

// ReportChecksumFailure notifies the Receiver's Observer of a checksum
// failure the caller detected after Recv returned the frame.
func (rc *Receiver[V]) ReportChecksumFailure(messageID uint32) {
	rc.observer.ChecksumFailed(messageID)
}

// ReportSignatureFailure notifies the Receiver's Observer of a signature
// failure the caller detected after Recv returned the frame.
func (rc *Receiver[V]) ReportSignatureFailure(messageID uint32) {
	rc.observer.SignatureFailed(messageID)
}

// flusher is satisfied by writers that buffer and need an explicit flush
// (e.g. bufio.Writer). Sender flushes after every Send so a frame is never
// left sitting in a buffer.
type flusher interface {
	Flush() error
}

// Sender writes frames of version V to w, flushing w after each one if it
// implements flusher.
type Sender[V MaybeVersioned] struct {
	w        io.Writer
	observer Observer
}

// NewSender wraps w. observer may be nil.
func NewSender[V MaybeVersioned](w io.Writer, observer Observer) *Sender[V] {
	return &Sender[V]{w: w, observer: observerOrNop(observer)}
}

// Send writes f's full wire encoding to the underlying writer.
func (s *Sender[V]) Send(f Frame[V]) error {
	if _, err := s.w.Write(f.Bytes()); err != nil {
		return err
	}
	if fl, ok := s.w.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return err
		}
	}
	s.observer.FrameSent(f.Header().Version(), f.Header().MessageID())
	return nil
}
