// Package diag wires the mavlink package's Observer interface to Prometheus
// counters. It is the only place in this module that touches a metrics
// registry — mavlink itself stays free of global state, per its own design
// (see mavlink.Observer).
package diag

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kstaniek/go-mavlink/mavlink"
)

// Metrics implements mavlink.Observer. It also keeps a parallel set of
// atomic counters so a caller can read a Snapshot without scraping
// Prometheus — handy for tests and for a one-line summary at shutdown.
type Metrics struct {
	framesReceived    *prometheus.CounterVec
	framesSent        *prometheus.CounterVec
	checksumFailures  *prometheus.CounterVec
	signatureFailures *prometheus.CounterVec
	scannerResyncs    prometheus.Counter

	nFramesReceived    atomic.Uint64
	nFramesSent        atomic.Uint64
	nChecksumFailures  atomic.Uint64
	nSignatureFailures atomic.Uint64
	nScannerResyncs    atomic.Uint64
}

// New registers mavlink's counters against reg and returns a ready Metrics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mavlink",
			Name:      "frames_received_total",
			Help:      "Frames successfully scanned and decoded by a Receiver, by protocol version.",
		}, []string{"version"}),
		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mavlink",
			Name:      "frames_sent_total",
			Help:      "Frames written by a Sender, by protocol version.",
		}, []string{"version"}),
		checksumFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mavlink",
			Name:      "checksum_failures_total",
			Help:      "Frames rejected for a CRC mismatch, by message id.",
		}, []string{"message_id"}),
		signatureFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mavlink",
			Name:      "signature_failures_total",
			Help:      "Frames rejected for a signature mismatch, by message id.",
		}, []string{"message_id"}),
		scannerResyncs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink",
			Name:      "scanner_resyncs_total",
			Help:      "Times the header scanner discarded junk bytes while searching for a magic byte.",
		}),
	}
}

func (m *Metrics) FrameReceived(version mavlink.ProtocolVersion, _ uint32) {
	m.framesReceived.WithLabelValues(version.String()).Inc()
	m.nFramesReceived.Add(1)
}

func (m *Metrics) FrameSent(version mavlink.ProtocolVersion, _ uint32) {
	m.framesSent.WithLabelValues(version.String()).Inc()
	m.nFramesSent.Add(1)
}

func (m *Metrics) ChecksumFailed(messageID uint32) {
	m.checksumFailures.WithLabelValues(strconv.FormatUint(uint64(messageID), 10)).Inc()
	m.nChecksumFailures.Add(1)
}

func (m *Metrics) SignatureFailed(messageID uint32) {
	m.signatureFailures.WithLabelValues(strconv.FormatUint(uint64(messageID), 10)).Inc()
	m.nSignatureFailures.Add(1)
}

func (m *Metrics) ScannerResynced() {
	m.scannerResyncs.Inc()
	m.nScannerResyncs.Add(1)
}

var _ mavlink.Observer = (*Metrics)(nil)

// Snapshot is a point-in-time read of the counters.
type Snapshot struct {
	FramesReceived    uint64
	FramesSent        uint64
	ChecksumFailures  uint64
	SignatureFailures uint64
	ScannerResyncs    uint64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		FramesReceived:    m.nFramesReceived.Load(),
		FramesSent:        m.nFramesSent.Load(),
		ChecksumFailures:  m.nChecksumFailures.Load(),
		SignatureFailures: m.nSignatureFailures.Load(),
		ScannerResyncs:    m.nScannerResyncs.Load(),
	}
}

// StartHTTP serves reg's metrics at addr until ctx is canceled, then shuts
// the server down gracefully.
func StartHTTP(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
