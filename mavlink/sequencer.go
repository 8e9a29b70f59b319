package mavlink

import "sync/atomic"

// Sequencer hands out MAVLink packet sequence numbers, wrapping modulo 256.
// It is safe for concurrent use; multiple Senders can share one Sequencer
// (directly, or via Join) to keep a single monotonically-wrapping counter
// across several links.
type Sequencer struct {
	counter *atomic.Uint32
}

// NewSequencer starts a fresh Sequencer whose first Next call yields 0. The
// counter is primed one below zero (wrapping mod 256) rather than sitting at
// 0 itself, so Current before any Next call reports the number about to be
// handed out, not one already spent.
func NewSequencer() *Sequencer {
	s := &Sequencer{counter: new(atomic.Uint32)}
	s.counter.Store(0xFF)
	return s
}

// Current reports the sequence number the next call to Next will return,
// without advancing the counter.
func (s *Sequencer) Current() uint8 {
	return uint8(s.counter.Load() + 1)
}

// Next advances the counter and returns the new sequence number, wrapping
// from 255 to 0.
func (s *Sequencer) Next() uint8 {
	return uint8(s.counter.Add(1))
}

// Rewind unsafely sets the last-produced sequence number to v (so the next
// Next call returns v+1), acknowledged by the caller via the Unsafe wrapper.
// Typical use: resuming after a reconnect at the last value a peer is known
// to have seen.
func (s *Sequencer) Rewind(v Unsafe[uint8]) {
	s.counter.Store(uint32(v.Unwrap()))
}

// Advance unsafely jumps the counter forward by n, skipping the sequence
// numbers in between, and returns the resulting value wrapped for the
// caller to acknowledge.
func (s *Sequencer) Advance(n uint8) Unsafe[uint8] {
	return NewUnsafe(uint8(s.counter.Add(uint32(n))))
}

// Fork returns a new, independent Sequencer snapshotting the current value:
// future advances on either do not affect the other.
func (s *Sequencer) Fork() *Sequencer {
	forked := NewSequencer()
	forked.counter.Store(s.counter.Load())
	return forked
}

// Sync copies other's current value into s, one-way. The two remain
// independent counters afterward.
func (s *Sequencer) Sync(other *Sequencer) {
	s.counter.Store(other.counter.Load())
}

// Join makes other share s's underlying counter, so subsequent calls to
// either advance the same sequence from then on.
func (s *Sequencer) Join(other *Sequencer) {
	other.counter = s.counter
}
