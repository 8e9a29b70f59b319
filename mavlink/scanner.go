package mavlink

import (
	"errors"
	"io"
)

// wrapReadErr maps any EOF flavor encountered while reading a header or body
// to ErrUnexpectedEOF (spec: "End-of-stream during header read surfaces
// UnexpectedEof without leaving the scanner in an undefined state"); any
// other reader error is passed through wrapped with context.
func wrapReadErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}

// Scanner consumes bytes from r to locate and decode one Header at a time,
// resynchronizing on junk input and on magic bytes belonging to a version V
// does not accept. It is stateless between calls: a read failure never
// leaves partially-consumed bytes for the next call to misinterpret,
// because each call starts its own fresh window.
type Scanner[V MaybeVersioned] struct{}

// Next scans r for the next frame header acceptable to V. onJunk, if
// non-nil, is called once per discarded window, once when junk bytes precede
// the magic byte inside a window, and once per rejected candidate byte —
// wiring it to an Observer lets a Receiver report resync events.
//
// States (spec §4.2): SEARCH reads a HeaderMinSize window and walks it
// looking for an acceptable magic byte; if none is found the whole window is
// junk and a fresh one is read. COMPLETE reads the remaining
// header_size-(HeaderMinSize-k) bytes once a magic byte is found at offset
// k. DECODE parses the fixed-layout fields.
func (Scanner[V]) Next(r io.Reader, onJunk func()) (Header, HeaderBytes, error) {
	marker := zeroOf[V]()

	window := make([]byte, HeaderMinSize)
	if _, err := io.ReadFull(r, window); err != nil {
		return Header{}, HeaderBytes{}, wrapReadErr(err)
	}

	for {
		k := -1
		for i, b := range window {
			if marker.isMagicByte(b) {
				k = i
				break
			}
		}
		if k < 0 {
			// Entire window is junk; the already-consumed bytes are
			// discarded and SEARCH starts over with a fresh window.
			if onJunk != nil {
				onJunk()
			}
			if _, err := io.ReadFull(r, window); err != nil {
				return Header{}, HeaderBytes{}, wrapReadErr(err)
			}
			continue
		}
		if k > 0 && onJunk != nil {
			// The k bytes before the magic byte are junk and are discarded.
			onJunk()
		}

		headerSize := HeaderV1Size
		if window[k] == StxV2 {
			headerSize = HeaderV2Size
		}

		full := make([]byte, headerSize)
		have := copy(full, window[k:])
		if have < headerSize {
			if _, err := io.ReadFull(r, full[have:]); err != nil {
				return Header{}, HeaderBytes{}, wrapReadErr(err)
			}
		}

		hdr, err := DecodeHeader(full)
		if err != nil {
			// Should not happen: full is exactly sized and starts with a
			// magic byte we just validated. Treat defensively as junk and
			// resume scanning from the next byte.
			if onJunk != nil {
				onJunk()
			}
			window = append(window[1:], window[:1]...)
			if _, err := io.ReadFull(r, window[len(window)-1:]); err != nil {
				return Header{}, HeaderBytes{}, wrapReadErr(err)
			}
			continue
		}

		return hdr, hdr.Encode(), nil
	}
}
