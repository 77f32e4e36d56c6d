// Package capture implements the time-bounded telemetry capture pipeline:
// a wall-clock-bounded read loop over a line source, followed by parsing of
// the buffered lines into a duty-cycle/ADC time-series dataset.
package capture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotASCII is returned by Capture when the device emits bytes outside
// the ASCII range. The wire protocol is plain ASCII text, so anything else
// means the connection is misframed and the whole run is unusable.
var ErrNotASCII = errors.New("capture: line is not ASCII")

// LineSource yields one textual line per read attempt. TryReadLine returns
// (nil, nil) when no complete line is available within the source's own
// read timeout; a non-nil error is a fatal transport fault.
// *serial.Reader satisfies this interface.
type LineSource interface {
	TryReadLine() ([]byte, error)
	Close() error
}

// TimestampedLine is one raw line paired with its arrival time, measured in
// seconds since capture start.
type TimestampedLine struct {
	Raw     string
	Elapsed float64
}

// Buffer is the ordered sequence of lines accepted during one capture
// window. It is append-only during capture and must be treated as frozen
// once Capture returns.
type Buffer struct {
	Lines []TimestampedLine
}

// Capture polls src until duration has elapsed on the wall clock, stamping
// each accepted line with its elapsed time. Blank lines (empty or
// whitespace-only, as the firmware emits between sweeps) are discarded.
// The source is closed exactly once before returning, on every path,
// including a non-positive duration; the source is not reusable afterward.
//
// The loop terminates on the deadline, not on a sample count, so the first
// and last buffered lines may be mid-transmission fragments. Parse trims
// them. A single poll can outlive the deadline by up to the source's read
// timeout.
func Capture(src LineSource, duration time.Duration) (buf *Buffer, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			buf, err = nil, fmt.Errorf("close source: %w", cerr)
		}
	}()

	buf = &Buffer{}
	start := time.Now()
	for time.Since(start) < duration {
		line, err := src.TryReadLine()
		if err != nil {
			return nil, fmt.Errorf("read line: %w", err)
		}
		if line == nil {
			continue // nothing arrived within the read timeout, keep polling
		}
		for _, b := range line {
			if b > 0x7f {
				return nil, fmt.Errorf("%w: %q", ErrNotASCII, line)
			}
		}
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		buf.Lines = append(buf.Lines, TimestampedLine{
			Raw:     string(line),
			Elapsed: time.Since(start).Seconds(),
		})
	}
	return buf, nil
}
