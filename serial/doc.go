// Package serial provides a minimal, Linux-only serial port reader
// designed for line-oriented telemetry capture from embedded devices.
//
// The reader is optimized for steady hardware cadences (a firmware emitting
// one sample line every few milliseconds), where each poll must return as
// soon as a newline-delimited line is available but must never block past
// its own read timeout.
//
// Features:
//   - Raw syscall-based serial I/O on Linux, no buffering delays
//   - Per-call bounded reads: TryReadLine waits at most Config.ReadTimeout
//   - Partial input retained across calls, so timeouts lose no bytes
//   - Self-pipe mechanism for killability
//   - PTY-based tests for reliability
//
// This package does **not** support Windows.
//
// Example usage:
//
//	cfg := serial.Config{
//	    Device:      "/dev/ttyUSB0",
//	    BaudRate:    4800,
//	    ReadTimeout: 2 * time.Second,
//	}
//	reader, err := serial.Open(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	for {
//	    line, err := reader.TryReadLine()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if line == nil {
//	        continue // nothing arrived within the read timeout
//	    }
//	    fmt.Print(string(line))
//	}
package serial
