package serial

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ErrClosed is returned by TryReadLine once the Reader has been closed.
var ErrClosed = errors.New("serial: reader closed")

// Reader provides low-latency, killable, line-oriented access to a Linux
// serial port. Each TryReadLine call is bounded by the configured read
// timeout, so callers can poll the port inside their own deadline loop.
type Reader struct {
	fd        int
	file      *os.File
	done      chan struct{}
	closeOnce sync.Once
	config    Config
	pending   string // bytes received but not yet returned as a line
	pipeR     int    // self-pipe read fd
	pipeW     int    // self-pipe write fd
}

// Config holds configuration parameters for opening a serial port.
type Config struct {
	Device      string
	BaudRate    int
	ByteSize    int           // data bits per frame; 0 or 8 (only 8N framing is supported)
	StopBits    int           // 0 or 1 for one stop bit, 2 for two
	ReadTimeout time.Duration // max wait per TryReadLine call; <= 0 polls without waiting
	Delimiter   string        // default "\n"
}

// Open opens a serial port using the provided Config and returns a Reader.
// The port is configured for raw, low-latency, non-buffered operation.
func Open(cfg Config) (*Reader, error) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = "\n"
	}
	if cfg.ByteSize != 0 && cfg.ByteSize != 8 {
		return nil, fmt.Errorf("unsupported byte size %d", cfg.ByteSize)
	}
	if cfg.StopBits < 0 || cfg.StopBits > 2 {
		return nil, fmt.Errorf("unsupported stop bit count %d", cfg.StopBits)
	}

	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8

	// Stop bits
	if cfg.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	} else {
		termios.Cflag &^= unix.CSTOPB
	}

	// Baud rate
	baud := baudToUnix(cfg.BaudRate)
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// Set VMIN=1, VTIME=0 for immediate, non-blocking reads
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	// Turn back into blocking mode now that config is done
	syscall.SetNonblock(fd, false)

	// Create self-pipe for killability
	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	file := os.NewFile(uintptr(fd), cfg.Device)
	return &Reader{
		fd:        fd,
		file:      file,
		done:      make(chan struct{}),
		closeOnce: sync.Once{},
		config:    cfg,
		pipeR:     pipeFds[0],
		pipeW:     pipeFds[1],
	}, nil
}

// TryReadLine returns one line from the port, including its delimiter, or
// (nil, nil) if no complete line arrives within the configured read timeout.
// Bytes received ahead of a delimiter are retained for the next call, so no
// input is lost across timeouts. Uses poll and a custom buffer, avoiding
// bufio for lowest latency.
func (r *Reader) TryReadLine() ([]byte, error) {
	if line := r.takeLine(); line != nil {
		return line, nil
	}

	buf := make([]byte, 4096)
	deadline := time.Now().Add(r.config.ReadTimeout)
	for {
		remaining := int(time.Until(deadline).Milliseconds())
		if remaining < 0 {
			remaining = 0
		}
		// Wait for data, kill signal, or timeout
		pfd := []unix.PollFd{
			{Fd: int32(r.fd), Events: unix.POLLIN},
			{Fd: int32(r.pipeR), Events: unix.POLLIN},
		}
		n, err := unix.Poll(pfd, remaining)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, fmt.Errorf("poll: %w", err)
		}
		// Check killability
		select {
		case <-r.done:
			return nil, ErrClosed
		default:
		}
		if pfd[1].Revents&unix.POLLIN != 0 {
			// Drain pipe
			var b [1]byte
			unix.Read(r.pipeR, b[:])
			return nil, ErrClosed
		}
		if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			rn, err := r.file.Read(buf)
			if err != nil {
				return nil, fmt.Errorf("read: %w", err)
			}
			r.pending += string(buf[:rn])
			if line := r.takeLine(); line != nil {
				return line, nil
			}
		}
		if n == 0 || !time.Now().Before(deadline) {
			// Timed out with no complete line buffered
			return nil, nil
		}
	}
}

// takeLine cuts the first complete line off the pending buffer, or returns
// nil if no delimiter has been received yet.
func (r *Reader) takeLine() []byte {
	idx := strings.Index(r.pending, r.config.Delimiter)
	if idx < 0 {
		return nil
	}
	end := idx + len(r.config.Delimiter)
	line := []byte(r.pending[:end])
	r.pending = r.pending[end:]
	return line
}

// Close closes the serial port and unblocks any pending TryReadLine call.
// Safe to call multiple times; subsequent calls are no-ops.
func (r *Reader) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.done)
		// Wake up poll using self-pipe
		if r.pipeW > 0 {
			unix.Write(r.pipeW, []byte{1})
		}
		if r.file != nil {
			err = r.file.Close()
		}
		syscall.Close(r.fd)
		if r.pipeR > 0 {
			unix.Close(r.pipeR)
		}
		if r.pipeW > 0 {
			unix.Close(r.pipeW)
		}
	})
	return err
}

func baudToUnix(baud int) uint32 {
	switch baud {
	case 1200:
		return unix.B1200
	case 2400:
		return unix.B2400
	case 4800:
		return unix.B4800
	case 9600:
		return unix.B9600
	case 19200:
		return unix.B19200
	case 38400:
		return unix.B38400
	case 57600:
		return unix.B57600
	case 115200:
		return unix.B115200
	case 230400:
		return unix.B230400
	default:
		return unix.B115200 // fallback
	}
}
