package board

import (
	"errors"
	"io"
	"log"
	"sync"
)

// DefaultBufferSize is the default number of received bytes held for the reader.
const DefaultBufferSize = 256

// Stream is a Console over an arbitrary reader and writer.
// A background goroutine drains the reader so Buffered never blocks.
type Stream struct {
	r io.Reader
	w io.Writer

	lfAsCR bool
	lastCR bool

	bytes  chan byte
	closed chan struct{}
	once   sync.Once

	wmu sync.Mutex
	mu  sync.RWMutex
	err error
}

// NewStream starts reading r in the background.
// With lfAsCR set, LF is delivered as CR and the LF of a CRLF pair is dropped,
// so terminals that send newlines end lines the same way a serial terminal does.
func NewStream(r io.Reader, w io.Writer, lfAsCR bool) *Stream {
	s := &Stream{
		r:      r,
		w:      w,
		lfAsCR: lfAsCR,
		bytes:  make(chan byte, DefaultBufferSize),
		closed: make(chan struct{}),
	}
	go s.readBytes()
	return s
}

// ReadByte blocks until a byte arrives, the reader fails or the stream is closed.
func (s *Stream) ReadByte() (byte, error) {
	select {
	case c, ok := <-s.bytes:
		if !ok {
			return 0, s.Err()
		}
		return c, nil
	case <-s.closed:
		return 0, ErrClosed
	}
}

// Buffered reports whether ReadByte would return immediately, with data or an error.
func (s *Stream) Buffered() bool {
	if len(s.bytes) > 0 {
		return true
	}
	select {
	case <-s.closed:
		return true
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err != nil
}

// Write writes p to the underlying writer.
func (s *Stream) Write(p []byte) (int, error) {
	select {
	case <-s.closed:
		return 0, ErrClosed
	default:
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.w.Write(p)
}

// Err returns the error that stopped the reader, if any.
func (s *Stream) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Close stops delivering bytes and closes the reader if it is an io.Closer.
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closed)
		if c, ok := s.r.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// readBytes copies the reader into the byte channel until it fails or the stream closes.
func (s *Stream) readBytes() {
	// The error is recorded before the channel closes so ReadByte never sees a nil error.
	defer close(s.bytes)

	buf := make([]byte, 64)
	for {
		n, err := s.r.Read(buf)
		for _, c := range buf[:n] {
			c, keep := s.translate(c)
			if !keep {
				continue
			}
			select {
			case s.bytes <- c:
			case <-s.closed:
				s.setErr(ErrClosed)
				return
			}
		}
		if err != nil {
			select {
			case <-s.closed:
				s.setErr(ErrClosed)
			default:
				if !errors.Is(err, io.EOF) {
					log.Printf("Error reading console: %v", err)
				}
				s.setErr(err)
			}
			return
		}
	}
}

func (s *Stream) translate(c byte) (byte, bool) {
	if !s.lfAsCR {
		return c, true
	}
	wasCR := s.lastCR
	s.lastCR = c == '\r'
	if c == '\n' {
		if wasCR {
			return 0, false
		}
		return '\r', true
	}
	return c, true
}
