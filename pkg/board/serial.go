//go:build !tinygo

package board

import (
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"
)

var _ Console = (*Serial)(nil)

// DefaultBaudRate is the operator line speed, 8N1.
const DefaultBaudRate = 115200

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is a Console on a serial port.
type Serial struct {
	port     string
	baudRate int

	conn      serial.Port
	stream    *Stream
	mu        sync.RWMutex
	connected bool
}

// NewSerial creates a Serial console for the given port. A baud rate of 0 selects DefaultBaudRate.
func NewSerial(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	return &Serial{
		port:     port,
		baudRate: baudRate,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port and starts reading it.
func (s *Serial) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: s.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(s.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.port, err)
	}

	s.conn = port
	s.stream = NewStream(port, port, false)
	s.connected = true

	return nil
}

// Close closes the port. Pending ReadByte calls return ErrClosed.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	// Closing the stream closes the port, which unblocks the reader goroutine.
	if err := s.stream.Close(); err != nil {
		log.Printf("Error closing serial port: %v", err)
	}
	s.conn = nil
	s.connected = false

	return nil
}

// IsConnected returns whether the port is open.
func (s *Serial) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Name returns the port name.
func (s *Serial) Name() string {
	return s.port
}

// ReadByte blocks until a byte is received.
func (s *Serial) ReadByte() (byte, error) {
	st, err := s.current()
	if err != nil {
		return 0, err
	}
	return st.ReadByte()
}

// Buffered reports whether a received byte is waiting.
func (s *Serial) Buffered() bool {
	st, err := s.current()
	if err != nil {
		return false
	}
	return st.Buffered()
}

// Write sends p to the port.
func (s *Serial) Write(p []byte) (int, error) {
	st, err := s.current()
	if err != nil {
		return 0, err
	}
	n, err := st.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write to serial port %s: %w", s.port, err)
	}
	return n, nil
}

func (s *Serial) current() (*Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected {
		return nil, fmt.Errorf("not connected")
	}
	return s.stream, nil
}
