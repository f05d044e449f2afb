// Package session connects an operator front end to a controller, either over a serial
// port or to a simulated controller running in-process.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/controller"
	"github.com/itohio/goplant/pkg/sensor"
)

// Link is an operator connection to a controller.
type Link interface {
	board.Console
	io.Closer
}

// Session pumps controller output into out and sends operator lines.
type Session struct {
	link   Link
	mock   *board.Mock
	ctrl   *controller.Controller
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// DialSerial connects to a controller over the configured serial port.
func DialSerial(cfg *config.Config, out func(string)) (*Session, error) {
	s := board.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err := s.Connect(); err != nil {
		return nil, err
	}

	sess := &Session{link: s, cancel: func() {}}
	sess.wg.Add(1)
	go sess.read(out)
	return sess, nil
}

// StartMock runs a simulated controller in-process and connects to it over pipes.
func StartMock(cfg *config.Config, out func(string)) *Session {
	c := *cfg
	if c.Policy.IdlePause <= 0 {
		c.Policy.IdlePause = 10 * time.Millisecond
	}

	toCtrlR, toCtrlW := io.Pipe()
	fromCtrlR, fromCtrlW := io.Pipe()
	ctrlSide := board.NewStream(toCtrlR, fromCtrlW, false)
	opSide := board.NewStream(fromCtrlR, toCtrlW, false)

	mock := board.NewMock(&c.Mock, &c.Calibration)
	ctrl := controller.New(controller.Hardware{
		Console: ctrlSide,
		Sensors: sensor.New(mock, c.Calibration),
		Clock:   mock,
		Pump:    mock,
		Delay:   mock,
		Speaker: mock,
	}, &c)
	ctrl.OnEvent(func(e controller.Event) {
		log.Printf("[%s] %s", controller.FormatClock(mock.Seconds()), e)
	})

	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		link: opSide,
		mock: mock,
		ctrl: ctrl,
		cancel: func() {
			cancel()
			ctrlSide.Close()
		},
	}

	go func() {
		if err := ctrl.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Simulated controller stopped: %v", err)
		}
	}()

	sess.wg.Add(1)
	go sess.read(out)
	return sess
}

// Mock returns the simulated board, or nil for a serial session.
func (s *Session) Mock() *board.Mock {
	return s.mock
}

// Controller returns the simulated controller, or nil for a serial session.
func (s *Session) Controller() *controller.Controller {
	return s.ctrl
}

// Send writes one operator line terminated by CR.
func (s *Session) Send(text string) error {
	if _, err := io.WriteString(s.link, text+"\r"); err != nil {
		return fmt.Errorf("failed to send %q: %w", text, err)
	}
	return nil
}

// Close disconnects and waits for the reader to exit.
// A simulated controller busy in a pump cycle finishes it in the background.
func (s *Session) Close() error {
	s.cancel()
	err := s.link.Close()
	s.wg.Wait()
	return err
}

// read delivers output in chunks: a complete line, or whatever arrived before input paused.
func (s *Session) read(out func(string)) {
	defer s.wg.Done()

	var buf []byte
	for {
		c, err := s.link.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				out(string(buf))
			}
			return
		}

		if c != '\r' {
			buf = append(buf, c)
		}
		if (c == '\n' || !s.link.Buffered()) && len(buf) > 0 {
			out(string(buf))
			buf = buf[:0]
		}
	}
}
