// Package ssc32 drives the Lynxmotion SSC-32U serial servo controller.
//
// The board speaks an ASCII protocol: a group move is a run of
// "#<channel>P<pulse width>S<speed>" clauses terminated by a carriage
// return, pulse widths in microseconds. A "Q" query answers '+' while any
// servo is still travelling and '.' once all have arrived.
package ssc32

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Servo pulse-width range, microseconds. 500 positions a servo at one
// extreme, 2500 at the other.
const (
	PulseMin = 500
	PulseMax = 2500
)

// Target is one channel's part of a group move. Speed is in microseconds
// of pulse width per second; zero means move at full speed.
type Target struct {
	Channel int
	Pulse   int
	Speed   int
}

// Controller is a connection to one SSC-32U board.
type Controller struct {
	rw io.ReadWriteCloser
}

// Open connects to the board on the named serial port.
func Open(portName string, baud int) (*Controller, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Wrapf(err, "open serial port %s", portName)
	}
	return NewController(port), nil
}

// NewController wraps an existing connection, typically for tests or a
// transport that is not a local serial port.
func NewController(rw io.ReadWriteCloser) *Controller {
	return &Controller{rw: rw}
}

// SetTargets issues a single group move. All channels in the group start
// together; the board interpolates each one at its commanded speed.
func (c *Controller) SetTargets(targets []Target) error {
	if len(targets) == 0 {
		return errors.New("empty group move")
	}
	var b strings.Builder
	for _, t := range targets {
		if t.Pulse < PulseMin || t.Pulse > PulseMax {
			return errors.Errorf("channel %d: pulse %d µs outside %d..%d µs",
				t.Channel, t.Pulse, PulseMin, PulseMax)
		}
		fmt.Fprintf(&b, "#%dP%d", t.Channel, t.Pulse)
		if t.Speed > 0 {
			fmt.Fprintf(&b, "S%d", t.Speed)
		}
	}
	b.WriteString("\r")
	if _, err := io.WriteString(c.rw, b.String()); err != nil {
		return errors.Wrap(err, "write group move")
	}
	return nil
}

// SetTarget moves a single channel.
func (c *Controller) SetTarget(channel, pulse, speed int) error {
	return c.SetTargets([]Target{{Channel: channel, Pulse: pulse, Speed: speed}})
}

// Moving reports whether any servo is still travelling.
func (c *Controller) Moving() (bool, error) {
	if _, err := io.WriteString(c.rw, "Q\r"); err != nil {
		return false, errors.Wrap(err, "write query")
	}
	buf := make([]byte, 1)
	if _, err := io.ReadFull(c.rw, buf); err != nil {
		return false, errors.Wrap(err, "read query reply")
	}
	return buf[0] == '+', nil
}

// Close closes the underlying connection.
func (c *Controller) Close() error {
	return c.rw.Close()
}
