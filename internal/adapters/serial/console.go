// Package serial connects the bench's text console to a serial port or any
// other byte stream. Incoming bytes become commands; output is menu and
// status text.
package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// commandBuffer bounds how many unread command bytes are kept
const commandBuffer = 64

// Console reads command bytes in the background and accepts output text.
// It implements ports.CommandSource and io.Writer.
type Console struct {
	r      io.Reader
	w      io.Writer
	closer io.Closer

	writeMu sync.Mutex
	cmds    chan byte
	done    chan struct{}
	once    sync.Once
}

// NewConsole starts reading commands from rw. Output is written back to rw.
func NewConsole(rw io.ReadWriter) *Console {
	return newConsole(rw, rw, nil)
}

// NewStreamConsole reads commands from r and writes output to w, e.g. stdin
// and stdout.
func NewStreamConsole(r io.Reader, w io.Writer) *Console {
	return newConsole(r, w, nil)
}

// Open opens the serial port at path and wraps it in a Console.
// Closing the Console closes the port.
func Open(path string, opts PortOptions) (*Console, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}

	return newConsole(port, port, port), nil
}

func newConsole(r io.Reader, w io.Writer, closer io.Closer) *Console {
	c := &Console{
		r:      r,
		w:      w,
		closer: closer,
		cmds:   make(chan byte, commandBuffer),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Commands returns the channel of received bytes. It is closed when the
// underlying reader ends or fails.
func (c *Console) Commands() <-chan byte {
	return c.cmds
}

// Write sends text to the console
func (c *Console) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.w.Write(p)
}

// Close stops the reader and closes the port, if any
func (c *Console) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		if c.closer != nil {
			err = c.closer.Close()
		}
	})
	return err
}

func (c *Console) readLoop() {
	defer close(c.cmds)

	buf := make([]byte, commandBuffer)
	for {
		n, err := c.r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case c.cmds <- b:
			case <-c.done:
				return
			default:
				log.Warn().Uint8("byte", b).Msg("console command buffer full, dropping input")
			}
		}

		if err != nil {
			select {
			case <-c.done:
			default:
				if !errors.Is(err, io.EOF) {
					log.Error().Err(err).Msg("console read failed")
				}
			}
			return
		}
	}
}
