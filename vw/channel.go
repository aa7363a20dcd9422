package vw

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/teranos/wabbit/errors"
)

// ErrChannelClosed is returned by any operation on a closed channel or
// session, and when the peer hangs up mid-read.
var ErrChannelClosed = errors.New("vw: channel closed")

// ErrTimeout is returned when a response deadline expires before the peer
// emits a complete line.
var ErrTimeout = errors.New("vw: timed out waiting for response")

// Channel is a synchronous line channel to the external learner. One
// exchange at a time; implementations are not required to be safe for
// concurrent use.
type Channel interface {
	// WriteLine writes text plus a line terminator.
	WriteLine(text string) error
	// ReadLine blocks until the peer emits one complete terminated line,
	// returning the text without its terminator. The context bounds the
	// wait: deadline expiry yields ErrTimeout, peer EOF yields
	// ErrChannelClosed.
	ReadLine(ctx context.Context) (string, error)
	// Close tears the channel down. Further operations fail with
	// ErrChannelClosed.
	Close() error
}

// lineChannel adapts a write stream and a read stream into a Channel. A
// background goroutine scans the read side into a buffered line queue so
// ReadLine can honor context deadlines; bufio.Scanner strips either \n or
// \r\n, covering both plain pipes and pty-backed channels.
type lineChannel struct {
	w     io.Writer
	lines chan string

	mu      sync.Mutex
	closed  bool
	closeFn func() error
}

// NewLineChannel builds a Channel over an already-open write/read stream
// pair. closeFn, if non-nil, runs once on Close (typically tearing down the
// owning process).
func NewLineChannel(w io.Writer, r io.Reader, closeFn func() error) Channel {
	c := &lineChannel{
		w:       w,
		lines:   make(chan string, 16),
		closeFn: closeFn,
	}
	go c.readLoop(r)
	return c
}

func (c *lineChannel) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	// EOF or read error: lines drains, then ReadLine reports closure.
	close(c.lines)
}

func (c *lineChannel) WriteLine(text string) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return errors.Wrap(ErrChannelClosed, "write")
	}
	if _, err := io.WriteString(c.w, text+"\n"); err != nil {
		return errors.Wrap(err, "vw: write line")
	}
	return nil
}

func (c *lineChannel) ReadLine(ctx context.Context) (string, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return "", errors.Wrap(ErrChannelClosed, "read")
	}

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", errors.Wrap(ErrChannelClosed, "peer hung up")
		}
		return line, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.WithHint(ErrTimeout,
				"the learner may have died or switched output modes")
		}
		return "", ctx.Err()
	}
}

func (c *lineChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
