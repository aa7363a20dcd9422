package vw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/sym"
	"github.com/teranos/wabbit/vw/wire"
)

// SessionConfig tunes one session's exchange behavior.
type SessionConfig struct {
	// RawOutput skips numeric decoding and returns response text verbatim.
	RawOutput bool
	// EchoLines is how many lines the channel echoes back before the true
	// response. Pty-backed channels echo the sent line once; plain pipes
	// usually echo nothing.
	EchoLines int
	// Timeout bounds each exchange when the caller's context carries no
	// deadline of its own. Zero falls back to DefaultTimeout.
	Timeout time.Duration
	// Logger defaults to the global logger when nil.
	Logger *zap.SugaredLogger
}

// DefaultTimeout bounds an exchange when neither the config nor the caller's
// context provides a deadline. Exchanges complete in well under a second on
// a healthy learner; a stuck read means the process died or the protocol
// broke, and blocking forever helps nobody.
const DefaultTimeout = 5 * time.Second

// Session is a synchronous request/response conversation with the learner
// over one exclusively-owned Channel. A mutex serializes exchanges, so
// concurrent callers take turns instead of interleaving lines.
type Session struct {
	ch  Channel
	log *zap.SugaredLogger

	mu        sync.Mutex
	rawOutput bool
	echoLines int
	timeout   time.Duration
	closed    bool
}

// NewSession wraps an open channel.
func NewSession(ch Channel, cfg SessionConfig) *Session {
	log := cfg.Logger
	if log == nil {
		log = logger.Logger
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Session{
		ch:        ch,
		log:       log,
		rawOutput: cfg.RawOutput,
		echoLines: cfg.EchoLines,
		timeout:   timeout,
	}
}

// Open starts the learner from a shell-style command line and wraps it in a
// session. Closing the session tears the process down.
func Open(command string, cfg SessionConfig) (*Session, error) {
	proc, err := StartProcess(command, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return NewSession(proc.Channel(), cfg), nil
}

// SetRawOutput toggles raw decoding for subsequent exchanges.
func (s *Session) SetRawOutput(raw bool) {
	s.mu.Lock()
	s.rawOutput = raw
	s.mu.Unlock()
}

// SendLine submits one raw protocol line and returns the learner's raw
// response text. The echoed copies of our own input (EchoLines of them) are
// discarded; the next line is the response. Fails with ErrTimeout if the
// learner never produces the expected lines, and ErrChannelClosed after
// Close or if the learner died.
func (s *Session) SendLine(ctx context.Context, line string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchange(ctx, line, s.echoLines+1)
}

// exchange writes line and reads wantLines, returning the last. Callers hold s.mu.
func (s *Session) exchange(ctx context.Context, line string, wantLines int) (string, error) {
	if s.closed {
		return "", errors.Wrap(ErrChannelClosed, "session closed")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.ch.WriteLine(line); err != nil {
		return "", err
	}

	var last string
	for i := 0; i < wantLines; i++ {
		text, err := s.ch.ReadLine(ctx)
		if err != nil {
			return "", errors.Wrapf(err, "after %d of %d expected lines", i, wantLines)
		}
		last = text
	}

	s.log.Debugw("Exchange complete",
		logger.FieldSymbol, sym.Session,
		logger.FieldLine, line,
		logger.FieldResponse, last,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return last, nil
}

// SendExample encodes one example line and exchanges it, decoding the
// response per the session's raw-output mode.
func (s *Session) SendExample(ctx context.Context, label wire.Label, tag string, namespaces ...*wire.Namespace) (wire.Result, error) {
	line := wire.Encode(label, tag, namespaces...)
	raw, err := s.SendLine(ctx, line)
	if err != nil {
		return wire.Result{}, err
	}
	s.mu.Lock()
	rawOutput := s.rawOutput
	s.mu.Unlock()
	return wire.Decode(raw, rawOutput), nil
}

// Predict sends an unlabeled example and returns the decoded prediction.
func (s *Session) Predict(ctx context.Context, tag string, namespaces ...*wire.Namespace) (wire.Result, error) {
	return s.SendExample(ctx, wire.NoLabel(), tag, namespaces...)
}

// SaveModel asks the learner to snapshot its model to path via the
// "save_<path>|" control line. The learner emits no acknowledgment beyond
// the echo, so only the echoed lines are read; the last one is returned
// (empty when the channel does not echo).
func (s *Session) SaveModel(ctx context.Context, path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("save_%s|", path)
	raw, err := s.exchange(ctx, line, s.echoLines)
	if err != nil {
		return "", errors.Wrapf(err, "save model to %s", path)
	}
	s.log.Infow("Model snapshot requested",
		logger.FieldSymbol, sym.Model,
		logger.FieldPath, path,
	)
	return raw, nil
}

// Close tears down the underlying channel. Subsequent operations fail fast
// with ErrChannelClosed. Closing twice is harmless.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.ch.Close()
}
