package vw

import (
	"bufio"
	"io"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/logger"
	"github.com/teranos/wabbit/sym"
)

// shutdownGrace is how long Close waits for the learner to exit after its
// stdin closes before killing it.
const shutdownGrace = 5 * time.Second

// Process runs the external learner and exposes its stdio as a Channel.
//
// Command construction stays out of the protocol core: this type only needs
// a full command line (e.g. "vw --save_resume -p /dev/stdout --quiet") and
// hands everything past spawning to the Channel contract.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	ch     Channel
	logger *zap.SugaredLogger
}

// StartProcess spawns the learner from a shell-style command line. The
// command is split with shell quoting rules, so paths with spaces work when
// quoted. The returned Process owns the child exclusively.
func StartProcess(command string, log *zap.SugaredLogger) (*Process, error) {
	if log == nil {
		log = logger.Logger
	}

	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "vw: parse command %q", command)
	}
	if len(argv) == 0 {
		return nil, errors.New("vw: empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "vw: create stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "vw: create stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.Wrap(err, "vw: create stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(
			errors.WithHint(err, "is the learner binary on your PATH?"),
			"vw: start %q", argv[0])
	}

	p := &Process{
		cmd:    cmd,
		stdin:  stdin,
		logger: log,
	}
	p.ch = NewLineChannel(stdin, stdout, p.stop)

	go p.drainStderr(stderr)

	log.Infow("Learner started",
		logger.FieldSymbol, sym.VW,
		logger.FieldCommand, command,
		logger.FieldPID, cmd.Process.Pid,
	)
	return p, nil
}

// Channel returns the line channel over the learner's stdio.
func (p *Process) Channel() Channel {
	return p.ch
}

// PID returns the child's process ID.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Close tears the learner down: stdin closes so it can finish cleanly, and
// after shutdownGrace it is killed. Equivalent to Channel().Close().
func (p *Process) Close() error {
	return p.ch.Close()
}

// stop runs once, from the channel's Close.
func (p *Process) stop() error {
	if err := p.stdin.Close(); err != nil {
		p.logger.Debugw("Closing learner stdin", logger.FieldError, err)
	}

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			// Learners routinely exit nonzero when their input pipe closes.
			p.logger.Debugw("Learner exited", logger.FieldError, err)
		}
		return nil
	case <-time.After(shutdownGrace):
		if err := p.cmd.Process.Kill(); err != nil {
			return errors.Wrapf(err, "vw: kill learner (pid %d)", p.cmd.Process.Pid)
		}
		<-done
		p.logger.Warnw("Learner killed after shutdown grace period",
			logger.FieldPID, p.cmd.Process.Pid)
		return nil
	}
}

// drainStderr keeps the learner from blocking on a full stderr pipe and
// relays its diagnostics at debug level.
func (p *Process) drainStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			p.logger.Debugw("learner stderr", "text", line)
		}
	}
}
