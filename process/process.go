// Package process spawns child processes with stream capture, exposing
// join/kill/detach and the exit code.
package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Options configures a spawned process.
type Options struct {
	// Dir is the child's working directory. Empty uses the current
	// process's working directory.
	Dir string
	// Env, if non-nil, replaces the child's environment entirely
	// (matching os/exec.Cmd.Env semantics).
	Env []string
	// CaptureStdout/CaptureStderr buffer the child's output for
	// retrieval via Process.Stdout/Process.Stderr once it exits.
	CaptureStdout bool
	CaptureStderr bool
	// Stdin, if set, is copied to the child's standard input.
	Stdin io.Reader
}

// Process is a spawned child, tracked from Start through Wait.
type Process struct {
	cmd       *exec.Cmd
	stdoutBuf *bytes.Buffer
	stderrBuf *bytes.Buffer
	capture   *errgroup.Group

	mu       sync.Mutex
	waited   bool
	exitCode int
	detached bool
}

// Start spawns path with argv (argv[0] conventionally repeats path, per
// os/exec.Cmd.Args), applying opts. Quoting of argv on the child side is
// delegated entirely to os/exec, which preserves argv exactly (including
// embedded quotes and backslashes) rather than re-joining and re-parsing
// a shell command line.
//
// When capture is requested, the child's stdout/stderr pipes are drained
// by goroutines supervised through an errgroup.Group, so Wait can report
// the first copy error when the child itself exited without error (a
// non-nil exit error takes precedence and is returned alone).
func Start(ctx context.Context, path string, argv []string, opts Options) (*Process, error) {
	cmd := exec.CommandContext(ctx, path, argv...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	p := &Process{capture: new(errgroup.Group)}

	if opts.CaptureStdout {
		pr, err := cmd.StdoutPipe()
		if err != nil {
			return nil, fmt.Errorf("process: stdout pipe: %w", err)
		}
		p.stdoutBuf = new(bytes.Buffer)
		p.capture.Go(func() error {
			_, err := io.Copy(p.stdoutBuf, pr)
			return err
		})
	}
	if opts.CaptureStderr {
		pr, err := cmd.StderrPipe()
		if err != nil {
			return nil, fmt.Errorf("process: stderr pipe: %w", err)
		}
		p.stderrBuf = new(bytes.Buffer)
		p.capture.Go(func() error {
			_, err := io.Copy(p.stderrBuf, pr)
			return err
		})
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("process: start %q: %w", path, err)
	}
	p.cmd = cmd
	return p, nil
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the child exits and every capture goroutine has
// drained its pipe, recording the exit code. Safe to call at most once;
// a second call returns an error.
func (p *Process) Wait() error {
	p.mu.Lock()
	if p.waited {
		p.mu.Unlock()
		return fmt.Errorf("process: Wait called more than once")
	}
	p.waited = true
	p.mu.Unlock()

	captureErr := p.capture.Wait()
	waitErr := p.cmd.Wait()
	p.exitCode = p.cmd.ProcessState.ExitCode()
	if waitErr != nil {
		return waitErr
	}
	return captureErr
}

// ExitCode returns the child's exit code. Valid only after Wait returns.
func (p *Process) ExitCode() int {
	return p.exitCode
}

// Stdout returns the buffered standard output, if Options.CaptureStdout
// was set; otherwise nil. Valid only after Wait returns.
func (p *Process) Stdout() []byte {
	if p.stdoutBuf == nil {
		return nil
	}
	return p.stdoutBuf.Bytes()
}

// Stderr returns the buffered standard error, if Options.CaptureStderr
// was set; otherwise nil. Valid only after Wait returns.
func (p *Process) Stderr() []byte {
	if p.stderrBuf == nil {
		return nil
	}
	return p.stderrBuf.Bytes()
}

// Kill sends the platform's forceful termination signal to the child.
func (p *Process) Kill() error {
	return p.cmd.Process.Kill()
}

// Detach releases the Process's interest in the child's lifetime: future
// Wait calls are no longer meaningful, and the child is allowed to
// outlive this process's tracking of it. It does not signal the OS in
// any way; os/exec's Cmd already leaves the child as a normal orphaned
// process once nothing calls Wait on it.
func (p *Process) Detach() {
	p.mu.Lock()
	p.detached = true
	p.mu.Unlock()
}

// Detached reports whether Detach has been called.
func (p *Process) Detached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detached
}
