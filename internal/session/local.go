package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/creack/pty"
)

// Local runs a shell on a local pty and exposes it through the same Session
// interface as an SSH connection, so the panel pipeline is identical.
type Local struct {
	cmd  *exec.Cmd
	ptmx *os.File

	out    chan []byte
	status atomic.Int32

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// StartLocal spawns the shell on a new pty sized rows x cols. An empty shell
// falls back to $SHELL, then /bin/bash.
func StartLocal(shell string, rows, cols int) (*Local, error) {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/bash"
	}
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrResource, shell, err)
	}

	l := &Local{
		cmd:  cmd,
		ptmx: ptmx,
		out:  make(chan []byte, outputBufferSize),
	}
	l.status.Store(int32(StatusConnected))
	go l.readLoop()
	return l, nil
}

func (l *Local) readLoop() {
	defer close(l.out)
	buf := make([]byte, readBufferSize)
	for {
		n, err := l.ptmx.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			l.out <- chunk
		}
		if err != nil {
			// a pty read fails with EIO when the shell exits; both that and
			// EOF are the normal end of session, not a fault
			if err != io.EOF && !errors.Is(err, syscall.EIO) {
				l.setErr(err)
			}
			l.status.Store(int32(StatusDisconnected))
			return
		}
	}
}

// Write sends input to the shell.
func (l *Local) Write(p []byte) (int, error) {
	return l.ptmx.Write(p)
}

// Resize changes the pty window size.
func (l *Local) Resize(rows, cols int) error {
	return pty.Setsize(l.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Output returns the stream of shell output chunks.
func (l *Local) Output() <-chan []byte {
	return l.out
}

// Status reports the lifecycle state.
func (l *Local) Status() Status {
	return Status(l.status.Load())
}

// Err returns the error that ended the session, or nil.
func (l *Local) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Local) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = err
	}
}

// Close terminates the shell and releases the pty.
func (l *Local) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.status.Store(int32(StatusDisconnected))
		err = l.ptmx.Close()
		if l.cmd.Process != nil {
			l.cmd.Process.Kill()
		}
		go l.cmd.Wait()
	})
	return err
}
