// Package ptybridge connects a virtualscreen.Screen to a real child
// process through a pseudo-terminal. It is the one part of this
// module that touches the outside world: everything upstream of it
// (the tokenizer, cursor, grid, screen) is pure in-memory state.
package ptybridge

import (
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"github.com/cliofy/virtualscreen"
)

// readBufferSize is the chunk size used to pump bytes from the PTY
// master into the Screen. It matches the original Rust reader
// thread's buffer.
const readBufferSize = 4096

// Session spawns a command under a PTY and feeds everything it writes
// into a Screen. A background goroutine owns the read loop; Wait
// blocks until that goroutine has drained the PTY and the child has
// exited.
type Session struct {
	cmd    *exec.Cmd
	master *os.File
	screen *virtualscreen.Screen

	mu     sync.Mutex
	closed bool

	readerDone chan struct{}
	readErr    error
}

// Start spawns cmd attached to a new PTY sized (cols, rows) and
// begins pumping its combined stdout/stderr into screen. The PTY is
// the child's stdin, stdout, and stderr alike, so output ordering
// between the two streams is preserved exactly as the kernel delivers
// it — a property a Screen fed from two independent byte streams
// cannot offer.
func Start(cmd *exec.Cmd, screen *virtualscreen.Screen, cols, rows uint16) (*Session, error) {
	master, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: cols, Rows: rows})
	if err != nil {
		return nil, err
	}

	s := &Session{
		cmd:        cmd,
		master:     master,
		screen:     screen,
		readerDone: make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Session) readLoop() {
	defer close(s.readerDone)
	buf := make([]byte, readBufferSize)
	for {
		n, err := s.master.Read(buf)
		if n > 0 {
			s.screen.WriteStdout(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				s.readErr = err
			}
			return
		}
	}
}

// SendInput writes data to the child's PTY, as if it had been typed
// at a keyboard. It does not itself touch the Screen; the bytes
// arrive there only once the child (or the PTY's line discipline)
// echoes or otherwise reacts to them and the reader goroutine picks
// that reaction up.
func (s *Session) SendInput(data []byte) (int, error) {
	return s.master.Write(data)
}

// Resize updates the PTY's window size, which delivers SIGWINCH to
// the child. It does not resize the Screen, which is fixed for its
// lifetime; callers that need a different Screen size must construct
// a new one.
func (s *Session) Resize(cols, rows uint16) error {
	return pty.Setsize(s.master, &pty.Winsize{Cols: cols, Rows: rows})
}

// Wait blocks until the child process has exited and the reader
// goroutine has drained the remaining PTY output into the Screen, and
// returns the child's exit error, if any.
func (s *Session) Wait() error {
	<-s.readerDone
	waitErr := s.cmd.Wait()
	if waitErr != nil {
		return waitErr
	}
	return s.readErr
}

// Close kills the child if still running and closes the PTY master.
// It does not wait for the reader goroutine; call Wait for that.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	return s.master.Close()
}
