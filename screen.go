package virtualscreen

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrInvalidDimensions is returned by NewScreen when either dimension
// is not a positive integer.
var ErrInvalidDimensions = errors.New("virtualscreen: width and height must both be positive")

// Screen is an in-memory, fixed-size terminal screen: one Cursor and
// one Grid held under a single mutex, so that independent producers
// (conceptually "stdout" and "stderr") can write into it from
// different goroutines without corrupting either. The engine never
// fails a write: malformed escape sequences, out-of-range parameters,
// and out-of-bounds writes are absorbed rather than surfaced.
type Screen struct {
	mu     sync.Mutex
	width  int
	height int

	cursor    Cursor
	grid      *Grid
	tokenizer *Tokenizer
}

// NewScreen creates a Screen of the given fixed size, cursor at
// (0, 0) and grid filled with spaces. Dimensions cannot change after
// construction.
func NewScreen(width, height int) (*Screen, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	return &Screen{
		width:     width,
		height:    height,
		cursor:    newCursor(width, height),
		grid:      newGrid(width, height),
		tokenizer: NewTokenizer(),
	}, nil
}

// WriteStdout decodes b as UTF-8 (lossily — invalid sequences become
// the replacement character) and dispatches the resulting tokens
// against the cursor and grid. It returns len(b); the write always
// succeeds.
func (s *Screen) WriteStdout(b []byte) (int, error) {
	return s.write(b)
}

// WriteStderr is semantically identical to WriteStdout: both sinks
// mutate the same cursor and grid under the same lock. The two names
// exist only so callers can route bytes from two producers without
// interleaving them character-by-character themselves; there is no
// ordering guarantee between the sinks beyond whole-call mutex
// serialization.
func (s *Screen) WriteStderr(b []byte) (int, error) {
	return s.write(b)
}

// SendInput is an alias for WriteStdout that lets callers model
// keystrokes typed into the terminal symmetrically with output
// produced by the program under test. Both paths mutate the same
// Screen.
func (s *Screen) SendInput(input string) (int, error) {
	return s.write([]byte(input))
}

func (s *Screen) write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := decodeUTF8Lossy(b)
	for _, tok := range s.tokenizer.Feed(text) {
		s.dispatch(tok)
	}
	return len(b), nil
}

// dispatch applies a single token to the cursor and grid. This is the
// heart of the engine: every token kind maps to exactly one mutation,
// and unrecognized input is silently ignored rather than rejected.
func (s *Screen) dispatch(tok Token) {
	switch tok.Kind {
	case TokenText:
		s.dispatchText(tok.Text)
	case TokenControl:
		s.dispatchControl(tok.Control)
	case TokenCommand:
		s.dispatchCommand(tok.Command)
	case TokenInvalid:
		// malformed or unrecognized input is absorbed, never surfaced.
	}
}

func (s *Screen) dispatchText(text string) {
	for _, ch := range text {
		if s.cursor.Row < 0 || s.cursor.Row >= s.height || s.cursor.Col < 0 || s.cursor.Col >= s.width {
			continue
		}
		s.grid.Set(s.cursor.Row, s.cursor.Col, ch)
		if s.cursor.Advance() {
			s.grid.ScrollUp()
		}
	}
}

func (s *Screen) dispatchControl(c ControlCode) {
	switch c {
	case ControlLF, ControlVT:
		if s.cursor.Newline() {
			s.grid.ScrollUp()
		}
	case ControlCR:
		s.cursor.CarriageReturn()
	case ControlBS:
		s.cursor.Backspace()
	case ControlHT:
		s.dispatchTab()
	case ControlBEL:
		// no visible effect on the grid or cursor.
	case ControlFF:
		s.grid.ClearEntire()
		s.cursor.SetPosition(0, 0)
	}
}

// dispatchTab advances to the next multiple-of-8 column, writing a
// space into each cell it passes over. There is no tab-stop table.
func (s *Screen) dispatchTab() {
	count := ((s.cursor.Col / 8) + 1) * 8 - s.cursor.Col
	for i := 0; i < count; i++ {
		s.grid.Set(s.cursor.Row, s.cursor.Col, ' ')
		if s.cursor.Advance() {
			s.grid.ScrollUp()
		}
	}
}

func (s *Screen) dispatchCommand(cmd Command) {
	switch cmd.Kind {
	case CmdCursorUp:
		s.cursor.MoveUp(cmd.N)
	case CmdCursorDown:
		s.cursor.MoveDown(cmd.N)
	case CmdCursorForward:
		s.cursor.MoveForward(cmd.N)
	case CmdCursorBack:
		s.cursor.MoveBack(cmd.N)
	case CmdCursorPosition:
		s.cursor.SetPosition(cmd.Row, cmd.Col)
	case CmdClearScreen:
		s.dispatchClearScreen(cmd.Mode)
	case CmdClearLine:
		s.dispatchClearLine(cmd.Mode)
	case CmdSetGraphicsRendition:
		// recognized syntactically, discarded: the grid holds no
		// attribute plane.
	}
}

func (s *Screen) dispatchClearScreen(mode ClearMode) {
	switch mode {
	case ClearEntire:
		s.grid.ClearEntire()
		s.cursor.SetPosition(0, 0)
	case ClearToEnd:
		s.grid.ClearToEnd(s.cursor.Row, s.cursor.Col)
	case ClearToBeginning:
		s.grid.ClearToBeginning(s.cursor.Row, s.cursor.Col)
	}
}

func (s *Screen) dispatchClearLine(mode ClearMode) {
	switch mode {
	case ClearEntire:
		s.grid.ClearLineEntire(s.cursor.Row)
	case ClearToEnd:
		s.grid.ClearLineToEnd(s.cursor.Row, s.cursor.Col)
	case ClearToBeginning:
		s.grid.ClearLineToBeginning(s.cursor.Row, s.cursor.Col)
	}
}

// Clear resets the grid to all-space and the cursor to (0, 0). It
// does not alter dimensions.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.ClearEntire()
	s.cursor.SetPosition(0, 0)
}

// Snapshot returns the canonical trimmed rendering of the grid: a
// pure function of (grid, dimensions) that does not reflect the
// cursor.
func (s *Screen) Snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot()
}

// VerbatimSnapshot returns the diagnostic rendering used by
// cell-exact snapshot tests; see Grid.VerbatimSnapshot.
func (s *Screen) VerbatimSnapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.VerbatimSnapshot()
}

// Cursor returns the current cursor position.
func (s *Screen) Cursor() (row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Row, s.cursor.Col
}

// Size returns the screen's fixed dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// decodeUTF8Lossy decodes b as UTF-8, replacing any invalid byte
// sequence with the Unicode replacement character, one rune at a
// time.
func decodeUTF8Lossy(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
