package virtualscreen

// Cursor is a (row, col) position clamped to a fixed grid size. It
// never becomes invalid: every operation either clamps its result
// in-bounds or reports that the grid must scroll to keep it so.
type Cursor struct {
	Row int
	Col int

	width  int
	height int
}

func newCursor(width, height int) Cursor {
	return Cursor{width: width, height: height}
}

// MoveUp moves the cursor up by n rows, clamped at row 0.
func (c *Cursor) MoveUp(n int) {
	c.Row = max(0, c.Row-n)
}

// MoveDown moves the cursor down by n rows, clamped at the last row.
func (c *Cursor) MoveDown(n int) {
	c.Row = min(c.height-1, c.Row+n)
}

// MoveForward moves the cursor forward by n columns, clamped at the
// last column.
func (c *Cursor) MoveForward(n int) {
	c.Col = min(c.width-1, c.Col+n)
}

// MoveBack moves the cursor back by n columns, clamped at column 0.
func (c *Cursor) MoveBack(n int) {
	c.Col = max(0, c.Col-n)
}

// SetPosition moves the cursor to an absolute position, clamping both
// coordinates to the grid bounds.
func (c *Cursor) SetPosition(row, col int) {
	c.Row = min(c.height-1, row)
	c.Col = min(c.width-1, col)
}

// CarriageReturn resets the column to 0.
func (c *Cursor) CarriageReturn() {
	c.Col = 0
}

// Newline resets the column to 0 and moves to the next row. It
// reports whether the grid must scroll to keep the cursor in bounds;
// it never performs the scroll itself.
func (c *Cursor) Newline() bool {
	c.Col = 0
	c.Row++
	if c.Row >= c.height {
		c.Row = c.height - 1
		return true
	}
	return false
}

// Backspace moves the column back by one, with no wrap to the
// previous row.
func (c *Cursor) Backspace() {
	if c.Col > 0 {
		c.Col--
	}
}

// Advance moves the cursor forward by one column, wrapping to column
// 0 of the next row (requesting a scroll, never performing one) when
// it runs past the last column.
func (c *Cursor) Advance() bool {
	c.Col++
	if c.Col >= c.width {
		c.Col = 0
		c.Row++
		if c.Row >= c.height {
			c.Row = c.height - 1
			return true
		}
	}
	return false
}
