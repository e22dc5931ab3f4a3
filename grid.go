package virtualscreen

import "strings"

// Grid is a fixed H x W matrix of codepoints, initialized to spaces.
// It has no notion of "unset"; every clear primitive writes spaces.
type Grid struct {
	width  int
	height int
	cells  [][]rune
}

func newGrid(width, height int) *Grid {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = blankRow(width)
	}
	return &Grid{width: width, height: height, cells: cells}
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Set writes ch at (row, col). Out-of-bounds coordinates are a no-op.
func (g *Grid) Set(row, col int, ch rune) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	g.cells[row][col] = ch
}

// Get reads the cell at (row, col). Out-of-bounds coordinates read as
// a space; callers are not expected to read out of bounds.
func (g *Grid) Get(row, col int) rune {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return ' '
	}
	return g.cells[row][col]
}

// ScrollUp drops row 0 and appends a blank row at the bottom.
func (g *Grid) ScrollUp() {
	copy(g.cells, g.cells[1:])
	g.cells[g.height-1] = blankRow(g.width)
}

// ClearEntire fills every cell with space.
func (g *Grid) ClearEntire() {
	for i := range g.cells {
		g.cells[i] = blankRow(g.width)
	}
}

// ClearToEnd fills [col, W) on row, and every cell of rows (row, H),
// with space.
func (g *Grid) ClearToEnd(row, col int) {
	g.clearRowFrom(row, col)
	for r := row + 1; r < g.height; r++ {
		g.cells[r] = blankRow(g.width)
	}
}

// ClearToBeginning fills every cell of rows [0, row), and [0, col) on
// row, with space. The cell at (row, col) itself is left untouched —
// the exclusive treatment is deliberate and contrasts with
// ClearLineToBeginning, which is inclusive of the cursor cell.
func (g *Grid) ClearToBeginning(row, col int) {
	for r := 0; r < row && r < g.height; r++ {
		g.cells[r] = blankRow(g.width)
	}
	if row < 0 || row >= g.height {
		return
	}
	end := col
	if end > g.width {
		end = g.width
	}
	for c := 0; c < end; c++ {
		g.cells[row][c] = ' '
	}
}

// ClearLineToEnd fills [col, W) on row with space.
func (g *Grid) ClearLineToEnd(row, col int) {
	g.clearRowFrom(row, col)
}

// ClearLineToBeginning fills [0, col] on row with space — inclusive
// of the cursor's own cell, unlike ClearToBeginning.
func (g *Grid) ClearLineToBeginning(row, col int) {
	if row < 0 || row >= g.height {
		return
	}
	end := col
	if end >= g.width {
		end = g.width - 1
	}
	for c := 0; c <= end; c++ {
		g.cells[row][c] = ' '
	}
}

// ClearLineEntire fills [0, W) on row with space.
func (g *Grid) ClearLineEntire(row int) {
	if row < 0 || row >= g.height {
		return
	}
	g.cells[row] = blankRow(g.width)
}

func (g *Grid) clearRowFrom(row, col int) {
	if row < 0 || row >= g.height {
		return
	}
	start := max(col, 0)
	for c := start; c < g.width; c++ {
		g.cells[row][c] = ' '
	}
}

// Snapshot renders the canonical trimmed form: rows joined by a
// newline, each row's trailing spaces removed, and trailing empty
// rows dropped from the whole string.
func (g *Grid) Snapshot() string {
	rows := make([]string, g.height)
	for i, row := range g.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return strings.Join(rows, "\n")
}

// VerbatimSnapshot renders every cell, trailing spaces included, with
// each row terminated by the two-character sequence \n (a literal
// backslash then the letter n) followed by a real newline. It exists
// for snapshot-testing tooling that needs cell-exact comparisons; the
// trimmed form from Snapshot is the library's canonical contract.
func (g *Grid) VerbatimSnapshot() string {
	var b strings.Builder
	b.WriteByte('\n')
	for _, row := range g.cells {
		b.WriteString(string(row))
		b.WriteString(`\n`)
		b.WriteByte('\n')
	}
	return b.String()
}
