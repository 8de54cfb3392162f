package vt

// Screen is a row-major grid of cells. It knows nothing about escape
// sequences; Terminal drives it.
type Screen struct {
	cells []Cell
	rows  int
	cols  int
}

// NewScreen returns a blank screen of the given dimensions. Dimensions are
// clamped to at least 1x1.
func NewScreen(rows, cols int) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{rows: rows, cols: cols}
	s.cells = make([]Cell, rows*cols)
	s.fill(0, len(s.cells), blankCell(DefaultStyle()))
	return s
}

// Rows returns the grid height.
func (s *Screen) Rows() int { return s.rows }

// Cols returns the grid width.
func (s *Screen) Cols() int { return s.cols }

// Cell returns the cell at (row, col). Out-of-range coordinates yield a
// blank cell rather than a fault.
func (s *Screen) Cell(row, col int) Cell {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return blankCell(DefaultStyle())
	}
	return s.cells[row*s.cols+col]
}

// SetCell replaces the cell at (row, col). Out-of-range writes are dropped.
func (s *Screen) SetCell(row, col int, c Cell) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	s.cells[row*s.cols+col] = c
}

// Row returns a copy of the cells in the given row.
func (s *Screen) Row(row int) []Cell {
	if row < 0 || row >= s.rows {
		return nil
	}
	out := make([]Cell, s.cols)
	copy(out, s.cells[row*s.cols:(row+1)*s.cols])
	return out
}

func (s *Screen) fill(from, to int, c Cell) {
	for i := from; i < to; i++ {
		s.cells[i] = c
	}
}

// ClearAll blanks the whole screen using the style's background.
func (s *Screen) ClearAll(style Style) {
	s.fill(0, len(s.cells), blankCell(style))
}

// ClearLine blanks cells [fromCol, toCol) on the given row.
func (s *Screen) ClearLine(row, fromCol, toCol int, style Style) {
	if row < 0 || row >= s.rows {
		return
	}
	if fromCol < 0 {
		fromCol = 0
	}
	if toCol > s.cols {
		toCol = s.cols
	}
	if fromCol >= toCol {
		return
	}
	base := row * s.cols
	s.fill(base+fromCol, base+toCol, blankCell(style))
}

// ClearRows blanks whole rows [fromRow, toRow).
func (s *Screen) ClearRows(fromRow, toRow int, style Style) {
	if fromRow < 0 {
		fromRow = 0
	}
	if toRow > s.rows {
		toRow = s.rows
	}
	for r := fromRow; r < toRow; r++ {
		s.ClearLine(r, 0, s.cols, style)
	}
}

// ScrollUp shifts rows [top, bottom] up by n, blanking the vacated rows at
// the bottom of the region.
func (s *Screen) ScrollUp(top, bottom, n int, style Style) {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	for r := top; r <= bottom-n; r++ {
		src := (r + n) * s.cols
		dst := r * s.cols
		copy(s.cells[dst:dst+s.cols], s.cells[src:src+s.cols])
	}
	s.ClearRows(bottom-n+1, bottom+1, style)
}

// ScrollDown shifts rows [top, bottom] down by n, blanking the vacated rows
// at the top of the region.
func (s *Screen) ScrollDown(top, bottom, n int, style Style) {
	if top < 0 || bottom >= s.rows || top > bottom || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	for r := bottom; r >= top+n; r-- {
		src := (r - n) * s.cols
		dst := r * s.cols
		copy(s.cells[dst:dst+s.cols], s.cells[src:src+s.cols])
	}
	s.ClearRows(top, top+n, style)
}

// DeleteChars removes n cells at (row, col), shifting the remainder of the
// row left and blanking the tail.
func (s *Screen) DeleteChars(row, col, n int, style Style) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols || n <= 0 {
		return
	}
	if n > s.cols-col {
		n = s.cols - col
	}
	base := row * s.cols
	copy(s.cells[base+col:base+s.cols-n], s.cells[base+col+n:base+s.cols])
	s.fill(base+s.cols-n, base+s.cols, blankCell(style))
}

// InsertChars inserts n blank cells at (row, col), shifting the remainder of
// the row right; cells pushed past the edge are lost.
func (s *Screen) InsertChars(row, col, n int, style Style) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols || n <= 0 {
		return
	}
	if n > s.cols-col {
		n = s.cols - col
	}
	base := row * s.cols
	copy(s.cells[base+col+n:base+s.cols], s.cells[base+col:base+s.cols-n])
	s.fill(base+col, base+col+n, blankCell(style))
}

// Resize changes the grid dimensions, preserving content anchored at the
// top-left. Rows and columns gained are blank; content outside the new
// bounds is discarded.
func (s *Screen) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == s.rows && cols == s.cols {
		return
	}
	next := make([]Cell, rows*cols)
	for i := range next {
		next[i] = blankCell(DefaultStyle())
	}
	copyRows := min(rows, s.rows)
	copyCols := min(cols, s.cols)
	for r := 0; r < copyRows; r++ {
		copy(next[r*cols:r*cols+copyCols], s.cells[r*s.cols:r*s.cols+copyCols])
	}
	s.cells = next
	s.rows = rows
	s.cols = cols
}
