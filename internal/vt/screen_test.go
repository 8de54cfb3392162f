package vt

import "testing"

func putString(s *Screen, row int, text string) {
	for i, r := range text {
		s.SetCell(row, i, Cell{Rune: r, Width: 1, Style: DefaultStyle()})
	}
}

func rowText(s *Screen, row int) string {
	out := make([]rune, 0, s.Cols())
	for c := 0; c < s.Cols(); c++ {
		cell := s.Cell(row, c)
		if cell.Width == 0 {
			continue
		}
		out = append(out, cell.Rune)
	}
	// trim trailing blanks
	end := len(out)
	for end > 0 && out[end-1] == ' ' {
		end--
	}
	return string(out[:end])
}

func TestScreenOutOfRangeAccess(t *testing.T) {
	s := NewScreen(2, 4)
	// reads clamp to a blank cell, writes are dropped
	if c := s.Cell(-1, 0); c.Rune != ' ' {
		t.Fatalf("out-of-range read = %+v", c)
	}
	if c := s.Cell(5, 99); c.Rune != ' ' {
		t.Fatalf("out-of-range read = %+v", c)
	}
	s.SetCell(9, 9, Cell{Rune: 'x', Width: 1})
	s.SetCell(-1, -1, Cell{Rune: 'x', Width: 1})
}

func TestScreenScrollUp(t *testing.T) {
	s := NewScreen(4, 10)
	for i, line := range []string{"aa", "bb", "cc", "dd"} {
		putString(s, i, line)
	}
	s.ScrollUp(1, 3, 1, DefaultStyle())

	for i, want := range []string{"aa", "cc", "dd", ""} {
		if got := rowText(s, i); got != want {
			t.Fatalf("row %d = %q, want %q", i, got, want)
		}
	}
}

func TestScreenScrollDown(t *testing.T) {
	s := NewScreen(4, 10)
	for i, line := range []string{"aa", "bb", "cc", "dd"} {
		putString(s, i, line)
	}
	s.ScrollDown(0, 2, 2, DefaultStyle())

	for i, want := range []string{"", "", "aa", "dd"} {
		if got := rowText(s, i); got != want {
			t.Fatalf("row %d = %q, want %q", i, got, want)
		}
	}
}

func TestScreenScrollWholeRegion(t *testing.T) {
	s := NewScreen(3, 5)
	for i, line := range []string{"a", "b", "c"} {
		putString(s, i, line)
	}
	// n larger than the region blanks it entirely
	s.ScrollUp(0, 2, 99, DefaultStyle())
	for i := 0; i < 3; i++ {
		if got := rowText(s, i); got != "" {
			t.Fatalf("row %d = %q, want blank", i, got)
		}
	}
}

func TestScreenResizeGrowAndShrink(t *testing.T) {
	s := NewScreen(3, 6)
	putString(s, 0, "abcdef")
	putString(s, 1, "ghijkl")

	s.Resize(5, 8)
	if s.Rows() != 5 || s.Cols() != 8 {
		t.Fatalf("size = %dx%d", s.Rows(), s.Cols())
	}
	if got := rowText(s, 0); got != "abcdef" {
		t.Fatalf("row 0 after grow = %q", got)
	}
	if got := rowText(s, 4); got != "" {
		t.Fatalf("new row not blank: %q", got)
	}

	s.Resize(2, 3)
	if got := rowText(s, 0); got != "abc" {
		t.Fatalf("row 0 after shrink = %q", got)
	}
	if got := rowText(s, 1); got != "ghi" {
		t.Fatalf("row 1 after shrink = %q", got)
	}
}

func TestScreenClearLineStyleBackground(t *testing.T) {
	s := NewScreen(2, 4)
	style := Style{FG: DefaultColor(), BG: IndexedColor(4)}
	s.ClearLine(0, 1, 3, style)

	if got := s.Cell(0, 1).Style.BG; got != IndexedColor(4) {
		t.Fatalf("cleared cell bg = %+v", got)
	}
	if got := s.Cell(0, 0).Style.BG; got != DefaultColor() {
		t.Fatalf("untouched cell bg = %+v", got)
	}
	// erased cells never inherit the foreground
	if got := s.Cell(0, 1).Style.FG; got != DefaultColor() {
		t.Fatalf("cleared cell fg = %+v", got)
	}
}

func TestScreenInsertDeleteChars(t *testing.T) {
	s := NewScreen(1, 6)
	putString(s, 0, "abcdef")

	s.DeleteChars(0, 1, 2, DefaultStyle())
	if got := rowText(s, 0); got != "adef" {
		t.Fatalf("after delete = %q", got)
	}

	s.InsertChars(0, 0, 3, DefaultStyle())
	if got := rowText(s, 0); got != "   ade" {
		t.Fatalf("after insert = %q", got)
	}
}
