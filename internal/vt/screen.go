package vt

import "strings"

// Cell is a single character cell. Link carries the OSC 8 hyperlink URI
// active when the cell was written, empty for plain cells.
type Cell struct {
	Rune rune
	Link string
}

// Line is one terminal row.
type Line []Cell

func newLine(width int) Line {
	l := make(Line, width)
	for i := range l {
		l[i].Rune = ' '
	}
	return l
}

func (l Line) clear(from, to int) {
	for i := from; i < to && i < len(l); i++ {
		l[i] = Cell{Rune: ' '}
	}
}

// resize grows or shrinks a line to the given width, padding with blanks.
func (l Line) resize(width int) Line {
	if len(l) == width {
		return l
	}
	if len(l) > width {
		return l[:width]
	}
	out := make(Line, width)
	copy(out, l)
	for i := len(l); i < width; i++ {
		out[i].Rune = ' '
	}
	return out
}

// text returns the line's runes with trailing blanks trimmed.
func (l Line) text() string {
	var b strings.Builder
	for _, c := range l {
		if c.Rune == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// wordDelimiters split double-click word selection, mirroring the usual
// terminal default set.
const wordDelimiters = " \t/\\()\"'-.,:;<>~!@#$%^&*|+=[]{}?│"

func isWordDelimiter(r rune) bool {
	return strings.ContainsRune(wordDelimiters, r)
}

// wordBounds returns the first and last column of the delimiter-bounded word
// around col. A click on a delimiter selects just that cell.
func (l Line) wordBounds(col int) (int, int) {
	if col < 0 || col >= len(l) {
		return col, col
	}
	if isWordDelimiter(l[col].Rune) {
		return col, col
	}
	start, end := col, col
	for start > 0 && !isWordDelimiter(l[start-1].Rune) {
		start--
	}
	for end < len(l)-1 && !isWordDelimiter(l[end+1].Rune) {
		end++
	}
	return start, end
}
