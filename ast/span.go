package ast

import "fmt"

// Span locates a node in its source file. Lines are 1-based and columns are
// 0-based UTF-8 byte offsets, the convention of CPython's ast module.
type Span struct {
	Lineno       int
	ColOffset    int
	EndLineno    int
	EndColOffset int
}

// Ordered reports whether the end position is not before the start position.
func (s Span) Ordered() bool {
	if s.EndLineno != s.Lineno {
		return s.EndLineno > s.Lineno
	}
	return s.EndColOffset >= s.ColOffset
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return !before(o.Lineno, o.ColOffset, s.Lineno, s.ColOffset) &&
		!before(s.EndLineno, s.EndColOffset, o.EndLineno, o.EndColOffset)
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Lineno, s.ColOffset, s.EndLineno, s.EndColOffset)
}

func before(line, col, otherLine, otherCol int) bool {
	if line != otherLine {
		return line < otherLine
	}
	return col < otherCol
}
