package internal

import "fmt"

// Position represents a location in the source text
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf(FmtPosition, p.Line, p.Column)
}

// positionTracker converts byte offsets into line/column positions.
// Offsets must be requested in non-decreasing order, which is how the
// scanner emits matches; this keeps a whole scan linear.
type positionTracker struct {
	text   string
	offset int
	line   int
	column int
}

func newPositionTracker(text string) *positionTracker {
	return &positionTracker{text: text, line: 1, column: 1}
}

// at returns the position of the given offset.
func (t *positionTracker) at(offset int) Position {
	if offset < t.offset {
		// Out of order request: start over.
		t.offset, t.line, t.column = 0, 1, 1
	}
	for t.offset < offset && t.offset < len(t.text) {
		if t.text[t.offset] == CharNewline {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
		t.offset++
	}
	return Position{Offset: offset, Line: t.line, Column: t.column}
}

// CalculatePosition returns the Position at the end of prefix.
func CalculatePosition(prefix string) Position {
	return newPositionTracker(prefix).at(len(prefix))
}
