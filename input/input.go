// Package input defines the cursor contract parsers consume from and the
// stream implementations that satisfy it.
package input

import "fmt"

// Marker is a saved cursor position. It is only meaningful to the cursor
// that produced it.
type Marker int

// ParserInfo describes the parser asking for a marker. It is a diagnostic
// hint only and never becomes part of the Marker.
type ParserInfo struct {
	Name string
	Raw  bool
}

func (i ParserInfo) String() string {
	if i.Name == "" {
		return "<anonymous>"
	}
	return i.Name
}

// Cursor is the part of the contract the alternative-selection engine needs:
// saving and restoring positions and rendering diagnostics.
type Cursor interface {
	// IsEOF reports whether no token remains.
	IsEOF() bool

	// Mark captures the current position.
	Mark(info ParserInfo) Marker

	// Rewind resets the cursor to a position captured by Mark.
	Rewind(m Marker)

	// Context renders a short snippet starting at m, or at the current
	// position when m is nil. It reports false when there is nothing to show.
	Context(m *Marker) (string, bool)
}

// Input is a self-advancing view over a stream of T tokens. S is the type of
// a fixed-length run and N the type of an unbounded run returned by Take.
type Input[T, S, N any] interface {
	Cursor

	// Token returns the next token without consuming it.
	Token() (T, bool)

	// Slice returns the next n tokens without consuming them.
	Slice(n int) (S, bool)

	// Peek reports whether the next token exists and satisfies cond.
	Peek(cond func(T) bool) bool

	// PeekSlice reports whether the next n tokens exist and satisfy cond.
	PeekSlice(n int, cond func(S) bool) bool

	// Eat consumes and returns the next token if it satisfies cond.
	Eat(cond func(T) bool) (T, bool)

	// EatSlice consumes and returns the next n tokens if they satisfy cond.
	EatSlice(n int, cond func(S) bool) (S, bool)

	// Take consumes the longest run of tokens satisfying cond.
	Take(cond func(T) bool) N

	// Skip consumes like Take and returns the number of tokens skipped.
	Skip(cond func(T) bool) int
}

// TextInput is the instantiation of Input over text.
type TextInput = Input[rune, string, string]

// Position locates a marker in text for humans.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// countingSkip implements Skip on top of Take. The scan inside take probes
// one token past the run unless it stops at the end of the stream, so the
// failing probe is subtracted to report only tokens that satisfied cond.
func countingSkip[T any](in Cursor, take func(func(T) bool) (consumed bool), cond func(T) bool) int {
	visited := 0
	consumed := take(func(t T) bool {
		visited++
		return cond(t)
	})
	if !consumed {
		return 0
	}
	if in.IsEOF() {
		return visited
	}
	return visited - 1
}
