package input

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// contextRunes is how many runes Context renders.
const contextRunes = 5

// TextOption configures a Text.
type TextOption func(*Text)

// WithNormalization puts the source in Unicode normalization form C before
// any token is read, so composed and decomposed spellings parse alike.
func WithNormalization() TextOption {
	return func(t *Text) {
		t.src = norm.NFC.String(t.src)
	}
}

// Text is the reference Input over a string. Tokens are runes, slices are
// borrowed substrings and markers are byte offsets into the source.
type Text struct {
	src   string
	off   int
	lines []int // offsets of line starts, built on first Position
}

var _ TextInput = (*Text)(nil)

// NewText returns a cursor positioned at the start of src.
func NewText(src string, opts ...TextOption) *Text {
	t := &Text{src: src}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Source returns the whole text the cursor walks over.
func (t *Text) Source() string {
	return t.src
}

// Rest returns the text not yet consumed.
func (t *Text) Rest() string {
	return t.src[t.off:]
}

// Offset returns the current byte offset.
func (t *Text) Offset() int {
	return t.off
}

func (t *Text) Token() (rune, bool) {
	if t.off >= len(t.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(t.src[t.off:])
	return r, true
}

// Slice returns the next n runes as a substring of the source.
func (t *Text) Slice(n int) (string, bool) {
	end, ok := t.advanceRunes(t.off, n)
	if !ok {
		return "", false
	}
	return t.src[t.off:end], true
}

func (t *Text) Peek(cond func(rune) bool) bool {
	r, ok := t.Token()
	return ok && cond(r)
}

func (t *Text) PeekSlice(n int, cond func(string) bool) bool {
	s, ok := t.Slice(n)
	return ok && cond(s)
}

// Eat consumes the next rune if cond accepts it, advancing by its encoded
// width.
func (t *Text) Eat(cond func(rune) bool) (rune, bool) {
	if t.off >= len(t.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(t.src[t.off:])
	if !cond(r) {
		return 0, false
	}
	t.off += size
	return r, true
}

func (t *Text) EatSlice(n int, cond func(string) bool) (string, bool) {
	s, ok := t.Slice(n)
	if !ok || !cond(s) {
		return "", false
	}
	t.off += len(s)
	return s, true
}

// Take consumes the longest prefix whose runes all satisfy cond.
func (t *Text) Take(cond func(rune) bool) string {
	start := t.off
	end := start
	for end < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[end:])
		if !cond(r) {
			break
		}
		end += size
	}
	t.off = end
	return t.src[start:end]
}

func (t *Text) Skip(cond func(rune) bool) int {
	return countingSkip(t, func(c func(rune) bool) bool {
		return t.Take(c) != ""
	}, cond)
}

func (t *Text) IsEOF() bool {
	return t.off >= len(t.src)
}

func (t *Text) Mark(info ParserInfo) Marker {
	return Marker(t.off)
}

func (t *Text) Rewind(m Marker) {
	if int(m) < 0 || int(m) > len(t.src) {
		panic(fmt.Sprintf("input: marker %d out of range", m))
	}
	t.off = int(m)
}

// Context quotes up to five runes starting at m or at the current offset.
func (t *Text) Context(m *Marker) (string, bool) {
	start := t.off
	if m != nil {
		start = int(*m)
	}
	if start < 0 || start >= len(t.src) {
		return "", false
	}
	end := start
	for i := 0; i < contextRunes && end < len(t.src); i++ {
		_, size := utf8.DecodeRuneInString(t.src[end:])
		end += size
	}
	return strconv.Quote(t.src[start:end]), true
}

// Position converts a marker to a 1-based line and rune column.
func (t *Text) Position(m Marker) Position {
	off := min(max(int(m), 0), len(t.src))
	if t.lines == nil {
		t.lines = []int{0}
		for i := 0; i < len(t.src); i++ {
			if t.src[i] == '\n' {
				t.lines = append(t.lines, i+1)
			}
		}
	}
	line := sort.SearchInts(t.lines, off+1) - 1
	return Position{
		Offset: off,
		Line:   line + 1,
		Column: utf8.RuneCountInString(t.src[t.lines[line]:off]) + 1,
	}
}

func (t *Text) advanceRunes(from, n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	end := from
	for i := 0; i < n; i++ {
		if end >= len(t.src) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(t.src[end:])
		end += size
	}
	return end, true
}
