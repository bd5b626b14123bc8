package input

import (
	"fmt"
	"strings"
)

// Tokens is an Input over pre-lexed tokens. Slices borrow from the backing
// array; Take returns an owned copy since callers commonly keep it after the
// cursor moves on.
type Tokens[T comparable] struct {
	items []T
	pos   int
}

// NewTokens returns a cursor over items. The slice is not copied.
func NewTokens[T comparable](items []T) *Tokens[T] {
	return &Tokens[T]{items: items}
}

// Rest returns the tokens not yet consumed.
func (s *Tokens[T]) Rest() []T {
	return s.items[s.pos:]
}

func (s *Tokens[T]) Token() (T, bool) {
	if s.pos >= len(s.items) {
		var zero T
		return zero, false
	}
	return s.items[s.pos], true
}

func (s *Tokens[T]) Slice(n int) ([]T, bool) {
	if n < 0 || len(s.items)-s.pos < n {
		return nil, false
	}
	return s.items[s.pos : s.pos+n : s.pos+n], true
}

func (s *Tokens[T]) Peek(cond func(T) bool) bool {
	t, ok := s.Token()
	return ok && cond(t)
}

func (s *Tokens[T]) PeekSlice(n int, cond func([]T) bool) bool {
	sl, ok := s.Slice(n)
	return ok && cond(sl)
}

func (s *Tokens[T]) Eat(cond func(T) bool) (T, bool) {
	t, ok := s.Token()
	if !ok || !cond(t) {
		var zero T
		return zero, false
	}
	s.pos++
	return t, true
}

func (s *Tokens[T]) EatSlice(n int, cond func([]T) bool) ([]T, bool) {
	sl, ok := s.Slice(n)
	if !ok || !cond(sl) {
		return nil, false
	}
	s.pos += n
	return sl, true
}

func (s *Tokens[T]) Take(cond func(T) bool) []T {
	start := s.pos
	for s.pos < len(s.items) && cond(s.items[s.pos]) {
		s.pos++
	}
	out := make([]T, s.pos-start)
	copy(out, s.items[start:s.pos])
	return out
}

func (s *Tokens[T]) Skip(cond func(T) bool) int {
	return countingSkip(s, func(c func(T) bool) bool {
		return len(s.Take(c)) > 0
	}, cond)
}

func (s *Tokens[T]) IsEOF() bool {
	return s.pos >= len(s.items)
}

func (s *Tokens[T]) Mark(info ParserInfo) Marker {
	return Marker(s.pos)
}

func (s *Tokens[T]) Rewind(m Marker) {
	if int(m) < 0 || int(m) > len(s.items) {
		panic(fmt.Sprintf("input: marker %d out of range", m))
	}
	s.pos = int(m)
}

func (s *Tokens[T]) Context(m *Marker) (string, bool) {
	start := s.pos
	if m != nil {
		start = int(*m)
	}
	if start < 0 || start >= len(s.items) {
		return "", false
	}
	end := min(start+contextRunes, len(s.items))
	parts := make([]string, 0, end-start)
	for _, t := range s.items[start:end] {
		parts = append(parts, fmt.Sprintf("%v", t))
	}
	return "[" + strings.Join(parts, " ") + "]", true
}
