// Package parse drives grammar rules written against input.Cursor: ordered
// alternatives with rewind, optional parses, cut points and the errors that
// carry diagnostic context out of them.
package parse

import (
	"fmt"

	"github.com/dhamidi/pear/input"
)

// Branch is one alternative of a Switch. When Cut is set, a failure of the
// branch is final: the cursor is left where the failure happened and no
// later branch is tried.
type Branch[I, O any] struct {
	Name  string
	Parse func(I) (O, error)
	Cut   bool
}

// Switch tries branches in order from the same position and returns the
// first success. An ordinary failure rewinds and moves on to the next
// branch; a failure of a Cut branch, or any committed failure, is returned
// immediately without rewinding. When every branch fails, def runs from the
// starting position if given, otherwise the failure carries the context of
// the last attempt.
func Switch[I input.Cursor, O any](in I, info input.ParserInfo, branches []Branch[I, O], def func(I) (O, error)) (O, error) {
	var zero O
	var deepest *Error

	last := in.Mark(info)
	for i, b := range branches {
		m := in.Mark(info)
		last = m

		out, err := b.Parse(in)
		if err == nil {
			tracef(info, "branch %d %q matched", i, b.Name)
			return out, nil
		}
		if b.Cut || IsCut(err) {
			tracef(info, "branch %d %q failed past cut: %v", i, b.Name, err)
			return zero, Commit(err)
		}

		if pe := asError(err); deeper(pe, deepest) {
			deepest = pe
		}
		in.Rewind(m)
		tracef(info, "branch %d %q failed, rewound to %d", i, b.Name, m)
	}

	if def != nil {
		tracef(info, "no branch matched, running default")
		return def(in)
	}

	ctx, ok := in.Context(&last)
	failure := &Error{
		Message:    fmt.Sprintf("%s: no alternative matched", info),
		Context:    ctx,
		HasContext: ok,
		Marker:     last,
	}
	if deepest != nil {
		failure.Err = deepest
	}
	return zero, failure
}

// Named runs p and, on failure, records info in the error's stack together
// with the context where p started.
func Named[I input.Cursor, O any](in I, info input.ParserInfo, p func(I) (O, error)) (O, error) {
	m := in.Mark(info)
	out, err := p(in)
	if err != nil {
		var zero O
		return zero, PushContext(err, in, info, m)
	}
	return out, nil
}
