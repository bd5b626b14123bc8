package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/pear/input"
)

// Frame records a named parser an error passed through.
type Frame struct {
	Parser  string
	Context string
}

// Error is a parse failure. An ordinary failure means "this alternative does
// not match here" and is absorbed by the nearest Switch or Try. A Cut failure
// means the input was recognized but is malformed; it is never rewound.
type Error struct {
	Message    string
	Context    string
	HasContext bool
	Cut        bool
	Marker     input.Marker
	Stack      []Frame
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.HasContext {
		fmt.Fprintf(&b, " at %s", e.Context)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	for _, f := range e.Stack {
		fmt.Fprintf(&b, "\n  while parsing %s", f.Parser)
		if f.Context != "" {
			fmt.Fprintf(&b, " at %s", f.Context)
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fail returns an ordinary failure anchored at the current position of in.
func Fail(in input.Cursor, format string, args ...any) *Error {
	m := in.Mark(input.ParserInfo{Name: "fail"})
	ctx, ok := in.Context(nil)
	return &Error{
		Message:    fmt.Sprintf(format, args...),
		Context:    ctx,
		HasContext: ok,
		Marker:     m,
	}
}

// Commit turns err into a committed failure. A nil err stays nil.
func Commit(err error) error {
	if err == nil {
		return nil
	}
	pe := asError(err)
	if pe.Cut {
		return pe
	}
	committed := *pe
	committed.Cut = true
	return &committed
}

// IsCut reports whether err is a committed failure.
func IsCut(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Cut
}

// PushContext appends a frame naming the parser err propagated through,
// rendered at m. Errors that are not *Error are wrapped first.
func PushContext(err error, in input.Cursor, info input.ParserInfo, m input.Marker) error {
	if err == nil {
		return nil
	}
	pe := asError(err)
	ctx, _ := in.Context(&m)
	out := *pe
	out.Stack = append(append([]Frame(nil), pe.Stack...), Frame{Parser: info.String(), Context: ctx})
	return &out
}

func asError(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return &Error{Message: "parse failed", Err: err}
}

// deeper reports whether a failed further into the input than b.
func deeper(a, b *Error) bool {
	return b == nil || a.Marker > b.Marker
}
