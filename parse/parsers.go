package parse

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/dhamidi/pear/input"
)

// Parse runs p over in and then requires the input to be exhausted. On
// failure it returns a single *Error and the zero output.
func Parse[I input.Cursor, O any](in I, p func(I) (O, error)) (O, error) {
	var zero O
	out, err := p(in)
	if err != nil {
		return zero, asError(err)
	}
	if err := Eof(in); err != nil {
		return zero, err
	}
	return out, nil
}

// Eof succeeds only at the end of input.
func Eof(in input.Cursor) error {
	if !in.IsEOF() {
		return Fail(in, "expected end of input")
	}
	return nil
}

// Any consumes one token, whatever it is.
func Any[T, S, N any](in input.Input[T, S, N]) (T, error) {
	t, ok := in.Eat(func(T) bool { return true })
	if !ok {
		return t, Fail(in, "unexpected end of input")
	}
	return t, nil
}

// Eat consumes want or fails.
func Eat[T comparable, S, N any](in input.Input[T, S, N], want T) (T, error) {
	t, ok := in.Eat(func(t T) bool { return t == want })
	if !ok {
		return t, Fail(in, "expected %s", show(want))
	}
	return t, nil
}

// EatIf consumes a token accepted by cond. expected describes cond in the
// failure message.
func EatIf[T, S, N any](in input.Input[T, S, N], cond func(T) bool, expected string) (T, error) {
	t, ok := in.Eat(cond)
	if !ok {
		return t, Fail(in, "expected %s", expected)
	}
	return t, nil
}

// EatSlice consumes n tokens accepted by cond.
func EatSlice[T, S, N any](in input.Input[T, S, N], n int, cond func(S) bool, expected string) (S, error) {
	s, ok := in.EatSlice(n, cond)
	if !ok {
		return s, Fail(in, "expected %s", expected)
	}
	return s, nil
}

// Literal consumes the exact text lit.
func Literal(in input.TextInput, lit string) (string, error) {
	return EatSlice(in, utf8.RuneCountInString(lit), func(s string) bool { return s == lit }, strconv.Quote(lit))
}

// TakeWhile consumes the longest run of tokens accepted by cond. It never
// fails.
func TakeWhile[T, S, N any](in input.Input[T, S, N], cond func(T) bool) (N, error) {
	return in.Take(cond), nil
}

// SkipWhile discards the longest run of tokens accepted by cond and returns
// how many it skipped.
func SkipWhile[T, S, N any](in input.Input[T, S, N], cond func(T) bool) (int, error) {
	return in.Skip(cond), nil
}

// TakeSomeWhile is Take that requires at least one token.
func TakeSomeWhile[T, S, N any](in input.Input[T, S, N], cond func(T) bool, expected string) (N, error) {
	if !in.Peek(cond) {
		var zero N
		return zero, Fail(in, "expected %s", expected)
	}
	return in.Take(cond), nil
}

// Delimited parses open, p and close in sequence and returns p's output.
func Delimited[T comparable, S, N, O any](in input.Input[T, S, N], open T, p func(input.Input[T, S, N]) (O, error), close T) (O, error) {
	var zero O
	if _, err := Eat(in, open); err != nil {
		return zero, err
	}
	out, err := p(in)
	if err != nil {
		return zero, err
	}
	if _, err := Eat(in, close); err != nil {
		return zero, err
	}
	return out, nil
}

func show[T any](t T) string {
	switch v := any(t).(type) {
	case rune:
		return strconv.QuoteRune(v)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
