package parse

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/dhamidi/pear/input"
)

type assignment struct {
	name  string
	value string
}

func parseAssignment(in input.TextInput) (assignment, error) {
	name, err := word(in)
	if err != nil {
		return assignment{}, err
	}
	in.Skip(unicode.IsSpace)
	if _, err := Eat(in, '='); err != nil {
		return assignment{}, err
	}
	in.Skip(unicode.IsSpace)
	value, err := number(in)
	if err != nil {
		return assignment{}, Commit(err)
	}
	return assignment{name: name, value: value}, nil
}

func TestParse(t *testing.T) {
	got, err := Parse(input.TextInput(input.NewText("x = 42")), parseAssignment)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != (assignment{name: "x", value: "42"}) {
		t.Errorf("Parse = %+v", got)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		input   string
		message string
		context string
		cut     bool
	}{
		{input: "x = 42 ;", message: "expected end of input", context: `" ;"`},
		{input: "x = y", message: "expected digit", context: `"y"`, cut: true},
		{input: "= 1", message: "expected letter", context: `"= 1"`},
		{input: "x 1", message: "expected '='", context: `"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(input.TextInput(input.NewText(tt.input)), parseAssignment)
			if got != (assignment{}) {
				t.Errorf("Parse returned output %+v on failure", got)
			}
			var pe *Error
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if pe.Message != tt.message {
				t.Errorf("Message = %q, want %q", pe.Message, tt.message)
			}
			if pe.Context != tt.context {
				t.Errorf("Context = %q, want %q", pe.Context, tt.context)
			}
			if pe.Cut != tt.cut {
				t.Errorf("Cut = %v, want %v", pe.Cut, tt.cut)
			}
		})
	}
}

func TestParseWrapsForeignErrors(t *testing.T) {
	sentinel := errors.New("boom")

	_, err := Parse(input.TextInput(input.NewText("")), func(input.TextInput) (int, error) {
		return 0, sentinel
	})
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("wrapped error lost its cause")
	}
}

func TestEof(t *testing.T) {
	if err := Eof(input.NewText("")); err != nil {
		t.Errorf("Eof on empty input: %v", err)
	}
	if err := Eof(input.NewText("a")); err == nil {
		t.Errorf("Eof succeeded with input left")
	}
}

func TestAny(t *testing.T) {
	var in input.TextInput = input.NewText("é")

	r, err := Any(in)
	if err != nil || r != 'é' {
		t.Errorf("Any = (%q, %v)", r, err)
	}
	if _, err := Any(in); err == nil {
		t.Errorf("Any succeeded at end of input")
	}
}

func TestLiteral(t *testing.T) {
	var in input.TextInput = input.NewText("für alle")

	if _, err := Literal(in, "fur"); err == nil {
		t.Errorf("Literal matched a different word")
	}
	got, err := Literal(in, "für")
	if err != nil || got != "für" {
		t.Errorf("Literal = (%q, %v)", got, err)
	}
	_, err = Literal(in, "alle")
	if err == nil || !strings.Contains(err.Error(), `expected "alle"`) {
		t.Errorf("Literal error = %v", err)
	}
}

func TestTakeAndSkipWhile(t *testing.T) {
	var in input.TextInput = input.NewText("   abc1")

	if _, err := TakeSomeWhile(in, unicode.IsLetter, "letter"); err == nil {
		t.Errorf("TakeSomeWhile matched leading space")
	}
	skipped, err := SkipWhile(in, unicode.IsSpace)
	if err != nil || skipped != 3 {
		t.Errorf("SkipWhile = (%d, %v), want 3", skipped, err)
	}
	got, err := TakeWhile(in, unicode.IsLetter)
	if err != nil || got != "abc" {
		t.Errorf("TakeWhile = (%q, %v)", got, err)
	}
	got, err = TakeWhile(in, unicode.IsLetter)
	if err != nil || got != "" {
		t.Errorf("TakeWhile with no match = (%q, %v), want empty", got, err)
	}
}

func TestDelimited(t *testing.T) {
	var in input.TextInput = input.NewText("[abc]")

	got, err := Delimited(in, '[', word, ']')
	if err != nil || got != "abc" {
		t.Errorf("Delimited = (%q, %v)", got, err)
	}
}

func TestTokensStreamParsers(t *testing.T) {
	var in input.Input[string, []string, []string] = input.NewTokens([]string{"(", "x", ")"})

	ident := func(in input.Input[string, []string, []string]) (string, error) {
		return EatIf(in, func(s string) bool { return s != "(" && s != ")" }, "identifier")
	}
	got, err := Delimited(in, "(", ident, ")")
	if err != nil || got != "x" {
		t.Errorf("Delimited = (%q, %v)", got, err)
	}
	if err := Eof(in); err != nil {
		t.Errorf("Eof: %v", err)
	}
}

func TestCommitAndIsCut(t *testing.T) {
	if Commit(nil) != nil {
		t.Errorf("Commit(nil) != nil")
	}

	ordinary := Fail(input.NewText("x"), "nope")
	committed := Commit(ordinary)
	if !IsCut(committed) {
		t.Errorf("IsCut(Commit(err)) = false")
	}
	if ordinary.Cut {
		t.Errorf("Commit mutated its argument")
	}
	if IsCut(errors.New("plain")) {
		t.Errorf("IsCut(plain error) = true")
	}
	if !IsCut(Commit(errors.New("plain"))) {
		t.Errorf("Commit did not wrap a foreign error")
	}
}
