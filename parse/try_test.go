package parse

import (
	"testing"
	"unicode"

	"github.com/dhamidi/pear/input"
)

func TestTry(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parser func(input.TextInput) (string, error)
		want   string
		ok     bool
		offset int
	}{
		{name: "match", input: "abc1", parser: word, want: "abc", ok: true, offset: 3},
		{name: "no match", input: "1abc", parser: word, ok: false, offset: 0},
		{name: "partial consumption rewound", input: "abc", parser: greedyFail, ok: false, offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := input.NewText(tt.input)
			got, ok, err := Try(input.TextInput(text), tt.parser)
			if err != nil {
				t.Fatalf("Try: %v", err)
			}
			if ok != tt.ok || got != tt.want {
				t.Errorf("Try = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
			if text.Offset() != tt.offset {
				t.Errorf("Offset = %d, want %d", text.Offset(), tt.offset)
			}
		})
	}
}

func TestTryPropagatesCut(t *testing.T) {
	text := input.NewText("ab")
	var in input.TextInput = text

	_, ok, err := Try(in, func(in input.TextInput) (string, error) {
		in.Eat(func(rune) bool { return true })
		return "", Commit(Fail(in, "malformed"))
	})
	if ok {
		t.Errorf("Try reported a match")
	}
	if !IsCut(err) {
		t.Fatalf("error = %v, want a cut failure", err)
	}
	if text.Offset() != 1 {
		t.Errorf("Offset = %d, want 1", text.Offset())
	}
}

func TestZeroOrMore(t *testing.T) {
	text := input.NewText("a1b2c3!")
	var in input.TextInput = text

	pair := func(in input.TextInput) (string, error) {
		l, err := EatIf(in, unicode.IsLetter, "letter")
		if err != nil {
			return "", err
		}
		d, err := EatIf(in, unicode.IsDigit, "digit")
		if err != nil {
			return "", err
		}
		return string([]rune{l, d}), nil
	}

	got, err := ZeroOrMore(in, pair)
	if err != nil {
		t.Fatalf("ZeroOrMore: %v", err)
	}
	if len(got) != 3 || got[0] != "a1" || got[2] != "c3" {
		t.Errorf("ZeroOrMore = %v", got)
	}
	if text.Rest() != "!" {
		t.Errorf("Rest = %q, want %q", text.Rest(), "!")
	}
}

func TestZeroOrMoreStopsWithoutProgress(t *testing.T) {
	var in input.TextInput = input.NewText("xyz")

	got, err := ZeroOrMore(in, func(in input.TextInput) (string, error) {
		return in.Take(unicode.IsDigit), nil
	})
	if err != nil {
		t.Fatalf("ZeroOrMore: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("ZeroOrMore ran %d times, want 1", len(got))
	}
}

func TestOneOrMore(t *testing.T) {
	var in input.TextInput = input.NewText("?")

	if _, err := OneOrMore(in, word); err == nil {
		t.Errorf("OneOrMore succeeded without a match")
	}

	in = input.NewText("ab cd")
	got, err := OneOrMore(in, func(in input.TextInput) (string, error) {
		in.Skip(unicode.IsSpace)
		return word(in)
	})
	if err != nil {
		t.Fatalf("OneOrMore: %v", err)
	}
	if len(got) != 2 || got[1] != "cd" {
		t.Errorf("OneOrMore = %v", got)
	}
}
