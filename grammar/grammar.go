// Package grammar compiles EBNF grammars into rules driven through the
// input cursor contract: ordered alternatives become parse.Switch, optional
// and repeated groups become parse.Try, terminals become Eat and EatSlice.
//
// Production names follow golang.org/x/exp/ebnf: names starting with an
// uppercase letter are non-terminal and may be separated by white space,
// all others are lexical and match contiguous text.
package grammar

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Load reads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Parse(filename, f)
}

// Parse reads an EBNF grammar from r. filename is used in error positions.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production reachable from start is defined and
// used. An empty start only checks that referenced productions exist.
func Verify(g ebnf.Grammar, start string) error {
	if start == "" {
		for name, prod := range g {
			if err := verifyNames(g, prod.Expr); err != nil {
				return fmt.Errorf("production %s: %w", name, err)
			}
		}
		return nil
	}
	return ebnf.Verify(g, start)
}

// Errors flattens the error list the ebnf package reports into individual
// errors.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			out := make([]error, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				if ie, ok := v.Index(i).Interface().(error); ok {
					out = append(out, ie)
				}
			}
			return out
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return []error{err}
}

// IsLexical reports whether a production matches contiguous text.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

func verifyNames(g ebnf.Grammar, expr ebnf.Expression) error {
	switch e := expr.(type) {
	case *ebnf.Name:
		if _, ok := g[e.String]; !ok {
			return fmt.Errorf("%s: missing production %s", e.Pos(), e.String)
		}
	case ebnf.Alternative:
		for _, x := range e {
			if err := verifyNames(g, x); err != nil {
				return err
			}
		}
	case ebnf.Sequence:
		for _, x := range e {
			if err := verifyNames(g, x); err != nil {
				return err
			}
		}
	case *ebnf.Group:
		return verifyNames(g, e.Body)
	case *ebnf.Option:
		return verifyNames(g, e.Body)
	case *ebnf.Repetition:
		return verifyNames(g, e.Body)
	}
	return nil
}
