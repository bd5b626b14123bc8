package grammar

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dhamidi/pear/input"
	"github.com/dhamidi/pear/parse"
	"golang.org/x/exp/ebnf"
)

// Token is a lexeme recognized by a lexical production.
type Token struct {
	Kind     string
	Literal  string
	Position input.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Position, t.Kind, strconv.Quote(t.Literal))
}

var lexInfo = input.ParserInfo{Name: "lex"}

// Lexer splits text into tokens using the lexical productions of a grammar.
// Token kinds are the lexical productions that non-terminal productions
// refer to; a grammar without non-terminals uses the lexical productions no
// other production refers to. At each position every kind is tried from the
// same marker and the longest match wins; ties go to the name that sorts
// first.
type Lexer struct {
	matcher *Matcher
	text    *input.Text
	kinds   []string
}

// NewLexer creates a lexer for src. Only WithSkipSpace affects lexing: it
// drops white space between tokens instead of reporting ERROR tokens.
func NewLexer(g ebnf.Grammar, src string, opts ...Option) *Lexer {
	l := &Lexer{
		matcher: NewMatcher(g, opts...),
		text:    input.NewText(src),
		kinds:   tokenKinds(g),
	}
	l.matcher.reset(l.text)
	return l
}

func tokenKinds(g ebnf.Grammar) []string {
	fromSyntax := make(map[string]bool)
	fromAny := make(map[string]bool)
	for name, prod := range g {
		refs(prod.Expr, func(ref string) {
			if ref == name {
				return
			}
			fromAny[ref] = true
			if !IsLexical(name) {
				fromSyntax[ref] = true
			}
		})
	}

	var kinds []string
	for name, prod := range g {
		if prod.Expr != nil && IsLexical(name) && fromSyntax[name] {
			kinds = append(kinds, name)
		}
	}
	if len(kinds) == 0 {
		for name, prod := range g {
			if prod.Expr != nil && IsLexical(name) && !fromAny[name] {
				kinds = append(kinds, name)
			}
		}
	}
	sort.Strings(kinds)
	return kinds
}

// refs calls visit for every production name expr refers to.
func refs(expr ebnf.Expression, visit func(string)) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			refs(x, visit)
		}
	case ebnf.Sequence:
		for _, x := range e {
			refs(x, visit)
		}
	case *ebnf.Group:
		refs(e.Body, visit)
	case *ebnf.Option:
		refs(e.Body, visit)
	case *ebnf.Repetition:
		refs(e.Body, visit)
	case *ebnf.Name:
		visit(e.String)
	}
}

// Kinds returns the token kinds the lexer recognizes, sorted.
func (l *Lexer) Kinds() []string {
	return l.kinds
}

// Position returns the current position in the input.
func (l *Lexer) Position() input.Position {
	return l.text.Position(l.text.Mark(lexInfo))
}

// NextToken returns the next token. At the end of input it returns an EOF
// token together with io.EOF. A character no production accepts becomes an
// ERROR token.
func (l *Lexer) NextToken() (Token, error) {
	var in input.TextInput = l.text
	l.matcher.space(in, scope{})

	start := in.Mark(lexInfo)
	startPos := l.text.Position(start)
	if in.IsEOF() {
		return Token{Kind: "EOF", Position: startPos}, io.EOF
	}

	var bestKind string
	bestEnd := start
	for _, kind := range l.kinds {
		_, ok, err := parse.Try(in, func(in input.TextInput) (*Node, error) {
			return l.matcher.production(in, kind, scope{lexical: true})
		})
		if err == nil && ok {
			if end := in.Mark(lexInfo); end > bestEnd {
				bestKind, bestEnd = kind, end
			}
		}
		in.Rewind(start)
	}

	if bestKind == "" {
		parse.Any(in)
		return Token{
			Kind:     "ERROR",
			Literal:  l.text.Source()[start:l.text.Offset()],
			Position: startPos,
		}, nil
	}

	in.Rewind(bestEnd)
	return Token{
		Kind:     bestKind,
		Literal:  l.text.Source()[start:bestEnd],
		Position: startPos,
	}, nil
}

// Tokenize reads all tokens from input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Stream tokenizes the rest of the input and returns a cursor over the
// tokens, without the trailing EOF token, for grammars written at the token
// level.
func (l *Lexer) Stream() (*input.Tokens[Token], error) {
	tokens, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	return input.NewTokens(tokens[:len(tokens)-1]), nil
}
