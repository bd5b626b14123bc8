package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/pear/input"
	"github.com/dhamidi/pear/parse"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

var log = commonlog.GetLogger("pear.grammar")

type Option func(*Matcher)

// WithSkipSpace skips Unicode white space before every terminal and
// production matched from a non-terminal production.
func WithSkipSpace() Option {
	return func(m *Matcher) {
		m.skipSpace = true
	}
}

// WithCut marks productions that commit once the first element of one of
// their sequences has matched: a later failure inside the sequence becomes
// a committed failure instead of a reason to try another alternative.
func WithCut(names ...string) Option {
	return func(m *Matcher) {
		for _, name := range names {
			m.cuts[name] = true
		}
	}
}

// visitKey identifies a production attempt for left recursion detection.
type visitKey struct {
	name   string
	offset input.Marker
}

// scope is the production an expression is matched on behalf of.
type scope struct {
	prod    string
	lexical bool
}

// Matcher matches text against an EBNF grammar. It keeps per-match state
// and is not safe for concurrent use.
type Matcher struct {
	grammar   ebnf.Grammar
	skipSpace bool
	cuts      map[string]bool

	text     *input.Text
	visiting map[visitKey]bool
}

func NewMatcher(g ebnf.Grammar, opts ...Option) *Matcher {
	m := &Matcher{
		grammar: g,
		cuts:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match parses all of text as the production start.
func (m *Matcher) Match(text *input.Text, start string) (*Node, error) {
	if _, ok := m.grammar[start]; !ok {
		return nil, fmt.Errorf("unknown production %q", start)
	}
	m.reset(text)

	return parse.Parse(input.TextInput(text), func(in input.TextInput) (*Node, error) {
		n, err := m.production(in, start, scope{})
		if err != nil {
			return nil, err
		}
		m.space(in, scope{})
		return n, nil
	})
}

// MatchString is Match over a fresh cursor for src.
func (m *Matcher) MatchString(src, start string) (*Node, error) {
	return m.Match(input.NewText(src), start)
}

func (m *Matcher) reset(text *input.Text) {
	m.text = text
	m.visiting = make(map[visitKey]bool)
}

func (m *Matcher) space(in input.TextInput, c scope) {
	if m.skipSpace && !c.lexical {
		in.Skip(unicode.IsSpace)
	}
}

func (m *Matcher) production(in input.TextInput, name string, outer scope) (*Node, error) {
	prod, ok := m.grammar[name]
	if !ok {
		return nil, parse.Commit(parse.Fail(in, "undefined production %s", name))
	}
	info := input.ParserInfo{Name: name}
	c := scope{prod: name, lexical: outer.lexical || IsLexical(name)}

	m.space(in, outer)
	start := in.Mark(info)
	key := visitKey{name: name, offset: start}
	if m.visiting[key] {
		return nil, parse.Fail(in, "left recursion in %s", name)
	}
	m.visiting[key] = true
	defer delete(m.visiting, key)

	children, err := parse.Named(in, info, func(in input.TextInput) ([]*Node, error) {
		return m.expr(in, prod.Expr, c)
	})
	if err != nil {
		return nil, err
	}
	end := in.Mark(info)
	log.Debugf("matched %s at %d-%d", name, start, end)

	return &Node{
		Name: name,
		Text: m.text.Source()[start:end],
		Span: Span{
			Start: m.text.Position(start),
			End:   m.text.Position(end),
		},
		Children: children,
	}, nil
}

func (m *Matcher) expr(in input.TextInput, expr ebnf.Expression, c scope) ([]*Node, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil

	case *ebnf.Token:
		m.space(in, c)
		_, err := parse.Literal(in, e.String)
		return nil, err

	case *ebnf.Range:
		m.space(in, c)
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		_, err := parse.EatIf(in, func(r rune) bool {
			return r >= lo && r <= hi
		}, fmt.Sprintf("%q … %q", lo, hi))
		return nil, err

	case ebnf.Sequence:
		var out []*Node
		for i, item := range e {
			nodes, err := m.expr(in, item, c)
			if err != nil {
				if i > 0 && m.cuts[c.prod] {
					return nil, parse.Commit(err)
				}
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil

	case ebnf.Alternative:
		branches := make([]parse.Branch[input.TextInput, []*Node], len(e))
		for i, alt := range e {
			branches[i] = parse.Branch[input.TextInput, []*Node]{
				Name: fmt.Sprintf("%s#%d", c.prod, i),
				Parse: func(in input.TextInput) ([]*Node, error) {
					return m.expr(in, alt, c)
				},
			}
		}
		return parse.Switch(in, input.ParserInfo{Name: c.prod}, branches, nil)

	case *ebnf.Option:
		nodes, _, err := parse.Try(in, func(in input.TextInput) ([]*Node, error) {
			return m.expr(in, e.Body, c)
		})
		return nodes, err

	case *ebnf.Repetition:
		groups, err := parse.ZeroOrMore(in, func(in input.TextInput) ([]*Node, error) {
			return m.expr(in, e.Body, c)
		})
		if err != nil {
			return nil, err
		}
		var out []*Node
		for _, g := range groups {
			out = append(out, g...)
		}
		return out, nil

	case *ebnf.Group:
		return m.expr(in, e.Body, c)

	case *ebnf.Name:
		n, err := m.production(in, e.String, c)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil

	default:
		return nil, parse.Commit(parse.Fail(in, "unsupported expression %T", expr))
	}
}
