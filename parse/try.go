package parse

import "github.com/dhamidi/pear/input"

var tryInfo = input.ParserInfo{Name: "try"}

type maybe[O any] struct {
	value O
	ok    bool
}

// Try runs p as the only branch of a Switch whose default is "no match".
// It reports false with a nil error, and the cursor rewound, when p fails
// ordinarily. A committed failure is returned as is.
func Try[I input.Cursor, O any](in I, p func(I) (O, error)) (O, bool, error) {
	branch := Branch[I, maybe[O]]{
		Name: "try",
		Parse: func(in I) (maybe[O], error) {
			v, err := p(in)
			return maybe[O]{value: v, ok: err == nil}, err
		},
	}
	none := func(I) (maybe[O], error) {
		return maybe[O]{}, nil
	}

	r, err := Switch(in, tryInfo, []Branch[I, maybe[O]]{branch}, none)
	return r.value, r.ok, err
}

// ZeroOrMore applies p until it fails ordinarily or stops consuming input.
func ZeroOrMore[I input.Cursor, O any](in I, p func(I) (O, error)) ([]O, error) {
	var out []O
	for {
		before := in.Mark(tryInfo)
		v, ok, err := Try(in, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
		if in.Mark(tryInfo) == before {
			return out, nil
		}
	}
}

// OneOrMore is ZeroOrMore that requires a first match.
func OneOrMore[I input.Cursor, O any](in I, p func(I) (O, error)) ([]O, error) {
	first, err := p(in)
	if err != nil {
		return nil, err
	}
	rest, err := ZeroOrMore(in, p)
	if err != nil {
		return nil, err
	}
	return append([]O{first}, rest...), nil
}
