package lsystem

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrSyntax is wrapped by every Parse error.
var ErrSyntax = errors.New("lsystem: syntax error")

// Parse reads a word in text form. Modules are written as their letter
// followed by an optional parenthesised, comma separated parameter list;
// whitespace between modules is optional:
//
//	T(2, 4, 12, 0, 0.85, 0.85) o B(1,1)^(3)
//
// A module must list exactly as many parameters as its symbol's arity.
func Parse(s string) (Word, error) {
	p := parser{src: []rune(s)}
	var w Word
	for {
		p.skipSpace()
		if p.eof() {
			return w, nil
		}
		m, err := p.module()
		if err != nil {
			return nil, err
		}
		w = append(w, m)
	}
}

// MustParse is like Parse but panics on error. It is meant for fixed
// axioms in code and tests.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) module() (Module, error) {
	letter := p.src[p.pos]
	sym, ok := SymbolForLetter(letter)
	if !ok {
		return Module{}, p.errorf("unknown symbol %q", letter)
	}
	p.pos++

	var params []float32
	p.skipSpace()
	if !p.eof() && p.src[p.pos] == '(' {
		p.pos++
		var err error
		if params, err = p.params(); err != nil {
			return Module{}, err
		}
	}
	if len(params) != sym.Arity() {
		return Module{}, p.errorf("%s takes %d parameters, got %d", sym, sym.Arity(), len(params))
	}
	return NewModule(sym, params...), nil
}

func (p *parser) params() ([]float32, error) {
	var out []float32
	for {
		p.skipSpace()
		start := p.pos
		for !p.eof() && !strings.ContainsRune(",)", p.src[p.pos]) && !unicode.IsSpace(p.src[p.pos]) {
			p.pos++
		}
		text := string(p.src[start:p.pos])
		if text == "" {
			if !p.eof() && p.src[p.pos] == ')' && len(out) == 0 {
				p.pos++
				return out, nil
			}
			return nil, p.errorf("missing parameter")
		}
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, p.errorf("bad parameter %q", text)
		}
		out = append(out, float32(v))

		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated parameter list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("unexpected %q", p.src[p.pos])
		}
	}
}
