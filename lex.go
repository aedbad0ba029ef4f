package arithmancy

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is a decimal number, digits with at most one decimal point.
	tokenNum
	// tokenSym is a registered operator token or named constant.
	tokenSym
	// tokenName is any other run of characters, i.e. a variable name.
	tokenName
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenSym:
		return "Sym"
	case tokenName:
		return "Name"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// lex splits case-folded source into tokens in a single pass. At each
// position, the longest registered operator token or constant name that
// starts there is a token of its own, so "exp" is never split by the constant
// "e". Runs of characters that start no token form names. lex never fails;
// Parse checks characters separately.
func (env *Env) lex(s string) []lexToken {
	syms := env.symbols()
	var toks []lexToken
	name, namecol := -1, 0
	flush := func(end int) {
		if name >= 0 {
			toks = append(toks, lexToken{text: s[name:end], kind: tokenName, pos: namecol})
			name = -1
		}
	}
	col := 0
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		col++
		switch {
		case space(r):
			flush(i)
		case r == '(':
			flush(i)
			toks = append(toks, lexToken{text: "(", kind: tokenOpen, pos: col})
		case r == ')':
			flush(i)
			toks = append(toks, lexToken{text: ")", kind: tokenClose, pos: col})
		case '0' <= r && r <= '9':
			flush(i)
			j := scanNum(s, i)
			toks = append(toks, lexToken{text: s[i:j], kind: tokenNum, pos: col})
			col += j - i - 1
			i = j
			continue
		default:
			if sym := longest(syms, s[i:]); sym != "" {
				flush(i)
				toks = append(toks, lexToken{text: sym, kind: tokenSym, pos: col})
				col += utf8.RuneCountInString(sym) - 1
				i += len(sym)
				continue
			}
			if name < 0 {
				name, namecol = i, col
			}
		}
		i += sz
	}
	flush(len(s))
	return toks
}

// scanNum returns the end of the number starting at s[i], which must be a
// digit. Numbers are digits with at most one decimal point.
func scanNum(s string, i int) int {
	dot := false
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return i
		}
	}
	return i
}

// longest returns the first of syms that prefixes s. syms must be ordered
// longest first.
func longest(syms []string, s string) string {
	for _, sym := range syms {
		if strings.HasPrefix(s, sym) {
			return sym
		}
	}
	return ""
}

// Normalize case-folds an expression and separates every number, operator,
// named constant, and variable name with a single space. There are no spaces
// next to parentheses, e.g. "2X+sin(pi)" becomes "2 x + sin(pi)".
func (env *Env) Normalize(src string) string {
	toks := env.lex(strings.ToLower(src))
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && !tok.paren() && !toks[i-1].paren() {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text)
	}
	return b.String()
}

func (t lexToken) paren() bool {
	return t.kind == tokenOpen || t.kind == tokenClose
}

// validate checks that every character of case-folded source is a letter,
// digit, decimal point, whitespace, parenthesis, or part of a registered
// operator token.
func (env *Env) validate(s string) error {
	ops := env.opchars()
	col := 0
	for _, r := range s {
		col++
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		case r == '.', r == '(', r == ')', space(r):
		case ops[r]:
		default:
			return &InvalidCharacterError{Col: col, Char: r}
		}
	}
	return nil
}

// balance checks that parentheses match. end is the position reported for an
// unclosed parenthesis.
func balance(toks []lexToken, end int) error {
	depth := 0
	for _, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			depth++
		case tokenClose:
			depth--
			if depth < 0 {
				return &BracketError{Col: tok.pos, Close: true}
			}
		}
	}
	if depth > 0 {
		return &BracketError{Col: end}
	}
	return nil
}

// space reports whether r is ASCII whitespace. Other spaces are invalid.
func space(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
