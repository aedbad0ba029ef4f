package arithmancy

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse parses an expression. Every parse starts a new set of variables, so
// variables from earlier parses are no longer reachable through env, though
// earlier expressions keep their own.
//
// Parsing happens in passes. Parenthesized subexpressions are parsed
// recursively into complete terms. The remaining tokens become a chain of
// terms and operators that have no operands yet, where a token registered
// both as a unary and a binary operator is binary only if the term before it
// is complete. Then, for each precedence from highest to lowest, each
// operator at that precedence takes its neighbors as operands, right to left
// for PrecFunc and left to right otherwise. Exactly one term must remain.
func (env *Env) Parse(src string) (*Expr, error) {
	env.vars = make(map[string]*Variable)
	n, err := env.parse(src)
	if err != nil {
		env.log.Debug("parse failed", slog.String("src", src), slog.Any("error", err))
		return nil, err
	}
	if env.log.Enabled(context.Background(), slog.LevelDebug) {
		env.log.Debug("parsed", slog.String("src", src), slog.String("tree", n.prefix()))
	}
	return &Expr{n: n}, nil
}

func (env *Env) parse(src string) (*node, error) {
	s := strings.ToLower(src)
	if err := env.validate(s); err != nil {
		return nil, err
	}
	end := utf8.RuneCountInString(s) + 1
	toks := env.lex(s)
	if err := balance(toks, end); err != nil {
		return nil, err
	}
	return env.parseterms(toks, pairs(toks), lexToken{pos: end})
}

// parseterms parses a balanced token sequence. match holds the distance from
// each open parenthesis to its close parenthesis. end is the token following
// the sequence, either a close parenthesis or an empty token at the end of
// input.
func (env *Env) parseterms(toks []lexToken, match []int, end lexToken) (*node, error) {
	if len(toks) == 0 {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	var chain []*node
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.kind {
		case tokenOpen:
			j := i + match[i]
			n, err := env.parseterms(toks[i+1:j], match[i+1:j], toks[j])
			if err != nil {
				return nil, err
			}
			chain = append(chain, n)
			i = j
		case tokenNum:
			v, err := strconv.ParseFloat(tok.text, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				// Digits with at most one point always parse. Huge ones are
				// infinite.
				panic("arithmancy: invalid number " + strconv.Quote(tok.text) + ": " + err.Error())
			}
			chain = append(chain, &node{kind: nodeConst, pos: tok.pos, val: v})
		case tokenSym, tokenName:
			chain = append(chain, env.term(tok, chain))
		default:
			panic("arithmancy: unexpected token " + tok.String())
		}
	}
	return reduce(chain)
}

// pairs gives the distance from each open parenthesis to the close
// parenthesis matching it. Distances are unchanged by slicing toks, so
// subsequences can share the result. The tokens must be balanced.
func pairs(toks []lexToken) []int {
	match := make([]int, len(toks))
	var open []int
	for i, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			open = append(open, i)
		case tokenClose:
			k := open[len(open)-1]
			open = open[:len(open)-1]
			match[k] = i - k
		}
	}
	return match
}

// term creates the node for a named token, given the chain before it.
func (env *Env) term(tok lexToken, chain []*node) *node {
	if v, ok := env.consts[tok.text]; ok {
		return &node{kind: nodeConst, pos: tok.pos, val: v, name: tok.text}
	}
	un, bin := env.unary[tok.text], env.binary[tok.text]
	var op *Operator
	switch {
	case un == nil && bin == nil:
		return &node{kind: nodeVar, pos: tok.pos, v: env.intern(tok.text)}
	case bin == nil:
		op = un
	case un == nil:
		op = bin
	case len(chain) == 0:
		// Nothing to the left, so it can't be binary.
		op = un
	case chain[len(chain)-1].complete():
		// a - 2, (a+2) - 3
		op = bin
	default:
		// a + -3, sin -x
		op = un
	}
	return &node{kind: nodeApply, pos: tok.pos, op: op}
}

// reduce folds a chain of terms and operators into a single tree. Each
// precedence takes one pass over the chain.
func reduce(chain []*node) (*node, error) {
	var err error
	for _, prec := range precedences(chain) {
		if prec == PrecFunc {
			chain, err = foldRight(chain, prec)
		} else {
			chain, err = foldLeft(chain, prec)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(chain) > 1 {
		frags := make([]string, len(chain))
		for i, n := range chain {
			frags[i] = n.prefix()
		}
		return nil, &UncollapsedError{Col: chain[1].pos, Fragments: frags}
	}
	return chain[0], nil
}

// precedences lists the distinct precedences of operators in the chain, from
// highest to lowest.
func precedences(chain []*node) []Precedence {
	var precs []Precedence
	seen := make(map[Precedence]bool)
	for _, n := range chain {
		if n.kind == nodeApply && n.right == nil && !seen[n.op.prec] {
			seen[n.op.prec] = true
			precs = append(precs, n.op.prec)
		}
	}
	sort.Slice(precs, func(i, j int) bool { return precs[i] > precs[j] })
	return precs
}

// foldLeft gives each operator at prec its operands, left to right. The
// chain is compacted in place.
func foldLeft(chain []*node, prec Precedence) ([]*node, error) {
	out := chain[:0]
	for i := 0; i < len(chain); i++ {
		n := chain[i]
		if !n.pending(prec) {
			out = append(out, n)
			continue
		}
		if err := rightOperand(chain, i); err != nil {
			return nil, err
		}
		r := chain[i+1]
		i++
		if n.op.arity == Binary {
			if len(out) == 0 {
				return nil, &OperandError{Col: n.pos, Operator: n.op.token, Left: true}
			}
			l := out[len(out)-1]
			if !l.complete() {
				return nil, &IncompleteOperandError{Col: n.pos, Operator: n.op.token, Operand: l.label(), Left: true}
			}
			n.left = l
			out = out[:len(out)-1]
		}
		n.right = r
		out = append(out, n)
	}
	return out, nil
}

// foldRight gives each operator at prec its operands, right to left, so that
// functions compose.
func foldRight(chain []*node, prec Precedence) ([]*node, error) {
	// rev is the folded chain in reverse.
	rev := make([]*node, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		if !n.pending(prec) {
			rev = append(rev, n)
			continue
		}
		if len(rev) == 0 {
			return nil, &OperandError{Col: n.pos, Operator: n.op.token}
		}
		r := rev[len(rev)-1]
		if !r.complete() {
			return nil, &IncompleteOperandError{Col: n.pos, Operator: n.op.token, Operand: r.label()}
		}
		rev = rev[:len(rev)-1]
		if n.op.arity == Binary {
			if i == 0 {
				return nil, &OperandError{Col: n.pos, Operator: n.op.token, Left: true}
			}
			l := chain[i-1]
			if !l.complete() {
				return nil, &IncompleteOperandError{Col: n.pos, Operator: n.op.token, Operand: l.label(), Left: true}
			}
			n.left = l
			i--
		}
		n.right = r
		rev = append(rev, n)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, nil
}

// rightOperand checks that chain[i] has a complete term to its right.
func rightOperand(chain []*node, i int) error {
	n := chain[i]
	if i+1 >= len(chain) {
		return &OperandError{Col: n.pos, Operator: n.op.token}
	}
	if r := chain[i+1]; !r.complete() {
		return &IncompleteOperandError{Col: n.pos, Operator: n.op.token, Operand: r.label()}
	}
	return nil
}
