package arithmancy

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Arity is the number of operands an operator takes.
type Arity int8

const (
	// Unary operators and functions take one operand, to their right.
	Unary Arity = iota + 1
	// Binary operators take an operand on each side.
	Binary
)

func (a Arity) String() string {
	switch a {
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	default:
		return "Arity(" + strconv.Itoa(int(a)) + ")"
	}
}

// Precedence is the binding strength of an operator. Operators with higher
// precedence are reduced first.
type Precedence int8

const (
	// PrecAdd is the precedence of addition and subtraction.
	PrecAdd Precedence = 1
	// PrecMul is the precedence of multiplication and division.
	PrecMul Precedence = 10
	// PrecFunc is the precedence of functions and unary signs. Operators at
	// this precedence are reduced right to left, so functions compose.
	PrecFunc Precedence = 20
	// PrecPow is the precedence of exponentiation.
	PrecPow Precedence = 30
)

func (p Precedence) String() string {
	switch p {
	case PrecAdd:
		return "add"
	case PrecMul:
		return "mul"
	case PrecFunc:
		return "func"
	case PrecPow:
		return "pow"
	default:
		return "Precedence(" + strconv.Itoa(int(p)) + ")"
	}
}

// Operator is an immutable description of an operator or function. Every
// node of a parsed tree that applies an operator refers to the registered
// descriptor.
type Operator struct {
	token string
	arity Arity
	prec  Precedence
	un    func(float64) float64
	bin   func(float64, float64) float64
}

// NewUnary creates a unary operator. Unary operators should use PrecFunc
// unless they are meant to bind differently from functions.
func NewUnary(token string, prec Precedence, f func(x float64) float64) *Operator {
	return &Operator{token: token, arity: Unary, prec: prec, un: f}
}

// NewFunc creates a function, which is a unary operator with precedence
// PrecFunc.
func NewFunc(token string, f func(x float64) float64) *Operator {
	return NewUnary(token, PrecFunc, f)
}

// NewBinary creates a binary operator.
func NewBinary(token string, prec Precedence, f func(x, y float64) float64) *Operator {
	return &Operator{token: token, arity: Binary, prec: prec, bin: f}
}

// Token returns the text of the operator.
func (op *Operator) Token() string {
	return op.token
}

// Arity returns the number of operands of the operator.
func (op *Operator) Arity() Arity {
	return op.arity
}

// Precedence returns the precedence of the operator.
func (op *Operator) Precedence() Precedence {
	return op.prec
}

func (op *Operator) String() string {
	return op.arity.String() + " " + strconv.Quote(op.token) + " (" + op.prec.String() + ")"
}

// apply computes the operator. x is ignored for unary operators.
func (op *Operator) apply(x, y float64) float64 {
	if op.arity == Unary {
		return op.un(y)
	}
	return op.bin(x, y)
}

// AddOperator registers an operator. The operator is refused with a
// *RegistrationError if its token is empty, contains uppercase letters,
// whitespace, or parentheses, if an operator with the same token and arity is
// already registered, or if its token contains or is contained in the token of
// any registered operator of a different length, or if its token is a named
// constant. A unary and a binary
// operator may share a token. Registering the same descriptor twice succeeds.
func (env *Env) AddOperator(op *Operator) error {
	if err := env.addOperator(op); err != nil {
		env.log.Debug("operator refused", slog.Any("error", err))
		return err
	}
	env.log.Debug("operator registered", slog.String("op", op.String()))
	return nil
}

func (env *Env) addOperator(op *Operator) error {
	if op == nil || op.token == "" {
		return &RegistrationError{Reason: "empty operator token"}
	}
	table := env.table(op.arity)
	if table == nil {
		return &RegistrationError{Token: op.token, Reason: "invalid arity " + op.arity.String()}
	}
	if table[op.token] == op {
		return nil
	}
	if op.token != strings.ToLower(op.token) {
		return &RegistrationError{Token: op.token, Reason: "operator tokens must be lowercase"}
	}
	if strings.IndexFunc(op.token, func(r rune) bool { return unicode.IsSpace(r) || r == '(' || r == ')' }) >= 0 {
		return &RegistrationError{Token: op.token, Reason: "operator tokens cannot contain whitespace or parentheses"}
	}
	if op.arity == Unary && op.un == nil || op.arity == Binary && op.bin == nil {
		return &RegistrationError{Token: op.token, Reason: "operator has no transform"}
	}
	if _, ok := table[op.token]; ok {
		return &RegistrationError{Token: op.token, Reason: op.arity.String() + " operator already registered"}
	}
	if _, ok := env.consts[op.token]; ok {
		return &RegistrationError{Token: op.token, Reason: "token is a named constant"}
	}
	for _, known := range env.Operators() {
		k := known.token
		if len(k) != len(op.token) && (strings.Contains(k, op.token) || strings.Contains(op.token, k)) {
			return &RegistrationError{Token: op.token, Reason: "ambiguous with operator " + strconv.Quote(k)}
		}
	}
	table[op.token] = op
	env.invalidate()
	return nil
}

// table returns the registry for an arity, or nil for an invalid arity.
func (env *Env) table(a Arity) map[string]*Operator {
	switch a {
	case Unary:
		return env.unary
	case Binary:
		return env.binary
	default:
		return nil
	}
}

// ClearOperators removes every registered operator.
func (env *Env) ClearOperators() {
	env.unary = make(map[string]*Operator)
	env.binary = make(map[string]*Operator)
	env.invalidate()
	env.log.Debug("operators cleared")
}

// LoadDefaults replaces the registered operators with the default set. Named
// constants are not affected. Default operators whose tokens are named
// constants are left out.
func (env *Env) LoadDefaults() {
	env.ClearOperators()
	for _, op := range defaultOperators {
		if _, ok := env.consts[op.token]; ok {
			env.log.Debug("default operator shadowed by constant", slog.String("token", op.token))
			continue
		}
		if err := env.addOperator(op); err != nil {
			panic("arithmancy: default operator refused: " + err.Error())
		}
	}
	env.log.Debug("default operators loaded", slog.Int("count", len(defaultOperators)))
}

// Lookup returns the registered operator with the given token and arity, or
// nil if there is none.
func (env *Env) Lookup(token string, a Arity) *Operator {
	return env.table(a)[token]
}

// Operators returns every registered operator, ordered by token, unary before
// binary.
func (env *Env) Operators() []*Operator {
	ops := make([]*Operator, 0, len(env.unary)+len(env.binary))
	for _, op := range env.unary {
		ops = append(ops, op)
	}
	for _, op := range env.binary {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].token != ops[j].token {
			return ops[i].token < ops[j].token
		}
		return ops[i].arity < ops[j].arity
	})
	return ops
}

// invalidate discards the cached token list and valid character set.
func (env *Env) invalidate() {
	env.tokens = nil
	env.valid = nil
}

// symbols returns every registered operator token and constant name, longest
// first, so the lexer can take the longest match at each position.
func (env *Env) symbols() []string {
	if env.tokens != nil {
		return env.tokens
	}
	seen := make(map[string]bool, len(env.unary)+len(env.binary)+len(env.consts))
	toks := make([]string, 0, len(seen))
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			toks = append(toks, s)
		}
	}
	for k := range env.unary {
		add(k)
	}
	for k := range env.binary {
		add(k)
	}
	for k := range env.consts {
		add(k)
	}
	sort.Slice(toks, func(i, j int) bool {
		if len(toks[i]) != len(toks[j]) {
			return len(toks[i]) > len(toks[j])
		}
		return toks[i] < toks[j]
	})
	env.tokens = toks
	return toks
}

// opchars returns the set of runes that appear in registered operator tokens.
func (env *Env) opchars() map[rune]bool {
	if env.valid != nil {
		return env.valid
	}
	v := make(map[rune]bool)
	for k := range env.unary {
		for _, r := range k {
			v[r] = true
		}
	}
	for k := range env.binary {
		for _, r := range k {
			v[r] = true
		}
	}
	env.valid = v
	return v
}
