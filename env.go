package arithmancy

import (
	"log/slog"
)

// Env holds the operators and named constants a parser recognizes, plus the
// variables of the most recent parse. It is not safe to use an Env
// concurrently; use Clone to give each goroutine its own.
type Env struct {
	unary  map[string]*Operator
	binary map[string]*Operator
	consts map[string]float64
	vars   map[string]*Variable

	// tokens is every operator token and constant name, longest first, or nil
	// if the registries have changed since it was computed.
	tokens []string
	// valid is the set of runes in operator tokens, or nil if stale.
	valid map[rune]bool

	log *slog.Logger
}

// EnvOption is an option used when creating an Env.
type EnvOption interface {
	envOption()
}

type (
	opsopt   []*Operator
	constopt struct {
		name string
		val  float64
	}
	logopt        struct{ l *slog.Logger }
	nodefaultsopt struct{}
)

func (opsopt) envOption()        {}
func (constopt) envOption()      {}
func (logopt) envOption()        {}
func (nodefaultsopt) envOption() {}

// WithOperators registers operators in addition to the defaults.
func WithOperators(ops ...*Operator) EnvOption {
	return opsopt(ops)
}

// WithConstant registers a named constant in addition to the defaults.
func WithConstant(name string, val float64) EnvOption {
	return constopt{name, val}
}

// WithLogger sets the logger the Env writes debug records to. By default,
// records are discarded.
func WithLogger(l *slog.Logger) EnvOption {
	return logopt{l}
}

// WithoutDefaults starts the Env with no operators and no named constants.
func WithoutDefaults() EnvOption {
	return nodefaultsopt{}
}

// NewEnv creates an Env with the default operators and the constants pi and e,
// then applies options. NewEnv panics if an operator or constant given in the
// options is refused.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{
		unary:  make(map[string]*Operator),
		binary: make(map[string]*Operator),
		consts: make(map[string]float64),
		vars:   make(map[string]*Variable),
		log:    slog.New(slog.DiscardHandler),
	}
	defaults := true
	// Loggers and defaults first, so that everything else logs and adds to
	// the defaults.
	for _, opt := range opts {
		switch opt := opt.(type) {
		case logopt:
			if opt.l != nil {
				env.log = opt.l
			}
		case nodefaultsopt:
			defaults = false
		}
	}
	if defaults {
		env.LoadDefaults()
		env.ResetNamedConstants()
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case opsopt:
			for _, op := range opt {
				if err := env.AddOperator(op); err != nil {
					panic("arithmancy: " + err.Error())
				}
			}
		case constopt:
			if err := env.AddNamedConstant(opt.name, opt.val); err != nil {
				panic("arithmancy: " + err.Error())
			}
		case logopt, nodefaultsopt:
			// Already done.
		default:
			panic("arithmancy: unknown option type")
		}
	}
	return &env
}

// Clone creates a copy of an Env with the same operators, constants, and
// logger, and no variables. Operators are shared, since they are immutable.
func (env *Env) Clone() *Env {
	n := Env{
		unary:  make(map[string]*Operator, len(env.unary)),
		binary: make(map[string]*Operator, len(env.binary)),
		consts: make(map[string]float64, len(env.consts)),
		vars:   make(map[string]*Variable),
		log:    env.log,
	}
	for k, v := range env.unary {
		n.unary[k] = v
	}
	for k, v := range env.binary {
		n.binary[k] = v
	}
	for k, v := range env.consts {
		n.consts[k] = v
	}
	return &n
}
