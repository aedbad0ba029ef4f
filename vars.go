package arithmancy

import (
	"log/slog"
	"math"
	"sort"
	"strconv"

	"github.com/sahilm/fuzzy"
)

// Variable is a named value cell shared by every mention of its name in one
// parsed expression. A Variable is either unbound or bound to a value.
type Variable struct {
	name  string
	val   float64
	bound bool
}

// Name returns the name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Bind sets the value of the variable.
func (v *Variable) Bind(x float64) {
	v.val = x
	v.bound = true
}

// Unbind clears the value of the variable. Calculating an expression that
// uses it fails until it is bound again.
func (v *Variable) Unbind() {
	v.val = 0
	v.bound = false
}

// Value returns the value of the variable and whether it is bound.
func (v *Variable) Value() (float64, bool) {
	return v.val, v.bound
}

// Bound returns whether the variable has a value.
func (v *Variable) Bound() bool {
	return v.bound
}

func (v *Variable) String() string {
	if !v.bound {
		return v.name + " (unbound)"
	}
	return v.name + "=" + strconv.FormatFloat(v.val, 'g', -1, 64)
}

// intern returns the variable for a name in the current parse, creating it on
// first mention.
func (env *Env) intern(name string) *Variable {
	if v := env.vars[name]; v != nil {
		return v
	}
	v := &Variable{name: name}
	env.vars[name] = v
	return v
}

// Variable returns the variable with the given name from the most recent
// parse, or nil if that parse did not mention it.
func (env *Env) Variable(name string) *Variable {
	return env.vars[name]
}

// SetVariable binds a variable from the most recent parse. If the parse did
// not mention the name, the result is an *UnknownVariableError suggesting
// similar names.
func (env *Env) SetVariable(name string, x float64) error {
	v := env.vars[name]
	if v == nil {
		return &UnknownVariableError{Name: name, Suggestions: env.suggest(name)}
	}
	v.Bind(x)
	return nil
}

// UnsetAllVariables unbinds every variable from the most recent parse.
func (env *Env) UnsetAllVariables() {
	for _, v := range env.vars {
		v.Unbind()
	}
}

// suggest returns names from the most recent parse that fuzzily match name,
// best first.
func (env *Env) suggest(name string) []string {
	if len(env.vars) == 0 {
		return nil
	}
	names := make([]string, 0, len(env.vars))
	for k := range env.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return nil
	}
	r := make([]string, len(matches))
	for i, m := range matches {
		r[i] = m.Str
	}
	return r
}

// AddNamedConstant registers a named constant. Names must be non-empty and
// made of lowercase ASCII letters and cannot be operator tokens. Adding a name
// that already exists succeeds only if the value is the same.
func (env *Env) AddNamedConstant(name string, x float64) error {
	if name == "" {
		return &RegistrationError{Reason: "empty constant name"}
	}
	for _, r := range name {
		if r < 'a' || r > 'z' {
			return &RegistrationError{Token: name, Reason: "constant names must be lowercase letters"}
		}
	}
	if env.unary[name] != nil || env.binary[name] != nil {
		return &RegistrationError{Token: name, Reason: "name is an operator token"}
	}
	if old, ok := env.consts[name]; ok {
		if old == x || math.IsNaN(old) && math.IsNaN(x) {
			return nil
		}
		return &RegistrationError{Token: name, Reason: "constant already has value " + strconv.FormatFloat(old, 'g', -1, 64)}
	}
	env.consts[name] = x
	env.invalidate()
	env.log.Debug("constant registered", slog.String("name", name), slog.Float64("value", x))
	return nil
}

// ResetNamedConstants replaces the named constants with the defaults, pi and e.
// Defaults whose names are operator tokens are left out.
func (env *Env) ResetNamedConstants() {
	env.consts = make(map[string]float64, len(defaultConstants))
	for k, v := range defaultConstants {
		if env.unary[k] != nil || env.binary[k] != nil {
			env.log.Debug("default constant shadowed by operator", slog.String("name", k))
			continue
		}
		env.consts[k] = v
	}
	env.invalidate()
	env.log.Debug("constants reset")
}

// NamedConstants returns a copy of the named constants.
func (env *Env) NamedConstants() map[string]float64 {
	m := make(map[string]float64, len(env.consts))
	for k, v := range env.consts {
		m[k] = v
	}
	return m
}

// UnknownVariableError is an error from binding a name that the most recent
// parse did not mention.
type UnknownVariableError struct {
	// Name is the unknown name.
	Name string
	// Suggestions lists variables of the last parse resembling Name.
	Suggestions []string
}

func (err *UnknownVariableError) Error() string {
	s := "unknown variable: " + strconv.Quote(err.Name)
	if len(err.Suggestions) != 0 {
		s += " (did you mean " + strconv.Quote(err.Suggestions[0]) + "?)"
	}
	return s
}
