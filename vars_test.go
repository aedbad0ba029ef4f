package arithmancy

import (
	"math"
	"reflect"
	"testing"
)

func TestVariableStates(t *testing.T) {
	v := &Variable{name: "v"}
	if _, ok := v.Value(); ok || v.Bound() {
		t.Errorf("new variable is bound: %v", v)
	}
	v.Bind(0)
	if x, ok := v.Value(); !ok || x != 0 {
		t.Errorf("bound to zero gave %g, %t", x, ok)
	}
	v.Bind(1.5)
	if x, ok := v.Value(); !ok || x != 1.5 {
		t.Errorf("bound to 1.5 gave %g, %t", x, ok)
	}
	if s := v.String(); s != "v=1.5" {
		t.Errorf("wrong string %q", s)
	}
	v.Unbind()
	if _, ok := v.Value(); ok {
		t.Errorf("unbound variable has a value")
	}
	if s := v.String(); s != "v (unbound)" {
		t.Errorf("wrong string %q", s)
	}
}

func TestSetVariable(t *testing.T) {
	env := NewEnv()
	if _, err := env.Parse("v * tau + tm"); err != nil {
		t.Fatal(err)
	}
	if err := env.SetVariable("tau", 2); err != nil {
		t.Errorf("setting tau: %v", err)
	}
	if x, ok := env.Variable("tau").Value(); !ok || x != 2 {
		t.Errorf("tau is %g, %t", x, ok)
	}

	err := env.SetVariable("tu", 1)
	u, ok := err.(*UnknownVariableError)
	if !ok {
		t.Fatalf("want *UnknownVariableError, got %#v", err)
	}
	if u.Name != "tu" {
		t.Errorf("wrong name %q", u.Name)
	}
	if !reflect.DeepEqual(u.Suggestions, []string{"tau"}) {
		t.Errorf("wrong suggestions %q", u.Suggestions)
	}
	if msg := err.Error(); msg != `unknown variable: "tu" (did you mean "tau"?)` {
		t.Errorf("wrong message %q", msg)
	}

	err = env.SetVariable("q", 1)
	if u, ok := err.(*UnknownVariableError); !ok || len(u.Suggestions) != 0 {
		t.Errorf("want *UnknownVariableError with no suggestions, got %#v", err)
	}

	env.UnsetAllVariables()
	if env.Variable("tau").Bound() {
		t.Errorf("tau still bound")
	}
}

func TestSetVariableBeforeParse(t *testing.T) {
	err := NewEnv().SetVariable("x", 1)
	if u, ok := err.(*UnknownVariableError); !ok || u.Suggestions != nil {
		t.Errorf("want *UnknownVariableError with no suggestions, got %#v", err)
	}
}

func TestNamedConstants(t *testing.T) {
	env := NewEnv()
	want := map[string]float64{"pi": math.Pi, "e": math.E}
	if got := env.NamedConstants(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong default constants: want %v, got %v", want, got)
	}

	cases := []struct {
		name string
		val  float64
		ok   bool
	}{
		{"tau", 2 * math.Pi, true},
		{"tau", 2 * math.Pi, true},
		{"tau", 6, false},
		{"pi", math.Pi, true},
		{"pi", 3, false},
		{"", 1, false},
		{"Phi", 1.618, false},
		{"c2", 1, false},
		{"nan", math.NaN(), true},
		{"nan", math.NaN(), true},
		{"sin", 1, false},
		{"ln", 2, false},
	}
	for _, c := range cases {
		err := env.AddNamedConstant(c.name, c.val)
		if c.ok != (err == nil) {
			t.Errorf("adding %q = %g: want ok %t, got %v", c.name, c.val, c.ok, err)
		}
		if err != nil {
			if _, ok := err.(*RegistrationError); !ok {
				t.Errorf("adding %q: want *RegistrationError, got %#v", c.name, err)
			}
		}
	}

	a, err := env.Parse("tau/2")
	if err != nil {
		t.Fatal(err)
	}
	if r, err := a.Calculate(); err != nil || r != math.Pi {
		t.Errorf("tau/2 gave %g, %v", r, err)
	}

	env.ResetNamedConstants()
	if got := env.NamedConstants(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong constants after reset: want %v, got %v", want, got)
	}
	a, err = env.Parse("tau")
	if err != nil {
		t.Fatal(err)
	}
	if !a.n.haskind(nodeVar) {
		t.Errorf("tau is still a constant after reset")
	}
}

func TestNamedConstantsCopy(t *testing.T) {
	env := NewEnv()
	m := env.NamedConstants()
	m["pi"] = 3
	if env.NamedConstants()["pi"] != math.Pi {
		t.Errorf("NamedConstants result aliases the Env")
	}
}

func TestConstantOperatorCollisions(t *testing.T) {
	env := NewEnv()
	env.ClearOperators()
	if err := env.AddNamedConstant("ln", 2); err != nil {
		t.Fatalf("ln refused with no operators: %v", err)
	}
	env.LoadDefaults()
	if op := env.Lookup("ln", Unary); op != nil {
		t.Errorf("ln registered over a constant: %v", op)
	}
	if env.Lookup("exp", Unary) == nil {
		t.Errorf("other defaults not loaded")
	}
	a, err := env.Parse("ln*3")
	if err != nil {
		t.Fatal(err)
	}
	if r, err := a.Calculate(); err != nil || r != 6 {
		t.Errorf("ln*3 gave %g, %v", r, err)
	}

	env = NewEnv(WithoutDefaults())
	if err := env.AddOperator(NewFunc("e", math.Exp)); err != nil {
		t.Fatal(err)
	}
	env.ResetNamedConstants()
	if c := env.NamedConstants(); len(c) != 1 || c["pi"] != math.Pi {
		t.Errorf("wrong constants with operator e: %v", c)
	}
	a, err = env.Parse("e 0")
	if err != nil {
		t.Fatal(err)
	}
	if r, err := a.Calculate(); err != nil || r != 1 {
		t.Errorf("e 0 gave %g, %v", r, err)
	}
}
