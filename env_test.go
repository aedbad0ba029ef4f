package arithmancy

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNewEnvOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		env := NewEnv()
		if len(env.Operators()) != len(defaultOperators) {
			t.Errorf("want %d operators, got %d", len(defaultOperators), len(env.Operators()))
		}
		if len(env.NamedConstants()) != len(defaultConstants) {
			t.Errorf("want %d constants, got %v", len(defaultConstants), env.NamedConstants())
		}
	})
	t.Run("without", func(t *testing.T) {
		env := NewEnv(WithoutDefaults())
		if ops := env.Operators(); len(ops) != 0 {
			t.Errorf("operators without defaults: %v", ops)
		}
		if c := env.NamedConstants(); len(c) != 0 {
			t.Errorf("constants without defaults: %v", c)
		}
	})
	t.Run("added", func(t *testing.T) {
		mod := NewBinary("mod", PrecMul, math.Mod)
		env := NewEnv(WithOperators(mod), WithConstant("tau", 2*math.Pi), WithoutDefaults())
		if env.Lookup("mod", Binary) != mod {
			t.Errorf("mod not registered")
		}
		if env.Lookup("+", Binary) != nil {
			t.Errorf("defaults registered")
		}
		if c := env.NamedConstants(); len(c) != 1 || c["tau"] != 2*math.Pi {
			t.Errorf("wrong constants %v", c)
		}
	})
	t.Run("logger", func(t *testing.T) {
		var b bytes.Buffer
		l := slog.New(slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}))
		env := NewEnv(WithLogger(l))
		if _, err := env.Parse("1+"); err == nil {
			t.Fatal("no error")
		}
		s := b.String()
		if !strings.Contains(s, "default operators loaded") {
			t.Errorf("no operator records in %q", s)
		}
		if !strings.Contains(s, `src=1+`) {
			t.Errorf("no parse record in %q", s)
		}
	})
}

func TestNewEnvPanics(t *testing.T) {
	cases := []struct {
		name string
		opt  EnvOption
	}{
		{"operator", WithOperators(NewFunc("sinh", math.Sinh))},
		{"constant", WithConstant("pi", 3)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic")
				}
			}()
			NewEnv(c.opt)
		})
	}
}

func TestClone(t *testing.T) {
	env := NewEnv(WithConstant("tau", 2*math.Pi))
	if _, err := env.Parse("x + y"); err != nil {
		t.Fatal(err)
	}
	c := env.Clone()
	if c.Variable("x") != nil {
		t.Errorf("clone has variables of the last parse")
	}
	if c.NamedConstants()["tau"] != 2*math.Pi {
		t.Errorf("clone lost constant tau")
	}
	if c.Lookup("sin", Unary) != env.Lookup("sin", Unary) {
		t.Errorf("clone has different descriptor for sin")
	}

	if err := c.AddOperator(NewBinary("mod", PrecMul, math.Mod)); err != nil {
		t.Fatal(err)
	}
	if err := c.AddNamedConstant("phi", math.Phi); err != nil {
		t.Fatal(err)
	}
	c.ClearOperators()
	if env.Lookup("mod", Binary) != nil || env.Lookup("+", Binary) == nil {
		t.Errorf("operator changes leaked from clone")
	}
	if _, ok := env.NamedConstants()["phi"]; ok {
		t.Errorf("constant leaked from clone")
	}

	a, err := c.Parse("x")
	if err != nil {
		t.Fatal(err)
	}
	a.Var("x").Bind(1)
	if env.Variable("x").Bound() {
		t.Errorf("binding in clone affected the cloned Env")
	}
}
