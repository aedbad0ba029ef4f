package arithmancy_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/arithmancy"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("1-(-3.7+2)")
	f.Add("exp sin 0")
	f.Add("a^sin x")
	f.Add("((2.)")
	f.Fuzz(func(t *testing.T, s string) {
		env := arithmancy.NewEnv()
		a, err := env.Parse(s)
		if err != nil {
			if _, ok := err.(arithmancy.InputError); !ok {
				t.Errorf("%q: error %#v is not an InputError", s, err)
			}
			return
		}
		if strings.Contains(a.Prefix(), "Inf") {
			// Overflowing literals have no finite rendering.
			return
		}
		// Rendered trees parse back to the same tree.
		b, err := env.Parse(a.String())
		if err != nil {
			t.Fatalf("%q rendered as %q, which fails to parse: %v", s, a, err)
		}
		if a.Prefix() != b.Prefix() {
			t.Errorf("%q: reparsing %q gave %s, want %s", s, a, b.Prefix(), a.Prefix())
		}
	})
}
