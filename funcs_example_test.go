package arithmancy_test

import (
	"fmt"
	"math"
	"strings"

	"github.com/zephyrtronium/arithmancy"
)

func ExampleWithOperators() {
	env := arithmancy.NewEnv(arithmancy.WithOperators(
		arithmancy.NewBinary("mod", arithmancy.PrecMul, math.Mod),
		arithmancy.NewFunc("cube", func(x float64) float64 { return x * x * x }),
	))

	a, _ := env.Parse("cube 3 mod 5")
	r, _ := a.Calculate()
	fmt.Println(r, a)
	fmt.Println(a.Prefix())

	// Output:
	// 2 ((cube 3) mod 5)
	// mod(cube(3),5)
}

func ExampleExpr_FreeVars() {
	env := arithmancy.NewEnv()
	a, _ := env.Parse("v*t - g*t^2/2")
	fmt.Println(strings.Join(a.Vars(), " "))

	a.Var("g").Bind(10)
	a.Var("v").Bind(20)
	for _, t := range []float64{0, 1, 2, 4} {
		a.Var("t").Bind(t)
		r, _ := a.Calculate()
		fmt.Println(t, r)
	}

	// Output:
	// g t v
	// 0 0
	// 1 15
	// 2 20
	// 4 0
}

func ExampleWithConstant() {
	env := arithmancy.NewEnv(arithmancy.WithConstant("c", 299792458))
	_, err := env.Parse("m c^2")
	fmt.Println(err)

	a, _ := env.Parse("m*c^2")
	env.SetVariable("m", 1e-3)
	r, _ := a.Calculate()
	fmt.Printf("%s = %.4g\n", a, r)

	// Output:
	// 4: uncollapsed expression: [ {m} {^(c,2)} ]
	// (m * (c ^ 2)) = 8.988e+13
}
