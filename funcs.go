package arithmancy

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// defaultOperators is the operator set loaded by NewEnv and LoadDefaults.
// No token here is a substring of another of a different length.
var defaultOperators = []*Operator{
	NewBinary("+", PrecAdd, func(x, y float64) float64 { return x + y }),
	NewBinary("-", PrecAdd, func(x, y float64) float64 { return x - y }),
	NewBinary("*", PrecMul, func(x, y float64) float64 { return x * y }),
	NewBinary("/", PrecMul, func(x, y float64) float64 { return x / y }),
	NewBinary("^", PrecPow, math.Pow),

	NewUnary("-", PrecFunc, func(x float64) float64 { return -x }),
	NewUnary("+", PrecFunc, func(x float64) float64 { return x }),

	NewFunc("ln", math.Log),
	NewFunc("log", math.Log10),
	NewFunc("exp", math.Exp),
	NewFunc("sqrt", math.Sqrt),
	NewFunc("abs", math.Abs),
	NewFunc("sin", math.Sin),
	NewFunc("cos", math.Cos),
	NewFunc("tg", math.Tan),
}

// defaultConstants is the named constant set loaded by NewEnv and
// ResetNamedConstants.
var defaultConstants = map[string]float64{
	"pi": constant(func(z *big.Float) { bigfloat.Pi(z) }),
	"e": constant(func(z *big.Float) {
		var one big.Float
		one.SetPrec(z.Prec()).SetInt64(1)
		bigfloat.Exp(z, &one)
	}),
}

// constant computes a constant with a few guard bits beyond float64 and
// rounds it to the nearest float64.
func constant(f func(z *big.Float)) float64 {
	z := new(big.Float).SetPrec(128)
	f(z)
	r, _ := z.Float64()
	return r
}
