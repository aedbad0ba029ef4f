// Package arithmancy parses arithmetic expressions into trees that can be
// evaluated many times over float64 values.
//
// Expressions are made of numbers, named constants, variables, operators,
// functions, and parentheses. Functions are unary operators, so "exp sin x"
// is exp(sin(x)) and parentheses are only needed to group. Exponentiation
// binds tightest, then functions and unary signs, then multiplication and
// division, then addition and subtraction. "-x^2" is "-(x^2)", and "2*-1" is
// a multiplication by negative one.
//
// An Env holds the operators and named constants known to the parser, along
// with the variables of the most recent parse. Variables let you parse an
// expression once and evaluate it for many inputs: bind each handle returned
// by Expr.FreeVars, then call Expr.Calculate again without reparsing.
//
// An Env is not safe for concurrent use. Clone an Env for each goroutine that
// parses.
package arithmancy
