package arithmancy

import (
	"strconv"
)

// Calculate evaluates the expression with the current values of its
// variables. If a variable is unbound, the result is an *UnboundError.
// Division by zero and out-of-domain function arguments follow floating-point
// semantics, producing infinities or NaN rather than errors.
func (e *Expr) Calculate() (float64, error) {
	return e.n.eval()
}

func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeConst:
		return n.val, nil
	case nodeVar:
		if !n.v.bound {
			return 0, &UnboundError{Name: n.v.name}
		}
		return n.v.val, nil
	case nodeApply:
		y, err := n.right.eval()
		if err != nil {
			return 0, err
		}
		if n.op.arity == Unary {
			return n.op.apply(0, y), nil
		}
		x, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return n.op.apply(x, y), nil
	default:
		panic("arithmancy: invalid AST node " + n.kind.String())
	}
}

// EvalString is a shortcut to parse an expression with the default operators
// and constants, bind its variables from vars, and calculate it. Names in vars
// that the expression doesn't use are ignored.
func EvalString(src string, vars map[string]float64) (float64, error) {
	e, err := NewEnv().Parse(src)
	if err != nil {
		return 0, err
	}
	for _, v := range e.FreeVars() {
		if x, ok := vars[v.name]; ok {
			v.Bind(x)
		}
	}
	return e.Calculate()
}

// UnboundError is an error from calculating an expression that uses a
// variable with no value.
type UnboundError struct {
	// Name is the name of the unbound variable.
	Name string
}

func (err *UnboundError) Error() string {
	return "unbound variable: " + strconv.Quote(err.Name)
}
