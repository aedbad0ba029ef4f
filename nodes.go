package arithmancy

import (
	"sort"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind
	// pos is the column of the token that created the node.
	pos int

	// val is the value of a constant.
	val float64
	// name is the display name of a named constant.
	name string
	// v is the cell of a variable.
	v *Variable
	// op is the operator of an application.
	op *Operator

	// left is the left operand of a binary application.
	left *node
	// right is the operand of a unary application or the right operand of a
	// binary one.
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst // push val
	nodeVar   // push v's value
	nodeApply // eval right, then left if binary, apply op
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeConst:
		return "Const"
	case nodeVar:
		return "Var"
	case nodeApply:
		return "Apply"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// complete returns whether the node has taken its operands. Operators only
// take complete operands, so a complete node is complete throughout.
func (n *node) complete() bool {
	return n.kind != nodeApply || n.right != nil
}

// pending returns whether the node is an application at the given precedence
// that has not yet taken its operands.
func (n *node) pending(prec Precedence) bool {
	return n.kind == nodeApply && n.right == nil && n.op.prec == prec
}

// label is the token that introduced the node, for error messages.
func (n *node) label() string {
	switch n.kind {
	case nodeApply:
		return n.op.token
	default:
		return n.prefix()
	}
}

// freeVars appends each variable of the tree that isn't yet in seen.
func (n *node) freeVars(seen map[*Variable]bool, vars []*Variable) []*Variable {
	if n == nil {
		return vars
	}
	switch n.kind {
	case nodeVar:
		if !seen[n.v] {
			seen[n.v] = true
			vars = append(vars, n.v)
		}
	case nodeApply:
		vars = n.left.freeVars(seen, vars)
		vars = n.right.freeVars(seen, vars)
	}
	return vars
}

func (n *node) prefix() string {
	var b strings.Builder
	n.fmtPrefix(&b)
	return b.String()
}

// fmtPrefix writes the node in function call form: tok(x) or tok(x,y).
func (n *node) fmtPrefix(b *strings.Builder) {
	switch n.kind {
	case nodeConst:
		n.fmtConst(b)
	case nodeVar:
		b.WriteString(n.v.name)
	case nodeApply:
		b.WriteString(n.op.token)
		b.WriteByte('(')
		if n.op.arity == Binary {
			n.left.fmtOperand(b, (*node).fmtPrefix)
			b.WriteByte(',')
		}
		n.right.fmtOperand(b, (*node).fmtPrefix)
		b.WriteByte(')')
	default:
		panic("arithmancy: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtInfix writes the node in parenthesized infix form: (tok x) or (x tok y).
// Every application is parenthesized, so the result reparses to the same tree
// regardless of precedence.
func (n *node) fmtInfix(b *strings.Builder) {
	switch n.kind {
	case nodeConst:
		n.fmtConst(b)
	case nodeVar:
		b.WriteString(n.v.name)
	case nodeApply:
		b.WriteByte('(')
		if n.op.arity == Binary {
			n.left.fmtOperand(b, (*node).fmtInfix)
			b.WriteByte(' ')
		}
		b.WriteString(n.op.token)
		b.WriteByte(' ')
		n.right.fmtOperand(b, (*node).fmtInfix)
		b.WriteByte(')')
	default:
		panic("arithmancy: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtOperand writes an operand with f, or a placeholder if it is missing.
func (n *node) fmtOperand(b *strings.Builder, f func(*node, *strings.Builder)) {
	if n == nil {
		// Incomplete operators only show up in error messages.
		b.WriteByte('_')
		return
	}
	f(n, b)
}

func (n *node) fmtConst(b *strings.Builder) {
	if n.name != "" {
		b.WriteString(n.name)
		return
	}
	b.WriteString(strconv.FormatFloat(n.val, 'f', -1, 64))
}

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Prefix renders the expression in function call form, e.g. "*(+(1,x),2)"
// for "(1+x)*2".
func (e *Expr) Prefix() string {
	return e.n.prefix()
}

// String renders the expression in fully parenthesized infix form, e.g.
// "((1 + x) * 2)" for "(1+x)*2". The result parses to an equivalent tree.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmtInfix(&b)
	return b.String()
}

// FreeVars returns the distinct variables of the expression, ordered by name.
// Binding them and calling Calculate evaluates the expression for the new
// values without reparsing.
func (e *Expr) FreeVars() []*Variable {
	vars := e.n.freeVars(make(map[*Variable]bool), nil)
	sortVars(vars)
	return vars
}

// Vars returns the names of the variables of the expression in sorted order.
func (e *Expr) Vars() []string {
	vars := e.FreeVars()
	r := make([]string, len(vars))
	for i, v := range vars {
		r[i] = v.name
	}
	return r
}

// Var returns the variable of the expression with the given name, or nil if
// the expression does not use it.
func (e *Expr) Var(name string) *Variable {
	for _, v := range e.n.freeVars(make(map[*Variable]bool), nil) {
		if v.name == name {
			return v
		}
	}
	return nil
}

func sortVars(vars []*Variable) {
	sort.Slice(vars, func(i, j int) bool { return vars[i].name < vars[j].name })
}
