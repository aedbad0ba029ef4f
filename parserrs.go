package arithmancy

import (
	"strconv"
	"strings"
)

// InvalidCharacterError is an error indicating a character that is not part
// of any number, name, parenthesis, or registered operator. It implements
// InputError.
type InvalidCharacterError struct {
	// Col is the position of the character.
	Col int
	// Char is the offending character, after case folding.
	Char rune
}

func (err *InvalidCharacterError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *InvalidCharacterError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched close parenthesis, or one past the
	// end of the input when an open parenthesis is never closed.
	Col int
	// Close is true when the unmatched parenthesis is a closing one.
	Close bool
}

func (err *BracketError) Error() string {
	if err.Close {
		return errpos(err.Col, "close bracket ) with no open bracket")
	}
	return errpos(err.Col, "open bracket ( with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or
// parenthesized subexpression. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string at
	// the end of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator with nothing on the side
// where it needs an operand. It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
	// Left is whether the missing operand is the left one.
	Left bool
}

func (err *OperandError) Error() string {
	s := "right"
	if err.Left {
		s = "left"
	}
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no "+s+" operand")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// IncompleteOperandError is an error indicating an operator whose neighbor is
// itself an operator still waiting for operands when the first operator is
// reduced, e.g. the sin in "a^sin x". It implements InputError.
type IncompleteOperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
	// Operand is the token of the incomplete neighbor.
	Operand string
	// Left is whether the incomplete neighbor is the left operand.
	Left bool
}

func (err *IncompleteOperandError) Error() string {
	s := "right"
	if err.Left {
		s = "left"
	}
	return errpos(err.Col, s+" operand "+strconv.Quote(err.Operand)+" of operator "+strconv.Quote(err.Operator)+" is incomplete")
}

func (err *IncompleteOperandError) Pos() int {
	return err.Col
}

// UncollapsedError is an error indicating an expression that did not reduce
// to a single tree, e.g. two terms side by side. It implements InputError.
type UncollapsedError struct {
	// Col is the position of the second fragment.
	Col int
	// Fragments holds the prefix form of each leftover fragment.
	Fragments []string
}

func (err *UncollapsedError) Error() string {
	var b strings.Builder
	b.WriteString("uncollapsed expression: [")
	for _, f := range err.Fragments {
		b.WriteString(" {")
		b.WriteString(f)
		b.WriteByte('}')
	}
	b.WriteString(" ]")
	return errpos(err.Col, b.String())
}

func (err *UncollapsedError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input to Parse implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*InvalidCharacterError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*IncompleteOperandError)(nil)
	_ InputError = (*UncollapsedError)(nil)
)

// RegistrationError is an error returned when an Env refuses to register an
// operator or named constant.
type RegistrationError struct {
	// Token is the token or constant name that was refused.
	Token string
	// Reason describes the conflict.
	Reason string
}

func (err *RegistrationError) Error() string {
	return "cannot register " + strconv.Quote(err.Token) + ": " + err.Reason
}
