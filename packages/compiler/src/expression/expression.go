// Package expression builds runtime expression strings from typed nodes.
// The compiler never concatenates predicate logic ad hoc: expressions are
// assembled as small trees and rendered in one explicit step, so edge cases
// (operator joining, trailing-operator stripping) are builder operations
// with their own tests.
package expression

import (
	"encoding/json"
	"fmt"
	"strings"

	"vgc-go/packages/compiler/src/spec"
)

// Expr is a renderable expression node.
type Expr interface {
	// Render produces the runtime expression string for this node.
	Render() string
}

// RawExpr is a pre-rendered expression fragment.
type RawExpr struct {
	Source string
}

// NewRaw creates a raw expression node.
func NewRaw(source string) *RawExpr {
	return &RawExpr{Source: source}
}

// Render implements Expr.
func (r *RawExpr) Render() string { return r.Source }

// LiteralExpr renders a Go value as a JSON literal.
type LiteralExpr struct {
	Value interface{}
}

// NewLiteral creates a literal expression node.
func NewLiteral(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

// Render implements Expr.
func (l *LiteralExpr) Render() string {
	b, err := json.Marshal(l.Value)
	if err != nil {
		return "null"
	}
	return string(b)
}

// ArrayExpr renders a bracketed, comma-joined list of sub-expressions.
type ArrayExpr struct {
	Items []Expr
}

// NewArray creates an array expression node.
func NewArray(items ...Expr) *ArrayExpr {
	return &ArrayExpr{Items: items}
}

// Render implements Expr.
func (a *ArrayExpr) Render() string {
	parts := make([]string, len(a.Items))
	for i, item := range a.Items {
		parts[i] = item.Render()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FieldAccessExpr renders a bracketed member access, `name["field"]`.
type FieldAccessExpr struct {
	Name  string
	Field string
}

// NewFieldAccess creates a field-access expression node.
func NewFieldAccess(name, field string) *FieldAccessExpr {
	return &FieldAccessExpr{Name: name, Field: field}
}

// Render implements Expr.
func (f *FieldAccessExpr) Render() string {
	return fmt.Sprintf("%s[%q]", f.Name, f.Field)
}

// CallExpr renders a function invocation.
type CallExpr struct {
	Fn   string
	Args []Expr
}

// NewCall creates a call expression node.
func NewCall(fn string, args ...Expr) *CallExpr {
	return &CallExpr{Fn: fn, Args: args}
}

// Render implements Expr.
func (c *CallExpr) Render() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		parts[i] = arg.Render()
	}
	return c.Fn + "(" + strings.Join(parts, ", ") + ")"
}

// NotExpr renders a parenthesized logical negation.
type NotExpr struct {
	Operand Expr
}

// NewNot creates a negation node.
func NewNot(operand Expr) *NotExpr {
	return &NotExpr{Operand: operand}
}

// Render implements Expr.
func (n *NotExpr) Render() string {
	return "!(" + n.Operand.Render() + ")"
}

// JunctionExpr renders a chain of operands joined by a logical operator,
// each operand parenthesized when the chain has more than one member.
type JunctionExpr struct {
	Op       string
	Operands []Expr
}

// NewAnd creates a conjunction node.
func NewAnd(operands ...Expr) *JunctionExpr {
	return &JunctionExpr{Op: "&&", Operands: operands}
}

// NewOr creates a disjunction node.
func NewOr(operands ...Expr) *JunctionExpr {
	return &JunctionExpr{Op: "||", Operands: operands}
}

// Render implements Expr.
func (j *JunctionExpr) Render() string {
	if len(j.Operands) == 1 {
		return j.Operands[0].Render()
	}
	parts := make([]string, len(j.Operands))
	for i, op := range j.Operands {
		parts[i] = "(" + op.Render() + ")"
	}
	return strings.Join(parts, " "+j.Op+" ")
}

// WrapFn post-processes a rendered sub-expression; call sites use it to
// coerce values to a specific runtime representation.
type WrapFn func(expr string) string

func identity(expr string) string { return expr }

// AssembleInit renders a typed initial value as a runtime expression.
// Scalars are JSON-serialized then wrapped; date-time objects render through
// the datetime constructor then wrapped; arrays render element-wise with no
// wrap applied to the brackets themselves.
func AssembleInit(value interface{}, wrap WrapFn) string {
	if wrap == nil {
		wrap = identity
	}
	switch v := value.(type) {
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = AssembleInit(item, wrap)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *spec.DateTime:
		return wrap(DateTimeExpr(v).Render())
	case spec.DateTime:
		return wrap(DateTimeExpr(&v).Render())
	default:
		if spec.IsDateTime(value) {
			return wrap(DateTimeExpr(spec.ToDateTime(value)).Render())
		}
		return wrap(NewLiteral(value).Render())
	}
}

// DateTimeExpr builds the datetime constructor call for a calendar value.
// The runtime constructor takes a 0-based month; unset components fall back
// to the start of their period.
func DateTimeExpr(d *spec.DateTime) Expr {
	fn := "datetime"
	if d.UTC {
		fn = "utc"
	}
	args := []Expr{
		NewLiteral(intOr(d.Year, 0)),
		NewLiteral(monthArg(d)),
		NewLiteral(intOr(d.Date, 1)),
		NewLiteral(intOr(d.Hours, 0)),
		NewLiteral(intOr(d.Minutes, 0)),
		NewLiteral(intOr(d.Seconds, 0)),
		NewLiteral(intOr(d.Milliseconds, 0)),
	}
	return NewCall(fn, args...)
}

func monthArg(d *spec.DateTime) int {
	if d.Month != nil {
		return *d.Month - 1
	}
	if d.Quarter != nil {
		return (*d.Quarter - 1) * 3
	}
	return 0
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

// StripTrailingAnd removes exactly one trailing " && " from a rendered
// expression. Incrementally built conjunction strings end with a dangling
// operator; downstream expression parsing is sensitive to the exact
// formatting, so this strips precisely that four-character suffix and
// nothing else.
func StripTrailingAnd(expr string) string {
	if strings.HasSuffix(expr, " && ") {
		return expr[:len(expr)-4]
	}
	return expr
}
