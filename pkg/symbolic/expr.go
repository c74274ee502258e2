// Package symbolic provides an expression-tree scalar so that kinematics
// can be computed in closed form over named variables.
//
// Expr satisfies scalar.Scalar[Expr]. Constructors fold constants and
// drop additive and multiplicative identities, so propagating a chain of
// fixed joints yields compact expressions.
package symbolic

import (
	"math"
	"sort"

	kerrors "multibody-kinematics/pkg/errors"
)

type op uint8

const (
	opConst op = iota
	opVar
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opSin
	opCos
	opSqrt
	opAtan2
)

type node struct {
	op   op
	val  float64
	name string
	a, b *node
}

// Expr is an immutable symbolic expression. The zero value is the
// constant 0.
type Expr struct {
	n *node
}

// Constant returns the constant expression v.
func Constant(v float64) Expr {
	return Expr{&node{op: opConst, val: v}}
}

// Variable returns the free variable name.
func Variable(name string) Expr {
	return Expr{&node{op: opVar, name: name}}
}

// Variables returns one variable per name, in order.
func Variables(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, n := range names {
		out[i] = Variable(n)
	}
	return out
}

func (e Expr) root() *node {
	if e.n == nil {
		return &node{op: opConst}
	}
	return e.n
}

// IsConstant reports whether e contains no variables.
func (e Expr) IsConstant() bool {
	return e.root().op == opConst
}

func (e Expr) constVal() (float64, bool) {
	n := e.root()
	return n.val, n.op == opConst
}

func binary(o op, a, b Expr) Expr {
	return Expr{&node{op: o, a: a.root(), b: b.root()}}
}

func unary(o op, a Expr) Expr {
	return Expr{&node{op: o, a: a.root()}}
}

func (e Expr) Add(o Expr) Expr {
	x, xc := e.constVal()
	y, yc := o.constVal()
	switch {
	case xc && yc:
		return Constant(x + y)
	case xc && x == 0:
		return o
	case yc && y == 0:
		return e
	}
	return binary(opAdd, e, o)
}

func (e Expr) Sub(o Expr) Expr {
	x, xc := e.constVal()
	y, yc := o.constVal()
	switch {
	case xc && yc:
		return Constant(x - y)
	case yc && y == 0:
		return e
	case xc && x == 0:
		return o.Neg()
	}
	return binary(opSub, e, o)
}

func (e Expr) Mul(o Expr) Expr {
	x, xc := e.constVal()
	y, yc := o.constVal()
	switch {
	case xc && yc:
		return Constant(x * y)
	case (xc && x == 0) || (yc && y == 0):
		return Constant(0)
	case xc && x == 1:
		return o
	case yc && y == 1:
		return e
	case xc && x == -1:
		return o.Neg()
	case yc && y == -1:
		return e.Neg()
	}
	return binary(opMul, e, o)
}

func (e Expr) Div(o Expr) Expr {
	x, xc := e.constVal()
	y, yc := o.constVal()
	switch {
	case xc && yc:
		return Constant(x / y)
	case yc && y == 1:
		return e
	case xc && x == 0:
		return Constant(0)
	}
	return binary(opDiv, e, o)
}

func (e Expr) Neg() Expr {
	n := e.root()
	switch n.op {
	case opConst:
		return Constant(-n.val)
	case opNeg:
		return Expr{n.a}
	}
	return unary(opNeg, e)
}

func (e Expr) Sin() Expr {
	if x, ok := e.constVal(); ok {
		return Constant(math.Sin(x))
	}
	return unary(opSin, e)
}

func (e Expr) Cos() Expr {
	if x, ok := e.constVal(); ok {
		return Constant(math.Cos(x))
	}
	return unary(opCos, e)
}

func (e Expr) Sqrt() Expr {
	if x, ok := e.constVal(); ok {
		return Constant(math.Sqrt(x))
	}
	return unary(opSqrt, e)
}

// Atan2 returns atan2(e, x).
func (e Expr) Atan2(x Expr) Expr {
	yv, yc := e.constVal()
	xv, xc := x.constVal()
	if yc && xc {
		return Constant(math.Atan2(yv, xv))
	}
	return binary(opAtan2, e, x)
}

func (Expr) FromFloat(v float64) Expr { return Constant(v) }

// Float returns the value of a constant expression and NaN otherwise.
func (e Expr) Float() float64 {
	if v, ok := e.constVal(); ok {
		return v
	}
	return math.NaN()
}

// FreeVariables returns the sorted names of the variables in e.
func (e Expr) FreeVariables() []string {
	seen := make(map[string]struct{})
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		if n.op == opVar {
			seen[n.name] = struct{}{}
			return
		}
		walk(n.a)
		walk(n.b)
	}
	walk(e.root())
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate computes e with variables bound by env.
func (e Expr) Evaluate(env map[string]float64) (float64, error) {
	return eval(e.root(), env)
}

func eval(n *node, env map[string]float64) (float64, error) {
	switch n.op {
	case opConst:
		return n.val, nil
	case opVar:
		v, ok := env[n.name]
		if !ok {
			return 0, kerrors.New(kerrors.ErrUnboundVariable, "variable '"+n.name+"' has no value").
				SetContext("variable", n.name)
		}
		return v, nil
	}

	a, err := eval(n.a, env)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case opNeg:
		return -a, nil
	case opSin:
		return math.Sin(a), nil
	case opCos:
		return math.Cos(a), nil
	case opSqrt:
		return math.Sqrt(a), nil
	}

	b, err := eval(n.b, env)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case opAdd:
		return a + b, nil
	case opSub:
		return a - b, nil
	case opMul:
		return a * b, nil
	case opDiv:
		return a / b, nil
	case opAtan2:
		return math.Atan2(a, b), nil
	}
	panic("symbolic: unknown op")
}

// Substitute replaces the variables named in env by constants and
// re-simplifies.
func (e Expr) Substitute(env map[string]float64) Expr {
	return rebuild(e.root(), func(n *node) (Expr, bool) {
		if n.op != opVar {
			return Expr{}, false
		}
		v, ok := env[n.name]
		if !ok {
			return Expr{}, false
		}
		return Constant(v), true
	})
}

func rebuild(n *node, leaf func(*node) (Expr, bool)) Expr {
	if r, ok := leaf(n); ok {
		return r
	}
	switch n.op {
	case opConst, opVar:
		return Expr{n}
	}
	a := rebuild(n.a, leaf)
	switch n.op {
	case opNeg:
		return a.Neg()
	case opSin:
		return a.Sin()
	case opCos:
		return a.Cos()
	case opSqrt:
		return a.Sqrt()
	}
	b := rebuild(n.b, leaf)
	switch n.op {
	case opAdd:
		return a.Add(b)
	case opSub:
		return a.Sub(b)
	case opMul:
		return a.Mul(b)
	case opDiv:
		return a.Div(b)
	case opAtan2:
		return a.Atan2(b)
	}
	panic("symbolic: unknown op")
}
