package symbolic

import (
	"strconv"
	"strings"
)

// precedence levels for printing
const (
	precAdd = iota + 1
	precMul
	precUnary
	precAtom
)

func (n *node) prec() int {
	switch n.op {
	case opAdd, opSub:
		return precAdd
	case opMul, opDiv:
		return precMul
	case opNeg:
		return precUnary
	}
	return precAtom
}

// String renders e in infix form with minimal parentheses.
func (e Expr) String() string {
	var sb strings.Builder
	write(&sb, e.root())
	return sb.String()
}

func write(sb *strings.Builder, n *node) {
	switch n.op {
	case opConst:
		sb.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case opVar:
		sb.WriteString(n.name)
	case opNeg:
		sb.WriteByte('-')
		child(sb, n.a, precUnary, false)
	case opSin, opCos, opSqrt:
		sb.WriteString(map[op]string{opSin: "sin", opCos: "cos", opSqrt: "sqrt"}[n.op])
		sb.WriteByte('(')
		write(sb, n.a)
		sb.WriteByte(')')
	case opAtan2:
		sb.WriteString("atan2(")
		write(sb, n.a)
		sb.WriteString(", ")
		write(sb, n.b)
		sb.WriteByte(')')
	default:
		p := n.prec()
		child(sb, n.a, p, false)
		sb.WriteString(map[op]string{opAdd: " + ", opSub: " - ", opMul: " * ", opDiv: " / "}[n.op])
		// right operands of - and / bind tighter
		child(sb, n.b, p, n.op == opSub || n.op == opDiv)
	}
}

func child(sb *strings.Builder, n *node, parent int, strict bool) {
	p := n.prec()
	if n.op == opConst && n.val < 0 {
		p = precUnary
	}
	if p < parent || (strict && p == parent) {
		sb.WriteByte('(')
		write(sb, n)
		sb.WriteByte(')')
		return
	}
	write(sb, n)
}
