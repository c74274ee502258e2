package symbolic

// Diff returns ∂e/∂name.
func (e Expr) Diff(name string) Expr {
	return diff(e.root(), name)
}

func diff(n *node, name string) Expr {
	one := Constant(1)
	switch n.op {
	case opConst:
		return Constant(0)
	case opVar:
		if n.name == name {
			return one
		}
		return Constant(0)
	}

	a := Expr{n.a}
	da := diff(n.a, name)
	switch n.op {
	case opNeg:
		return da.Neg()
	case opSin:
		return a.Cos().Mul(da)
	case opCos:
		return a.Sin().Neg().Mul(da)
	case opSqrt:
		return da.Div(Constant(2).Mul(a.Sqrt()))
	}

	b := Expr{n.b}
	db := diff(n.b, name)
	switch n.op {
	case opAdd:
		return da.Add(db)
	case opSub:
		return da.Sub(db)
	case opMul:
		return da.Mul(b).Add(a.Mul(db))
	case opDiv:
		return da.Mul(b).Sub(a.Mul(db)).Div(b.Mul(b))
	case opAtan2:
		// d atan2(a, b) = (b·da − a·db) / (a² + b²)
		return b.Mul(da).Sub(a.Mul(db)).Div(a.Mul(a).Add(b.Mul(b)))
	}
	panic("symbolic: unknown op")
}
