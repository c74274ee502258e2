package scalar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Dual is a forward-mode automatic differentiation scalar carrying one
// derivative direction in its epsilon part.
//
// To obtain ∂f/∂q_i, seed q_i with Emag 1 and every other input with
// Emag 0; the Emag of each output is then its derivative along q_i.
type Dual dual.Number

// NewDual returns a Dual with value real and derivative emag.
func NewDual(real, emag float64) Dual {
	return Dual{Real: real, Emag: emag}
}

// Seed returns xs as Duals with the derivative direction set to
// component i. A negative i gives constants.
func Seed(xs []float64, i int) []Dual {
	out := make([]Dual, len(xs))
	for j, x := range xs {
		out[j] = Dual{Real: x}
		if j == i {
			out[j].Emag = 1
		}
	}
	return out
}

// Derivatives extracts the epsilon parts of xs.
func Derivatives(xs []Dual) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Emag
	}
	return out
}

func (d Dual) num() dual.Number { return dual.Number(d) }

func (d Dual) Add(o Dual) Dual { return Dual{Real: d.Real + o.Real, Emag: d.Emag + o.Emag} }
func (d Dual) Sub(o Dual) Dual { return Dual{Real: d.Real - o.Real, Emag: d.Emag - o.Emag} }
func (d Dual) Neg() Dual       { return Dual{Real: -d.Real, Emag: -d.Emag} }

func (d Dual) Mul(o Dual) Dual { return Dual(dual.Mul(d.num(), o.num())) }

// Div returns d/o with the quotient rule applied to the epsilon part.
func (d Dual) Div(o Dual) Dual {
	return Dual{
		Real: d.Real / o.Real,
		Emag: (d.Emag*o.Real - d.Real*o.Emag) / (o.Real * o.Real),
	}
}

func (d Dual) Sin() Dual  { return Dual(dual.Sin(d.num())) }
func (d Dual) Cos() Dual  { return Dual(dual.Cos(d.num())) }
func (d Dual) Sqrt() Dual { return Dual(dual.Sqrt(d.num())) }

// Atan2 returns atan2(d, x). The derivative is
// (x·dy - y·dx) / (x² + y²).
func (d Dual) Atan2(x Dual) Dual {
	den := x.Real*x.Real + d.Real*d.Real
	var emag float64
	if den != 0 {
		emag = (x.Real*d.Emag - d.Real*x.Emag) / den
	}
	return Dual{Real: math.Atan2(d.Real, x.Real), Emag: emag}
}

func (Dual) FromFloat(v float64) Dual { return Dual{Real: v} }

func (d Dual) Float() float64 { return d.Real }

func (d Dual) String() string {
	return fmt.Sprintf("%g%+gε", d.Real, d.Emag)
}
