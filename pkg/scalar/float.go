package scalar

import "math"

// Float is the plain float64 scalar.
type Float float64

func (f Float) Add(o Float) Float { return f + o }
func (f Float) Sub(o Float) Float { return f - o }
func (f Float) Mul(o Float) Float { return f * o }
func (f Float) Div(o Float) Float { return f / o }
func (f Float) Neg() Float        { return -f }

func (f Float) Sin() Float  { return Float(math.Sin(float64(f))) }
func (f Float) Cos() Float  { return Float(math.Cos(float64(f))) }
func (f Float) Sqrt() Float { return Float(math.Sqrt(float64(f))) }

// Atan2 returns atan2(f, x).
func (f Float) Atan2(x Float) Float {
	return Float(math.Atan2(float64(f), float64(x)))
}

func (Float) FromFloat(v float64) Float { return Float(v) }

func (f Float) Float() float64 { return float64(f) }
