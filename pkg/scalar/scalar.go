// Package scalar defines the numeric capability set shared by every
// kinematics computation, and the plain and dual-number scalars that
// satisfy it.
//
// Algorithms are written once against Scalar[T] and instantiated per
// scalar kind:
//
//	var c multibody.Cache[scalar.Float]  // plain numbers
//	var d multibody.Cache[scalar.Dual]   // forward-mode derivatives
//	var s multibody.Cache[symbolic.Expr] // symbolic expressions
package scalar

// Scalar is the arithmetic capability a kinematics scalar must provide.
// The receiver is the left operand, so x.Sub(y) is x - y and
// y.Atan2(x) is atan2(y, x).
//
// FromFloat ignores its receiver; it lets generic code build constants
// from the zero value of T.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Neg() T
	Sin() T
	Cos() T
	Sqrt() T
	Atan2(x T) T
	FromFloat(float64) T
	// Float returns the numeric value, or NaN when the value is not
	// known numerically (an unbound symbolic expression).
	Float() float64
}

// Const returns f as a T.
func Const[T Scalar[T]](f float64) T {
	var z T
	return z.FromFloat(f)
}

// Zero returns the additive identity of T.
func Zero[T Scalar[T]]() T {
	return Const[T](0)
}

// One returns the multiplicative identity of T.
func One[T Scalar[T]]() T {
	return Const[T](1)
}

// Square returns x*x.
func Square[T Scalar[T]](x T) T {
	return x.Mul(x)
}

// FromFloats converts a float64 slice into a new slice of T.
func FromFloats[T Scalar[T]](xs []float64) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[i] = Const[T](x)
	}
	return out
}

// Floats extracts the numeric values of xs.
func Floats[T Scalar[T]](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Float()
	}
	return out
}
