package spatial

import "multibody-kinematics/pkg/scalar"

// Quaternion is W + Xi + Yj + Zk.
type Quaternion[T scalar.Scalar[T]] struct {
	W, X, Y, Z T
}

// IdentityQuaternion returns 1 + 0i + 0j + 0k.
func IdentityQuaternion[T scalar.Scalar[T]]() Quaternion[T] {
	return NewQuaternion[T](1, 0, 0, 0)
}

// NewQuaternion builds a quaternion from float64 components.
func NewQuaternion[T scalar.Scalar[T]](w, x, y, z float64) Quaternion[T] {
	return Quaternion[T]{
		W: scalar.Const[T](w),
		X: scalar.Const[T](x),
		Y: scalar.Const[T](y),
		Z: scalar.Const[T](z),
	}
}

// QuaternionFromAxisAngle returns the unit quaternion rotating by angle
// about the unit axis.
func QuaternionFromAxisAngle[T scalar.Scalar[T]](axis Vec3[T], angle T) Quaternion[T] {
	half := angle.Div(scalar.Const[T](2))
	s := half.Sin()
	return Quaternion[T]{W: half.Cos(), X: axis[0].Mul(s), Y: axis[1].Mul(s), Z: axis[2].Mul(s)}
}

// Mul returns the Hamilton product q·o.
func (q Quaternion[T]) Mul(o Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{
		W: q.W.Mul(o.W).Sub(q.X.Mul(o.X)).Sub(q.Y.Mul(o.Y)).Sub(q.Z.Mul(o.Z)),
		X: q.W.Mul(o.X).Add(q.X.Mul(o.W)).Add(q.Y.Mul(o.Z)).Sub(q.Z.Mul(o.Y)),
		Y: q.W.Mul(o.Y).Sub(q.X.Mul(o.Z)).Add(q.Y.Mul(o.W)).Add(q.Z.Mul(o.X)),
		Z: q.W.Mul(o.Z).Add(q.X.Mul(o.Y)).Sub(q.Y.Mul(o.X)).Add(q.Z.Mul(o.W)),
	}
}

func (q Quaternion[T]) Conjugate() Quaternion[T] {
	return Quaternion[T]{W: q.W, X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg()}
}

func (q Quaternion[T]) Neg() Quaternion[T] {
	return Quaternion[T]{W: q.W.Neg(), X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg()}
}

func (q Quaternion[T]) Norm() T {
	return q.W.Mul(q.W).Add(q.X.Mul(q.X)).Add(q.Y.Mul(q.Y)).Add(q.Z.Mul(q.Z)).Sqrt()
}

// Normalized returns q scaled to unit norm.
func (q Quaternion[T]) Normalized() Quaternion[T] {
	n := q.Norm()
	return Quaternion[T]{W: q.W.Div(n), X: q.X.Div(n), Y: q.Y.Div(n), Z: q.Z.Div(n)}
}

// Floats returns the numeric components in w, x, y, z order.
func (q Quaternion[T]) Floats() [4]float64 {
	return [4]float64{q.W.Float(), q.X.Float(), q.Y.Float(), q.Z.Float()}
}
