package spatial

import (
	"math"

	"multibody-kinematics/pkg/scalar"
)

// RotationMatrix is an orthonormal 3×3 matrix R_AB re-expressing vectors
// from frame B in frame A.
type RotationMatrix[T scalar.Scalar[T]] struct {
	m Mat3[T]
}

// IdentityRotation returns the identity rotation.
func IdentityRotation[T scalar.Scalar[T]]() RotationMatrix[T] {
	return RotationMatrix[T]{m: IdentityMat3[T]()}
}

// RotationFromMatrix wraps m without checking orthonormality.
func RotationFromMatrix[T scalar.Scalar[T]](m Mat3[T]) RotationMatrix[T] {
	return RotationMatrix[T]{m: m}
}

// RotationFromAxisAngle returns the rotation of angle about the unit axis
// (Rodrigues' formula).
func RotationFromAxisAngle[T scalar.Scalar[T]](axis Vec3[T], angle T) RotationMatrix[T] {
	c, s := angle.Cos(), angle.Sin()
	t := scalar.One[T]().Sub(c)
	x, y, z := axis[0], axis[1], axis[2]
	return RotationMatrix[T]{m: Mat3[T]{
		{t.Mul(x).Mul(x).Add(c), t.Mul(x).Mul(y).Sub(s.Mul(z)), t.Mul(x).Mul(z).Add(s.Mul(y))},
		{t.Mul(x).Mul(y).Add(s.Mul(z)), t.Mul(y).Mul(y).Add(c), t.Mul(y).Mul(z).Sub(s.Mul(x))},
		{t.Mul(x).Mul(z).Sub(s.Mul(y)), t.Mul(y).Mul(z).Add(s.Mul(x)), t.Mul(z).Mul(z).Add(c)},
	}}
}

// RotationFromQuaternion returns the rotation represented by q. q need not
// be normalized.
func RotationFromQuaternion[T scalar.Scalar[T]](q Quaternion[T]) RotationMatrix[T] {
	q = q.Normalized()
	two := scalar.Const[T](2)
	one := scalar.One[T]()
	w, x, y, z := q.W, q.X, q.Y, q.Z
	xx, yy, zz := x.Mul(x), y.Mul(y), z.Mul(z)
	xy, xz, yz := x.Mul(y), x.Mul(z), y.Mul(z)
	wx, wy, wz := w.Mul(x), w.Mul(y), w.Mul(z)
	return RotationMatrix[T]{m: Mat3[T]{
		{one.Sub(two.Mul(yy.Add(zz))), two.Mul(xy.Sub(wz)), two.Mul(xz.Add(wy))},
		{two.Mul(xy.Add(wz)), one.Sub(two.Mul(xx.Add(zz))), two.Mul(yz.Sub(wx))},
		{two.Mul(xz.Sub(wy)), two.Mul(yz.Add(wx)), one.Sub(two.Mul(xx.Add(yy)))},
	}}
}

// Matrix returns the underlying 3×3 matrix.
func (r RotationMatrix[T]) Matrix() Mat3[T] {
	return r.m
}

// At returns element (i, j).
func (r RotationMatrix[T]) At(i, j int) T {
	return r.m[i][j]
}

// Mul returns R_AC = R_AB · R_BC.
func (r RotationMatrix[T]) Mul(o RotationMatrix[T]) RotationMatrix[T] {
	return RotationMatrix[T]{m: r.m.Mul(o.m)}
}

// Inverse returns the transpose.
func (r RotationMatrix[T]) Inverse() RotationMatrix[T] {
	return RotationMatrix[T]{m: r.m.Transpose()}
}

// Apply re-expresses v from frame B in frame A.
func (r RotationMatrix[T]) Apply(v Vec3[T]) Vec3[T] {
	return r.m.MulVec(v)
}

// ToQuaternion converts r to a unit quaternion with non-negative W.
//
// The pivot is chosen from the numeric diagonal. When the diagonal has no
// numeric value (symbolic entries), the trace pivot is used, which is
// exact whenever the rotation angle is below π.
func (r RotationMatrix[T]) ToQuaternion() Quaternion[T] {
	m := r.m
	one, two := scalar.One[T](), scalar.Const[T](2)
	trace := m[0][0].Add(m[1][1]).Add(m[2][2])

	tr, d0, d1, d2 := trace.Float(), m[0][0].Float(), m[1][1].Float(), m[2][2].Float()
	numeric := !math.IsNaN(tr) && !math.IsNaN(d0) && !math.IsNaN(d1) && !math.IsNaN(d2)

	var q Quaternion[T]
	switch {
	case !numeric || (tr >= d0 && tr >= d1 && tr >= d2):
		q = Quaternion[T]{
			W: one.Add(trace),
			X: m[2][1].Sub(m[1][2]),
			Y: m[0][2].Sub(m[2][0]),
			Z: m[1][0].Sub(m[0][1]),
		}
	case d0 >= d1 && d0 >= d2:
		q = Quaternion[T]{
			W: m[2][1].Sub(m[1][2]),
			X: one.Sub(trace.Sub(two.Mul(m[0][0]))),
			Y: m[0][1].Add(m[1][0]),
			Z: m[0][2].Add(m[2][0]),
		}
	case d1 >= d2:
		q = Quaternion[T]{
			W: m[0][2].Sub(m[2][0]),
			X: m[0][1].Add(m[1][0]),
			Y: one.Sub(trace.Sub(two.Mul(m[1][1]))),
			Z: m[1][2].Add(m[2][1]),
		}
	default:
		q = Quaternion[T]{
			W: m[1][0].Sub(m[0][1]),
			X: m[0][2].Add(m[2][0]),
			Y: m[1][2].Add(m[2][1]),
			Z: one.Sub(trace.Sub(two.Mul(m[2][2]))),
		}
	}
	q = q.Normalized()
	if q.W.Float() < 0 {
		q = q.Neg()
	}
	return q
}
