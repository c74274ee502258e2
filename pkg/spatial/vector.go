// Package spatial provides scalar-generic rigid-body algebra: vectors,
// rotation matrices, quaternions, roll-pitch-yaw angles, rigid transforms
// and spatial twists.
//
// Notation follows the monogram convention: X_AB is the pose of frame B
// in frame A, p_AB the position of B's origin in A, V_AB a twist.
package spatial

import "multibody-kinematics/pkg/scalar"

// Vec3 is a 3-vector.
type Vec3[T scalar.Scalar[T]] [3]T

// NewVec3 builds a Vec3 from float64 components.
func NewVec3[T scalar.Scalar[T]](x, y, z float64) Vec3[T] {
	return Vec3[T]{scalar.Const[T](x), scalar.Const[T](y), scalar.Const[T](z)}
}

// ZeroVec3 returns the zero vector.
func ZeroVec3[T scalar.Scalar[T]]() Vec3[T] {
	return NewVec3[T](0, 0, 0)
}

func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0].Add(b[0]), a[1].Add(b[1]), a[2].Add(b[2])}
}

func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

func (a Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{a[0].Neg(), a[1].Neg(), a[2].Neg()}
}

// Scale returns s·a.
func (a Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{a[0].Mul(s), a[1].Mul(s), a[2].Mul(s)}
}

func (a Vec3[T]) Dot(b Vec3[T]) T {
	return a[0].Mul(b[0]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[2]))
}

// Cross returns a × b.
func (a Vec3[T]) Cross(b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a[1].Mul(b[2]).Sub(a[2].Mul(b[1])),
		a[2].Mul(b[0]).Sub(a[0].Mul(b[2])),
		a[0].Mul(b[1]).Sub(a[1].Mul(b[0])),
	}
}

// Norm returns the Euclidean length of a.
func (a Vec3[T]) Norm() T {
	return a.Dot(a).Sqrt()
}

// Floats returns the numeric components of a.
func (a Vec3[T]) Floats() [3]float64 {
	return [3]float64{a[0].Float(), a[1].Float(), a[2].Float()}
}

// Mat3 is a row-major 3×3 matrix.
type Mat3[T scalar.Scalar[T]] [3][3]T

// IdentityMat3 returns the 3×3 identity.
func IdentityMat3[T scalar.Scalar[T]]() Mat3[T] {
	var m Mat3[T]
	for i := range m {
		for j := range m[i] {
			if i == j {
				m[i][j] = scalar.One[T]()
			} else {
				m[i][j] = scalar.Zero[T]()
			}
		}
	}
	return m
}

// Mul returns m·n.
func (m Mat3[T]) Mul(n Mat3[T]) Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0].Mul(n[0][j]).Add(m[i][1].Mul(n[1][j])).Add(m[i][2].Mul(n[2][j]))
		}
	}
	return out
}

// MulVec returns m·v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	var out Vec3[T]
	for i := 0; i < 3; i++ {
		out[i] = m[i][0].Mul(v[0]).Add(m[i][1].Mul(v[1])).Add(m[i][2].Mul(v[2]))
	}
	return out
}

func (m Mat3[T]) Transpose() Mat3[T] {
	var out Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}
