package spatial

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"multibody-kinematics/pkg/scalar"
)

// ToR3 converts a float vector to gonum's r3.Vec.
func ToR3(v Vec3[scalar.Float]) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// FromR3 converts a gonum r3.Vec.
func FromR3(v r3.Vec) Vec3[scalar.Float] {
	return Vec3[scalar.Float]{scalar.Float(v.X), scalar.Float(v.Y), scalar.Float(v.Z)}
}

// ToQuat converts a float quaternion to gonum's quat.Number.
func ToQuat(q Quaternion[scalar.Float]) quat.Number {
	return quat.Number{
		Real: float64(q.W),
		Imag: float64(q.X),
		Jmag: float64(q.Y),
		Kmag: float64(q.Z),
	}
}

// FromQuat converts a gonum quat.Number.
func FromQuat(q quat.Number) Quaternion[scalar.Float] {
	return Quaternion[scalar.Float]{
		W: scalar.Float(q.Real),
		X: scalar.Float(q.Imag),
		Y: scalar.Float(q.Jmag),
		Z: scalar.Float(q.Kmag),
	}
}

// ToDense returns the homogeneous 4×4 matrix of x as a gonum Dense.
func ToDense[T scalar.Scalar[T]](x RigidTransform[T]) *mat.Dense {
	m := x.Matrix4()
	data := make([]float64, 0, 16)
	for i := range m {
		for j := range m[i] {
			data = append(data, m[i][j].Float())
		}
	}
	return mat.NewDense(4, 4, data)
}

// FromDense builds a float pose from the top 3×4 block of a homogeneous
// matrix.
func FromDense(m mat.Matrix) RigidTransform[scalar.Float] {
	var x RigidTransform[scalar.Float]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x.R.m[i][j] = scalar.Float(m.At(i, j))
		}
		x.P[i] = scalar.Float(m.At(i, 3))
	}
	return x
}
