package spatial

import "multibody-kinematics/pkg/scalar"

// RigidTransform is the pose X_AB: rotation R_AB and translation p_AB.
type RigidTransform[T scalar.Scalar[T]] struct {
	R RotationMatrix[T]
	P Vec3[T]
}

// IdentityTransform returns the identity pose.
func IdentityTransform[T scalar.Scalar[T]]() RigidTransform[T] {
	return RigidTransform[T]{R: IdentityRotation[T](), P: ZeroVec3[T]()}
}

// NewRigidTransform returns the pose with rotation r and translation p.
func NewRigidTransform[T scalar.Scalar[T]](r RotationMatrix[T], p Vec3[T]) RigidTransform[T] {
	return RigidTransform[T]{R: r, P: p}
}

// TranslationTransform returns a pure translation by p.
func TranslationTransform[T scalar.Scalar[T]](p Vec3[T]) RigidTransform[T] {
	return RigidTransform[T]{R: IdentityRotation[T](), P: p}
}

// CastTransform converts a float64 pose to scalar type T.
func CastTransform[T scalar.Scalar[T]](x RigidTransform[scalar.Float]) RigidTransform[T] {
	var out RigidTransform[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.R.m[i][j] = scalar.Const[T](float64(x.R.m[i][j]))
		}
		out.P[i] = scalar.Const[T](float64(x.P[i]))
	}
	return out
}

func (x RigidTransform[T]) Rotation() RotationMatrix[T] { return x.R }

func (x RigidTransform[T]) Translation() Vec3[T] { return x.P }

// Mul composes X_AC = X_AB · X_BC.
func (x RigidTransform[T]) Mul(o RigidTransform[T]) RigidTransform[T] {
	return RigidTransform[T]{
		R: x.R.Mul(o.R),
		P: x.R.Apply(o.P).Add(x.P),
	}
}

// Inverse returns X_BA.
func (x RigidTransform[T]) Inverse() RigidTransform[T] {
	rt := x.R.Inverse()
	return RigidTransform[T]{R: rt, P: rt.Apply(x.P).Neg()}
}

// Apply maps a point p_BQ to p_AQ.
func (x RigidTransform[T]) Apply(p Vec3[T]) Vec3[T] {
	return x.R.Apply(p).Add(x.P)
}

// Matrix4 returns the homogeneous 4×4 matrix.
func (x RigidTransform[T]) Matrix4() [4][4]T {
	var out [4][4]T
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = x.R.m[i][j]
		}
		out[i][3] = x.P[i]
		out[3][i] = scalar.Zero[T]()
	}
	out[3][3] = scalar.One[T]()
	return out
}
