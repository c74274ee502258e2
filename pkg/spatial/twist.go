package spatial

import "multibody-kinematics/pkg/scalar"

// Twist is a spatial velocity: angular velocity ω and the linear velocity
// v of the point fixed to the moving body that coincides with the origin
// of the frame the twist is expressed in.
type Twist[T scalar.Scalar[T]] struct {
	Angular Vec3[T]
	Linear  Vec3[T]
}

// ZeroTwist returns the zero spatial velocity.
func ZeroTwist[T scalar.Scalar[T]]() Twist[T] {
	return Twist[T]{Angular: ZeroVec3[T](), Linear: ZeroVec3[T]()}
}

func (t Twist[T]) Add(o Twist[T]) Twist[T] {
	return Twist[T]{Angular: t.Angular.Add(o.Angular), Linear: t.Linear.Add(o.Linear)}
}

func (t Twist[T]) Sub(o Twist[T]) Twist[T] {
	return Twist[T]{Angular: t.Angular.Sub(o.Angular), Linear: t.Linear.Sub(o.Linear)}
}

// Vector returns [ω; v].
func (t Twist[T]) Vector() [6]T {
	return [6]T{t.Angular[0], t.Angular[1], t.Angular[2], t.Linear[0], t.Linear[1], t.Linear[2]}
}

// Floats returns the numeric [ω; v].
func (t Twist[T]) Floats() [6]float64 {
	var out [6]float64
	for i, v := range t.Vector() {
		out[i] = v.Float()
	}
	return out
}

// TransformSpatialMotion re-expresses twist t, given in frame B, in frame A
// using X_AB:
//
//	ω_A = R_AB ω_B
//	v_A = R_AB v_B + p_AB × ω_A
func TransformSpatialMotion[T scalar.Scalar[T]](x RigidTransform[T], t Twist[T]) Twist[T] {
	w := x.R.Apply(t.Angular)
	return Twist[T]{
		Angular: w,
		Linear:  x.R.Apply(t.Linear).Add(x.P.Cross(w)),
	}
}
