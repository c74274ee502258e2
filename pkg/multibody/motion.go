package multibody

import (
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

// JointTransform returns X_JB(q) for a joint whose coordinates are q.
// q must hold exactly j.NumPositions() entries.
func JointTransform[T scalar.Scalar[T]](j Joint, q []T) spatial.RigidTransform[T] {
	switch j.Type {
	case Revolute:
		return spatial.NewRigidTransform(
			spatial.RotationFromAxisAngle(jointAxis[T](j), q[0]),
			spatial.ZeroVec3[T](),
		)
	case Prismatic:
		return spatial.TranslationTransform(jointAxis[T](j).Scale(q[0]))
	case QuaternionFloating:
		quat := spatial.Quaternion[T]{W: q[3], X: q[4], Y: q[5], Z: q[6]}
		return spatial.NewRigidTransform(
			spatial.RotationFromQuaternion(quat),
			spatial.Vec3[T]{q[0], q[1], q[2]},
		)
	case RollPitchYawFloating:
		rpy := spatial.RollPitchYaw[T]{Roll: q[3], Pitch: q[4], Yaw: q[5]}
		return spatial.NewRigidTransform(
			rpy.ToRotationMatrix(),
			spatial.Vec3[T]{q[0], q[1], q[2]},
		)
	default:
		return spatial.IdentityTransform[T]()
	}
}

// JointTwist returns V_JB(q, v): the twist of B relative to J, expressed
// in J with J's origin as the reference point.
func JointTwist[T scalar.Scalar[T]](j Joint, q, v []T) spatial.Twist[T] {
	switch j.Type {
	case Revolute:
		return spatial.Twist[T]{
			Angular: jointAxis[T](j).Scale(v[0]),
			Linear:  spatial.ZeroVec3[T](),
		}
	case Prismatic:
		return spatial.Twist[T]{
			Angular: spatial.ZeroVec3[T](),
			Linear:  jointAxis[T](j).Scale(v[0]),
		}
	case QuaternionFloating:
		// v is expressed in B at B's origin.
		body := spatial.Twist[T]{
			Angular: spatial.Vec3[T]{v[0], v[1], v[2]},
			Linear:  spatial.Vec3[T]{v[3], v[4], v[5]},
		}
		return spatial.TransformSpatialMotion(JointTransform(j, q), body)
	case RollPitchYawFloating:
		rpy := spatial.RollPitchYaw[T]{Roll: q[3], Pitch: q[4], Yaw: q[5]}
		w := rpy.AngularVelocity(spatial.Vec3[T]{v[3], v[4], v[5]})
		p := spatial.Vec3[T]{q[0], q[1], q[2]}
		pdot := spatial.Vec3[T]{v[0], v[1], v[2]}
		return spatial.Twist[T]{Angular: w, Linear: pdot.Add(p.Cross(w))}
	default:
		return spatial.ZeroTwist[T]()
	}
}

func jointAxis[T scalar.Scalar[T]](j Joint) spatial.Vec3[T] {
	return spatial.NewVec3[T](j.Axis[0], j.Axis[1], j.Axis[2])
}
