package multibody

import (
	"fmt"
	"math"

	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

// JointType selects how a joint maps its generalized coordinates to
// relative motion.
type JointType int

const (
	// Fixed welds the child to the parent.
	Fixed JointType = iota
	// Revolute rotates about Axis by q.
	Revolute
	// Prismatic translates along Axis by q.
	Prismatic
	// QuaternionFloating has q = [x y z qw qx qy qz] and
	// v = [ω_B; v_B] in the child frame.
	QuaternionFloating
	// RollPitchYawFloating has q = [x y z roll pitch yaw] and v = q̇.
	RollPitchYawFloating
)

func (t JointType) String() string {
	switch t {
	case Fixed:
		return "fixed"
	case Revolute:
		return "revolute"
	case Prismatic:
		return "prismatic"
	case QuaternionFloating:
		return "quaternion_floating"
	case RollPitchYawFloating:
		return "rpy_floating"
	default:
		return "unknown"
	}
}

// NumPositions returns the size of the joint's q segment.
func (t JointType) NumPositions() int {
	switch t {
	case Revolute, Prismatic:
		return 1
	case QuaternionFloating:
		return 7
	case RollPitchYawFloating:
		return 6
	default:
		return 0
	}
}

// NumVelocities returns the size of the joint's v segment.
func (t JointType) NumVelocities() int {
	switch t {
	case Revolute, Prismatic:
		return 1
	case QuaternionFloating, RollPitchYawFloating:
		return 6
	default:
		return 0
	}
}

// Joint connects a body to its parent. The joint frame J is fixed in the
// parent at TransformToParent (X_PJ); the joint coordinates move the
// child frame B relative to J.
type Joint struct {
	Name              string
	Type              JointType
	Axis              [3]float64
	TransformToParent spatial.RigidTransform[scalar.Float]
}

// NewFixedJoint welds a child at xPJ.
func NewFixedJoint(name string, xPJ spatial.RigidTransform[scalar.Float]) Joint {
	return Joint{Name: name, Type: Fixed, TransformToParent: xPJ}
}

// NewRevoluteJoint rotates about axis (normalized here) located at xPJ.
func NewRevoluteJoint(name string, axis [3]float64, xPJ spatial.RigidTransform[scalar.Float]) Joint {
	return Joint{Name: name, Type: Revolute, Axis: normalize(axis), TransformToParent: xPJ}
}

// NewPrismaticJoint translates along axis (normalized here) from xPJ.
func NewPrismaticJoint(name string, axis [3]float64, xPJ spatial.RigidTransform[scalar.Float]) Joint {
	return Joint{Name: name, Type: Prismatic, Axis: normalize(axis), TransformToParent: xPJ}
}

// NewQuaternionFloatingJoint frees all six degrees of freedom, with the
// orientation parameterized by a quaternion.
func NewQuaternionFloatingJoint(name string) Joint {
	return Joint{Name: name, Type: QuaternionFloating, TransformToParent: spatial.IdentityTransform[scalar.Float]()}
}

// NewRollPitchYawFloatingJoint frees all six degrees of freedom, with the
// orientation parameterized by roll-pitch-yaw angles.
func NewRollPitchYawFloatingJoint(name string) Joint {
	return Joint{Name: name, Type: RollPitchYawFloating, TransformToParent: spatial.IdentityTransform[scalar.Float]()}
}

func (j Joint) NumPositions() int  { return j.Type.NumPositions() }
func (j Joint) NumVelocities() int { return j.Type.NumVelocities() }

func (j Joint) String() string {
	return fmt.Sprintf("%s(%s)", j.Name, j.Type)
}

func normalize(a [3]float64) [3]float64 {
	n := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	if n == 0 {
		return a
	}
	return [3]float64{a[0] / n, a[1] / n, a[2] / n}
}
