package models

import (
	"multibody-kinematics/pkg/multibody"
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

type model struct {
	summary string
	lengths []float64
	build   func(lengths []float64) *multibody.Builder
}

var catalog = map[string]model{
	"pendulum": {
		summary: "single link swinging about world y; tip at -z",
		lengths: []float64{1.0},
		build:   pendulum,
	},
	"double_pendulum": {
		summary: "two links swinging about y in the x-z plane",
		lengths: []float64{1.0, 1.0},
		build:   doublePendulum,
	},
	"scara": {
		summary: "shoulder and elbow about z, then a quill sliding down",
		lengths: []float64{0.4, 0.3},
		build:   scara,
	},
	"floating_base": {
		summary: "quaternion floating base carrying a revolute arm about x",
		lengths: []float64{0.5},
		build:   floatingBase,
	},
	"rpy_floating_base": {
		summary: "roll-pitch-yaw floating base carrying a prismatic mast",
		lengths: []float64{1.0},
		build:   rpyFloatingBase,
	},
}

var (
	axisX = [3]float64{1, 0, 0}
	axisY = [3]float64{0, 1, 0}
	axisZ = [3]float64{0, 0, 1}
)

func at(x, y, z float64) spatial.RigidTransform[scalar.Float] {
	return spatial.TranslationTransform(spatial.NewVec3[scalar.Float](x, y, z))
}

func pendulum(l []float64) *multibody.Builder {
	return multibody.NewBuilder().
		AddBody("link", multibody.WorldName, multibody.NewRevoluteJoint("pivot", axisY, at(0, 0, 0))).
		AddBody("tip", "link", multibody.NewFixedJoint("tip_weld", at(0, 0, -l[0])))
}

func doublePendulum(l []float64) *multibody.Builder {
	return multibody.NewBuilder().
		AddBody("link1", multibody.WorldName, multibody.NewRevoluteJoint("shoulder", axisY, at(0, 0, 0))).
		AddBody("link2", "link1", multibody.NewRevoluteJoint("elbow", axisY, at(0, 0, -l[0]))).
		AddBody("tip", "link2", multibody.NewFixedJoint("tip_weld", at(0, 0, -l[1])))
}

func scara(l []float64) *multibody.Builder {
	return multibody.NewBuilder().
		AddBody("upper_arm", multibody.WorldName, multibody.NewRevoluteJoint("shoulder", axisZ, at(0, 0, 0))).
		AddBody("forearm", "upper_arm", multibody.NewRevoluteJoint("elbow", axisZ, at(l[0], 0, 0))).
		AddBody("quill", "forearm", multibody.NewPrismaticJoint("spline", [3]float64{0, 0, -1}, at(l[1], 0, 0)))
}

func floatingBase(l []float64) *multibody.Builder {
	return multibody.NewBuilder().
		AddBody("base", multibody.WorldName, multibody.NewQuaternionFloatingJoint("base_float")).
		AddBody("arm", "base", multibody.NewRevoluteJoint("arm_hinge", axisX, at(0, 0, 0))).
		AddBody("hand", "arm", multibody.NewFixedJoint("hand_weld", at(0, l[0], 0)))
}

func rpyFloatingBase(l []float64) *multibody.Builder {
	return multibody.NewBuilder().
		AddBody("base", multibody.WorldName, multibody.NewRollPitchYawFloatingJoint("base_float")).
		AddBody("mast", "base", multibody.NewPrismaticJoint("mast_slide", axisZ, at(0, 0, 0))).
		AddBody("top", "mast", multibody.NewFixedJoint("top_weld", at(0, 0, l[0])))
}
