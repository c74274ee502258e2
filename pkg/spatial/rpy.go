package spatial

import "multibody-kinematics/pkg/scalar"

// RollPitchYaw holds space-fixed x-y-z (extrinsic) angles. The equivalent
// rotation is Rz(yaw)·Ry(pitch)·Rx(roll).
type RollPitchYaw[T scalar.Scalar[T]] struct {
	Roll, Pitch, Yaw T
}

// ToRotationMatrix returns Rz(yaw)·Ry(pitch)·Rx(roll).
func (rpy RollPitchYaw[T]) ToRotationMatrix() RotationMatrix[T] {
	cr, sr := rpy.Roll.Cos(), rpy.Roll.Sin()
	cp, sp := rpy.Pitch.Cos(), rpy.Pitch.Sin()
	cy, sy := rpy.Yaw.Cos(), rpy.Yaw.Sin()
	return RotationMatrix[T]{m: Mat3[T]{
		{cy.Mul(cp), cy.Mul(sp).Mul(sr).Sub(sy.Mul(cr)), cy.Mul(sp).Mul(cr).Add(sy.Mul(sr))},
		{sy.Mul(cp), sy.Mul(sp).Mul(sr).Add(cy.Mul(cr)), sy.Mul(sp).Mul(cr).Sub(cy.Mul(sr))},
		{sp.Neg(), cp.Mul(sr), cp.Mul(cr)},
	}}
}

// ToQuaternion returns the unit quaternion of the same rotation.
func (rpy RollPitchYaw[T]) ToQuaternion() Quaternion[T] {
	return rpy.ToRotationMatrix().ToQuaternion()
}

// AngularVelocity maps roll-pitch-yaw rates to the angular velocity
// expressed in the fixed (parent) frame.
func (rpy RollPitchYaw[T]) AngularVelocity(rates Vec3[T]) Vec3[T] {
	cp, sp := rpy.Pitch.Cos(), rpy.Pitch.Sin()
	cy, sy := rpy.Yaw.Cos(), rpy.Yaw.Sin()
	rd, pd, yd := rates[0], rates[1], rates[2]
	return Vec3[T]{
		cy.Mul(cp).Mul(rd).Sub(sy.Mul(pd)),
		sy.Mul(cp).Mul(rd).Add(cy.Mul(pd)),
		sp.Neg().Mul(rd).Add(yd),
	}
}

// RollPitchYawFromRotationMatrix recovers angles with pitch in
// [-π/2, π/2]. Near gimbal lock roll and yaw are not unique.
func RollPitchYawFromRotationMatrix[T scalar.Scalar[T]](r RotationMatrix[T]) RollPitchYaw[T] {
	m := r.m
	return RollPitchYaw[T]{
		Roll:  m[2][1].Atan2(m[2][2]),
		Pitch: m[2][0].Neg().Atan2(m[0][0].Mul(m[0][0]).Add(m[1][0].Mul(m[1][0])).Sqrt()),
		Yaw:   m[1][0].Atan2(m[0][0]),
	}
}
