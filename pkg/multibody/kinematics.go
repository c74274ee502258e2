package multibody

import (
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

// DoKinematics fills c with the world pose of every body and, when
// computeVelocities is set, the world twist. Bodies are visited in index
// order, so each parent is final before its children read it:
//
//	X_WB = X_WP · X_PJ · X_JB(q)
//	V_WB = V_WP + X_WP ⋅ (X_PJ ⋅ V_JB(q, v))
//
// Twists are expressed in world with the world origin as reference point.
func DoKinematics[T scalar.Scalar[T]](tree *Tree, c *Cache[T], computeVelocities bool) error {
	if c.tree != tree {
		return kerrors.New(kerrors.ErrTreeMismatch, "cache was created for a different tree")
	}
	if !c.initialized {
		return kerrors.UninitializedError("forward kinematics")
	}
	if err := tree.Validate(); err != nil {
		return err
	}

	c.poses[0] = spatial.IdentityTransform[T]()
	c.twists[0] = spatial.ZeroTwist[T]()

	for i := 1; i < len(tree.bodies); i++ {
		b := tree.bodies[i]
		q := c.q[b.positionStart : b.positionStart+b.NumPositions()]
		xPJ := spatial.CastTransform[T](b.joint.TransformToParent)
		xWP := c.poses[b.parent]

		c.poses[i] = xWP.Mul(xPJ).Mul(JointTransform(b.joint, q))

		if computeVelocities {
			v := c.v[b.velocityStart : b.velocityStart+b.NumVelocities()]
			vPB := spatial.TransformSpatialMotion(xPJ, JointTwist(b.joint, q, v))
			c.twists[i] = c.twists[b.parent].Add(spatial.TransformSpatialMotion(xWP, vPB))
		}
	}

	c.positionCached = true
	c.velocityCached = computeVelocities
	return nil
}
