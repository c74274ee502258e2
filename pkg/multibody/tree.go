// Package multibody holds the kinematic tree of an articulated rigid-body
// system, the per-scalar kinematics cache, and the forward kinematics
// propagator that fills it.
package multibody

import (
	"fmt"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

// WorldName is the name of body 0.
const WorldName = "world"

// Body is a rigid body attached to its parent by a joint. Bodies are
// owned by a Tree and never change after Build.
type Body struct {
	tree          *Tree
	name          string
	index         int
	parent        int
	joint         Joint
	positionStart int
	velocityStart int
}

func (b *Body) Name() string  { return b.name }
func (b *Body) Index() int    { return b.index }
func (b *Body) Joint() Joint  { return b.joint }
func (b *Body) IsWorld() bool { return b.index == 0 }

// Parent returns the parent body index, or -1 for the world.
func (b *Body) Parent() int { return b.parent }

// PositionStart is the offset of this body's joint coordinates in q.
func (b *Body) PositionStart() int { return b.positionStart }

// VelocityStart is the offset of this body's joint velocities in v.
func (b *Body) VelocityStart() int { return b.velocityStart }

func (b *Body) NumPositions() int  { return b.joint.NumPositions() }
func (b *Body) NumVelocities() int { return b.joint.NumVelocities() }

func (b *Body) String() string {
	return fmt.Sprintf("%s[%d]", b.name, b.index)
}

// Tree is an immutable kinematic tree. Body 0 is the world. Bodies are
// stored parent-before-child and may be read concurrently.
type Tree struct {
	bodies []*Body
	byName map[string]int
	nq, nv int
}

func (t *Tree) NumBodies() int     { return len(t.bodies) }
func (t *Tree) NumPositions() int  { return t.nq }
func (t *Tree) NumVelocities() int { return t.nv }

// World returns body 0.
func (t *Tree) World() *Body { return t.bodies[0] }

// Body returns body i.
func (t *Tree) Body(i int) (*Body, error) {
	if i < 0 || i >= len(t.bodies) {
		return nil, kerrors.IndexOutOfRangeError(i, len(t.bodies))
	}
	return t.bodies[i], nil
}

// Bodies returns the bodies in index order.
func (t *Tree) Bodies() []*Body {
	out := make([]*Body, len(t.bodies))
	copy(out, t.bodies)
	return out
}

// FindBody looks a body up by name.
func (t *Tree) FindBody(name string) (*Body, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, kerrors.New(kerrors.ErrIndexOutOfRange,
			fmt.Sprintf("no body named %q", name)).SetBody(name)
	}
	return t.bodies[i], nil
}

// Contains reports whether b belongs to this tree.
func (t *Tree) Contains(b *Body) bool {
	return b != nil && b.tree == t && b.index < len(t.bodies) && t.bodies[b.index] == b
}

// Validate checks that every body's parent precedes it.
func (t *Tree) Validate() error {
	for i, b := range t.bodies {
		if i == 0 {
			continue
		}
		if b.parent < 0 || b.parent >= i {
			return kerrors.TopologyError(b.name, i, b.parent)
		}
	}
	return nil
}

// RelativeTransform returns X_base,body from the cached world poses.
func RelativeTransform[T scalar.Scalar[T]](t *Tree, c *Cache[T], base, body int) (spatial.RigidTransform[T], error) {
	if err := c.check(t, base, body); err != nil {
		return spatial.RigidTransform[T]{}, err
	}
	if !c.positionCached {
		return spatial.RigidTransform[T]{}, kerrors.UninitializedError("relative transform")
	}
	return c.poses[base].Inverse().Mul(c.poses[body]), nil
}

// RelativeTwist returns the twist of body relative to base, expressed in
// expressedIn with that frame's origin as the reference point.
func RelativeTwist[T scalar.Scalar[T]](t *Tree, c *Cache[T], base, body, expressedIn int) (spatial.Twist[T], error) {
	if err := c.check(t, base, body, expressedIn); err != nil {
		return spatial.Twist[T]{}, err
	}
	if !c.velocityCached {
		return spatial.Twist[T]{}, kerrors.UninitializedError("relative twist")
	}
	rel := c.twists[body].Sub(c.twists[base])
	return spatial.TransformSpatialMotion(c.poses[expressedIn].Inverse(), rel), nil
}
