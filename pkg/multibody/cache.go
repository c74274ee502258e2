package multibody

import (
	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
)

// Cache holds generalized state and the per-body world poses and twists
// computed from it. A Cache is bound to the tree it was created for and
// is not safe for concurrent use.
type Cache[T scalar.Scalar[T]] struct {
	tree   *Tree
	q      []T
	v      []T
	poses  []spatial.RigidTransform[T]
	twists []spatial.Twist[T]

	initialized    bool
	positionCached bool
	velocityCached bool
}

// NewCache allocates an uninitialized cache with one slot per body.
func NewCache[T scalar.Scalar[T]](tree *Tree) *Cache[T] {
	return &Cache[T]{
		tree:   tree,
		q:      make([]T, tree.NumPositions()),
		v:      make([]T, tree.NumVelocities()),
		poses:  make([]spatial.RigidTransform[T], tree.NumBodies()),
		twists: make([]spatial.Twist[T], tree.NumBodies()),
	}
}

// Initialize stores q and v and clears both cached flags. On a length
// mismatch the cache is left untouched.
func (c *Cache[T]) Initialize(q, v []T) error {
	if len(q) != len(c.q) {
		return kerrors.DimensionMismatchError("q", len(q), len(c.q))
	}
	if len(v) != len(c.v) {
		return kerrors.DimensionMismatchError("v", len(v), len(c.v))
	}
	copy(c.q, q)
	copy(c.v, v)
	c.initialized = true
	c.positionCached = false
	c.velocityCached = false
	return nil
}

func (c *Cache[T]) NumPositions() int  { return len(c.q) }
func (c *Cache[T]) NumVelocities() int { return len(c.v) }

// Q returns a copy of the stored positions.
func (c *Cache[T]) Q() []T { return append([]T(nil), c.q...) }

// V returns a copy of the stored velocities.
func (c *Cache[T]) V() []T { return append([]T(nil), c.v...) }

// QSegment returns a copy of q[start : start+n].
func (c *Cache[T]) QSegment(start, n int) []T {
	return append([]T(nil), c.q[start:start+n]...)
}

// VSegment returns a copy of v[start : start+n].
func (c *Cache[T]) VSegment(start, n int) []T {
	return append([]T(nil), c.v[start:start+n]...)
}

func (c *Cache[T]) IsInitialized() bool              { return c.initialized }
func (c *Cache[T]) IsPositionKinematicsCached() bool { return c.positionCached }
func (c *Cache[T]) IsVelocityKinematicsCached() bool { return c.velocityCached }

// check validates that c belongs to t and that every index names a body.
func (c *Cache[T]) check(t *Tree, indices ...int) error {
	if c.tree != t {
		return kerrors.New(kerrors.ErrTreeMismatch, "cache was created for a different tree")
	}
	for _, i := range indices {
		if i < 0 || i >= len(c.poses) {
			return kerrors.IndexOutOfRangeError(i, len(c.poses))
		}
	}
	return nil
}
