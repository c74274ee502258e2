// Package kinematics is the query facade over a kinematic tree: it owns a
// kinematics cache, refreshes it from generalized state, and answers pose
// and twist queries per body.
package kinematics

import (
	"fmt"
	"strings"
	"time"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/log"
	"multibody-kinematics/pkg/metrics"
	"multibody-kinematics/pkg/multibody"
	"multibody-kinematics/pkg/scalar"
	"multibody-kinematics/pkg/spatial"
	"multibody-kinematics/pkg/systems"
)

// Option configures a Results.
type Option func(*options)

type options struct {
	logger  *log.Logger
	metrics *metrics.KinematicsMetrics
}

// WithLogger sets the logger. The default is log.GetLogger("kinematics").
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records updates and queries on m.
func WithMetrics(m *metrics.KinematicsMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// Results caches the kinematics of a tree for scalar type T. The tree is
// borrowed and must outlive the Results; the cache is owned. Results is
// not safe for concurrent use, but many Results may share one tree.
type Results[T scalar.Scalar[T]] struct {
	tree    *multibody.Tree
	cache   *multibody.Cache[T]
	valid   bool
	scalar  string
	logger  *log.Logger
	metrics *metrics.KinematicsMetrics
}

// NewResults binds a new, uninitialized Results to tree.
func NewResults[T scalar.Scalar[T]](tree *multibody.Tree, opts ...Option) *Results[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLogger("kinematics")
	}
	r := &Results[T]{
		tree:    tree,
		cache:   multibody.NewCache[T](tree),
		scalar:  scalarName[T](),
		logger:  o.logger,
		metrics: o.metrics,
	}
	if r.metrics != nil {
		r.metrics.SetBodies(tree.NumBodies())
	}
	return r
}

func scalarName[T scalar.Scalar[T]]() string {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Update recomputes every body's pose and twist from q and v. On error the
// previous state is kept.
func (r *Results[T]) Update(q, v []T) error {
	return r.update(metrics.SourceVector, q, v)
}

// UpdateFromContext reads [q; v] from the continuous state of ctx, or from
// discrete group 0 when the continuous state is empty.
func (r *Results[T]) UpdateFromContext(ctx systems.Context) error {
	n := r.tree.NumPositions() + r.tree.NumVelocities()

	block := ctx.ContinuousState()
	if (block == nil || block.Size() == 0) && ctx.NumDiscreteGroups() > 0 {
		block = ctx.DiscreteState(0)
	}
	if block == nil {
		if n != 0 {
			return r.fail(kerrors.DimensionMismatchError("state", 0, n))
		}
		return r.update(metrics.SourceContext, nil, nil)
	}

	vec, ok := block.(interface{ Value() []T })
	if !ok {
		return r.fail(kerrors.TypeMismatchError(block, "BasicVector["+r.scalar+"]"))
	}
	x := vec.Value()
	if len(x) != n {
		return r.fail(kerrors.DimensionMismatchError("state", len(x), n))
	}
	nq := r.tree.NumPositions()
	return r.update(metrics.SourceContext, x[:nq], x[nq:])
}

func (r *Results[T]) update(source string, q, v []T) error {
	if len(q) != r.tree.NumPositions() {
		return r.fail(kerrors.DimensionMismatchError("q", len(q), r.tree.NumPositions()))
	}
	if len(v) != r.tree.NumVelocities() {
		return r.fail(kerrors.DimensionMismatchError("v", len(v), r.tree.NumVelocities()))
	}
	// Nothing below may fail once the cache has been overwritten.
	if err := r.tree.Validate(); err != nil {
		return r.fail(err)
	}

	start := time.Now()
	if err := r.cache.Initialize(q, v); err != nil {
		return r.fail(err)
	}
	if err := multibody.DoKinematics(r.tree, r.cache, true); err != nil {
		r.valid = false
		return r.fail(err)
	}
	elapsed := time.Since(start)
	r.valid = true

	if r.metrics != nil {
		r.metrics.RecordUpdate(source, r.scalar, elapsed)
	}
	if r.logger.Enabled(log.DEBUG) {
		r.logger.WithFields(log.Fields{
			"source":  source,
			"scalar":  r.scalar,
			"bodies":  r.tree.NumBodies(),
			"elapsed": elapsed,
		}).Debug("kinematics updated")
	}
	return nil
}

func (r *Results[T]) fail(err error) error {
	code := kerrors.CodeOf(err)
	if r.metrics != nil {
		r.metrics.RecordFailure(string(code))
	}
	r.logger.WithFields(log.Fields{"code": code, "scalar": r.scalar}).WithError(err).Warn("kinematics update rejected")
	return err
}

func (r *Results[T]) query(name string) {
	if r.metrics != nil {
		r.metrics.RecordQuery(name)
	}
}

func (r *Results[T]) NumBodies() int     { return r.tree.NumBodies() }
func (r *Results[T]) NumPositions() int  { return r.tree.NumPositions() }
func (r *Results[T]) NumVelocities() int { return r.tree.NumVelocities() }

// Tree returns the bound tree.
func (r *Results[T]) Tree() *multibody.Tree { return r.tree }

// IsValid reports whether an update has succeeded.
func (r *Results[T]) IsValid() bool { return r.valid }

// Cache exposes the underlying cache for read access.
func (r *Results[T]) Cache() *multibody.Cache[T] { return r.cache }

// BodyPosition returns the world position of body i's origin.
func (r *Results[T]) BodyPosition(i int) (spatial.Vec3[T], error) {
	r.query("body_position")
	x, err := multibody.RelativeTransform(r.tree, r.cache, 0, i)
	if err != nil {
		return spatial.Vec3[T]{}, err
	}
	return x.P, nil
}

// BodyOrientation returns the world orientation of body i as a unit
// quaternion with non-negative W.
func (r *Results[T]) BodyOrientation(i int) (spatial.Quaternion[T], error) {
	r.query("body_orientation")
	x, err := multibody.RelativeTransform(r.tree, r.cache, 0, i)
	if err != nil {
		return spatial.Quaternion[T]{}, err
	}
	return x.R.ToQuaternion(), nil
}

func (r *Results[T]) index(body *multibody.Body) (int, error) {
	if !r.tree.Contains(body) {
		name := "<nil>"
		if body != nil {
			name = body.Name()
		}
		return 0, kerrors.New(kerrors.ErrIndexOutOfRange, "body does not belong to the bound tree").SetBody(name)
	}
	return body.Index(), nil
}

// PoseInWorld returns X_WB.
func (r *Results[T]) PoseInWorld(body *multibody.Body) (spatial.RigidTransform[T], error) {
	r.query("pose_in_world")
	i, err := r.index(body)
	if err != nil {
		return spatial.RigidTransform[T]{}, err
	}
	return multibody.RelativeTransform(r.tree, r.cache, 0, i)
}

// TwistInWorldFrame returns the body's twist expressed in world with the
// world origin as reference point.
func (r *Results[T]) TwistInWorldFrame(body *multibody.Body) (spatial.Twist[T], error) {
	r.query("twist_in_world_frame")
	i, err := r.index(body)
	if err != nil {
		return spatial.Twist[T]{}, err
	}
	return multibody.RelativeTwist(r.tree, r.cache, 0, i, 0)
}

// TwistInWorldAlignedBodyFrame returns the body's twist expressed in world
// axes with the body origin as reference point, so the linear part is the
// velocity of the body origin.
func (r *Results[T]) TwistInWorldAlignedBodyFrame(body *multibody.Body) (spatial.Twist[T], error) {
	r.query("twist_in_world_aligned_body_frame")
	i, err := r.index(body)
	if err != nil {
		return spatial.Twist[T]{}, err
	}
	x, err := multibody.RelativeTransform(r.tree, r.cache, 0, i)
	if err != nil {
		return spatial.Twist[T]{}, err
	}
	tw, err := multibody.RelativeTwist(r.tree, r.cache, 0, i, 0)
	if err != nil {
		return spatial.Twist[T]{}, err
	}
	return spatial.TransformSpatialMotion(spatial.TranslationTransform(x.P.Neg()), tw), nil
}

// JointPosition returns a copy of the body's joint coordinates.
func (r *Results[T]) JointPosition(body *multibody.Body) ([]T, error) {
	r.query("joint_position")
	if _, err := r.index(body); err != nil {
		return nil, err
	}
	if !r.valid {
		return nil, kerrors.UninitializedError("joint position")
	}
	return r.cache.QSegment(body.PositionStart(), body.NumPositions()), nil
}

// JointVelocity returns a copy of the body's joint velocities.
func (r *Results[T]) JointVelocity(body *multibody.Body) ([]T, error) {
	r.query("joint_velocity")
	if _, err := r.index(body); err != nil {
		return nil, err
	}
	if !r.valid {
		return nil, kerrors.UninitializedError("joint velocity")
	}
	return r.cache.VSegment(body.VelocityStart(), body.NumVelocities()), nil
}
