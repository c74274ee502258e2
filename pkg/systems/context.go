// Package systems provides the minimal state container a kinematics
// consumer reads generalized state from: a context holding one continuous
// state vector and zero or more discrete state groups.
package systems

import (
	"fmt"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/scalar"
)

// VectorBase is a state vector of unknown scalar type.
type VectorBase interface {
	Size() int
}

// BasicVector is a dense state vector over scalar T.
type BasicVector[T scalar.Scalar[T]] struct {
	values []T
}

// NewBasicVector copies values into a new vector.
func NewBasicVector[T scalar.Scalar[T]](values []T) *BasicVector[T] {
	return &BasicVector[T]{values: append([]T(nil), values...)}
}

// NewBasicVectorFromFloats converts values to T.
func NewBasicVectorFromFloats[T scalar.Scalar[T]](values []float64) *BasicVector[T] {
	return &BasicVector[T]{values: scalar.FromFloats[T](values)}
}

// Size returns the vector length. A nil vector is empty.
func (b *BasicVector[T]) Size() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

// Value returns the backing slice. Callers must not modify it.
func (b *BasicVector[T]) Value() []T {
	if b == nil {
		return nil
	}
	return b.values
}

// SetValue overwrites the vector. The length must not change.
func (b *BasicVector[T]) SetValue(values []T) error {
	if len(values) != len(b.values) {
		return kerrors.DimensionMismatchError("state vector", len(values), len(b.values))
	}
	copy(b.values, values)
	return nil
}

func (b *BasicVector[T]) String() string {
	if b == nil {
		return "BasicVector[]"
	}
	return fmt.Sprintf("BasicVector%v", scalar.Floats(b.values))
}

// Context exposes the state of a system.
type Context interface {
	ContinuousState() VectorBase
	NumDiscreteGroups() int
	DiscreteState(group int) VectorBase
}

// LeafContext is a Context whose state vectors all share scalar type T.
// The zero value has no state at all.
type LeafContext[T scalar.Scalar[T]] struct {
	continuous *BasicVector[T]
	discrete   []*BasicVector[T]
}

// NewContinuousContext holds x as continuous state and no discrete state.
func NewContinuousContext[T scalar.Scalar[T]](x []T) *LeafContext[T] {
	return &LeafContext[T]{continuous: NewBasicVector(x)}
}

// NewDiscreteContext holds each group as discrete state and an empty
// continuous state.
func NewDiscreteContext[T scalar.Scalar[T]](groups ...[]T) *LeafContext[T] {
	c := &LeafContext[T]{continuous: NewBasicVector[T](nil)}
	for _, g := range groups {
		c.discrete = append(c.discrete, NewBasicVector(g))
	}
	return c
}

// ContinuousState returns the continuous state, or nil if there is none.
func (c *LeafContext[T]) ContinuousState() VectorBase {
	if c.continuous == nil {
		return nil
	}
	return c.continuous
}

func (c *LeafContext[T]) NumDiscreteGroups() int { return len(c.discrete) }

// DiscreteState returns group i, or nil if there is no such group.
func (c *LeafContext[T]) DiscreteState(i int) VectorBase {
	if i < 0 || i >= len(c.discrete) || c.discrete[i] == nil {
		return nil
	}
	return c.discrete[i]
}

// MutableContinuousState gives write access to the continuous state.
func (c *LeafContext[T]) MutableContinuousState() *BasicVector[T] { return c.continuous }

// MutableDiscreteState gives write access to discrete group i.
func (c *LeafContext[T]) MutableDiscreteState(i int) (*BasicVector[T], error) {
	if i < 0 || i >= len(c.discrete) {
		return nil, kerrors.New(kerrors.ErrIndexOutOfRange,
			fmt.Sprintf("discrete group %d out of range [0, %d)", i, len(c.discrete)))
	}
	return c.discrete[i], nil
}
