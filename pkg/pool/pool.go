// Scratch vector pools for repeated kinematics evaluations
//
// Finite-difference probes evaluate the same tree many times with a
// perturbed copy of one state vector. A Vectors pool hands out copies of
// a fixed length so those probes do not allocate per evaluation.
//
// Usage:
//
//	scratch := pool.NewVectors(tree.NumPositions())
//	q := scratch.Copy(q0)
//	defer scratch.Put(q)
//	q[k] += h
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package pool

import (
	"sync"
)

// Vectors pools []float64 of one length. It is safe for concurrent use.
type Vectors struct {
	n int
	p sync.Pool
}

// NewVectors creates a pool of length-n vectors.
func NewVectors(n int) *Vectors {
	v := &Vectors{n: n}
	v.p.New = func() any {
		s := make([]float64, n)
		return &s
	}
	return v
}

// Len returns the length of the pooled vectors.
func (v *Vectors) Len() int { return v.n }

// Get returns a zeroed vector.
func (v *Vectors) Get() []float64 {
	s := *v.p.Get().(*[]float64)
	clear(s)
	return s
}

// Copy returns a pooled vector holding src. Extra elements of src are
// dropped; missing ones are zero.
func (v *Vectors) Copy(src []float64) []float64 {
	s := *v.p.Get().(*[]float64)
	n := copy(s, src)
	clear(s[n:])
	return s
}

// Put returns s to the pool. Vectors of another length are discarded.
func (v *Vectors) Put(s []float64) {
	if len(s) != v.n || cap(s) < v.n {
		return
	}
	s = s[:v.n]
	v.p.Put(&s)
}
