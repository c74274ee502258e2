// Unit tests for scratch vector pools
//
// Copyright (C) 2026 Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package pool

import (
	"sync"
	"testing"
)

func TestVectorsGetIsZeroed(t *testing.T) {
	p := NewVectors(7)
	if p.Len() != 7 {
		t.Fatalf("expected length 7, got %d", p.Len())
	}

	s := p.Get()
	if len(s) != 7 {
		t.Fatalf("expected slice of size 7, got %d", len(s))
	}
	for i := range s {
		s[i] = float64(i) + 0.5
	}
	p.Put(s)

	s2 := p.Get()
	for i, v := range s2 {
		if v != 0 {
			t.Errorf("slice[%d] should be 0, got %f", i, v)
		}
	}
	p.Put(s2)
}

func TestVectorsCopy(t *testing.T) {
	p := NewVectors(3)
	src := []float64{1, 2, 3}

	c := p.Copy(src)
	c[0] = 99
	if src[0] != 1 {
		t.Error("Copy must not alias its source")
	}
	if c[1] != 2 || c[2] != 3 {
		t.Errorf("unexpected copy %v", c)
	}
	p.Put(c)

	short := p.Copy([]float64{5})
	if short[0] != 5 || short[1] != 0 || short[2] != 0 {
		t.Errorf("short source should be zero padded, got %v", short)
	}
	long := p.Copy([]float64{1, 2, 3, 4})
	if len(long) != 3 {
		t.Errorf("long source should be truncated, got %v", long)
	}
}

func TestVectorsPutWrongLength(t *testing.T) {
	p := NewVectors(4)
	// Should not panic
	p.Put(nil)
	p.Put(make([]float64, 3))
	p.Put(make([]float64, 5))

	if s := p.Get(); len(s) != 4 {
		t.Errorf("expected slice of size 4, got %d", len(s))
	}
}

func TestVectorsConcurrent(t *testing.T) {
	p := NewVectors(6)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s := p.Copy([]float64{float64(g), float64(i)})
				if s[0] != float64(g) || s[1] != float64(i) || s[5] != 0 {
					t.Errorf("corrupted vector %v", s)
					return
				}
				p.Put(s)
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkVectorsCopy(b *testing.B) {
	p := NewVectors(13)
	src := make([]float64, 13)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := p.Copy(src)
		p.Put(s)
	}
}
