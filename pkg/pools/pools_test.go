package pools

import (
	"sync"
	"testing"
)

func TestSlicePool_Get(t *testing.T) {
	pool := NewSlicePool[int32](16, 64, 256)

	tests := []struct {
		name   string
		size   int
		minCap int
	}{
		{"small", 8, 8},
		{"small_max", 16, 16},
		{"medium", 32, 32},
		{"large_max", 256, 256},
		{"oversized", 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := pool.Get(tt.size)
			if len(s) != 0 {
				t.Errorf("Get(%d) length = %d, want 0", tt.size, len(s))
			}
			if cap(s) < tt.minCap {
				t.Errorf("Get(%d) capacity = %d, want >= %d", tt.size, cap(s), tt.minCap)
			}
		})
	}
}

func TestSlicePool_PutAndReuse(t *testing.T) {
	pool := NewSlicePool[int32](16, 64)

	for i := 0; i < 10; i++ {
		s := pool.Get(16)
		s = append(s, 1, 2, 3, 4, 5)
		pool.Put(s)
	}

	s := pool.Get(16)
	if len(s) != 0 {
		t.Errorf("After Put, Get returned slice with length %d, want 0", len(s))
	}
}

func TestSlicePool_PutOddCapacity(t *testing.T) {
	pool := NewSlicePool[int32](16, 64)

	// capacity 40 satisfies the 16 class but not the 64 class
	pool.Put(make([]int32, 0, 40))
	pool.Put(make([]int32, 0, 4)) // below smallest class, dropped
	pool.Put(make([]int32, 0, MaxPooled+1))

	s := pool.Get(64)
	if cap(s) < 64 {
		t.Errorf("Get(64) capacity = %d, want >= 64", cap(s))
	}
}

func TestDefaultPools(t *testing.T) {
	ids := GetInt32s(32)
	if cap(ids) < 32 {
		t.Errorf("GetInt32s(32) capacity = %d, want >= 32", cap(ids))
	}
	PutInt32s(ids)

	b := GetBytes(100)
	if len(b) != 100 {
		t.Errorf("GetBytes(100) length = %d, want 100", len(b))
	}
	PutBytes(b)
}

func TestSlicePool_Concurrent(t *testing.T) {
	pool := NewSlicePool[int32](16, 64, 256)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := pool.Get(n * 8)
				s = append(s, int32(j))
				pool.Put(s)
			}
		}(i + 1)
	}
	wg.Wait()
}
