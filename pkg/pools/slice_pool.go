package pools

import "sync"

// MaxPooled is the largest capacity a pooled slice may have.
const MaxPooled = 1 << 16

// SlicePool pools slices of T by capacity class. Requests above the
// largest class are allocated directly.
type SlicePool[T any] struct {
	classes []int
	pools   []sync.Pool
}

// NewSlicePool creates a pool with the given ascending capacity classes.
func NewSlicePool[T any](classes ...int) *SlicePool[T] {
	p := &SlicePool[T]{
		classes: classes,
		pools:   make([]sync.Pool, len(classes)),
	}
	for i, c := range classes {
		p.pools[i].New = func() any {
			s := make([]T, 0, c)
			return &s
		}
	}
	return p
}

func (p *SlicePool[T]) class(size int) int {
	for i, c := range p.classes {
		if size <= c {
			return i
		}
	}
	return -1
}

// Get returns an empty slice with at least the requested capacity.
func (p *SlicePool[T]) Get(size int) []T {
	i := p.class(size)
	if i < 0 {
		return make([]T, 0, size)
	}
	sp, ok := p.pools[i].Get().(*[]T)
	if !ok || cap(*sp) < size {
		return make([]T, 0, size)
	}
	return (*sp)[:0]
}

// GetSized returns a slice of exactly the requested length.
func (p *SlicePool[T]) GetSized(size int) []T {
	return p.Get(size)[:size]
}

// Put returns a slice to the pool. The slice is filed under the largest
// class its capacity satisfies.
func (p *SlicePool[T]) Put(s []T) {
	c := cap(s)
	if c > MaxPooled || len(p.classes) == 0 || c < p.classes[0] {
		return
	}
	i := len(p.classes) - 1
	for i > 0 && p.classes[i] > c {
		i--
	}
	s = s[:0]
	p.pools[i].Put(&s)
}

var (
	int32Pool = NewSlicePool[int32](16, 64, 256)
	bytePool  = NewSlicePool[byte](256, 1024, 4096, 16384, MaxPooled)
)

// GetInt32s returns an int32 slice from the default pool.
func GetInt32s(size int) []int32 {
	return int32Pool.Get(size)
}

// PutInt32s returns an int32 slice to the default pool.
func PutInt32s(s []int32) {
	int32Pool.Put(s)
}

// GetBytes returns a byte slice of length size from the default pool.
func GetBytes(size int) []byte {
	return bytePool.GetSized(size)
}

// PutBytes returns a byte slice to the default pool.
func PutBytes(b []byte) {
	bytePool.Put(b)
}
