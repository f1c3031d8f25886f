package pool

import "sync"

// Slice pools used when a fit is transposed into per-field columns.
var (
	int64SlicePool = sync.Pool{
		New: func() any { return &[]int64{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

// GetInt64Slice retrieves an int64 slice of length size from the pool.
// The caller must call the returned cleanup function once done with the slice.
//
// Example:
//
//	lasts, cleanup := pool.GetInt64Slice(len(segments))
//	defer cleanup()
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := int64SlicePool.Get().(*[]int64)
	*ptr = resize(*ptr, size)

	return *ptr, func() { int64SlicePool.Put(ptr) }
}

// GetFloat64Slice retrieves a float64 slice of length size from the pool.
// The caller must call the returned cleanup function once done with the slice.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	*ptr = resize(*ptr, size)

	return *ptr, func() { float64SlicePool.Put(ptr) }
}

func resize[T any](s []T, size int) []T {
	if cap(s) < size {
		return make([]T, size)
	}

	return s[:size]
}
