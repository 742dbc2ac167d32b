package pool

import "sync"

var wordSlicePool = sync.Pool{
	New: func() any { return &[]uint64{} },
}

// GetWordSlice returns a uint64 slice of length size from the pool.
//
// The caller must call the returned cleanup function once it no longer uses
// the slice, typically with defer.
//
// Example:
//
//	words, cleanup := pool.GetWordSlice(n)
//	defer cleanup()
func GetWordSlice(size int) ([]uint64, func()) {
	ptr, _ := wordSlicePool.Get().(*[]uint64)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]uint64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { wordSlicePool.Put(ptr) }
}
