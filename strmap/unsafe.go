package strmap

import "unsafe"

// ptrBytes views n bytes of allocator-returned memory as a slice.
func ptrBytes(ptr unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(ptr), n)
}
