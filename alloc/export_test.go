package alloc

import "unsafe"

// uintptrOf and addOffset are small unsafe helpers used only by tests to
// inspect and perturb pointers returned by the allocators in this package.
func uintptrOf(p unsafe.Pointer) uintptr {
	return uintptr(p)
}

func addOffset(p unsafe.Pointer, n int) unsafe.Pointer {
	return unsafe.Add(p, n)
}
