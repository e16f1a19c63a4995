package hashmap

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// defaultHash provides Table's out-of-the-box hashing: xxhash over the
// key's byte representation for variable-size keys (matching
// spec.md's rapidhash-class policy for strings and byte slices), and an
// inlined MurmurHash3 finalizer directly over the bit pattern for
// fixed-width integer keys, which is cheaper than hashing through a byte
// buffer for the common case of small scalar keys.
func defaultHash[K comparable](key K, seed uint64) uint64 {
	switch v := any(key).(type) {
	case string:
		return xxhash.Sum64String(v) ^ seed
	case []byte:
		return xxhash.Sum64(v) ^ seed
	case int:
		return murmur3Finalizer(uint64(v) ^ seed)
	case int8:
		return murmur3Finalizer(uint64(v) ^ seed)
	case int16:
		return murmur3Finalizer(uint64(v) ^ seed)
	case int32:
		return murmur3Finalizer(uint64(v) ^ seed)
	case int64:
		return murmur3Finalizer(uint64(v) ^ seed)
	case uint:
		return murmur3Finalizer(uint64(v) ^ seed)
	case uint8:
		return murmur3Finalizer(uint64(v) ^ seed)
	case uint16:
		return murmur3Finalizer(uint64(v) ^ seed)
	case uint32:
		return murmur3Finalizer(uint64(v) ^ seed)
	case uint64:
		return murmur3Finalizer(v ^ seed)
	case uintptr:
		return murmur3Finalizer(uint64(v) ^ seed)
	default:
		// Slow path for arbitrary comparable key types: format and hash
		// the textual representation. Correct for any comparable K, just
		// not competitive with the fast paths above.
		return xxhash.Sum64String(fmt.Sprintf("%#v", v)) ^ seed
	}
}

// murmur3Finalizer is MurmurHash3's 64-bit mixing function, used to
// spread a fixed-width integer key's bits across the full hash range
// without hashing through a byte buffer.
func murmur3Finalizer(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
