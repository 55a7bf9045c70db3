package gridset

import "hash/fnv"

// computeFingerprint hashes the grid dimensions and passability bitmap into
// a single uint64, giving Grid.Fingerprint a stable opaque handle without
// requiring callers to re-walk the grid on every cache lookup.
func computeFingerprint(w, h int, passable []bool) uint64 {
	hasher := fnv.New64a()
	var buf [8]byte
	putInt(&buf, w)
	hasher.Write(buf[:])
	putInt(&buf, h)
	hasher.Write(buf[:])

	// Pack passability bits 8 at a time to keep the hash input small.
	packed := make([]byte, (len(passable)+7)/8)
	for i, p := range passable {
		if p {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	hasher.Write(packed)

	return hasher.Sum64()
}

func putInt(buf *[8]byte, v int) {
	u := uint64(int64(v))
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * uint(i)))
	}
}
