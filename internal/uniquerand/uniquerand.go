// Package uniquerand produces each integer of a predefined range exactly
// once, in random order.
//
// It backs the completion probe of racing combinators: when several inputs
// have already completed, probing them in uniquerand order removes any
// fixed bias toward lower indices.
package uniquerand

import "math/rand/v2"

const blockSize = 64

// Int returns unique random numbers within a predefined range.
// It keeps a bitset of the numbers handed out so far and guarantees each
// one is returned at most once per Reset.
// The zero value has an empty range and produces nothing.
type Int struct {
	r    int      // exclusive upper limit
	used []uint64 // one bit per produced number
	left int      // numbers not yet produced
}

// Reset sets the range of the generator to [0, r) and forgets all
// previously produced numbers. A non-positive range produces nothing.
func (uri *Int) Reset(r int) {
	if r < 0 {
		r = 0
	}
	uri.r = r
	uri.left = r
	blocks := (r + blockSize - 1) / blockSize
	if blocks <= cap(uri.used) {
		uri.used = uri.used[:blocks]
		clear(uri.used)
	} else {
		uri.used = make([]uint64, blocks)
	}
}

// Range returns the exclusive upper limit of the generated numbers.
func (uri *Int) Range() int { return uri.r }

// Get returns a not-yet-produced random number in range and ok as true.
// If ok is false, the range is exhausted.
func (uri *Int) Get() (urn int, ok bool) {
	if uri.left == 0 {
		return 0, false
	}

	// random probe first, then a linear scan from the probe point.
	// the scan keeps Get O(range) worst case without extra memory.
	start := rand.IntN(uri.r)
	for i := 0; i < uri.r; i++ {
		n := start + i
		if n >= uri.r {
			n -= uri.r
		}
		if uri.take(n) {
			return n, true
		}
	}
	return 0, false
}

func (uri *Int) take(n int) bool {
	block, mask := n/blockSize, uint64(1)<<(n%blockSize)
	if uri.used[block]&mask != 0 {
		return false
	}
	uri.used[block] |= mask
	uri.left--
	return true
}
