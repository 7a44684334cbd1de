package smt

import "github.com/FuelLabs/fuel-merkle/digest"

// depth is the fixed bit-path length: every key is hashed into a 256-bit
// path before any tree-internal reasoning, per spec.md §4.5.
const depth = digest.Size * 8

// bitAt returns the bit at position i (0 = most significant) of path: 0 for
// left, 1 for right.
func bitAt(path digest.Digest, i int) byte {
	return (path[i/8] >> (7 - uint(i%8))) & 1
}

// commonPrefixLen returns the number of leading bits a and b share, from 0
// (first bits already differ) up to depth (a == b).
func commonPrefixLen(a, b digest.Digest) int {
	for i := 0; i < depth; i++ {
		if bitAt(a, i) != bitAt(b, i) {
			return i
		}
	}
	return depth
}
