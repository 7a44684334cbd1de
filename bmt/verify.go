package bmt

import "github.com/FuelLabs/fuel-merkle/digest"

// Verify recomputes the root for leafData at index in a tree of leafCount
// leaves from proof (as returned by Engine.Prove) and reports whether it
// equals root. It does not require access to the tree or its storage.
func Verify(root digest.Digest, leafData []byte, index, leafCount uint64, proof []digest.Digest) bool {
	if leafCount == 0 || index >= leafCount {
		return false
	}

	peakPositions := peakPositionsForCount(leafCount)
	pos := leafIndexToPosition(index)
	acc := digest.HashLeaf(leafData)
	pi := 0

	peakIdx := indexOfPosition(pos, peakPositions)
	for peakIdx < 0 {
		if pi >= len(proof) {
			return false
		}
		sib := proof[pi]
		pi++
		if pos.isRightChild() {
			acc = digest.HashNode(sib, acc)
		} else {
			acc = digest.HashNode(acc, sib)
		}
		pos = pos.Parent()
		peakIdx = indexOfPosition(pos, peakPositions)
	}

	if peakIdx < len(peakPositions)-1 {
		if pi >= len(proof) {
			return false
		}
		acc = digest.HashNode(acc, proof[pi])
		pi++
	}
	for i := peakIdx - 1; i >= 0; i-- {
		if pi >= len(proof) {
			return false
		}
		acc = digest.HashNode(proof[pi], acc)
		pi++
	}

	return pi == len(proof) && acc == root
}

// peakPositionsForCount returns the positions of the peak roots that result
// from appending leafCount leaves one at a time, in the same left-to-right
// order Engine.Push produces: the binary representation of leafCount, read
// from the most significant set bit down, gives the sequence of perfect
// subtree sizes, each immediately following the leaf range of the last.
func peakPositionsForCount(leafCount uint64) []Position {
	var positions []Position
	var offset uint64
	for h := 63; h >= 0; h-- {
		size := uint64(1) << uint(h)
		if leafCount&size == 0 {
			continue
		}
		// Root of a perfect subtree spanning leaf indices
		// [offset, offset+size) sits at in-order position
		// 2*offset + (size-1).
		positions = append(positions, Position(2*offset+size-1))
		offset += size
	}
	return positions
}

func indexOfPosition(pos Position, positions []Position) int {
	for i, p := range positions {
		if p == pos {
			return i
		}
	}
	return -1
}
