package bmt

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store/storemem"
)

func TestEmptyRoot(t *testing.T) {
	e := New(storemem.New())
	require.Equal(t, digest.EmptySum(), e.Root())
	require.Equal(t, sha256.Sum256(nil), [32]byte(e.Root()))
}

func TestRootIndependentOfObservation(t *testing.T) {
	data := [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d"), []byte("e")}

	e1 := New(storemem.New())
	for _, d := range data {
		require.NoError(t, e1.Push(d))
	}
	want := e1.Root()

	// Observing intermediate roots must not perturb the final root.
	e2 := New(storemem.New())
	for _, d := range data {
		require.NoError(t, e2.Push(d))
		_ = e2.Root()
	}
	require.Equal(t, want, e2.Root())
}

func TestRootMatchesRFC6962ForSmallSizes(t *testing.T) {
	leaves := [][]byte{[]byte("L0"), []byte("L1"), []byte("L2")}

	e := New(storemem.New())
	for _, l := range leaves {
		require.NoError(t, e.Push(l))
	}

	h0 := digest.HashLeaf(leaves[0])
	h1 := digest.HashLeaf(leaves[1])
	h2 := digest.HashLeaf(leaves[2])
	// MTH({d0,d1,d2}) = H(1, MTH({d0,d1}), MTH({d2})) per RFC 6962 (k=2).
	want := digest.HashNode(digest.HashNode(h0, h1), h2)
	require.Equal(t, want, e.Root())
}

func TestProveAndVerify(t *testing.T) {
	for n := 1; n <= 37; n++ {
		e := New(storemem.New())
		leaves := make([][]byte, n)
		for i := 0; i < n; i++ {
			leaves[i] = []byte{byte(i), byte(i >> 8)}
			require.NoError(t, e.Push(leaves[i]))
		}
		root := e.Root()
		for i := 0; i < n; i++ {
			gotRoot, proof, err := e.Prove(uint64(i))
			require.NoError(t, err)
			require.Equal(t, root, gotRoot)
			require.True(t, Verify(root, leaves[i], uint64(i), uint64(n), proof),
				"n=%d i=%d", n, i)
		}
	}
}

func TestProveInvalidIndex(t *testing.T) {
	e := New(storemem.New())
	require.NoError(t, e.Push([]byte("only")))
	_, _, err := e.Prove(1)
	require.ErrorIs(t, err, ErrInvalidProofIndex)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	e := New(storemem.New())
	leaves := [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d"), []byte("e")}
	for _, l := range leaves {
		require.NoError(t, e.Push(l))
	}
	root := e.Root()

	gotRoot, proof, err := e.Prove(2)
	require.NoError(t, err)
	require.True(t, Verify(gotRoot, leaves[2], 2, uint64(len(leaves)), proof))

	// Flip a bit in the leaf data.
	tampered := append([]byte(nil), leaves[2]...)
	tampered[0] ^= 0x01
	require.False(t, Verify(root, tampered, 2, uint64(len(leaves)), proof))

	// Flip a bit in a sibling.
	if len(proof) > 0 {
		badProof := append([]digest.Digest(nil), proof...)
		badProof[0][0] ^= 0x01
		require.False(t, Verify(root, leaves[2], 2, uint64(len(leaves)), badProof))
	}

	// Flip a bit in the root.
	badRoot := root
	badRoot[0] ^= 0x01
	require.False(t, Verify(badRoot, leaves[2], 2, uint64(len(leaves)), proof))
}
