package smt

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/fuel-merkle/digest"
	"github.com/FuelLabs/fuel-merkle/store/storemem"
)

func keyOf(i uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, i)
	return b
}

func rootHex(t *testing.T, e *Engine) string {
	t.Helper()
	return hex.EncodeToString(e.Root().Bytes())
}

func insertRange(t *testing.T, e *Engine, lo, hi uint32) {
	t.Helper()
	for i := lo; i < hi; i++ {
		_, err := e.Update(keyOf(i), []byte("DATA"))
		require.NoError(t, err)
	}
}

func deleteRange(t *testing.T, e *Engine, lo, hi uint32) {
	t.Helper()
	for i := lo; i < hi; i++ {
		_, err := e.Delete(keyOf(i))
		require.NoError(t, err)
	}
}

func TestEmptyRootVector(t *testing.T) {
	e := New(storemem.New())
	require.Equal(t, digest.ZeroSum(), e.Root())
}

func TestInsertVectors(t *testing.T) {
	cases := []struct {
		name string
		lo   uint32
		hi   uint32
		want string
	}{
		{"k=0", 0, 1, "39f36a7cb4dfb1b46f03d044265df6a491dffc1034121bc1071a34ddce9bb14b"},
		{"k=0,1", 0, 2, "8d0ae412ca9ca0afcb3217af8bcd5a673e798bd6fd1dfacad17711e883f494cb"},
		{"k=0..3", 0, 3, "52295e42d8de2505fdc0cc825ff9fead419cbcf540d8b30c7c4b9c9b94c268b7"},
		{"k=0..5", 0, 5, "108f731f2414e33ae57e584dc26bd276db07874436b2264ca6e520c658185c6b"},
		{"k=0..10", 0, 10, "21ca4917e99da99a61de93deaf88c400d4c082991cb95779e444d43dd13e8849"},
		{"k=0..100", 0, 100, "82bf747d455a55e2f7044a03536fc43f1f55d43b855e72c0110c986707a23e4d"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := New(storemem.New())
			insertRange(t, e, c.lo, c.hi)
			require.Equal(t, c.want, rootHex(t, e))
		})
	}
}

func TestDeleteBackToPriorVector(t *testing.T) {
	want := "108f731f2414e33ae57e584dc26bd276db07874436b2264ca6e520c658185c6b" // k=0..5

	t.Run("k=0..10 then delete k=5..10", func(t *testing.T) {
		e := New(storemem.New())
		insertRange(t, e, 0, 10)
		deleteRange(t, e, 5, 10)
		require.Equal(t, want, rootHex(t, e))
	})

	t.Run("k=0..5 then delete absent k=1024", func(t *testing.T) {
		e := New(storemem.New())
		insertRange(t, e, 0, 5)
		_, err := e.Delete(keyOf(1024))
		require.NoError(t, err)
		require.Equal(t, want, rootHex(t, e))
	})
}

func TestGappedRangeVector(t *testing.T) {
	want := "7e6643325042cfe0fc76626c043b97062af51c7e9fc56665f12b479034bce326"

	e := New(storemem.New())
	insertRange(t, e, 0, 5)
	insertRange(t, e, 10, 15)
	insertRange(t, e, 20, 25)
	require.Equal(t, want, rootHex(t, e))
}

// TestScenarioA builds the gapped [0,5)∪[10,15)∪[20,25) tree two different
// ways and requires both to converge on the same root (history
// independence).
func TestScenarioA(t *testing.T) {
	want := "7e6643325042cfe0fc76626c043b97062af51c7e9fc56665f12b479034bce326"

	direct := New(storemem.New())
	insertRange(t, direct, 0, 5)
	insertRange(t, direct, 10, 15)
	insertRange(t, direct, 20, 25)
	require.Equal(t, want, rootHex(t, direct))

	interleaved := New(storemem.New())
	insertRange(t, interleaved, 0, 10)
	deleteRange(t, interleaved, 5, 15)
	insertRange(t, interleaved, 10, 20)
	deleteRange(t, interleaved, 15, 25)
	insertRange(t, interleaved, 20, 30)
	deleteRange(t, interleaved, 25, 35)
	require.Equal(t, want, rootHex(t, interleaved))
}

func TestScenarioB_NoOpDelete(t *testing.T) {
	e := New(storemem.New())
	_, err := e.Update(keyOf(0), []byte("DATA"))
	require.NoError(t, err)
	_, err = e.Delete(keyOf(0))
	require.NoError(t, err)
	require.Equal(t, digest.ZeroSum(), e.Root())
}

func TestScenarioC_UpdateReplaces(t *testing.T) {
	s := storemem.New()
	e := New(s)
	root1, err := e.Update(keyOf(0), []byte("DATA"))
	require.NoError(t, err)
	lenAfterFirst := s.Len()

	root2, err := e.Update(keyOf(0), []byte("DATA"))
	require.NoError(t, err)

	require.Equal(t, root1, root2)
	require.Equal(t, lenAfterFirst, s.Len())
}
