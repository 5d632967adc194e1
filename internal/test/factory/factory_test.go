package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenPrivKeysDeterministic(t *testing.T) {
	a := GenPrivKeys(3)
	b := GenPrivKeys(3)
	for i := range a {
		assert.True(t, a[i].Equals(b[i]))
	}
	ext := a.Extend(2)
	require.Len(t, ext, 5)
	assert.False(t, ext[3].Equals(ext[0]))
}

func TestGenSignedHeader(t *testing.T) {
	keys := GenPrivKeys(4)
	vals := keys.ToValidators(t, 10, 1)
	sh := keys.GenSignedHeader(t, "test-chain-1", 5, DefaultTime, vals, vals, 0, len(keys))

	require.NoError(t, sh.Header.ValidateBasic())
	require.NoError(t, sh.Commit.ValidateBasic())
	assert.Equal(t, sh.Header.Hash(), sh.Commit.BlockID.Hash)
	assert.Len(t, sh.Commit.Signatures, vals.Size())
	for idx, cs := range sh.Commit.Signatures {
		_, val := vals.GetByIndex(int32(idx))
		assert.True(t, val.PubKey.VerifySignature(sh.Commit.VoteSignBytes("test-chain-1", int32(idx)), cs.Signature))
	}
}
