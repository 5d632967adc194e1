package types_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ics07/crypto/ed25519"
	"github.com/tendermint/ics07/crypto/secp256k1"
	"github.com/tendermint/ics07/internal/test/factory"
	"github.com/tendermint/ics07/types"
)

func TestNewValidatorSetSortsAndPicksProposer(t *testing.T) {
	keys := factory.GenPrivKeys(5)
	vals := make([]*types.Validator, len(keys))
	for i, k := range keys {
		vals[i] = types.NewValidator(k.PubKey(), int64(i%2+1))
	}

	valSet, err := types.NewValidatorSet(vals)
	require.NoError(t, err)
	require.Equal(t, 5, valSet.Size())
	assert.EqualValues(t, 7, valSet.TotalVotingPower())
	assert.True(t, sort.IsSorted(types.ValidatorsByVotingPower(valSet.Validators)))
	assert.Equal(t, valSet.Validators[0].Address, valSet.GetProposer().Address)

	// the input slice is not aliased
	vals[0].VotingPower = 100
	assert.EqualValues(t, 7, valSet.TotalVotingPower())
}

func TestNewValidatorSetRejectsInvalid(t *testing.T) {
	keys := factory.GenPrivKeys(2)

	_, err := types.NewValidatorSet(nil)
	assert.Error(t, err)

	_, err = types.NewValidatorSet([]*types.Validator{types.NewValidator(keys[0].PubKey(), 0)})
	assert.Error(t, err, "zero power")

	_, err = types.NewValidatorSet([]*types.Validator{types.NewValidator(keys[0].PubKey(), -1)})
	assert.Error(t, err, "negative power")

	dup := types.NewValidator(keys[0].PubKey(), 1)
	_, err = types.NewValidatorSet([]*types.Validator{dup, dup})
	assert.Error(t, err, "duplicate")

	_, err = types.NewValidatorSet([]*types.Validator{
		types.NewValidator(keys[0].PubKey(), types.MaxTotalVotingPower),
		types.NewValidator(keys[1].PubKey(), 1),
	})
	assert.ErrorIs(t, err, types.ErrTotalVotingPowerOverflow)

	mismatched := types.NewValidator(keys[0].PubKey(), 1)
	mismatched.Address = keys[1].PubKey().Address()
	_, err = types.NewValidatorSet([]*types.Validator{mismatched})
	assert.Error(t, err, "address does not match pubkey")
}

func TestValidatorSetLookups(t *testing.T) {
	keys := factory.GenPrivKeys(3)
	valSet := keys.ToValidators(t, 10, 0)

	for _, k := range keys {
		addr := k.PubKey().Address()
		assert.True(t, valSet.HasAddress(addr))
		idx, val := valSet.GetByAddress(addr)
		require.NotNil(t, val)
		gotAddr, byIdx := valSet.GetByIndex(idx)
		assert.Equal(t, addr, types.Address(gotAddr))
		assert.Equal(t, val, byIdx)
	}

	other := factory.GenPrivKeys(4)[3].PubKey().Address()
	assert.False(t, valSet.HasAddress(other))
	idx, val := valSet.GetByAddress(other)
	assert.EqualValues(t, -1, idx)
	assert.Nil(t, val)

	addr, val := valSet.GetByIndex(3)
	assert.Nil(t, addr)
	assert.Nil(t, val)
}

func TestValidatorSetHash(t *testing.T) {
	keys := factory.GenPrivKeys(3)
	valSet := keys.ToValidators(t, 10, 1)
	hash := valSet.Hash()
	require.Len(t, hash, 32)
	assert.Equal(t, hash, valSet.Copy().Hash())

	// the proposer priority is not part of the hash
	withPriority := valSet.Copy()
	withPriority.Validators[0].ProposerPriority = 42
	assert.Equal(t, hash, withPriority.Hash())

	power := valSet.Copy()
	power.Validators[0].VotingPower++
	assert.NotEqual(t, hash, power.Hash())

	reordered := valSet.Copy()
	reordered.Validators[0], reordered.Validators[1] = reordered.Validators[1], reordered.Validators[0]
	assert.NotEqual(t, hash, reordered.Hash())

	assert.NotEqual(t, hash, keys[:2].ToValidators(t, 10, 1).Hash())

	golden := &types.ValidatorSet{Validators: []*types.Validator{
		types.NewValidator(ed25519.PubKey(bytes.Repeat([]byte{1}, ed25519.PubKeySize)), 10),
		types.NewValidator(ed25519.PubKey(bytes.Repeat([]byte{2}, ed25519.PubKeySize)), 20),
		types.NewValidator(ed25519.PubKey(bytes.Repeat([]byte{3}, ed25519.PubKeySize)), 30),
	}}
	assert.Equal(t,
		"5C288E5DAE790236825EBC397455975030972AB0357B5DBAD0CD6B2156174139",
		fmt.Sprintf("%X", golden.Hash()))
}

func TestValidatorSetCopyIsDeep(t *testing.T) {
	valSet := factory.GenPrivKeys(2).ToValidators(t, 10, 0)
	c := valSet.Copy()
	require.Equal(t, valSet, c)

	c.Validators[0].VotingPower = 1
	c.Validators[0].Address[0] ^= 0xff
	c.Validators[0].PubKey.Bytes()[0] ^= 0xff
	assert.EqualValues(t, 10, valSet.Validators[0].VotingPower)
	assert.Equal(t, valSet.Validators[0].PubKey.Address(), valSet.Validators[0].Address)
	assert.Nil(t, (*types.ValidatorSet)(nil).Copy())
}

func TestValidatorJSON(t *testing.T) {
	for _, pk := range []types.Validator{
		*types.NewValidator(ed25519.GenPrivKeyFromSecret([]byte("a")).PubKey(), 5),
		*types.NewValidator(secp256k1.GenPrivKeySecp256k1([]byte("b")).PubKey(), 7),
	} {
		bz, err := json.Marshal(pk)
		require.NoError(t, err)

		var got types.Validator
		require.NoError(t, json.Unmarshal(bz, &got))
		assert.Equal(t, pk, got)
		assert.NoError(t, got.ValidateBasic())
	}
}

func TestTotalVotingPowerProperty(t *testing.T) {
	keys := factory.GenPrivKeys(8)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, len(keys)).Draw(t, "n").(int)
		vals := make([]*types.Validator, n)
		var sum int64
		for i := 0; i < n; i++ {
			p := rapid.Int64Range(1, 1<<40).Draw(t, "power").(int64)
			sum += p
			vals[i] = types.NewValidator(keys[i].PubKey(), p)
		}
		valSet, err := types.NewValidatorSet(vals)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valSet.TotalVotingPower() != sum {
			t.Fatalf("total power %d, want %d", valSet.TotalVotingPower(), sum)
		}
		for i := 1; i < n; i++ {
			prev, cur := valSet.Validators[i-1], valSet.Validators[i]
			if prev.VotingPower < cur.VotingPower ||
				(prev.VotingPower == cur.VotingPower && bytes.Compare(prev.Address, cur.Address) >= 0) {
				t.Fatalf("validators out of order at %d", i)
			}
		}
	})
}
