package factory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ics07/crypto"
	"github.com/tendermint/ics07/crypto/ed25519"
	"github.com/tendermint/ics07/crypto/tmhash"
	"github.com/tendermint/ics07/types"
)

// DefaultTime is the block time of the first generated header.
var DefaultTime = time.Date(2021, time.March, 1, 12, 0, 0, 0, time.UTC)

// PrivKeys is a helper type for testing.
//
// It lets us simulate signing with many keys. The main use case is to create
// a set, and call GenSignedHeader to get properly signed header for testing.
//
// You can set different weights of validators each time you call
// ToValidators, and can optionally extend the validator set later with
// Extend.
type PrivKeys []crypto.PrivKey

// GenPrivKeys produces n deterministic ed25519 keys. The same n always
// yields the same keys.
func GenPrivKeys(n int) PrivKeys {
	return genPrivKeysFrom(0, n)
}

func genPrivKeysFrom(offset, n int) PrivKeys {
	res := make(PrivKeys, n)
	for i := range res {
		res[i] = ed25519.GenPrivKeyFromSecret([]byte(fmt.Sprintf("validator-%d", offset+i)))
	}
	return res
}

// Extend adds n more keys (to remove, just take a slice).
func (pkz PrivKeys) Extend(n int) PrivKeys {
	return append(pkz, genPrivKeysFrom(len(pkz), n)...)
}

// ToValidators produces a valset from the set of keys.
// The first key has weight `init` and it increases by `inc` every step
// so we can have all the same weight, or a simple linear distribution
// (should be enough for testing).
func (pkz PrivKeys) ToValidators(t testing.TB, init, inc int64) *types.ValidatorSet {
	t.Helper()

	res := make([]*types.Validator, len(pkz))
	for i, k := range pkz {
		res[i] = types.NewValidator(k.PubKey(), init+int64(i)*inc)
	}
	vals, err := types.NewValidatorSet(res)
	require.NoError(t, err)
	return vals
}

// SignHeader properly signs the header with all keys from first to last
// exclusive. Validators of valSet without a key in that range are absent.
func (pkz PrivKeys) SignHeader(t testing.TB, header *types.Header, valSet *types.ValidatorSet, first, last int) *types.Commit {
	t.Helper()

	commitSigs := make([]types.CommitSig, valSet.Size())
	for i := range commitSigs {
		commitSigs[i] = types.NewCommitSigAbsent()
	}

	blockID := types.BlockID{
		Hash:          header.Hash(),
		PartSetHeader: types.PartSetHeader{Total: 1, Hash: tmhash.Sum([]byte("parts"))},
	}
	commit := &types.Commit{
		Height:     header.Height,
		Round:      1,
		BlockID:    blockID,
		Signatures: commitSigs,
	}

	// Fill in the votes we want.
	for i := first; i < last && i < len(pkz); i++ {
		addr := pkz[i].PubKey().Address()
		idx, _ := valSet.GetByAddress(addr)
		require.GreaterOrEqual(t, idx, int32(0), "key %d is not in the validator set", i)

		commitSigs[idx] = types.CommitSig{
			BlockIDFlag:      types.BlockIDFlagCommit,
			ValidatorAddress: addr,
			Timestamp:        header.Time.Add(time.Second),
		}
		sig, err := pkz[i].Sign(commit.VoteSignBytes(header.ChainID, idx))
		require.NoError(t, err)
		commitSigs[idx].Signature = sig
	}

	return commit
}

// MakeHeader returns a well formed header committing to valset and
// nextValset.
func MakeHeader(chainID string, height int64, bTime time.Time,
	valset, nextValset *types.ValidatorSet) *types.Header {

	return &types.Header{
		Version: types.Consensus{Block: types.BlockProtocol, App: 0},
		ChainID: chainID,
		Height:  height,
		Time:    bTime,
		LastBlockID: types.BlockID{
			Hash:          hash(fmt.Sprintf("block-%d", height-1)),
			PartSetHeader: types.PartSetHeader{Total: 1, Hash: hash("parts")},
		},
		ValidatorsHash:     valset.Hash(),
		NextValidatorsHash: nextValset.Hash(),
		AppHash:            hash("app_hash"),
		ConsensusHash:      hash("cons_hash"),
		LastResultsHash:    hash("results_hash"),
		ProposerAddress:    valset.Validators[0].Address,
	}
}

// GenSignedHeader calls MakeHeader and SignHeader and combines them into a
// SignedHeader.
func (pkz PrivKeys) GenSignedHeader(t testing.TB, chainID string, height int64, bTime time.Time,
	valset, nextValset *types.ValidatorSet, first, last int) *types.SignedHeader {

	t.Helper()

	header := MakeHeader(chainID, height, bTime, valset, nextValset)
	return &types.SignedHeader{
		Header: header,
		Commit: pkz.SignHeader(t, header, valset, first, last),
	}
}

func hash(s string) []byte {
	return tmhash.Sum([]byte(s))
}
