package tendermint_test

import (
	"testing"
	"time"

	"github.com/tendermint/ics07/crypto/tmhash"
	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/ibc/tendermint"
	"github.com/tendermint/ics07/internal/test/factory"
	"github.com/tendermint/ics07/types"
)

const chainID = "testchain-1"

var (
	clientID      = host.MustParseClientID("07-tendermint-0")
	trustedHeight = client.NewHeight(1, 5)
)

// testChain signs headers with a fixed validator set.
type testChain struct {
	keys factory.PrivKeys
	vals *types.ValidatorSet
}

func newTestChain(t testing.TB, n int) testChain {
	t.Helper()
	keys := factory.GenPrivKeys(n)
	return testChain{keys: keys, vals: keys.ToValidators(t, 10, 0)}
}

// header returns a Header at height signed by keys [0, signers). appHash
// tells apart conflicting headers at the same height.
func (c testChain) header(t testing.TB, id string, height int64, appHash string, signers int) tendermint.Header {
	t.Helper()

	h := factory.MakeHeader(id, height, factory.DefaultTime.Add(time.Duration(height)*time.Second), c.vals, c.vals)
	h.AppHash = tmhash.Sum([]byte(appHash))
	return tendermint.Header{
		SignedHeader: &types.SignedHeader{
			Header: h,
			Commit: c.keys.SignHeader(t, h, c.vals, 0, signers),
		},
		ValidatorSet:      c.vals,
		NextValidatorSet:  c.vals,
		TrustedHeight:     trustedHeight,
		TrustedValidators: c.vals,
	}
}

// conflictingPair returns two fully signed, different headers at height.
func (c testChain) conflictingPair(t testing.TB, height int64) (tendermint.Header, tendermint.Header) {
	t.Helper()
	return c.header(t, chainID, height, "app-a", len(c.keys)),
		c.header(t, chainID, height, "app-b", len(c.keys))
}

// reweighted returns a copy of c whose validators, in key order, have the
// given voting powers. The set is not checked.
func (c testChain) reweighted(powers ...int64) testChain {
	vals := c.vals.Copy()
	for i, k := range c.keys {
		idx, _ := vals.GetByAddress(k.PubKey().Address())
		vals.Validators[idx].VotingPower = powers[i]
	}
	return testChain{keys: c.keys, vals: vals}
}
