package light_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ics07/crypto/secp256k1"
	"github.com/tendermint/ics07/internal/test/factory"
	tmmath "github.com/tendermint/ics07/libs/math"
	"github.com/tendermint/ics07/light"
	"github.com/tendermint/ics07/types"
)

const chainID = "light-chain-1"

func TestProdCommitValidator(t *testing.T) {
	keys := factory.GenPrivKeys(4)
	vals := keys.ToValidators(t, 10, 0)
	cv := light.DefaultCommitValidator()

	testCases := []struct {
		name         string
		signedHeader func() *types.SignedHeader
		vals         *types.ValidatorSet
		validate     light.VerdictKind
		validateFull light.VerdictKind
	}{
		{
			"all signed",
			func() *types.SignedHeader {
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
			},
			vals, light.VerdictSuccess, light.VerdictSuccess,
		},
		{
			"three of four signed",
			func() *types.SignedHeader {
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 3)
			},
			vals, light.VerdictSuccess, light.VerdictSuccess,
		},
		{
			"exactly two thirds is not enough",
			func() *types.SignedHeader {
				keys := factory.GenPrivKeys(3)
				vals := keys.ToValidators(t, 10, 0)
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 2)
			},
			factory.GenPrivKeys(3).ToValidators(t, 10, 0), light.VerdictSuccess, light.VerdictNotEnoughTrust,
		},
		{
			"half signed",
			func() *types.SignedHeader {
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 2)
			},
			vals, light.VerdictSuccess, light.VerdictNotEnoughTrust,
		},
		{
			"nobody signed",
			func() *types.SignedHeader {
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 0)
			},
			vals, light.VerdictInvalid, light.VerdictNotEnoughTrust,
		},
		{
			"bad signature",
			func() *types.SignedHeader {
				sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
				sh.Commit.Signatures[2].Signature[0] ^= 0xff
				return sh
			},
			vals, light.VerdictSuccess, light.VerdictInvalid,
		},
		{
			"signature over another chain id",
			func() *types.SignedHeader {
				sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
				sh.ChainID = "other-chain-1"
				return sh
			},
			vals, light.VerdictSuccess, light.VerdictInvalid,
		},
		{
			"commit height differs",
			func() *types.SignedHeader {
				sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
				sh.Commit.Height = 6
				return sh
			},
			vals, light.VerdictInvalid, light.VerdictInvalid,
		},
		{
			"signer outside the set",
			func() *types.SignedHeader {
				ext := keys.Extend(1)
				bigger := ext.ToValidators(t, 10, 0)
				sh := ext.GenSignedHeader(t, chainID, 5, factory.DefaultTime, bigger, bigger, 0, 5)
				// keep the slot count right while referencing a stranger
				for i, cs := range sh.Commit.Signatures {
					if vals.HasAddress(cs.ValidatorAddress) {
						continue
					}
					sh.Commit.Signatures = append(sh.Commit.Signatures[:i], sh.Commit.Signatures[i+1:]...)
					sh.Commit.Signatures[0] = cs
					break
				}
				return sh
			},
			vals, light.VerdictInvalid, light.VerdictInvalid,
		},
		{
			"duplicate vote",
			func() *types.SignedHeader {
				sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
				sh.Commit.Signatures[1] = sh.Commit.Signatures[0]
				return sh
			},
			vals, light.VerdictInvalid, light.VerdictInvalid,
		},
		{
			"too few signature slots",
			func() *types.SignedHeader {
				sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
				sh.Commit.Signatures = sh.Commit.Signatures[:3]
				return sh
			},
			vals, light.VerdictInvalid, light.VerdictSuccess,
		},
		{
			"nil validator set",
			func() *types.SignedHeader {
				return keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 4)
			},
			nil, light.VerdictInvalid, light.VerdictInvalid,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			sh := tc.signedHeader()

			v := cv.Validate(sh, tc.vals)
			assert.Equal(t, tc.validate, v.Kind, "validate: %v", v)
			if v.IsSuccess() {
				assert.NoError(t, v.Err())
			} else {
				assert.Error(t, v.Err())
			}

			v = cv.ValidateFull(sh, tc.vals)
			assert.Equal(t, tc.validateFull, v.Kind, "validate full: %v", v)
		})
	}
}

func TestCommitValidatorRejectsMalformedValidatorSet(t *testing.T) {
	keys := factory.GenPrivKeys(3)
	cv := light.DefaultCommitValidator()

	testCases := []struct {
		name    string
		powers  []int64
		signers int
		reason  string
	}{
		// without the structural check 1 of 11 power would clear 2/3
		{"negative power member", []int64{1, 10, -10}, 1, "negative voting power"},
		{"zero power member", []int64{10, 10, 0}, 3, "zero voting power"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			vals := keys.ToValidators(t, 10, 0)
			for i, k := range keys {
				idx, _ := vals.GetByAddress(k.PubKey().Address())
				vals.Validators[idx].VotingPower = tc.powers[i]
			}
			sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, tc.signers)

			for _, v := range []light.Verdict{cv.Validate(sh, vals), cv.ValidateFull(sh, vals)} {
				assert.Equal(t, light.VerdictInvalid, v.Kind, "%v", v)
				assert.Contains(t, v.String(), tc.reason)
			}
		})
	}
}

func TestValidateFullReportsPower(t *testing.T) {
	keys := factory.GenPrivKeys(4)
	vals := keys.ToValidators(t, 10, 0)
	sh := keys.GenSignedHeader(t, chainID, 5, factory.DefaultTime, vals, vals, 0, 2)

	v := light.DefaultCommitValidator().ValidateFull(sh, vals)
	require.Equal(t, light.VerdictNotEnoughTrust, v.Kind)

	var notEnough light.ErrNotEnoughTrust
	require.True(t, errors.As(v.Err(), &notEnough))

	var power types.ErrNotEnoughVotingPowerSigned
	require.True(t, errors.As(v.Err(), &power))
	assert.EqualValues(t, 20, power.Got)
	assert.EqualValues(t, 26, power.Needed)

	// the same commit is enough for the lighter trust level
	cv, err := light.NewProdCommitValidator(light.DefaultTrustLevel)
	require.NoError(t, err)
	assert.True(t, cv.ValidateFull(sh, vals).IsSuccess())
}

func TestValidateFullMixedKeyTypes(t *testing.T) {
	keys := factory.GenPrivKeys(2)
	keys = append(keys, secp256k1.GenPrivKeySecp256k1([]byte("secp-validator")))
	vals := keys.ToValidators(t, 10, 0)
	sh := keys.GenSignedHeader(t, chainID, 7, factory.DefaultTime, vals, vals, 0, 3)

	cv := light.DefaultCommitValidator()
	require.True(t, cv.Validate(sh, vals).IsSuccess())
	require.True(t, cv.ValidateFull(sh, vals).IsSuccess())

	sh.Commit.Signatures[0].Signature[3] ^= 0x01
	v := cv.ValidateFull(sh, vals)
	require.Equal(t, light.VerdictInvalid, v.Kind)
	var sigErr light.ErrInvalidSignature
	assert.True(t, errors.As(v.Err(), &sigErr))
}

func TestNewProdCommitValidatorRejectsBadThreshold(t *testing.T) {
	for _, lvl := range []tmmath.Fraction{
		{Numerator: 1, Denominator: 4},
		{Numerator: 4, Denominator: 3},
		{Numerator: 1, Denominator: 0},
	} {
		_, err := light.NewProdCommitValidator(lvl)
		assert.Error(t, err, "%v", lvl)
	}

	var zero light.ProdCommitValidator
	assert.Equal(t, light.DefaultCommitThreshold, zero.Threshold())
}

// Signing any subset of equally weighted validators is enough exactly when
// the subset holds more than the threshold of the power.
func TestValidateFullThresholdProperty(t *testing.T) {
	keys := factory.GenPrivKeys(7)
	vals := keys.ToValidators(t, 5, 0)
	headers := make([]*types.SignedHeader, len(keys)+1)
	for n := range headers {
		headers[n] = keys.GenSignedHeader(t, chainID, 3, factory.DefaultTime, vals, vals, 0, n)
	}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, len(keys)).Draw(rt, "signers").(int)
		num := rapid.Uint64Range(1, 10).Draw(rt, "num").(uint64)
		den := rapid.Uint64Range(num, 3*num).Draw(rt, "den").(uint64)

		cv, err := light.NewProdCommitValidator(tmmath.Fraction{Numerator: num, Denominator: den})
		if err != nil {
			rt.Fatalf("threshold %d/%d: %v", num, den, err)
		}
		want := uint64(n)*5*den > uint64(len(keys))*5*num
		got := cv.ValidateFull(headers[n], vals).IsSuccess()
		if got != want {
			rt.Fatalf("%d signers at %d/%d: got %v, want %v", n, num, den, got, want)
		}
	})
}
