package light

import (
	"fmt"
	"math/bits"

	"github.com/tendermint/ics07/crypto"
	"github.com/tendermint/ics07/crypto/batch"
	tmmath "github.com/tendermint/ics07/libs/math"
	"github.com/tendermint/ics07/types"
)

var (
	// DefaultTrustLevel - new header can be trusted if at least one correct
	// validator signed it.
	DefaultTrustLevel = tmmath.Fraction{Numerator: 1, Denominator: 3}

	// DefaultCommitThreshold is the fraction of voting power consensus needs
	// to commit a block.
	DefaultCommitThreshold = tmmath.Fraction{Numerator: 2, Denominator: 3}
)

//go:generate mockery --case underscore --name CommitValidator

// CommitValidator checks that a commit was produced by a validator set.
//
// Validate is structural only. ValidateFull verifies signatures and the
// voting power behind them. Neither assumes the other was called.
type CommitValidator interface {
	Validate(sh *types.SignedHeader, vals *types.ValidatorSet) Verdict
	ValidateFull(sh *types.SignedHeader, vals *types.ValidatorSet) Verdict
}

// ProdCommitValidator validates commits the way Tendermint consensus does,
// with a configurable voting power threshold.
type ProdCommitValidator struct {
	threshold tmmath.Fraction
}

var _ CommitValidator = (*ProdCommitValidator)(nil)

// NewProdCommitValidator returns a validator that accepts a commit once the
// signed voting power is strictly above threshold of the total.
func NewProdCommitValidator(threshold tmmath.Fraction) (*ProdCommitValidator, error) {
	if err := ValidateTrustLevel(threshold); err != nil {
		return nil, err
	}
	return &ProdCommitValidator{threshold: threshold}, nil
}

// DefaultCommitValidator requires more than 2/3 of the voting power.
func DefaultCommitValidator() *ProdCommitValidator {
	return &ProdCommitValidator{threshold: DefaultCommitThreshold}
}

// Threshold returns the fraction of voting power a commit must exceed.
func (cv *ProdCommitValidator) Threshold() tmmath.Fraction {
	if cv == nil || cv.threshold.Denominator == 0 {
		return DefaultCommitThreshold
	}
	return cv.threshold
}

// Validate checks that:
//
//	a) the header, the commit and vals are well formed, and the header
//	   and commit are at the same height
//	b) at least one validator voted
//	c) there is exactly one signature slot per validator
//	d) every vote comes from a member of vals, at most once
func (cv *ProdCommitValidator) Validate(sh *types.SignedHeader, vals *types.ValidatorSet) Verdict {
	if err := checkInputs(sh, vals); err != nil {
		return Invalid(err)
	}
	if err := sh.Header.ValidateBasic(); err != nil {
		return Invalid(fmt.Errorf("header: %w", err))
	}
	if err := sh.Commit.ValidateBasic(); err != nil {
		return Invalid(fmt.Errorf("commit: %w", err))
	}
	if sh.Commit.Height != sh.Height {
		return Invalid(types.NewErrInvalidCommitHeight(sh.Height, sh.Commit.Height))
	}

	present := 0
	for _, cs := range sh.Commit.Signatures {
		if !cs.Absent() {
			present++
		}
	}
	if present == 0 {
		return Invalid(errNoSignatures)
	}
	if vals.Size() != len(sh.Commit.Signatures) {
		return Invalid(types.NewErrInvalidCommitSignatures(vals.Size(), len(sh.Commit.Signatures)))
	}

	if _, err := signers(sh.Commit, vals, false); err != nil {
		return Invalid(err)
	}
	return Success()
}

// ValidateFull verifies every vote for the block and requires
//
//	signed_power * threshold.Denominator > total_power * threshold.Numerator
//
// Signatures are batch verified when every signer's key supports it, falling
// back to one by one verification if the batch fails.
func (cv *ProdCommitValidator) ValidateFull(sh *types.SignedHeader, vals *types.ValidatorSet) Verdict {
	if err := checkInputs(sh, vals); err != nil {
		return Invalid(err)
	}

	votes, err := signers(sh.Commit, vals, true)
	if err != nil {
		return Invalid(err)
	}

	chainID := sh.ChainID
	if err := verifyVotes(chainID, sh.Commit, votes); err != nil {
		return Invalid(err)
	}

	var tallied int64
	for _, v := range votes {
		tallied = tmmath.SafeAddClip(tallied, v.val.VotingPower)
	}

	threshold := cv.Threshold()
	total := vals.TotalVotingPower()
	if !exceeds(tallied, total, threshold) {
		return NotEnoughTrust(types.ErrNotEnoughVotingPowerSigned{
			Got:    tallied,
			Needed: needed(total, threshold),
		})
	}
	return Success()
}

func checkInputs(sh *types.SignedHeader, vals *types.ValidatorSet) error {
	if sh == nil || sh.Header == nil || sh.Commit == nil {
		return errNilHeader
	}
	if vals.IsNilOrEmpty() {
		return errNilValidators
	}
	if err := vals.ValidateBasic(); err != nil {
		return fmt.Errorf("validator set: %w", err)
	}
	return nil
}

type vote struct {
	idx int
	val *types.Validator
}

// signers resolves the validator behind every present signature. With
// forBlockOnly, votes for nil are skipped.
func signers(commit *types.Commit, vals *types.ValidatorSet, forBlockOnly bool) ([]vote, error) {
	var (
		votes = make([]vote, 0, len(commit.Signatures))
		seen  = make(map[string]int, len(commit.Signatures))
	)
	for idx, cs := range commit.Signatures {
		if cs.Absent() || (forBlockOnly && !cs.ForBlock()) {
			continue
		}
		if _, ok := seen[string(cs.ValidatorAddress)]; ok {
			return nil, ErrDuplicateVote{Index: idx, Address: cs.ValidatorAddress}
		}
		seen[string(cs.ValidatorAddress)] = idx

		valIdx, val := vals.GetByAddress(cs.ValidatorAddress)
		if valIdx < 0 {
			return nil, ErrNonMemberSignature{Index: idx, Address: cs.ValidatorAddress}
		}
		votes = append(votes, vote{idx: idx, val: val})
	}
	return votes, nil
}

func verifyVotes(chainID string, commit *types.Commit, votes []vote) error {
	signBytes := make([][]byte, len(votes))
	for i, v := range votes {
		signBytes[i] = commit.VoteSignBytes(chainID, int32(v.idx))
	}

	if bv, ok := batchVerifier(votes); ok {
		added := true
		for i, v := range votes {
			if err := bv.Add(v.val.PubKey, signBytes[i], commit.Signatures[v.idx].Signature); err != nil {
				added = false
				break
			}
		}
		if added {
			if ok, _ := bv.Verify(); ok {
				return nil
			}
		}
	}

	for i, v := range votes {
		sig := commit.Signatures[v.idx].Signature
		if !v.val.PubKey.VerifySignature(signBytes[i], sig) {
			return ErrInvalidSignature{Index: v.idx, Signature: sig}
		}
	}
	return nil
}

// batchVerifier returns a verifier only if there is more than one vote and
// every key can be batched.
func batchVerifier(votes []vote) (crypto.BatchVerifier, bool) {
	if len(votes) < 2 {
		return nil, false
	}
	for _, v := range votes {
		if !batch.SupportsBatchVerifier(v.val.PubKey) {
			return nil, false
		}
	}
	return batch.CreateBatchVerifier(votes[0].val.PubKey)
}

// exceeds reports signed * den > total * num without overflowing.
func exceeds(signed, total int64, lvl tmmath.Fraction) bool {
	if signed <= 0 {
		return false
	}
	sHi, sLo := bits.Mul64(uint64(signed), lvl.Denominator)
	tHi, tLo := bits.Mul64(uint64(total), lvl.Numerator)
	return sHi > tHi || (sHi == tHi && sLo > tLo)
}

// needed is the voting power that must be exceeded, rounded down.
func needed(total int64, lvl tmmath.Fraction) int64 {
	hi, lo := bits.Mul64(uint64(total), lvl.Numerator)
	q, _ := bits.Div64(hi, lo, lvl.Denominator)
	return int64(q)
}

// ValidateTrustLevel checks that trustLevel is within the allowed range [1/3,
// 1]. If not, it returns an error. 1/3 is the minimum amount of trust needed
// which does not break the security model.
func ValidateTrustLevel(lvl tmmath.Fraction) error {
	if lvl.Numerator*3 < lvl.Denominator || // < 1/3
		lvl.Numerator > lvl.Denominator || // > 1
		lvl.Denominator == 0 {
		return fmt.Errorf("trustLevel must be within [1/3, 1], given %v", lvl)
	}
	return nil
}
