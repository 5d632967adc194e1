package types

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tendermint/ics07/crypto/merkle"
	tmmath "github.com/tendermint/ics07/libs/math"
)

const (
	// MaxTotalVotingPower - the maximum allowed total voting power.
	MaxTotalVotingPower = int64(math.MaxInt64) / 8
)

// ErrTotalVotingPowerOverflow is returned if the total voting power of the
// resulting validator set exceeds MaxTotalVotingPower.
var ErrTotalVotingPowerOverflow = fmt.Errorf("total voting power of resulting valset exceeds max %d",
	MaxTotalVotingPower)

// ValidatorSet represent a set of *Validator at a given height.
//
// The validators are ordered by their voting power (descending). Secondary
// index - .Address (ascending).
//
// A ValidatorSet received from an untrusted peer keeps the order it was
// sent in: its hash commits to that order, and commits index signatures by
// position in it.
type ValidatorSet struct {
	Validators []*Validator `json:"validators"`
	Proposer   *Validator   `json:"proposer"`
}

// NewValidatorSet initializes a ValidatorSet by copying over the values from
// `valz`, a list of Validators, and sorting them by voting power. The first
// validator becomes the proposer.
//
// An error is returned if the resulting set would be invalid.
func NewValidatorSet(valz []*Validator) (*ValidatorSet, error) {
	vals := &ValidatorSet{
		Validators: validatorListCopy(valz),
	}
	sort.Sort(ValidatorsByVotingPower(vals.Validators))
	if len(vals.Validators) > 0 {
		vals.Proposer = vals.Validators[0]
	}
	if err := vals.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("cannot create validator set: %w", err)
	}
	return vals, nil
}

// ValidateBasic checks the set is non-empty, every member is well formed
// with positive power, addresses are unique and the total power is in range.
func (vals *ValidatorSet) ValidateBasic() error {
	if vals.IsNilOrEmpty() {
		return errors.New("validator set is nil or empty")
	}

	seen := make(map[string]struct{}, len(vals.Validators))
	var sum int64
	for idx, val := range vals.Validators {
		if err := val.ValidateBasic(); err != nil {
			return fmt.Errorf("invalid validator #%d: %w", idx, err)
		}
		if val.VotingPower == 0 {
			return fmt.Errorf("validator #%d has zero voting power", idx)
		}
		key := string(val.Address)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate validator %v", val.Address)
		}
		seen[key] = struct{}{}

		var overflow bool
		sum, overflow = tmmath.SafeAdd(sum, val.VotingPower)
		if overflow || sum > MaxTotalVotingPower {
			return ErrTotalVotingPowerOverflow
		}
	}

	if vals.Proposer != nil {
		if err := vals.Proposer.ValidateBasic(); err != nil {
			return fmt.Errorf("proposer failed validate basic, error: %w", err)
		}
	}

	return nil
}

// IsNilOrEmpty returns true if validator set is nil or empty.
func (vals *ValidatorSet) IsNilOrEmpty() bool {
	return vals == nil || len(vals.Validators) == 0
}

// HasAddress returns true if address given is in the validator set, false -
// otherwise.
func (vals *ValidatorSet) HasAddress(address []byte) bool {
	for _, val := range vals.Validators {
		if bytes.Equal(val.Address, address) {
			return true
		}
	}
	return false
}

// GetByAddress returns an index of the validator with address and validator
// itself (copy) if found. Otherwise, -1 and nil are returned.
func (vals *ValidatorSet) GetByAddress(address []byte) (index int32, val *Validator) {
	for idx, val := range vals.Validators {
		if bytes.Equal(val.Address, address) {
			return int32(idx), val.Copy()
		}
	}
	return -1, nil
}

// GetByIndex returns the validator's address and validator itself (copy) by
// index.
// It returns nil values if index is less than 0 or greater or equal to
// len(ValidatorSet.Validators).
func (vals *ValidatorSet) GetByIndex(index int32) (address []byte, val *Validator) {
	if index < 0 || int(index) >= len(vals.Validators) {
		return nil, nil
	}
	val = vals.Validators[index]
	return val.Address, val.Copy()
}

// Size returns the length of the validator set.
func (vals *ValidatorSet) Size() int {
	if vals == nil {
		return 0
	}
	return len(vals.Validators)
}

// TotalVotingPower returns the sum of the voting powers of all validators,
// clipped at math.MaxInt64.
func (vals *ValidatorSet) TotalVotingPower() int64 {
	var sum int64
	for _, val := range vals.Validators {
		sum = tmmath.SafeAddClip(sum, val.VotingPower)
	}
	return sum
}

// GetProposer returns the current proposer. If the validator set is empty, nil
// is returned.
func (vals *ValidatorSet) GetProposer() (proposer *Validator) {
	if len(vals.Validators) == 0 {
		return nil
	}
	if vals.Proposer == nil {
		return vals.Validators[0].Copy()
	}
	return vals.Proposer.Copy()
}

// Hash returns the Merkle root hash build using validators (as leaves) in the
// set.
func (vals *ValidatorSet) Hash() []byte {
	bzs := make([][]byte, len(vals.Validators))
	for i, val := range vals.Validators {
		bzs[i] = val.Bytes()
	}
	return merkle.HashFromByteSlices(bzs)
}

// Copy each validator into a new ValidatorSet.
func (vals *ValidatorSet) Copy() *ValidatorSet {
	if vals == nil {
		return nil
	}
	var proposer *Validator
	if vals.Proposer != nil {
		proposer = vals.Proposer.Copy()
	}
	return &ValidatorSet{
		Validators: validatorListCopy(vals.Validators),
		Proposer:   proposer,
	}
}

// String returns a string representation of ValidatorSet.
//
// See StringIndented.
func (vals *ValidatorSet) String() string {
	return vals.StringIndented("")
}

// StringIndented returns an intended String.
//
// See Validator#String.
func (vals *ValidatorSet) StringIndented(indent string) string {
	if vals == nil {
		return "nil-ValidatorSet"
	}
	var valStrings []string
	for _, val := range vals.Validators {
		valStrings = append(valStrings, val.String())
	}
	return fmt.Sprintf(`ValidatorSet{
%s  Proposer: %v
%s  Validators:
%s    %v
%s}`,
		indent, vals.GetProposer().String(),
		indent,
		indent, strings.Join(valStrings, "\n"+indent+"    "),
		indent)
}

// Makes a copy of the validator list.
func validatorListCopy(valsList []*Validator) []*Validator {
	if valsList == nil {
		return nil
	}
	valsCopy := make([]*Validator, len(valsList))
	for i, val := range valsList {
		valsCopy[i] = val.Copy()
	}
	return valsCopy
}

//-----------------

// ValidatorsByVotingPower implements sort.Interface for []*Validator based on
// the VotingPower and Address fields.
type ValidatorsByVotingPower []*Validator

func (valz ValidatorsByVotingPower) Len() int { return len(valz) }

func (valz ValidatorsByVotingPower) Less(i, j int) bool {
	if valz[i].VotingPower == valz[j].VotingPower {
		return bytes.Compare(valz[i].Address, valz[j].Address) == -1
	}
	return valz[i].VotingPower > valz[j].VotingPower
}

func (valz ValidatorsByVotingPower) Swap(i, j int) {
	valz[i], valz[j] = valz[j], valz[i]
}
