package tendermint

import (
	"errors"
	"fmt"
	"time"

	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/light"
	"github.com/tendermint/ics07/types"
)

// Header is one candidate block of the counterparty chain, the validator
// sets claimed to have produced it, and the trusted height and validators
// that link it to a header the light client already verified.
//
// Header enforces nothing; see NewMisbehaviour.
type Header struct {
	SignedHeader      *types.SignedHeader `json:"signed_header"`
	ValidatorSet      *types.ValidatorSet `json:"validator_set"`
	NextValidatorSet  *types.ValidatorSet `json:"next_validator_set,omitempty"`
	TrustedHeight     client.Height       `json:"trusted_height"`
	TrustedValidators *types.ValidatorSet `json:"trusted_validators"`
}

func (h Header) complete() bool {
	return h.signed() && h.ValidatorSet != nil && h.TrustedValidators != nil
}

func (h Header) signed() bool {
	return h.SignedHeader != nil && h.SignedHeader.Header != nil && h.SignedHeader.Commit != nil
}

// checkWellFormed rejects what the commit checks never look at but the
// encoding depends on.
func (h Header) checkWellFormed() error {
	if h.SignedHeader.Height < 0 {
		return errors.New("negative height")
	}
	if err := h.TrustedValidators.ValidateBasic(); err != nil {
		return fmt.Errorf("trusted validators: %w", err)
	}
	if h.NextValidatorSet != nil {
		if err := h.NextValidatorSet.ValidateBasic(); err != nil {
			return fmt.Errorf("next validator set: %w", err)
		}
	}
	return nil
}

// ChainID returns the chain id of the block header, or "" if there is none.
func (h Header) ChainID() string {
	if !h.signed() {
		return ""
	}
	return h.SignedHeader.ChainID
}

// Height returns the header height, with the revision number taken from the
// chain id. A negative block height yields the zero Height.
func (h Header) Height() client.Height {
	if !h.signed() || h.SignedHeader.Height < 0 {
		return client.Height{}
	}
	return client.NewHeight(
		host.RevisionFromChainID(h.SignedHeader.ChainID),
		uint64(h.SignedHeader.Height),
	)
}

// ConsensusTime returns the block time.
func (h Header) ConsensusTime() time.Time {
	if !h.signed() {
		return time.Time{}
	}
	return h.SignedHeader.Time
}

// AsUntrustedBlockState returns the view commit validation works on. The
// returned state shares memory with h.
func (h Header) AsUntrustedBlockState() light.UntrustedBlockState {
	return light.UntrustedBlockState{
		SignedHeader:   h.SignedHeader,
		Validators:     h.ValidatorSet,
		NextValidators: h.NextValidatorSet,
	}
}

// Copy returns a deep copy of h.
func (h Header) Copy() Header {
	return Header{
		SignedHeader:      h.SignedHeader.Copy(),
		ValidatorSet:      h.ValidatorSet.Copy(),
		NextValidatorSet:  h.NextValidatorSet.Copy(),
		TrustedHeight:     h.TrustedHeight,
		TrustedValidators: h.TrustedValidators.Copy(),
	}
}
