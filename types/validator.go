package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tendermint/ics07/crypto"
	ce "github.com/tendermint/ics07/crypto/encoding"
	"github.com/tendermint/ics07/libs/protoio"
)

// Address is hex bytes.
type Address = crypto.Address

// Validator holds the voting power and the public key of a single
// consensus participant.
// NOTE: The ProposerPriority is not included in Validator.Hash();
// make sure to update that method if changes are made here
type Validator struct {
	Address     crypto.Address `json:"address"`
	PubKey      crypto.PubKey  `json:"pub_key"`
	VotingPower int64          `json:"voting_power,string"`

	ProposerPriority int64 `json:"proposer_priority,string"`
}

type validatorJSON struct {
	Address          crypto.Address  `json:"address"`
	PubKey           json.RawMessage `json:"pub_key,omitempty"`
	VotingPower      int64           `json:"voting_power,string"`
	ProposerPriority int64           `json:"proposer_priority,string"`
}

func (v Validator) MarshalJSON() ([]byte, error) {
	val := validatorJSON{
		Address:          v.Address,
		VotingPower:      v.VotingPower,
		ProposerPriority: v.ProposerPriority,
	}
	if v.PubKey != nil {
		pk, err := ce.PubKeyToJSON(v.PubKey)
		if err != nil {
			return nil, err
		}
		val.PubKey = pk
	}
	return json.Marshal(val)
}

func (v *Validator) UnmarshalJSON(data []byte) error {
	var val validatorJSON
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	if len(val.PubKey) > 0 {
		pk, err := ce.PubKeyFromJSON(val.PubKey)
		if err != nil {
			return err
		}
		v.PubKey = pk
	}
	v.Address = val.Address
	v.VotingPower = val.VotingPower
	v.ProposerPriority = val.ProposerPriority
	return nil
}

// NewValidator returns a new validator with the given pubkey and voting power.
func NewValidator(pubKey crypto.PubKey, votingPower int64) *Validator {
	return &Validator{
		Address:          pubKey.Address(),
		PubKey:           pubKey,
		VotingPower:      votingPower,
		ProposerPriority: 0,
	}
}

// ValidateBasic performs basic validation.
func (v *Validator) ValidateBasic() error {
	if v == nil {
		return errors.New("nil validator")
	}
	if v.PubKey == nil {
		return errors.New("validator does not have a public key")
	}

	if v.VotingPower < 0 {
		return errors.New("validator has negative voting power")
	}

	if len(v.Address) != crypto.AddressSize {
		return fmt.Errorf("validator address is the wrong size: %v", v.Address)
	}

	if !bytes.Equal(v.PubKey.Address(), v.Address) {
		return fmt.Errorf("validator address %v does not match its public key %v", v.Address, v.PubKey.Address())
	}

	return nil
}

// Copy creates a new copy of the validator so we can mutate ProposerPriority.
// Panics if the validator is nil.
func (v *Validator) Copy() *Validator {
	vCopy := *v
	vCopy.Address = v.Address.Copy()
	vCopy.PubKey = copyPubKey(v.PubKey)
	return &vCopy
}

// Returns the one with higher ProposerPriority.
func (v *Validator) CompareProposerPriority(other *Validator) *Validator {
	if v == nil {
		return other
	}
	switch {
	case v.ProposerPriority > other.ProposerPriority:
		return v
	case v.ProposerPriority < other.ProposerPriority:
		return other
	default:
		result := bytes.Compare(v.Address, other.Address)
		switch {
		case result < 0:
			return v
		case result > 0:
			return other
		default:
			panic("Cannot compare identical validators")
		}
	}
}

// String returns a string representation of String.
//
// 1. address
// 2. public key
// 3. voting power
// 4. proposer priority
func (v *Validator) String() string {
	if v == nil {
		return "nil-Validator"
	}
	return fmt.Sprintf("Validator{%v %v VP:%v A:%v}",
		v.Address,
		v.PubKey,
		v.VotingPower,
		v.ProposerPriority)
}

// ValidatorListString returns a prettified validator list for logging purposes.
func ValidatorListString(vals []*Validator) string {
	chunks := make([]string, len(vals))
	for i, val := range vals {
		chunks[i] = fmt.Sprintf("%s:%d", val.Address, val.VotingPower)
	}

	return strings.Join(chunks, ",")
}

// Bytes computes the unique encoding of a validator with a given voting power.
// These are the bytes that gets hashed in consensus. It excludes address
// as its redundant with the pubkey. This also excludes ProposerPriority
// which changes every round.
func (v *Validator) Bytes() []byte {
	pk, err := ce.PubKeyToProto(v.PubKey)
	if err != nil {
		panic(err)
	}

	var w protoio.Writer
	w.Message(1, pk)
	w.Int64(2, v.VotingPower)
	return w.Bytes()
}

// copyPubKey returns a copy of pk that shares no memory with it.
func copyPubKey(pk crypto.PubKey) crypto.PubKey {
	if pk == nil {
		return nil
	}
	bz, err := ce.PubKeyToProto(pk)
	if err != nil {
		return pk
	}
	cp, err := ce.PubKeyFromProto(bz)
	if err != nil {
		return pk
	}
	return cp
}
