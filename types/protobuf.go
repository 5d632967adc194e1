package types

import (
	"errors"
	"fmt"
	"time"

	gogotypes "github.com/gogo/protobuf/types"

	ce "github.com/tendermint/ics07/crypto/encoding"
	"github.com/tendermint/ics07/libs/protoio"
)

// The encodings below follow the tendermint.types and tendermint.version
// protobuf packages field for field. Unknown fields are skipped on decode.

func timeToProto(t time.Time) ([]byte, error) {
	return gogotypes.StdTimeMarshal(t)
}

func timeFromProto(f protoio.Field) (time.Time, error) {
	bz, err := f.AsMessage()
	if err != nil {
		return time.Time{}, err
	}
	var t time.Time
	if err := gogotypes.StdTimeUnmarshal(&t, bz); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (c Consensus) toProto() []byte {
	var w protoio.Writer
	w.Uint64(1, c.Block)
	w.Uint64(2, c.App)
	return w.Bytes()
}

func consensusFromProto(bz []byte) (c Consensus, err error) {
	err = protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			c.Block, err = f.AsUint64()
		case 2:
			c.App, err = f.AsUint64()
		}
		return err
	})
	return c, err
}

// ToProto converts PartSetHeader to its wire encoding.
func (psh PartSetHeader) ToProto() []byte {
	var w protoio.Writer
	w.Uint64(1, uint64(psh.Total))
	w.RawBytes(2, psh.Hash)
	return w.Bytes()
}

// PartSetHeaderFromProto decodes a tendermint.types.PartSetHeader.
func PartSetHeaderFromProto(bz []byte) (psh PartSetHeader, err error) {
	err = protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			psh.Total, err = f.AsUint32()
		case 2:
			psh.Hash, err = f.AsBytes()
		}
		return err
	})
	return psh, err
}

// ToProto converts BlockID to its wire encoding.
func (blockID BlockID) ToProto() []byte {
	var w protoio.Writer
	w.RawBytes(1, blockID.Hash)
	w.Message(2, blockID.PartSetHeader.ToProto())
	return w.Bytes()
}

// BlockIDFromProto decodes a tendermint.types.BlockID.
func BlockIDFromProto(bz []byte) (blockID BlockID, err error) {
	err = protoio.ReadFields(bz, func(f protoio.Field) error {
		switch f.Num {
		case 1:
			hash, err := f.AsBytes()
			if err != nil {
				return err
			}
			blockID.Hash = hash
		case 2:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if blockID.PartSetHeader, err = PartSetHeaderFromProto(msg); err != nil {
				return fmt.Errorf("part_set_header: %w", err)
			}
		}
		return nil
	})
	return blockID, err
}

// ToProto converts Header to its wire encoding.
func (h *Header) ToProto() ([]byte, error) {
	if h == nil {
		return nil, nil
	}
	ts, err := timeToProto(h.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}
	var w protoio.Writer
	w.Message(1, h.Version.toProto())
	w.String(2, h.ChainID)
	w.Int64(3, h.Height)
	w.Message(4, ts)
	w.Message(5, h.LastBlockID.ToProto())
	w.RawBytes(6, h.LastCommitHash)
	w.RawBytes(7, h.DataHash)
	w.RawBytes(8, h.ValidatorsHash)
	w.RawBytes(9, h.NextValidatorsHash)
	w.RawBytes(10, h.ConsensusHash)
	w.RawBytes(11, h.AppHash)
	w.RawBytes(12, h.LastResultsHash)
	w.RawBytes(13, h.EvidenceHash)
	w.RawBytes(14, h.ProposerAddress)
	return w.Bytes(), nil
}

// HeaderFromProto decodes a tendermint.types.Header. The result is not
// validated.
func HeaderFromProto(bz []byte) (*Header, error) {
	h := new(Header)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			var msg []byte
			if msg, err = f.AsMessage(); err == nil {
				h.Version, err = consensusFromProto(msg)
			}
		case 2:
			h.ChainID, err = f.AsString()
		case 3:
			h.Height, err = f.AsInt64()
		case 4:
			h.Time, err = timeFromProto(f)
		case 5:
			var msg []byte
			if msg, err = f.AsMessage(); err == nil {
				h.LastBlockID, err = BlockIDFromProto(msg)
			}
		case 6:
			h.LastCommitHash, err = f.AsBytes()
		case 7:
			h.DataHash, err = f.AsBytes()
		case 8:
			h.ValidatorsHash, err = f.AsBytes()
		case 9:
			h.NextValidatorsHash, err = f.AsBytes()
		case 10:
			h.ConsensusHash, err = f.AsBytes()
		case 11:
			h.AppHash, err = f.AsBytes()
		case 12:
			h.LastResultsHash, err = f.AsBytes()
		case 13:
			h.EvidenceHash, err = f.AsBytes()
		case 14:
			h.ProposerAddress, err = f.AsBytes()
		default:
			return nil
		}
		if err != nil {
			return fmt.Errorf("header field %d: %w", f.Num, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// ToProto converts CommitSig to its wire encoding.
func (cs CommitSig) ToProto() ([]byte, error) {
	ts, err := timeToProto(cs.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}
	var w protoio.Writer
	w.Uint64(1, uint64(cs.BlockIDFlag))
	w.RawBytes(2, cs.ValidatorAddress)
	w.Message(3, ts)
	w.RawBytes(4, cs.Signature)
	return w.Bytes(), nil
}

// CommitSigFromProto decodes a tendermint.types.CommitSig.
func CommitSigFromProto(bz []byte) (cs CommitSig, err error) {
	err = protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			var flag uint64
			if flag, err = f.AsUint64(); err == nil {
				if flag > uint64(BlockIDFlagNil) {
					return fmt.Errorf("unknown BlockIDFlag: %d", flag)
				}
				cs.BlockIDFlag = BlockIDFlag(flag)
			}
		case 2:
			cs.ValidatorAddress, err = f.AsBytes()
		case 3:
			cs.Timestamp, err = timeFromProto(f)
		case 4:
			cs.Signature, err = f.AsBytes()
		}
		return err
	})
	return cs, err
}

// ToProto converts Commit to its wire encoding.
func (commit *Commit) ToProto() ([]byte, error) {
	if commit == nil {
		return nil, nil
	}
	var w protoio.Writer
	w.Int64(1, commit.Height)
	w.Int32(2, commit.Round)
	w.Message(3, commit.BlockID.ToProto())
	for i, cs := range commit.Signatures {
		bz, err := cs.ToProto()
		if err != nil {
			return nil, fmt.Errorf("signature #%d: %w", i, err)
		}
		w.Message(4, bz)
	}
	return w.Bytes(), nil
}

// CommitFromProto decodes a tendermint.types.Commit. The result is not
// validated.
func CommitFromProto(bz []byte) (*Commit, error) {
	commit := new(Commit)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			commit.Height, err = f.AsInt64()
		case 2:
			commit.Round, err = f.AsInt32()
		case 3:
			var msg []byte
			if msg, err = f.AsMessage(); err == nil {
				commit.BlockID, err = BlockIDFromProto(msg)
			}
		case 4:
			var msg []byte
			if msg, err = f.AsMessage(); err == nil {
				var cs CommitSig
				if cs, err = CommitSigFromProto(msg); err == nil {
					commit.Signatures = append(commit.Signatures, cs)
				}
			}
		default:
			return nil
		}
		if err != nil {
			return fmt.Errorf("commit field %d: %w", f.Num, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// ToProto converts SignedHeader to its wire encoding.
func (sh *SignedHeader) ToProto() ([]byte, error) {
	if sh == nil {
		return nil, nil
	}
	var w protoio.Writer
	if sh.Header != nil {
		bz, err := sh.Header.ToProto()
		if err != nil {
			return nil, err
		}
		w.Message(1, bz)
	}
	if sh.Commit != nil {
		bz, err := sh.Commit.ToProto()
		if err != nil {
			return nil, err
		}
		w.Message(2, bz)
	}
	return w.Bytes(), nil
}

// SignedHeaderFromProto decodes a tendermint.types.SignedHeader. Both the
// header and the commit must be present.
func SignedHeaderFromProto(bz []byte) (*SignedHeader, error) {
	sh := new(SignedHeader)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		switch f.Num {
		case 1:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if sh.Header, err = HeaderFromProto(msg); err != nil {
				return err
			}
		case 2:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if sh.Commit, err = CommitFromProto(msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sh.Header == nil {
		return nil, errors.New("signed header: missing header")
	}
	if sh.Commit == nil {
		return nil, errors.New("signed header: missing commit")
	}
	return sh, nil
}

// ToProto converts Validator to its wire encoding.
func (v *Validator) ToProto() ([]byte, error) {
	if v == nil {
		return nil, errors.New("nil validator")
	}
	pk, err := ce.PubKeyToProto(v.PubKey)
	if err != nil {
		return nil, err
	}
	var w protoio.Writer
	w.RawBytes(1, v.Address)
	w.Message(2, pk)
	w.Int64(3, v.VotingPower)
	w.Int64(4, v.ProposerPriority)
	return w.Bytes(), nil
}

// ValidatorFromProto decodes a tendermint.types.Validator. The result is
// not validated.
func ValidatorFromProto(bz []byte) (*Validator, error) {
	v := new(Validator)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			v.Address, err = f.AsBytes()
		case 2:
			var msg []byte
			if msg, err = f.AsMessage(); err == nil {
				v.PubKey, err = ce.PubKeyFromProto(msg)
			}
		case 3:
			v.VotingPower, err = f.AsInt64()
		case 4:
			v.ProposerPriority, err = f.AsInt64()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ToProto converts ValidatorSet to its wire encoding.
func (vals *ValidatorSet) ToProto() ([]byte, error) {
	if vals == nil {
		return nil, nil
	}
	var w protoio.Writer
	for i, val := range vals.Validators {
		bz, err := val.ToProto()
		if err != nil {
			return nil, fmt.Errorf("validator #%d: %w", i, err)
		}
		w.Message(1, bz)
	}
	if vals.Proposer != nil {
		bz, err := vals.Proposer.ToProto()
		if err != nil {
			return nil, fmt.Errorf("proposer: %w", err)
		}
		w.Message(2, bz)
	}
	w.Int64(3, vals.TotalVotingPower())
	return w.Bytes(), nil
}

// ValidatorSetFromProto decodes a tendermint.types.ValidatorSet, preserving
// the validator order, and validates the result.
func ValidatorSetFromProto(bz []byte) (*ValidatorSet, error) {
	vals := new(ValidatorSet)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		switch f.Num {
		case 1:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			val, err := ValidatorFromProto(msg)
			if err != nil {
				return fmt.Errorf("validator #%d: %w", len(vals.Validators), err)
			}
			vals.Validators = append(vals.Validators, val)
		case 2:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if vals.Proposer, err = ValidatorFromProto(msg); err != nil {
				return fmt.Errorf("proposer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := vals.ValidateBasic(); err != nil {
		return nil, err
	}
	return vals, nil
}
